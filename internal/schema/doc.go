// Package schema validates agent-sync configuration documents against the
// embedded JSON Schema (draft 2020-12). Documents may come from JSON or YAML;
// they are normalised to JSON values before validation, and failures are
// reported as a flat list of issues with instance paths.
package schema
