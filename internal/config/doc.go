// Package config locates, reads and validates the agent-sync rule file for a
// project. Files are searched in a fixed order (package.json property, then
// .agentsyncrc variants, then the same under .config/), parsed as JSON or
// YAML with keys kept exactly as written, checked against the embedded JSON
// Schema, and decoded into rules.Config. A project without any config file
// yields an empty rule list.
package config
