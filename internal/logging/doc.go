// Package logging wraps zerolog with the small vocabulary the sync commands
// use: debug lines shown only in verbose mode, warnings for skipped work,
// and "actions" for filesystem changes, which carry a [DRY RUN] prefix when
// nothing is actually written.
package logging
