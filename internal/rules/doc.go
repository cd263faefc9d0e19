// Package rules defines the sync rule model read from agent-sync
// configuration files and the selection of which rules a run applies.
// Rules are read-only once loaded; nothing in this package touches the
// filesystem.
package rules
