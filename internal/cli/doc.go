// Package cli defines the Cobra command tree for the agent-sync CLI. Each file
// in this package builds one top-level command (sync, validate, init, etc.)
// and the root command wires them together. Commands resolve their settings
// from flags and AGENT_SYNC_* environment variables, then delegate to the
// config and syncer packages for the actual work.
package cli
