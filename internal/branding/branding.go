// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool and its config file
// without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	EnvPrefix       string `yaml:"env_prefix"`
	PackageProperty string `yaml:"package_property"`
	RCFile          string `yaml:"rc_file"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "agent-sync",
			DisplayName:     "agent-sync",
			Description:     "Keep AI agent configuration in sync with symlinks",
			EnvPrefix:       "AGENT_SYNC",
			PackageProperty: "agent-sync",
			RCFile:          ".agentsyncrc",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "agent-sync").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "AGENT_SYNC").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// PackageProperty returns the package.json key that may hold the rule config.
func PackageProperty() string { load(); return defaults.PackageProperty }

// RCFile returns the base name of the rc config file (e.g., ".agentsyncrc").
func RCFile() string { load(); return defaults.RCFile }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("dry-run") → "AGENT_SYNC_DRY_RUN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(suffix, "-", "_"))
}
