package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agent-sync/agent-sync/internal/branding"
	"github.com/agent-sync/agent-sync/internal/config"
	"github.com/agent-sync/agent-sync/internal/rules"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter .agentsyncrc.yaml in the working directory.

The starter config links CLAUDE.md to AGENTS.md in every directory that
contains an AGENTS.md. Existing configs are left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if !s.Force {
		existing, err := config.Find(s.Cwd)
		if err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", existing)
		}
		if !errors.Is(err, config.ErrNotFound) {
			return err
		}
	}

	data, err := yaml.Marshal(starterConfig())
	if err != nil {
		return fmt.Errorf("marshaling starter config: %w", err)
	}

	path := filepath.Join(s.Cwd, branding.RCFile()+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Run '%s sync --dry-run' to preview the links.\n", branding.CLIName())
	return nil
}

func starterConfig() rules.Config {
	return rules.Config{
		Rules: []rules.Rule{
			{
				Name:        "claude-md",
				Description: "Link CLAUDE.md to AGENTS.md wherever AGENTS.md exists",
				Source:      "AGENTS.md",
				Target:      rules.Targets{"CLAUDE.md"},
				Recursive:   true,
				Type:        rules.KindFile,
				Enabled:     true,
			},
		},
	}
}
