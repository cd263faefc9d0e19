package cli

import (
	"errors"

	"github.com/agent-sync/agent-sync/internal/platform"
	"github.com/agent-sync/agent-sync/internal/rules"
	"github.com/agent-sync/agent-sync/internal/syncer"
	"github.com/spf13/cobra"
)

var errNoSymlinks = errors.New("symlinks are not supported on this system (on Windows, enable Developer Mode or run as administrator)")

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Create or repair the symlinks described by the config rules",
		Long: `Apply every enabled rule in the config file.

With --rule, only the rules with that name are applied, even if disabled.
With --dry-run, planned changes are logged and nothing is written.`,
		Args: cobra.NoArgs,
		RunE: runSync,
	}

	cmd.Flags().StringP("rule", "r", "", "Only apply the rule with this name")
	cmd.Flags().Bool("dry-run", false, "Log planned changes without touching the filesystem")
	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	log := s.logger(cmd)

	cfg, err := s.loadRules(log)
	if err != nil {
		return err
	}

	selected := rules.Select(cfg.Rules, s.Rule)
	if s.Rule != "" && len(selected) == 0 {
		log.Warn("No rule named %s in config", s.Rule)
	}
	if len(selected) > 0 && !s.DryRun && !platform.IsSymlinkSupported() {
		return errNoSymlinks
	}

	summary, err := syncer.New(syncer.Options{DryRun: s.DryRun}, log).Run(cmd.Context(), selected, s.Cwd)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), summary)
	return nil
}
