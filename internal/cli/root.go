package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/agent-sync/agent-sync/internal/branding"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` keeps AI agent configuration files in sync by maintaining
relative symlinks described by rules in a project config file
(.agentsyncrc, .agentsyncrc.yaml, package.json "agent-sync", ...).

Flags can also be set from the environment, for example ` +
			branding.EnvVar("dry-run") + `=1 or ` + branding.EnvVar("config") + `=path.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to the config file (default: search from --cwd)")
	cmd.PersistentFlags().String("cwd", "", "Working directory (default: current directory)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug output")

	cmd.AddCommand(
		newSyncCmd(),
		newValidateCmd(),
		newInitCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed once to stderr and returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
