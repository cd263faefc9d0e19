package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agent-sync/agent-sync/internal/branding"
	"github.com/agent-sync/agent-sync/internal/config"
	"github.com/agent-sync/agent-sync/internal/logging"
	"github.com/agent-sync/agent-sync/internal/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings are the resolved command options. Flags win over environment
// variables (AGENT_SYNC_DRY_RUN, AGENT_SYNC_CONFIG, ...), which win over
// flag defaults.
type settings struct {
	Config  string
	Cwd     string
	Rule    string
	DryRun  bool
	Verbose bool
	Force   bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	s := &settings{
		Config:  v.GetString("config"),
		Cwd:     v.GetString("cwd"),
		Rule:    v.GetString("rule"),
		DryRun:  v.GetBool("dry-run"),
		Verbose: v.GetBool("verbose"),
		Force:   v.GetBool("force"),
	}

	if s.Cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		s.Cwd = wd
	}
	abs, err := filepath.Abs(s.Cwd)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	s.Cwd = abs

	return s, nil
}

func (s *settings) logger(cmd *cobra.Command) *logging.Logger {
	return logging.NewConsole(cmd.ErrOrStderr(), logging.Options{
		Verbose: s.Verbose,
		DryRun:  s.DryRun,
	})
}

// loadRules loads the project config, reporting where it came from.
func (s *settings) loadRules(log *logging.Logger) (*rules.Config, error) {
	res, err := config.Load(config.Options{
		Cwd:     s.Cwd,
		Path:    s.Config,
		Version: buildVersion,
	})
	if err != nil {
		return nil, err
	}

	if res.FilePath == "" {
		log.Warn("No config file found")
	} else {
		log.Info("Found config file at %s", res.FilePath)
	}
	log.Debug("Loaded %d rules", len(res.Config.Rules))
	return res.Config, nil
}
