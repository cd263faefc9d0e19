package syncer

import (
	"context"
	"fmt"

	"github.com/agent-sync/agent-sync/internal/locator"
	"github.com/agent-sync/agent-sync/internal/logging"
	"github.com/agent-sync/agent-sync/internal/rules"
)

// RuleResult tallies the outcomes of one rule.
type RuleResult struct {
	Rule      string
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
}

// Changed reports whether the rule created or replaced any link.
func (r RuleResult) Changed() bool {
	return r.Created+r.Updated > 0
}

func (r *RuleResult) record(o Outcome) {
	switch o {
	case Created:
		r.Created++
	case Updated:
		r.Updated++
	case Unchanged:
		r.Unchanged++
	case SkippedMissingSource, SkippedNotSymlink:
		r.Skipped++
	}
}

// Summary collects per-rule results in processing order.
type Summary struct {
	DryRun bool
	Rules  []RuleResult
}

// Syncer runs rules against a working directory.
type Syncer struct {
	log        *logging.Logger
	reconciler *Reconciler
	locate     func(ctx context.Context, baseDir, fileName string) ([]string, error)
}

// New returns a Syncer. A nil log discards output.
func New(opts Options, log *logging.Logger) *Syncer {
	if log == nil {
		log = logging.Nop()
	}
	return &Syncer{
		log:        log,
		reconciler: NewReconciler(opts, log),
		locate:     locator.FindDirectoriesWithFile,
	}
}

// Run applies each rule in order. Recursive file rules are applied in every
// directory under cwd that contains the rule's source; every other rule is
// applied once, relative to cwd. The first filesystem error aborts the run.
func (s *Syncer) Run(ctx context.Context, selected []rules.Rule, cwd string) (*Summary, error) {
	summary := &Summary{DryRun: s.reconciler.opts.DryRun}

	for _, rule := range selected {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if !rule.Type.Valid() {
			return summary, fmt.Errorf("rule %s: unknown type %q", rule.Name, rule.Type)
		}

		s.log.Info("Processing rule: %s", rule.Name)
		result := RuleResult{Rule: rule.Name}

		baseDirs := []string{cwd}
		if rule.IsRecursiveFile() {
			dirs, err := s.locate(ctx, cwd, rule.Source)
			if err != nil {
				return summary, fmt.Errorf("rule %s: searching for %s: %w", rule.Name, rule.Source, err)
			}
			baseDirs = dirs
			s.log.Debug("Found %d directories containing %s", len(dirs), rule.Source)
		}

		for _, dir := range baseDirs {
			for _, target := range rule.Target {
				outcome, err := s.reconciler.Reconcile(Intent{
					BaseDir: dir,
					Source:  rule.Source,
					Target:  target,
					Kind:    rule.Type,
				})
				if err != nil {
					return summary, fmt.Errorf("rule %s: %w", rule.Name, err)
				}
				result.record(outcome)
			}
		}

		summary.Rules = append(summary.Rules, result)
	}

	return summary, nil
}
