package syncer

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agent-sync/agent-sync/internal/logging"
	"github.com/agent-sync/agent-sync/internal/platform"
	"github.com/agent-sync/agent-sync/internal/rules"
)

// Outcome records what a single reconciliation did.
type Outcome int

const (
	Unchanged Outcome = iota
	Created
	Updated
	SkippedMissingSource
	SkippedNotSymlink
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Created:
		return "created"
	case Updated:
		return "updated"
	case SkippedMissingSource:
		return "skipped (missing source)"
	case SkippedNotSymlink:
		return "skipped (not a symlink)"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Options controls filesystem effects. It is fixed for a run.
type Options struct {
	// DryRun logs intended actions without touching the filesystem.
	DryRun bool
}

// Intent is one symlink to reconcile: Target and Source are relative to
// BaseDir.
type Intent struct {
	BaseDir string
	Source  string
	Target  string
	Kind    rules.Kind
}

// Reconciler makes target paths symlinks to their sources.
type Reconciler struct {
	opts Options
	log  *logging.Logger
}

// NewReconciler returns a Reconciler. A nil log discards output.
func NewReconciler(opts Options, log *logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{opts: opts, log: log}
}

// LinkValue returns the relative link value that makes targetPath point at
// sourcePath: the path from the target's parent directory to the source.
func LinkValue(sourcePath, targetPath string) (string, error) {
	value, err := filepath.Rel(filepath.Dir(targetPath), sourcePath)
	if err != nil {
		return "", fmt.Errorf("computing link from %s to %s: %w", targetPath, sourcePath, err)
	}
	return value, nil
}

// Reconcile ensures in.Target is a symlink to in.Source. A missing source or
// a target that exists but is not a symlink is logged and skipped; only
// filesystem failures are returned as errors.
func (r *Reconciler) Reconcile(in Intent) (Outcome, error) {
	sourcePath := filepath.Join(in.BaseDir, in.Source)
	targetPath := filepath.Join(in.BaseDir, in.Target)

	if _, err := os.Stat(sourcePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.log.Warn("Source %s does not exist, skipping", sourcePath)
			return SkippedMissingSource, nil
		}
		return Unchanged, fmt.Errorf("checking source %s: %w", sourcePath, err)
	}

	value, err := LinkValue(sourcePath, targetPath)
	if err != nil {
		return Unchanged, err
	}

	outcome := Created
	info, err := os.Lstat(targetPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// Nothing there yet.
	case err != nil:
		return Unchanged, fmt.Errorf("checking target %s: %w", targetPath, err)
	case info.Mode()&os.ModeSymlink != 0:
		current, err := platform.ReadSymlinkTarget(targetPath)
		if err != nil {
			return Unchanged, fmt.Errorf("reading symlink %s: %w", targetPath, err)
		}
		if current == value {
			r.log.Debug("Symlink %s already correct", targetPath)
			return Unchanged, nil
		}

		r.log.Action("Removing incorrect symlink %s -> %s", targetPath, current)
		if !r.opts.DryRun {
			if err := platform.RemoveSymlink(targetPath); err != nil {
				return Unchanged, fmt.Errorf("removing symlink %s: %w", targetPath, err)
			}
		}
		outcome = Updated
	default:
		r.log.Warn("Target %s exists but is not a symlink, skipping", targetPath)
		return SkippedNotSymlink, nil
	}

	r.log.Action("Creating symlink %s -> %s", targetPath, value)
	if r.opts.DryRun {
		return outcome, nil
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return Unchanged, fmt.Errorf("creating parent directory for %s: %w", targetPath, err)
	}
	if err := platform.CreateSymlink(value, targetPath, linkKind(in.Kind)); err != nil {
		return Unchanged, fmt.Errorf("creating symlink %s: %w", targetPath, err)
	}
	return outcome, nil
}

func linkKind(k rules.Kind) platform.LinkKind {
	if k == rules.KindDirectory {
		return platform.DirLink
	}
	return platform.FileLink
}
