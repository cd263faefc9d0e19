//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/agent-sync/agent-sync/internal/config"
	"github.com/agent-sync/agent-sync/internal/logging"
	"github.com/agent-sync/agent-sync/internal/rules"
	"github.com/agent-sync/agent-sync/internal/syncer"
)

// monorepoConfig links the shared agent files the way a typical monorepo does.
const monorepoConfig = `rules:
  - name: claude-md
    description: CLAUDE.md next to every AGENTS.md
    source: AGENTS.md
    target: CLAUDE.md
    recursive: true
    type: file
    enabled: true
  - name: agent-rules
    source: .agents/rules
    target: [.claude/rules, .cursor/rules]
    recursive: false
    type: directory
    enabled: true
  - name: gemini
    source: AGENTS.md
    target: GEMINI.md
    recursive: false
    type: file
    enabled: false
`

// setupMonorepo creates a project tree with AGENTS.md files at several
// depths, a shared rules directory, and an ignored node_modules copy.
func setupMonorepo(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlink tests need developer mode on Windows")
	}

	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".agentsyncrc.yaml"), monorepoConfig)
	writeFile(t, filepath.Join(root, "AGENTS.md"), "# Root agents\n")
	writeFile(t, filepath.Join(root, "apps/web/AGENTS.md"), "# Web agents\n")
	writeFile(t, filepath.Join(root, "packages/core/src/AGENTS.md"), "# Core agents\n")
	writeFile(t, filepath.Join(root, "packages/util/README.md"), "# Util\n")
	writeFile(t, filepath.Join(root, "node_modules/dep/AGENTS.md"), "# Vendored\n")
	writeFile(t, filepath.Join(root, ".agents/rules/style.md"), "Use tabs.\n")
	return root
}

// syncProject loads the project config and applies the selected rules,
// returning the summary and everything that was logged.
func syncProject(t *testing.T, root, rule string, dryRun bool) (*syncer.Summary, string) {
	t.Helper()

	var buf bytes.Buffer
	log := logging.New(&buf, logging.Options{DryRun: dryRun, NoColor: true, Verbose: true})

	res, err := config.Load(config.Options{Cwd: root})
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	selected := rules.Select(res.Config.Rules, rule)
	summary, err := syncer.New(syncer.Options{DryRun: dryRun}, log).Run(context.Background(), selected, root)
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, buf.String())
	}
	return summary, buf.String()
}

func ruleResult(t *testing.T, summary *syncer.Summary, name string) syncer.RuleResult {
	t.Helper()
	for _, r := range summary.Rules {
		if r.Rule == name {
			return r
		}
	}
	t.Fatalf("no result for rule %s in %+v", name, summary.Rules)
	return syncer.RuleResult{}
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertSymlink fails unless path is a symlink whose stored value is want.
func assertSymlink(t *testing.T, path, want string) {
	t.Helper()
	info, err := os.Lstat(path)
	if err != nil {
		t.Errorf("expected symlink to exist: %s (error: %v)", path, err)
		return
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Errorf("expected %s to be a symlink, mode %v", path, info.Mode())
		return
	}
	got, err := os.Readlink(path)
	if err != nil {
		t.Errorf("reading link %s: %v", path, err)
		return
	}
	if got != filepath.FromSlash(want) {
		t.Errorf("symlink %s -> %q, want %q", path, got, want)
	}
}

// assertNotExists fails if anything, including a dangling link, is at path.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err == nil {
		t.Errorf("expected nothing at %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
