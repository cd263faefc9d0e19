package locator

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (and their parent directories) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func join(root string, parts ...string) string {
	return filepath.Join(append([]string{root}, parts...)...)
}

func TestFindDirectoriesWithFile(t *testing.T) {
	tests := []struct {
		name   string
		files  map[string]string
		marker string
		want   [][]string
	}{
		{
			name:   "single directory",
			files:  map[string]string{"project/AGENTS.md": "x"},
			marker: "AGENTS.md",
			want:   [][]string{{"project"}},
		},
		{
			name: "nested directories",
			files: map[string]string{
				"root/AGENTS.md":                 "x",
				"level1/AGENTS.md":               "x",
				"level1/level2/AGENTS.md":        "x",
				"level1/level2/level3/AGENTS.md": "x",
			},
			marker: "AGENTS.md",
			want:   [][]string{{"level1"}, {"level1", "level2"}, {"level1", "level2", "level3"}, {"root"}},
		},
		{
			name: "base directory included",
			files: map[string]string{
				"README.md":               "x",
				"project1/README.md":      "x",
				"project1/docs/README.md": "x",
				"project2/README.md":      "x",
			},
			marker: "README.md",
			want:   [][]string{{}, {"project1"}, {"project1", "docs"}, {"project2"}},
		},
		{
			name:   "no match",
			files:  map[string]string{"project/other-file.md": "x"},
			marker: "AGENTS.md",
			want:   [][]string{},
		},
		{
			name: "node_modules ignored at any depth",
			files: map[string]string{
				"root/AGENTS.md":                     "x",
				"node_modules/package/AGENTS.md":     "x",
				"project/node_modules/lib/AGENTS.md": "x",
			},
			marker: "AGENTS.md",
			want:   [][]string{{"root"}},
		},
		{
			name: ".git ignored at any depth",
			files: map[string]string{
				"root/AGENTS.md":                  "x",
				".git/hooks/AGENTS.md":            "x",
				"submodule/.git/config/AGENTS.md": "x",
			},
			marker: "AGENTS.md",
			want:   [][]string{{"root"}},
		},
		{
			name: "exact name only",
			files: map[string]string{
				"a/config.json": "{}",
				"b/config.json": "{}",
				"c/config.yaml": "x",
			},
			marker: "config.yaml",
			want:   [][]string{{"c"}},
		},
		{
			name: "directory with marker name does not match",
			files: map[string]string{
				"a/AGENTS.md/inner.txt": "x",
			},
			marker: "AGENTS.md",
			want:   [][]string{},
		},
		{
			name: "marker with a path segment",
			files: map[string]string{
				"pkg/.agents/AGENTS.md": "x",
				"pkg/other/AGENTS.md":   "x",
			},
			marker: filepath.Join(".agents", "AGENTS.md"),
			want:   [][]string{{"pkg"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files)

			got, err := FindDirectoriesWithFile(context.Background(), root, tt.marker)
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, parts := range tt.want {
				want = append(want, join(root, parts...))
			}
			assert.ElementsMatch(t, want, got)
		})
	}
}

func TestFindDirectoriesWithFile_EmptyDir(t *testing.T) {
	got, err := FindDirectoriesWithFile(context.Background(), t.TempDir(), "AGENTS.md")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindDirectoriesWithFile_DoesNotFollowSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory symlinks need developer mode on Windows")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{"source/AGENTS.md": "x"})

	require.NoError(t, os.Symlink(filepath.Join(root, "source"), filepath.Join(root, "link-to-source")))
	// A link back to the root would loop forever if followed.
	require.NoError(t, os.Symlink(root, filepath.Join(root, "source", "loop")))

	got, err := FindDirectoriesWithFile(context.Background(), root, "AGENTS.md")
	require.NoError(t, err)
	assert.Equal(t, []string{join(root, "source")}, got)
}

func TestFindDirectoriesWithFile_Sorted(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"c/AGENTS.md": "x",
		"a/AGENTS.md": "x",
		"b/AGENTS.md": "x",
	})

	got, err := FindDirectoriesWithFile(context.Background(), root, "AGENTS.md")
	require.NoError(t, err)
	assert.Equal(t, []string{join(root, "a"), join(root, "b"), join(root, "c")}, got)
}

func TestFindDirectoriesWithFile_LargeTree(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 20; i++ {
		pkg := filepath.Join("packages", "package-"+string(rune('a'+i)))
		files[filepath.ToSlash(filepath.Join(pkg, "AGENTS.md"))] = "x"
		files[filepath.ToSlash(filepath.Join(pkg, "src", "index.ts"))] = "x"
		files[filepath.ToSlash(filepath.Join(pkg, "node_modules", "dep", "AGENTS.md"))] = "x"
	}
	writeTree(t, root, files)

	got, err := FindDirectoriesWithFile(context.Background(), root, "AGENTS.md")
	require.NoError(t, err)
	assert.Len(t, got, 20)
}

func TestFindDirectoriesWithFile_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/AGENTS.md": "x"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindDirectoriesWithFile(ctx, root, "AGENTS.md")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindDirectoriesWithFile_MissingBase(t *testing.T) {
	_, err := FindDirectoriesWithFile(context.Background(), filepath.Join(t.TempDir(), "missing"), "AGENTS.md")
	assert.Error(t, err)
}

func TestIsIgnored(t *testing.T) {
	tests := []struct {
		rel  string
		want bool
	}{
		{"node_modules", true},
		{".git", true},
		{filepath.Join("packages", "web", "node_modules"), true},
		{filepath.Join("vendor", "repo", ".git"), true},
		{".github", false},
		{"modules", false},
		{"node_modules_cache", false},
		{filepath.Join("packages", "my-node_modules"), false},
		{filepath.Join("node_modules-docs", "src"), false},
	}
	for _, tt := range tests {
		if got := isIgnored(tt.rel); got != tt.want {
			t.Errorf("isIgnored(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestFindDirectoriesWithFile_LinkedMarkers(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"shared/AGENTS.md":     "x",
		"shared/dir/notes.md":  "x",
		"to-file/placeholder":  "x",
		"to-dir/placeholder":   "x",
		"dangling/placeholder": "x",
	})

	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "AGENTS.md"), join(root, "to-file", "AGENTS.md")))
	require.NoError(t, os.Symlink(filepath.Join(root, "shared", "dir"), join(root, "to-dir", "AGENTS.md")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing.md"), join(root, "dangling", "AGENTS.md")))

	got, err := FindDirectoriesWithFile(context.Background(), root, "AGENTS.md")
	require.NoError(t, err)
	assert.Equal(t, []string{join(root, "shared"), join(root, "to-file")}, got)
}
