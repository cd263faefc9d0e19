package locator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// ignorePatterns are matched against a directory's slash-separated path
// relative to the walk root, with a leading "/". Matching directories are not
// descended into.
var ignorePatterns = []string{
	"**/node_modules",
	"**/.git",
}

var ignored = compilePatterns(ignorePatterns)

func compilePatterns(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		globs = append(globs, glob.MustCompile(p, '/'))
	}
	return globs
}

// isIgnored reports whether rel, a directory path relative to the walk root,
// matches an ignore pattern.
func isIgnored(rel string) bool {
	path := "/" + filepath.ToSlash(rel)
	for _, g := range ignored {
		if g.Match(path) {
			return true
		}
	}
	return false
}

// FindDirectoriesWithFile walks baseDir and returns every directory,
// baseDir included, in which fileName exists as a non-directory entry.
// fileName may contain separators, in which case the returned directory is
// the one fileName is relative to. Results are unique and sorted.
func FindDirectoriesWithFile(ctx context.Context, baseDir, fileName string) ([]string, error) {
	baseDir = filepath.Clean(baseDir)
	dirs := []string{}

	stack := []string{baseDir}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		found, err := hasMarker(dir, fileName)
		if err != nil {
			return nil, err
		}
		if found {
			dirs = append(dirs, dir)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", dir, err)
		}

		for _, e := range entries {
			// DirEntry types come from lstat, so symlinks to directories
			// report ModeSymlink here and are not descended into.
			if !e.IsDir() {
				continue
			}
			child := filepath.Join(dir, e.Name())
			if rel, err := filepath.Rel(baseDir, child); err == nil && isIgnored(rel) {
				continue
			}
			stack = append(stack, child)
		}
	}

	sort.Strings(dirs)
	return dirs, nil
}

// hasMarker reports whether dir/fileName is a file, or a link to one.
// Links to directories and dangling or looping links do not count.
func hasMarker(dir, fileName string) (bool, error) {
	path := filepath.Join(dir, fileName)
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) || isNotDir(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		info, err = os.Stat(path)
		if err != nil {
			return false, nil
		}
	}
	return !info.IsDir(), nil
}
