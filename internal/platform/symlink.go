package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// LinkKind is the kind of entry a symlink points at. Windows distinguishes
// file links from directory links; Unix ignores the hint.
type LinkKind int

const (
	FileLink LinkKind = iota
	DirLink
)

func (k LinkKind) String() string {
	if k == DirLink {
		return "dir"
	}
	return "file"
}

// CreateSymlink creates link with the given link value. A relative value is
// resolved by the OS against the directory containing link. kind only labels
// errors: os.Symlink already picks a file or directory link on Windows by
// looking at the resolved target.
func CreateSymlink(value, link string, kind LinkKind) error {
	if err := os.Symlink(value, link); err != nil {
		if runtime.GOOS == "windows" {
			return fmt.Errorf("creating %s symlink (developer mode may be required): %w", kind, err)
		}
		return err
	}
	return nil
}

// RemoveSymlink removes the link entry itself, never what it points to.
func RemoveSymlink(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a symlink", path)
	}
	return os.Remove(path)
}

// ReadSymlinkTarget returns the raw link value of a symlink.
func ReadSymlinkTarget(path string) (string, error) {
	return os.Readlink(path)
}

// IsSymlinkSupported returns true if the current platform can create native
// symlinks. On Windows this attempts a throwaway link in the temp directory.
func IsSymlinkSupported() bool {
	if runtime.GOOS != "windows" {
		return true
	}

	dir, err := os.MkdirTemp("", "agent-sync-symlink-check-")
	if err != nil {
		return false
	}
	defer os.RemoveAll(dir)

	target := filepath.Join(dir, "target")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		return false
	}
	return os.Symlink("target", filepath.Join(dir, "link")) == nil
}
