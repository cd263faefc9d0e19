//go:build !windows

package locator

import (
	"errors"
	"syscall"
)

// isNotDir reports an ENOTDIR from a path whose intermediate component is a
// regular file, e.g. a marker ".agents/AGENTS.md" where ".agents" is a file.
func isNotDir(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}
