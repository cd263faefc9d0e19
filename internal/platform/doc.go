// Package platform provides cross-platform symlink operations. On Unix it
// calls os.Symlink directly. On Windows, creating links needs developer mode
// or elevated rights, so IsSymlinkSupported lets callers fail early with a
// clear message instead of part way through a run.
package platform
