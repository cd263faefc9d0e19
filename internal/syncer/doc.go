// Package syncer applies sync rules to a project tree. The Reconciler makes
// one target path a relative symlink to its source, creating, replacing or
// leaving it alone depending on what is on disk. The Syncer walks the
// selected rules in order and feeds every (base directory, target) pair to
// the Reconciler, searching for base directories first for recursive file
// rules.
package syncer
