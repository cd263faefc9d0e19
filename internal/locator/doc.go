// Package locator finds the directories of a project tree that directly
// contain a given marker file, for rules that apply once per package in a
// monorepo. Dependency and version-control directories are skipped and
// symlinked directories are never entered.
package locator
