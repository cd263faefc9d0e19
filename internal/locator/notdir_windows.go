//go:build windows

package locator

func isNotDir(err error) bool {
	return false
}
