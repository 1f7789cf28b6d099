//go:build !windows

package organize

func hasHiddenAttribute(string) bool {
	return false
}
