//go:build !unix && !windows

package organize

func isCrossDevice(error) bool {
	return false
}
