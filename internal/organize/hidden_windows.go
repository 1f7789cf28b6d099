//go:build windows

package organize

import "golang.org/x/sys/windows"

func hasHiddenAttribute(path string) bool {
	if path == "" {
		return false
	}
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
