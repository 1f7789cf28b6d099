//go:build windows

package commands

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	shellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\User Shell Folders`
	downloadsGUID   = "{374DE290-123F-4565-9164-39C4925E467B}"
)

// defaultTarget returns the Downloads folder, honouring a relocation made
// in Explorer.
func defaultTarget() string {
	home, _ := os.UserHomeDir()
	if strings.TrimSpace(home) == "" {
		home = "."
	}
	fallback := filepath.Join(home, "Downloads")

	k, err := registry.OpenKey(registry.CURRENT_USER, shellFoldersKey, registry.QUERY_VALUE)
	if err != nil {
		return fallback
	}
	defer k.Close()

	v, typ, err := k.GetStringValue(downloadsGUID)
	if err != nil {
		return fallback
	}
	if typ == registry.EXPAND_SZ {
		if v, err = registry.ExpandString(v); err != nil {
			return fallback
		}
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return filepath.Clean(v)
}
