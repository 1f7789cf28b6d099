//go:build !windows

package commands

import (
	"os"
	"path/filepath"
	"strings"
)

// defaultTarget returns the user's Downloads folder. XDG_DOWNLOAD_DIR wins
// when set, as xdg-user-dirs exports it.
func defaultTarget() string {
	home, _ := os.UserHomeDir()
	if strings.TrimSpace(home) == "" {
		home = "."
	}
	if dir := strings.TrimSpace(os.Getenv("XDG_DOWNLOAD_DIR")); dir != "" {
		dir = strings.ReplaceAll(dir, "$HOME", home)
		return filepath.Clean(dir)
	}
	return filepath.Join(home, "Downloads")
}
