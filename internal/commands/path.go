package commands

import (
	"path/filepath"

	"dropsort/internal/config"
)

func expandPath(in string) (string, error) {
	return config.ExpandPath(in)
}

// relTo renders path relative to base with forward slashes, or path itself
// when it does not live under base.
func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
