package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dropsort/internal/organize"
)

func (c *Config) normalize() error {
	c.Target = strings.TrimSpace(c.Target)
	if c.Target != "" {
		expanded, err := ExpandPath(c.Target)
		if err != nil {
			return fmt.Errorf("target: %w", err)
		}
		c.Target = expanded
	}

	c.OnError = strings.ToLower(strings.TrimSpace(c.OnError))
	if c.OnError == "" {
		c.OnError = defaultOnError
	}
	c.FallbackCategory = strings.TrimSpace(c.FallbackCategory)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	for i := range c.Categories {
		c.Categories[i].Name = strings.TrimSpace(c.Categories[i].Name)
		exts := c.Categories[i].Extensions[:0]
		for _, ext := range c.Categories[i].Extensions {
			if ext = organize.NormalizeExtension(strings.TrimSpace(ext)); ext != "" {
				exts = append(exts, ext)
			}
		}
		c.Categories[i].Extensions = exts
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory and returns
// an absolute, cleaned path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			path = home
		} else if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
			path = filepath.Join(home, path[2:])
		}
	}
	return filepath.Abs(filepath.Clean(path))
}
