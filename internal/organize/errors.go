package organize

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTarget        = errors.New("invalid target directory")
	ErrMoveFailed           = errors.New("move failed")
	ErrSourceNotFound       = errors.New("source not found")
	ErrResolutionExhausted  = errors.New("destination resolution exhausted")
	ErrOverlappingExtension = errors.New("extension claimed by two categories")
)

// wrap tags err with kind and a path-bearing detail so callers can use
// errors.Is against both the kind and the underlying cause.
func wrap(kind error, operation, path string, err error) error {
	detail := buildDetail(operation, path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", kind, detail, err)
	}
	return fmt.Errorf("%w: %s", kind, detail)
}

func buildDetail(operation, path string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if path = strings.TrimSpace(path); path != "" {
		parts = append(parts, path)
	}
	if len(parts) == 0 {
		return "organize failure"
	}
	return strings.Join(parts, " ")
}
