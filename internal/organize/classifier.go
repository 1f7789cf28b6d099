package organize

import (
	"strings"

	"dropsort/internal/scan"
)

// hiddenPrefix marks hidden entries by name on every platform.
const hiddenPrefix = "."

// ShouldInclude reports whether entry is a file the organizer may move.
// Directories, including symlinks to directories, are never included.
// Hidden entries are included only when includeHidden is set.
func ShouldInclude(entry scan.Entry, includeHidden bool) bool {
	if entry.IsDir {
		return false
	}
	if includeHidden {
		return true
	}
	return !isHidden(entry)
}

func isHidden(entry scan.Entry) bool {
	if strings.HasPrefix(entry.Name, hiddenPrefix) {
		return true
	}
	return hasHiddenAttribute(entry.Path)
}

// Classifier applies an injected Table to directory entries.
type Classifier struct {
	Table         *Table
	IncludeHidden bool
}

// NewClassifier returns a classifier over table, or the default table when
// table is nil.
func NewClassifier(table *Table, includeHidden bool) Classifier {
	if table == nil {
		table = DefaultTable()
	}
	return Classifier{Table: table, IncludeHidden: includeHidden}
}

// Include applies ShouldInclude with the classifier's hidden policy.
func (c Classifier) Include(entry scan.Entry) bool {
	return ShouldInclude(entry, c.IncludeHidden)
}

// Categorize returns the matched extension token and category for a name.
func (c Classifier) Categorize(name string) (string, Category) {
	return c.table().Match(name)
}

func (c Classifier) table() *Table {
	if c.Table == nil {
		return DefaultTable()
	}
	return c.Table
}
