package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
)

// MaxCollisionAttempts bounds the " (N)" counter tried for one destination.
const MaxCollisionAttempts = 9999

// Resolver derives collision-free destination names. Existence is checked
// when Unique is called, never cached, so it must run at apply time.
type Resolver struct {
	table    *Table
	exists   func(path string) (bool, error)
	reserved map[string]struct{}
}

// NewResolver returns a resolver that splits names with table so compound
// extensions stay intact ("archive (1).tar.gz"). A nil table uses the
// default one.
func NewResolver(table *Table) *Resolver {
	if table == nil {
		table = DefaultTable()
	}
	return &Resolver{
		table:    table,
		exists:   pathExists,
		reserved: map[string]struct{}{},
	}
}

// UniqueDestination resolves proposed against the current filesystem using
// the default table.
func UniqueDestination(proposed string) (string, error) {
	return NewResolver(nil).Unique(proposed)
}

// Unique returns proposed when nothing occupies it, otherwise the first free
// "stem (N)ext" sibling counting from 1.
func (r *Resolver) Unique(proposed string) (string, error) {
	taken, err := r.taken(proposed)
	if err != nil {
		return "", err
	}
	if !taken {
		return proposed, nil
	}

	dir := filepath.Dir(proposed)
	stem, ext := r.table.SplitName(filepath.Base(proposed))
	for i := 1; i <= MaxCollisionAttempts; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		taken, err := r.taken(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", wrap(ErrResolutionExhausted, "no free name for", proposed, nil)
}

// Reserve marks path as occupied for later Unique calls even though nothing
// exists there yet. Dry runs use it so previews match a live run.
func (r *Resolver) Reserve(path string) {
	r.reserved[path] = struct{}{}
}

func (r *Resolver) taken(path string) (bool, error) {
	if _, ok := r.reserved[path]; ok {
		return true, nil
	}
	return r.exists(path)
}

func pathExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return false, nil
	default:
		return false, err
	}
}
