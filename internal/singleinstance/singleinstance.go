package singleinstance

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrBusy reports that another process holds the lock for a directory.
var ErrBusy = errors.New("directory is being organized by another dropsort process")

// Lock is an advisory, process-wide lock for one target directory.
type Lock struct {
	path string
	fl   *flock.Flock
}

// LockPath returns the lock file used for dir. Lock files live in the OS
// temp directory so the organized directory itself is never touched.
func LockPath(dir string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(dir)))
	return filepath.Join(os.TempDir(), "dropsort-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for dir without blocking. It returns ErrBusy when
// another process already holds it.
func Acquire(dir string) (*Lock, error) {
	path := LockPath(dir)
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("instance lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBusy, dir)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
