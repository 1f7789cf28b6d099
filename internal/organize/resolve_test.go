package organize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestUniqueDestinationFree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	got, err := UniqueDestination(path)
	if err != nil {
		t.Fatalf("UniqueDestination error: %v", err)
	}
	if got != path {
		t.Fatalf("got %q want %q", got, path)
	}
}

func TestUniqueDestinationCollisionChain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.pdf")
	if err := osWrite(path); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	got, err := UniqueDestination(path)
	if err != nil {
		t.Fatalf("UniqueDestination error: %v", err)
	}
	if want := filepath.Join(dir, "report (1).pdf"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if err := osWrite(got); err != nil {
		t.Fatalf("write %s: %v", got, err)
	}

	got, err = UniqueDestination(path)
	if err != nil {
		t.Fatalf("UniqueDestination error: %v", err)
	}
	if want := filepath.Join(dir, "report (2).pdf"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "x" {
		t.Fatalf("existing file changed: %q, %v", data, err)
	}
}

func TestUniqueDestinationKeepsCompoundExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.tar.gz")
	if err := osWrite(path); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	got, err := UniqueDestination(path)
	if err != nil {
		t.Fatalf("UniqueDestination error: %v", err)
	}
	if want := filepath.Join(dir, "archive (1).tar.gz"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolverReserve(t *testing.T) {
	dir := t.TempDir()
	r := NewResolver(nil)
	path := filepath.Join(dir, "notes.txt")
	r.Reserve(path)
	got, err := r.Unique(path)
	if err != nil {
		t.Fatalf("Unique error: %v", err)
	}
	if want := filepath.Join(dir, "notes (1).txt"); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestResolverExhausted(t *testing.T) {
	r := NewResolver(nil)
	calls := 0
	r.exists = func(string) (bool, error) {
		calls++
		return true, nil
	}
	_, err := r.Unique(filepath.Join(t.TempDir(), "loop.txt"))
	if !errors.Is(err, ErrResolutionExhausted) {
		t.Fatalf("expected ErrResolutionExhausted, got %v", err)
	}
	if calls != MaxCollisionAttempts+1 {
		t.Fatalf("expected %d existence checks, got %d", MaxCollisionAttempts+1, calls)
	}
}

func TestResolverMissingParentIsFree(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Documentos", "a.txt")
	got, err := UniqueDestination(path)
	if err != nil {
		t.Fatalf("UniqueDestination error: %v", err)
	}
	if got != path {
		t.Fatalf("got %q want %q", got, path)
	}
}

func osWrite(path string) error {
	return os.WriteFile(path, []byte("x"), 0o644)
}
