package scan

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestListDir(t *testing.T) {
	root := t.TempDir()
	mustWriteSized(t, filepath.Join(root, "Videos", "a.mp4"), 10)
	mustWriteSized(t, filepath.Join(root, "c.zip"), 20)
	mustWriteSized(t, filepath.Join(root, "note.txt"), 5)

	entries, err := ListDir(root)
	if err != nil {
		t.Fatalf("ListDir error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entry count mismatch: got %d want 3", len(entries))
	}
	byName := map[string]Entry{}
	for _, e := range entries {
		byName[e.Name] = e
	}
	if !byName["Videos"].IsDir {
		t.Fatalf("Videos should be reported as a directory")
	}
	if byName["c.zip"].Size != 20 {
		t.Fatalf("c.zip size mismatch: got %d want 20", byName["c.zip"].Size)
	}
	if byName["note.txt"].Path != filepath.Join(root, "note.txt") {
		t.Fatalf("unexpected path %q", byName["note.txt"].Path)
	}
	if _, ok := byName["a.mp4"]; ok {
		t.Fatalf("ListDir must not descend into subdirectories")
	}
}

func TestListDirSymlinkToDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated rights on windows")
	}
	root := t.TempDir()
	other := t.TempDir()
	if err := os.Symlink(other, filepath.Join(root, "linked")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling.txt")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	entries, err := ListDir(root)
	if err != nil {
		t.Fatalf("ListDir error: %v", err)
	}
	for _, e := range entries {
		switch e.Name {
		case "linked":
			if !e.IsDir || !e.Symlink {
				t.Fatalf("linked should be a symlinked directory: %+v", e)
			}
		case "dangling.txt":
			if e.IsDir || !e.Symlink {
				t.Fatalf("dangling.txt should be a symlinked file: %+v", e)
			}
		}
	}
}

func TestListDirMissing(t *testing.T) {
	if _, err := ListDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestStat(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "photo.png")
	mustWriteSized(t, path, 7)

	e, err := Stat(path)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if e.Name != "photo.png" || e.Size != 7 || e.IsDir {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func mustWriteSized(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	b := make([]byte, size)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
