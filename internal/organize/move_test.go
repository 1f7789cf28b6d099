package organize

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMoveFileCreatesParent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "clip.mp4")
	if err := osWrite(src); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	dst := filepath.Join(dir, "Videos", "clip.mp4")
	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile error: %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err=%v", err)
	}
}

func TestMoveFileRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatalf("seed src: %v", err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatalf("seed dst: %v", err)
	}
	err := MoveFile(src, dst)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("expected fs.ErrExist, got %v", err)
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "old" {
		t.Fatalf("destination overwritten: %q", data)
	}
}

func TestCopyThenRemove(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.iso")
	dst := filepath.Join(dir, "copy.iso")
	content := []byte("verified copy content")
	if err := os.WriteFile(src, content, 0o600); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := copyThenRemove(src, dst); err != nil {
		t.Fatalf("copyThenRemove error: %v", err)
	}
	got, err := os.ReadFile(dst)
	if err != nil || string(got) != string(content) {
		t.Fatalf("content mismatch: %q, %v", got, err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("source should be removed, stat err=%v", err)
	}
}

func TestCopyFileVerifiedRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	if err := os.WriteFile(src, []byte("a"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := os.WriteFile(dst, []byte("b"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := copyFileVerified(src, dst); err == nil {
		t.Fatalf("expected error when destination exists")
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "b" {
		t.Fatalf("destination overwritten: %q", got)
	}
}

func TestCopyFileVerifiedDetectsBadCopy(t *testing.T) {
	cases := map[string]string{
		"corrupted": "verified copy contenX",
		"truncated": "verified copy",
	}
	for name, onDisk := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			src := filepath.Join(dir, "big.iso")
			dst := filepath.Join(dir, "copy.iso")
			if err := os.WriteFile(src, []byte("verified copy content"), 0o600); err != nil {
				t.Fatalf("seed: %v", err)
			}
			prev := openCopied
			openCopied = func(string) (io.ReadCloser, error) {
				return io.NopCloser(strings.NewReader(onDisk)), nil
			}
			t.Cleanup(func() { openCopied = prev })

			if err := copyThenRemove(src, dst); err == nil {
				t.Fatalf("expected verification error")
			}
			if _, err := os.Stat(dst); !os.IsNotExist(err) {
				t.Fatalf("bad copy should be removed, stat err=%v", err)
			}
			if _, err := os.Stat(src); err != nil {
				t.Fatalf("source must survive a failed copy: %v", err)
			}
		})
	}
}
