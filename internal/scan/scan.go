package scan

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry is one direct child of a listed directory.
type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Symlink bool
	Size    int64
}

// ListDir returns the direct children of dir without descending into
// subdirectories. Symlinks are resolved only to learn whether they point at
// a directory. Children whose metadata is unreadable for permission reasons
// are kept with a zero size.
func ListDir(dir string) ([]Entry, error) {
	dir = filepath.Clean(dir)
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		entry, err := entryFor(dir, d)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed between ReadDir and Info.
				continue
			}
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// Stat builds an Entry for a single path.
func Stat(path string) (Entry, error) {
	path = filepath.Clean(path)
	info, err := os.Lstat(path)
	if err != nil {
		return Entry{}, err
	}
	return entryFor(filepath.Dir(path), fs.FileInfoToDirEntry(info))
}

func entryFor(dir string, d fs.DirEntry) (Entry, error) {
	name := d.Name()
	entry := Entry{
		Name:  name,
		Path:  filepath.Join(dir, name),
		IsDir: d.IsDir(),
	}
	if d.Type()&fs.ModeSymlink != 0 {
		entry.Symlink = true
		// Dangling links are treated as plain files.
		if target, err := os.Stat(entry.Path); err == nil {
			entry.IsDir = target.IsDir()
		}
	}
	if entry.IsDir {
		return entry, nil
	}
	info, err := d.Info()
	if err != nil {
		if isAccessDenied(err) {
			return entry, nil
		}
		return Entry{}, err
	}
	entry.Size = info.Size()
	return entry, nil
}

func isAccessDenied(err error) bool {
	if os.IsPermission(err) {
		return true
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return os.IsPermission(pe.Err) || errors.Is(pe.Err, fs.ErrPermission)
	}
	return errors.Is(err, fs.ErrPermission)
}
