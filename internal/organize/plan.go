package organize

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"dropsort/internal/logging"
	"dropsort/internal/scan"
)

// MoveItem is one planned relocation. Destination is the proposal made at
// plan time; the executor resolves collisions when it applies the item.
type MoveItem struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Category    Category `json:"category"`
	Extension   string   `json:"extension,omitempty"`
	Size        int64    `json:"size"`
}

// Name returns the file name being moved.
func (m MoveItem) Name() string {
	return filepath.Base(m.Source)
}

// Planner builds move plans for a single directory without touching the
// filesystem.
type Planner struct {
	classifier Classifier
	logger     *slog.Logger
}

// NewPlanner returns a planner that classifies entries with c.
func NewPlanner(c Classifier, logger *slog.Logger) *Planner {
	return &Planner{
		classifier: c,
		logger:     logging.NewComponentLogger(logger, "planner"),
	}
}

// BuildPlan plans targetDir with the default category table.
func BuildPlan(targetDir string, includeHidden bool) ([]MoveItem, error) {
	return NewPlanner(NewClassifier(nil, includeHidden), nil).Build(targetDir)
}

// Build lists the direct children of targetDir and returns one item per
// included file, in listing order.
func (p *Planner) Build(targetDir string) ([]MoveItem, error) {
	dir, err := ValidateTarget(targetDir)
	if err != nil {
		return nil, err
	}
	entries, err := scan.ListDir(dir)
	if err != nil {
		return nil, wrap(ErrInvalidTarget, "read", dir, err)
	}

	plan := make([]MoveItem, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if !p.classifier.Include(entry) {
			skipped++
			continue
		}
		plan = append(plan, p.item(dir, entry))
	}
	p.logger.Debug("plan built",
		logging.String("dir", dir),
		logging.Int("items", len(plan)),
		logging.Int("skipped", skipped),
	)
	return plan, nil
}

// PlanFile plans a single direct child of targetDir. It returns false when
// the path is excluded or does not live directly in targetDir.
func (p *Planner) PlanFile(targetDir, path string) (MoveItem, bool, error) {
	dir, err := ValidateTarget(targetDir)
	if err != nil {
		return MoveItem{}, false, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return MoveItem{}, false, err
	}
	if filepath.Dir(abs) != dir {
		return MoveItem{}, false, nil
	}
	entry, err := scan.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MoveItem{}, false, wrap(ErrSourceNotFound, "stat", abs, err)
		}
		return MoveItem{}, false, err
	}
	if !p.classifier.Include(entry) {
		return MoveItem{}, false, nil
	}
	return p.item(dir, entry), true, nil
}

func (p *Planner) item(dir string, entry scan.Entry) MoveItem {
	ext, category := p.classifier.Categorize(entry.Name)
	return MoveItem{
		Source:      entry.Path,
		Destination: filepath.Join(dir, string(category), entry.Name),
		Category:    category,
		Extension:   ext,
		Size:        entry.Size,
	}
}

// ValidateTarget returns the absolute, cleaned form of path or an
// ErrInvalidTarget error when it is missing or not a directory.
func ValidateTarget(path string) (string, error) {
	if path == "" {
		return "", wrap(ErrInvalidTarget, "empty path", "", nil)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", wrap(ErrInvalidTarget, "resolve", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", wrap(ErrInvalidTarget, "not found", abs, err)
		}
		return "", wrap(ErrInvalidTarget, "stat", abs, err)
	}
	if !info.IsDir() {
		return "", wrap(ErrInvalidTarget, "not a directory", abs, nil)
	}
	return abs, nil
}
