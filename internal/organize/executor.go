package organize

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dropsort/internal/logging"
)

// Policy decides what the executor does after an item fails.
type Policy int

const (
	// ContinueOnError records the failure and applies the remaining items.
	ContinueOnError Policy = iota
	// AbortOnError stops at the first failure; later items are skipped.
	AbortOnError
)

// ParsePolicy accepts "continue" or "abort"; blank means continue.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "continue":
		return ContinueOnError, nil
	case "abort":
		return AbortOnError, nil
	default:
		return ContinueOnError, fmt.Errorf("unknown error policy %q (want continue or abort)", value)
	}
}

func (p Policy) String() string {
	if p == AbortOnError {
		return "abort"
	}
	return "continue"
}

// Status is the outcome of one plan item.
type Status string

const (
	StatusPlanned Status = "planned"
	StatusMoved   Status = "moved"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// ItemResult records what happened to a single plan item. Destination is
// the collision-free path that was (or would be) used.
type ItemResult struct {
	Item        MoveItem `json:"item"`
	Destination string   `json:"destination,omitempty"`
	Status      Status   `json:"status"`
	Err         error    `json:"-"`
	Error       string   `json:"error,omitempty"`
}

// Result is the outcome of one Apply call.
type Result struct {
	DryRun      bool               `json:"dry_run"`
	Moved       int                `json:"moved"`
	PerCategory map[Category]int   `json:"per_category"`
	Bytes       map[Category]int64 `json:"bytes"`
	Items       []ItemResult       `json:"items"`
}

// Planned counts items previewed by a dry run.
func (r Result) Planned() int {
	return r.count(StatusPlanned)
}

// Failed returns the items that could not be moved.
func (r Result) Failed() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Status == StatusFailed {
			out = append(out, it)
		}
	}
	return out
}

// Err joins every item failure, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, it := range r.Failed() {
		errs = append(errs, it.Err)
	}
	return errors.Join(errs...)
}

func (r Result) count(status Status) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == status {
			n++
		}
	}
	return n
}

// Options configures an Executor.
type Options struct {
	Table  *Table
	Policy Policy
	DryRun bool
	Logger *slog.Logger
}

// Executor applies move plans sequentially.
type Executor struct {
	table  *Table
	policy Policy
	dryRun bool
	logger *slog.Logger

	exists func(path string) (bool, error)
	mkdir  func(path string) error
	move   func(src, dst string) error
}

// NewExecutor builds an executor from opts.
func NewExecutor(opts Options) *Executor {
	table := opts.Table
	if table == nil {
		table = DefaultTable()
	}
	return &Executor{
		table:  table,
		policy: opts.Policy,
		dryRun: opts.DryRun,
		logger: logging.NewComponentLogger(opts.Logger, "executor"),
		exists: pathExists,
		mkdir:  ensureDirectory,
		move:   MoveFile,
	}
}

// Apply runs plan with the default table and the continue policy.
func Apply(plan []MoveItem, dryRun bool) (Result, error) {
	return NewExecutor(Options{DryRun: dryRun}).Apply(plan)
}

// Apply processes every item in order. In a dry run nothing is created or
// moved and counters stay at zero. The returned error is non-nil only when
// the abort policy stopped the run; otherwise inspect Result.Failed.
func (e *Executor) Apply(plan []MoveItem) (Result, error) {
	res := Result{
		DryRun:      e.dryRun,
		PerCategory: map[Category]int{},
		Bytes:       map[Category]int64{},
		Items:       make([]ItemResult, 0, len(plan)),
	}
	resolver := NewResolver(e.table)
	resolver.exists = e.exists

	var abortErr error
	for _, item := range plan {
		if abortErr != nil {
			res.Items = append(res.Items, ItemResult{Item: item, Status: StatusSkipped})
			continue
		}

		var ir ItemResult
		if e.dryRun {
			ir = e.preview(resolver, item)
		} else {
			ir = e.apply(resolver, item)
		}
		res.Items = append(res.Items, ir)

		switch ir.Status {
		case StatusMoved:
			res.Moved++
			res.PerCategory[item.Category]++
			res.Bytes[item.Category] += item.Size
		case StatusFailed:
			e.logger.Warn("move failed",
				logging.String("source", item.Source),
				logging.String("category", string(item.Category)),
				logging.Error(ir.Err),
			)
			if e.policy == AbortOnError {
				abortErr = ir.Err
			}
		}
	}

	e.logger.Info("plan applied",
		logging.Bool("dry_run", e.dryRun),
		logging.Int("items", len(plan)),
		logging.Int("moved", res.Moved),
		logging.Int("failed", len(res.Failed())),
		logging.String("policy", e.policy.String()),
	)
	return res, abortErr
}

func (e *Executor) preview(resolver *Resolver, item MoveItem) ItemResult {
	dst, err := resolver.Unique(item.Destination)
	if err != nil {
		e.logger.Warn("dry-run could not resolve destination",
			logging.String("destination", item.Destination),
			logging.Error(err),
		)
		// Planned but unresolvable: the live run would fail this item.
		return ItemResult{Item: item, Status: StatusPlanned, Err: err, Error: err.Error()}
	}
	resolver.Reserve(dst)
	e.logger.Debug("would move", logging.String("source", item.Source), logging.String("destination", dst))
	return ItemResult{Item: item, Destination: dst, Status: StatusPlanned}
}

func (e *Executor) apply(resolver *Resolver, item MoveItem) ItemResult {
	dir := filepath.Dir(item.Destination)
	if err := e.mkdir(dir); err != nil {
		return failed(item, "", wrap(ErrMoveFailed, "create directory", dir, err))
	}
	dst, err := resolver.Unique(item.Destination)
	if err != nil {
		return failed(item, "", wrap(ErrMoveFailed, "resolve destination", item.Destination, err))
	}
	if err := e.move(item.Source, dst); err != nil {
		return failed(item, dst, moveError(item.Source, err))
	}
	e.logger.Debug("moved",
		logging.String("source", item.Source),
		logging.String("destination", dst),
		logging.Int64("bytes", item.Size),
	)
	return ItemResult{Item: item, Destination: dst, Status: StatusMoved}
}

func moveError(src string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		if _, statErr := os.Lstat(src); errors.Is(statErr, fs.ErrNotExist) {
			return wrap(ErrMoveFailed, "move", src, wrap(ErrSourceNotFound, "stat", src, err))
		}
	}
	return wrap(ErrMoveFailed, "move", src, err)
}

func failed(item MoveItem, dst string, err error) ItemResult {
	return ItemResult{Item: item, Destination: dst, Status: StatusFailed, Err: err, Error: err.Error()}
}

func ensureDirectory(path string) error {
	return os.MkdirAll(path, 0o755)
}
