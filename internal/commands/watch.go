package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"dropsort/internal/logging"
	"dropsort/internal/organize"
	"dropsort/internal/singleinstance"
	"dropsort/internal/ui"
)

const defaultSettle = 2 * time.Second

// maxPending bounds the paths waiting to settle.
var maxPending = 4096

type watchOptions struct {
	sortOptions
	settle time.Duration
}

func newWatchCommand(env *commandEnv) *cobra.Command {
	opts := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Organize a folder, then keep sorting files as they arrive",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, env, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.target, "target", "t", "", "folder to watch (default: Downloads)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "print actions without moving files")
	flags.BoolVar(&opts.includeHidden, "include-hidden", false, "also move hidden files")
	flags.DurationVar(&opts.settle, "settle", defaultSettle, "quiet period before a new file is moved")
	return cmd
}

// watcher sorts files of one directory shortly after they stop changing.
type watcher struct {
	target   string
	planner  *organize.Planner
	executor *organize.Executor
	out      io.Writer
	theme    ui.Theme
	logger   *slog.Logger
	settle   time.Duration
	now      func() time.Time

	pending map[string]time.Time
}

func runWatch(ctx context.Context, cmd *cobra.Command, env *commandEnv, opts *watchOptions, args []string) error {
	settings, err := resolveRunSettings(cmd, env, &opts.sortOptions, args)
	if err != nil {
		return err
	}
	if opts.settle <= 0 {
		return usageError{err: fmt.Errorf("--settle must be positive, got %s", opts.settle)}
	}
	target, err := organize.ValidateTarget(settings.target)
	if err != nil {
		return err
	}

	if !opts.dryRun {
		lock, err := singleinstance.Acquire(target)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()
	}

	out := cmd.OutOrStdout()
	w := &watcher{
		target:  target,
		planner: organize.NewPlanner(organize.NewClassifier(settings.table, settings.includeHidden), settings.logger),
		executor: organize.NewExecutor(organize.Options{
			Table:  settings.table,
			Policy: organize.ContinueOnError,
			DryRun: opts.dryRun,
			Logger: settings.logger,
		}),
		out:     out,
		theme:   ui.ThemeFor(out, env.common.noColor, env.common.noEmoji),
		logger:  logging.NewComponentLogger(settings.logger, "watch"),
		settle:  opts.settle,
		now:     time.Now,
		pending: map[string]time.Time{},
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(target); err != nil {
		return fmt.Errorf("watch %s: %w", target, err)
	}

	fmt.Fprintf(out, "%swatching %s\n", w.theme.Emoji("👀 "), target)
	w.logger.Info("watch started", logging.String("target", target), logging.Duration("settle", w.settle))
	if opts.dryRun {
		fmt.Fprintln(out, "dry-run enabled")
	}
	fmt.Fprintln(out, "press Ctrl+C to stop")

	if err := w.sweep(); err != nil {
		return err
	}
	return w.loop(ctx, fsw.Events, fsw.Errors)
}

func (w *watcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	tick := w.settle / 4
	if tick < 50*time.Millisecond {
		tick = 50 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			w.observe(event)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", logging.Error(err))
		case <-ticker.C:
			w.flush()
		}
	}
}

// sweep organizes whatever is already in the directory.
func (w *watcher) sweep() error {
	plan, err := w.planner.Build(w.target)
	if err != nil {
		return err
	}
	res, _ := w.executor.Apply(plan)
	for _, ir := range res.Items {
		writeResultLine(w.out, w.theme, w.target, ir)
	}
	return nil
}

// observe records activity on a direct child; the file is moved once it has
// been quiet for the settle period.
func (w *watcher) observe(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	if filepath.Dir(event.Name) != w.target {
		return
	}
	w.pending[event.Name] = w.now()
	for len(w.pending) > maxPending {
		w.evictOldest()
	}
}

// evictOldest drops the path that has been waiting longest.
func (w *watcher) evictOldest() {
	var oldest string
	var at time.Time
	for path, last := range w.pending {
		if oldest == "" || last.Before(at) {
			oldest, at = path, last
		}
	}
	delete(w.pending, oldest)
	w.logger.Debug("pending queue full, dropped path", logging.String("path", oldest))
}

// flush handles every pending path whose last event is older than settle.
func (w *watcher) flush() {
	now := w.now()
	for path, last := range w.pending {
		if now.Sub(last) < w.settle {
			continue
		}
		delete(w.pending, path)
		w.handle(path)
	}
}

func (w *watcher) handle(path string) {
	item, ok, err := w.planner.PlanFile(w.target, path)
	if err != nil {
		if !errors.Is(err, organize.ErrSourceNotFound) {
			w.logger.Warn("plan file", logging.String("path", path), logging.Error(err))
		}
		return
	}
	if !ok {
		return
	}
	res, _ := w.executor.Apply([]organize.MoveItem{item})
	for _, ir := range res.Items {
		writeResultLine(w.out, w.theme, w.target, ir)
	}
}
