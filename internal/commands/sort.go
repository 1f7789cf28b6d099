package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"dropsort/internal/config"
	"dropsort/internal/logging"
	"dropsort/internal/organize"
	"dropsort/internal/singleinstance"
	"dropsort/internal/ui"
)

type sortOptions struct {
	target        string
	dryRun        bool
	includeHidden bool
	onError       string
	jsonOutput    bool
	confirm       bool
	yes           bool
}

func (o *sortOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.target, "target", "t", "", "folder to organize (default: Downloads)")
	flags.BoolVar(&o.dryRun, "dry-run", false, "show what would be moved without moving anything")
	flags.BoolVar(&o.includeHidden, "include-hidden", false, "also move hidden files (names starting with '.')")
	flags.StringVar(&o.onError, "on-error", "", "what to do when a move fails: continue or abort")
	flags.BoolVar(&o.jsonOutput, "json", false, "print the result as JSON")
	flags.BoolVar(&o.confirm, "confirm", false, "ask before moving files")
	flags.BoolVarP(&o.yes, "yes", "y", false, "answer yes to the confirmation prompt")
}

func newSortCommand(env *commandEnv) *cobra.Command {
	opts := &sortOptions{}
	cmd := &cobra.Command{
		Use:   "sort [path]",
		Short: "Organize a folder once",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, env, opts, args)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// runSettings is the merged view of flags and configuration for one run.
type runSettings struct {
	target        string
	includeHidden bool
	policy        organize.Policy
	table         *organize.Table
	logger        *slog.Logger
}

func resolveRunSettings(cmd *cobra.Command, env *commandEnv, opts *sortOptions, args []string) (runSettings, error) {
	env.applyCommonFlags()
	cfg, err := env.ensureConfig()
	if err != nil {
		return runSettings{}, err
	}
	logger, err := env.ensureLogger(cmd)
	if err != nil {
		return runSettings{}, err
	}

	target, err := resolveTarget(opts.target, args, cfg)
	if err != nil {
		return runSettings{}, err
	}

	includeHidden := cfg.IncludeHidden
	if cmd.Flags().Changed("include-hidden") {
		includeHidden = opts.includeHidden
	}

	policy, err := cfg.Policy()
	if err != nil {
		return runSettings{}, err
	}
	if cmd.Flags().Changed("on-error") {
		policy, err = organize.ParsePolicy(opts.onError)
		if err != nil {
			return runSettings{}, usageError{err: err}
		}
	}

	table, err := cfg.Table()
	if err != nil {
		return runSettings{}, err
	}
	return runSettings{
		target:        target,
		includeHidden: includeHidden,
		policy:        policy,
		table:         table,
		logger:        logger,
	}, nil
}

func runSort(cmd *cobra.Command, env *commandEnv, opts *sortOptions, args []string) error {
	settings, err := resolveRunSettings(cmd, env, opts, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	theme := ui.ThemeFor(out, env.common.noColor, env.common.noEmoji)

	target, err := organize.ValidateTarget(settings.target)
	if err != nil {
		return err
	}
	if !opts.jsonOutput {
		fmt.Fprintf(out, "target: %s\n", target)
		if opts.dryRun {
			fmt.Fprintln(out, "dry-run enabled: no files will be moved")
		}
	}

	if !opts.dryRun {
		lock, err := singleinstance.Acquire(target)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()
		settings.logger.Debug("instance lock held", logging.String("lock", lock.Path()))
	}

	planner := organize.NewPlanner(organize.NewClassifier(settings.table, settings.includeHidden), settings.logger)
	plan, err := planner.Build(target)
	if err != nil {
		return err
	}

	if !opts.dryRun && opts.confirm && !opts.yes && len(plan) > 0 {
		ok, err := confirmMoves(cmd.InOrStdin(), out, len(plan), target)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "nothing moved")
			return nil
		}
	}

	executor := organize.NewExecutor(organize.Options{
		Table:  settings.table,
		Policy: settings.policy,
		DryRun: opts.dryRun,
		Logger: settings.logger,
	})
	res, applyErr := executor.Apply(plan)

	if opts.jsonOutput {
		if err := writeJSON(out, target, res); err != nil {
			return err
		}
	} else {
		renderResult(out, theme, target, res)
	}

	if applyErr != nil {
		return fmt.Errorf("stopped after first failure: %w", applyErr)
	}
	if len(res.Failed()) > 0 {
		return errItemsFailed
	}
	return nil
}

func resolveTarget(flagTarget string, args []string, cfg *config.Config) (string, error) {
	positional := ""
	if len(args) > 0 {
		positional = args[0]
	}
	if flagTarget != "" && positional != "" && flagTarget != positional {
		return "", usageError{err: fmt.Errorf("target given twice: --target %q and %q", flagTarget, positional)}
	}

	raw := flagTarget
	if raw == "" {
		raw = positional
	}
	if raw == "" && cfg != nil {
		raw = cfg.Target
	}
	if raw == "" {
		raw = defaultTarget()
	}
	return expandPath(raw)
}

func writeResultLine(w io.Writer, theme ui.Theme, target string, ir organize.ItemResult) {
	switch ir.Status {
	case organize.StatusPlanned:
		if ir.Err != nil {
			fmt.Fprintf(w, "%s %s (%v)\n", theme.Tag("dry-run"), ir.Item.Name(), ir.Err)
			return
		}
		fmt.Fprintf(w, "%s %s -> %s\n", theme.Tag("dry-run"), ir.Item.Name(), relTo(target, ir.Destination))
	case organize.StatusMoved:
		fmt.Fprintf(w, "%s %s -> %s\n", theme.Tag("moved"), ir.Item.Name(), relTo(target, ir.Destination))
	case organize.StatusFailed:
		fmt.Fprintf(w, "%s %s (%v)\n", theme.Tag("failed"), ir.Item.Source, ir.Err)
	case organize.StatusSkipped:
		fmt.Fprintf(w, "%s %s\n", theme.Tag("skipped"), ir.Item.Name())
	}
}
