package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dropsort/internal/meta"
)

func newRootCommand() *cobra.Command {
	env := newCommandEnv()
	opts := &sortOptions{}

	rootCmd := &cobra.Command{
		Use:   "dropsort [path]",
		Short: "Sort the files of a folder into category subfolders by extension",
		Long: `dropsort moves every file directly inside a folder into a subfolder named
after its category (Imagenes, Documentos, Videos, Audio, Comprimidos,
Instaladores, Codigo, Otros). Subfolders are left alone and existing files are
never overwritten: name clashes become "name (1).ext".

Without a path the user's Downloads folder is organized.`,
		Version:       meta.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, env, opts, args)
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	env.addPersistentFlags(rootCmd)
	opts.addFlags(rootCmd)

	rootCmd.AddCommand(newSortCommand(env))
	rootCmd.AddCommand(newWatchCommand(env))
	rootCmd.AddCommand(newCategoriesCommand(env))
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dropsort version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "dropsort "+meta.Version)
			return nil
		},
	}
}

func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}
