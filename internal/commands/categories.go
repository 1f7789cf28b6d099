package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dropsort/internal/ui"
)

func newCategoriesCommand(env *commandEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories and the extensions that map to them",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			env.applyCommonFlags()
			cfg, err := env.ensureConfig()
			if err != nil {
				return err
			}
			table, err := cfg.Table()
			if err != nil {
				return err
			}

			rules := table.Rules()
			rows := make([][]string, 0, len(rules)+1)
			for _, rule := range rules {
				rows = append(rows, []string{string(rule.Category), strings.Join(rule.Extensions, " ")})
			}
			rows = append(rows, []string{string(table.Fallback()), "(anything else)"})

			fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTable(
				[]string{"Category", "Extensions"},
				rows,
				[]ui.ColumnAlignment{ui.AlignLeft, ui.AlignLeft},
			))
			return nil
		},
	}
}
