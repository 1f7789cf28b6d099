package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"dropsort/internal/organize"
	"dropsort/internal/ui"
)

const shareBarWidth = 20

type jsonReport struct {
	Target string `json:"target"`
	organize.Result
}

// writeJSON encodes the run result as indented JSON.
func writeJSON(w io.Writer, target string, res organize.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{Target: target, Result: res})
}

func renderResult(w io.Writer, theme ui.Theme, target string, res organize.Result) {
	for _, ir := range res.Items {
		writeResultLine(w, theme, target, ir)
	}

	if res.DryRun {
		fmt.Fprintf(w, "%d files planned\n", res.Planned())
		return
	}

	fmt.Fprintf(w, "%sfiles moved: %d\n", theme.Emoji("📦 "), res.Moved)
	if res.Moved > 0 {
		fmt.Fprintln(w, renderCategorySummary(theme, res))
	}
	if failed := res.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "%s %d files could not be moved\n", theme.Tag("failed"), len(failed))
	}
}

func renderCategorySummary(theme ui.Theme, res organize.Result) string {
	categories := make([]organize.Category, 0, len(res.PerCategory))
	for c := range res.PerCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	var totalBytes int64
	for _, c := range categories {
		totalBytes += res.Bytes[c]
	}

	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		ratio := 0.0
		if res.Moved > 0 {
			ratio = float64(res.PerCategory[c]) / float64(res.Moved)
		}
		rows = append(rows, []string{
			string(c),
			strconv.Itoa(res.PerCategory[c]),
			ui.HumanBytes(res.Bytes[c]),
			theme.Bar(ratio, shareBarWidth),
		})
	}
	rows = append(rows, []string{"total", strconv.Itoa(res.Moved), ui.HumanBytes(totalBytes), ""})
	return ui.RenderTable(
		[]string{"Category", "Files", "Size", "Share"},
		rows,
		[]ui.ColumnAlignment{ui.AlignLeft, ui.AlignRight, ui.AlignRight, ui.AlignLeft},
	)
}
