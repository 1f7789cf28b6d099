package ui

import (
	"io"
	"math"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

type Theme struct {
	NoColor bool
	NoEmoji bool
}

// ThemeFor disables color when w is not a terminal.
func ThemeFor(w io.Writer, noColor, noEmoji bool) Theme {
	return Theme{NoColor: noColor || !IsTerminal(w), NoEmoji: noEmoji}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w any) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Emoji returns s, or "" when emoji are disabled.
func (t Theme) Emoji(s string) string {
	if t.NoEmoji {
		return ""
	}
	return s
}

// Tag renders a bracketed status word such as [moved].
func (t Theme) Tag(status string) string {
	tag := "[" + status + "]"
	if t.NoColor {
		return tag
	}
	switch status {
	case "moved":
		return color.New(color.FgGreen, color.Bold).Sprint(tag)
	case "dry-run", "planned":
		return color.New(color.FgCyan, color.Bold).Sprint(tag)
	case "failed":
		return color.New(color.FgRed, color.Bold).Sprint(tag)
	case "skipped":
		return color.New(color.FgYellow).Sprint(tag)
	default:
		return tag
	}
}

func (t Theme) Bar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	count := int(math.Round(ratio * float64(width)))
	if count < 1 && ratio > 0 {
		count = 1
	}
	char := "█"
	if t.NoEmoji {
		char = "#"
	}
	bar := strings.Repeat(char, count)
	pad := strings.Repeat(" ", width-count)

	if t.NoColor {
		return bar + pad
	}
	if ratio >= 0.66 {
		return color.New(color.FgRed, color.Bold).Sprint(bar) + pad
	}
	if ratio >= 0.33 {
		return color.New(color.FgYellow, color.Bold).Sprint(bar) + pad
	}
	return color.New(color.FgBlue, color.Bold).Sprint(bar) + pad
}

func HumanBytes(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.IBytes(uint64(n))
}
