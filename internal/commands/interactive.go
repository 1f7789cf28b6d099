package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"dropsort/internal/ui"
)

// stdinIsTerminal reports whether a confirmation prompt can be answered.
var stdinIsTerminal = func(in io.Reader) bool {
	if f, ok := in.(*os.File); ok {
		return ui.IsTerminal(f)
	}
	return true
}

// confirmMoves asks before a live run. Without a terminal the answer is no,
// so scripted runs never move files they were asked to confirm.
func confirmMoves(in io.Reader, out io.Writer, count int, target string) (bool, error) {
	if !stdinIsTerminal(in) {
		return false, usageError{err: fmt.Errorf("--confirm needs an interactive terminal; pass --yes to skip the prompt")}
	}
	fmt.Fprintf(out, "move %d files inside %s? [y/N]: ", count, target)
	answer := strings.ToLower(readLineOrDefault(bufio.NewReader(in), "n"))
	return answer == "y" || answer == "yes", nil
}

func readLineOrDefault(r *bufio.Reader, fallback string) string {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}
