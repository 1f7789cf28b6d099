package commands

import (
	"errors"
	"fmt"
	"os"
)

// Run executes the CLI with os.Args-style arguments and returns the process
// exit code: 0 on success, 1 on failures, 2 on usage errors.
func Run(args []string) int {
	root := newRootCommand()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	err := root.Execute()
	if err == nil {
		return 0
	}
	var uerr usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'dropsort --help' for usage.")
		return 2
	}
	if !errors.Is(err, errItemsFailed) {
		fmt.Fprintln(os.Stderr, err)
	}
	return 1
}

// errItemsFailed marks runs where some items failed; the summary already
// lists them.
var errItemsFailed = errors.New("some files could not be moved")

type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }
