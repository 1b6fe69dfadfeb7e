// Command queuectl is the operator-facing CLI: enqueue jobs, run
// worker processes, inspect state, and administer the dead-letter
// queue.
//
// Grounded on the cobra-based multi-verb CLI pattern seen elsewhere in
// the example pack (no example repository ships a purpose-fit
// alternative for a multi-subcommand operator tool; see DESIGN.md).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes per spec.md §7: 0 success, 2 user error, 1 system error.
const (
	exitOK        = 0
	exitSystemErr = 1
	exitUserErr   = 2
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "queuectl",
		Short:         "A durable single-host job queue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newEnqueueCmd())
	root.AddCommand(newWorkerCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newDLQCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newMetricsCmd())
	root.AddCommand(newInternalCmd())
	return root
}

func main() {
	os.Exit(run())
}

func run() int {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		if ce, ok := err.(*cliError); ok {
			fmt.Fprintln(os.Stderr, ce.Error())
			return ce.code
		}
		fmt.Fprintln(os.Stderr, err)
		return exitSystemErr
	}
	return exitOK
}

// cliError carries the exit code a command wants main to return,
// distinguishing spec.md §7's "user error" (2) from "system error" (1).
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &cliError{code: exitUserErr, err: fmt.Errorf(format, args...)}
}

func systemError(format string, args ...any) error {
	return &cliError{code: exitSystemErr, err: fmt.Errorf(format, args...)}
}
