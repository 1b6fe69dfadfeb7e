package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl/clock"
	"github.com/queuectl/queuectl/executor"
	"github.com/queuectl/queuectl/home"
	"github.com/queuectl/queuectl/worker"
)

// newInternalCmd groups subcommands the CLI never documents to
// operators; they exist only for the supervisor to re-exec the binary
// into a single worker process.
func newInternalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "internal",
		Hidden: true,
	}
	cmd.AddCommand(newWorkerRunCmd())
	return cmd
}

func newWorkerRunCmd() *cobra.Command {
	var index int
	c := &cobra.Command{
		Use:    "worker-run",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneWorker(index)
		},
	}
	c.Flags().IntVar(&index, "index", 0, "index of this worker among its siblings")
	return c
}

func runOneWorker(index int) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx)
	if err != nil {
		return systemError("worker-run: %w", err)
	}
	logsDir, err := home.LogsDir()
	if err != nil {
		return systemError("worker-run: %w", err)
	}

	workerID := clock.WorkerID(index)
	log := newLogger().With("worker_index", index, "pid", os.Getpid())

	loop := worker.New(worker.Config{
		WorkerID: workerID,
		RunID:    clock.NewRunID(),
		LogsDir:  logsDir,
		Store:    store,
		Executor: executor.New(),
		Clock:    clock.System{},
		Log:      log,
	})
	loop.Run(ctx)
	return nil
}
