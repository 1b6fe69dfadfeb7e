package main

import (
	"errors"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/dlq"
)

func newDLQCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dlq",
		Short: "Inspect and requeue dead-lettered jobs",
	}
	cmd.AddCommand(newDLQListCmd())
	cmd.AddCommand(newDLQRetryCmd())
	return cmd
}

func newDLQListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs in the dead-letter queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("dlq list: %w", err)
			}
			api := dlq.New(store, time.Now)
			jobs, err := api.ListDead(ctx)
			if err != nil {
				return systemError("dlq list: %w", err)
			}
			now := time.Now().UTC()
			for _, j := range jobs {
				cmd.Printf("%s\tattempts=%d/%d\tupdated %s\n",
					j.ID, j.Attempts, maxRetriesOf(j), humanize.RelTime(j.UpdatedAt, now, "ago", "from now"))
			}
			return nil
		},
	}
}

func newDLQRetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "retry <id>",
		Short: "Move a dead job back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("dlq retry: %w", err)
			}
			api := dlq.New(store, time.Now)
			if err := api.Retry(ctx, args[0]); err != nil {
				if errors.Is(err, queuectl.ErrNotFound) || errors.Is(err, queuectl.ErrWrongState) {
					return userError("dlq retry: %w", err)
				}
				return systemError("dlq retry: %w", err)
			}
			cmd.Println("requeued")
			return nil
		},
	}
}
