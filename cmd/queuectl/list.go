package main

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl/job"
)

func newListCmd() *cobra.Command {
	var state string
	c := &cobra.Command{
		Use:   "list",
		Short: "List jobs, optionally filtered by state",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := job.ParseStatus(state)
			if err != nil {
				return userError("list: %w", err)
			}
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("list: %w", err)
			}
			jobs, err := store.List(ctx, status)
			if err != nil {
				return systemError("list: %w", err)
			}
			now := time.Now().UTC()
			for _, j := range jobs {
				cmd.Printf("%s\t%-10s\tpriority=%d\tattempts=%d/%d\tupdated %s\n",
					j.ID, j.State, j.Priority, j.Attempts, maxRetriesOf(j), humanize.RelTime(j.UpdatedAt, now, "ago", "from now"))
			}
			return nil
		},
	}
	c.Flags().StringVar(&state, "state", "", "filter by job state (pending, processing, completed, failed, dead)")
	return c
}
