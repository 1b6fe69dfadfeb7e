package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/enqueue"
)

func newEnqueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enqueue <json>",
		Short: "Enqueue a job from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := enqueue.Parse([]byte(args[0]))
			if err != nil {
				return userError("enqueue: %w", err)
			}
			j, err := req.ToJob()
			if err != nil {
				return userError("enqueue: %w", err)
			}

			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("enqueue: %w", err)
			}

			if err := store.InsertJob(ctx, j); err != nil {
				if errors.Is(err, queuectl.ErrDuplicate) || errors.Is(err, queuectl.ErrMalformedJob) {
					return userError("enqueue: %w", err)
				}
				return systemError("enqueue: %w", err)
			}
			cmd.Println(j.ID)
			return nil
		},
	}
}
