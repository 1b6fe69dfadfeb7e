package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl/home"
	"github.com/queuectl/queuectl/job"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print job counts by state and the pid recorded in the daemon pid file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("status: %w", err)
			}
			counts, err := store.Counts(ctx)
			if err != nil {
				return systemError("status: %w", err)
			}
			for _, st := range job.States() {
				cmd.Printf("%-10s %d\n", st, counts[st])
			}

			pidPath, err := home.PIDFile()
			if err != nil {
				return systemError("status: %w", err)
			}
			if data, err := os.ReadFile(pidPath); err == nil {
				if pid, err := strconv.Atoi(string(data)); err == nil {
					cmd.Printf("daemon pid: %d\n", pid)
				}
			} else {
				cmd.Println("daemon pid: (not running)")
			}
			return nil
		},
	}
}
