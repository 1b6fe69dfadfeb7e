package main

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read or change runtime configuration",
	}
	cmd.AddCommand(newConfigSetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config key (default-max-retries, backoff-base, job-timeout)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("config set: %w", err)
			}
			if err := store.SetConfig(ctx, args[0], args[1]); err != nil {
				return systemError("config set: %w", err)
			}
			cmd.Printf("%s = %s\n", args[0], args[1])
			return nil
		},
	}
}
