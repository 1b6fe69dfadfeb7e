package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/queuectl/queuectl/metrics"
)

func newMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Serve the job-count metrics endpoint",
	}
	cmd.AddCommand(newMetricsServeCmd())
	return cmd
}

func newMetricsServeCmd() *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve GET /metrics until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return systemError("metrics serve: %w", err)
			}
			srv := metrics.New(fmt.Sprintf(":%d", port), store, newLogger())
			if err := srv.ListenAndServe(ctx); err != nil {
				return systemError("metrics serve: %w", err)
			}
			return nil
		},
	}
	c.Flags().IntVar(&port, "port", 9090, "port to listen on")
	return c
}
