package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check datastore connectivity and required extensions.",
	}
	cmd.AddCommand(newHealthCheckCmd())
	return cmd
}

func newHealthCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report server version, current database, and extension availability.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := buildConfig(true, false)
			if err != nil {
				return err
			}
			s, pool, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			report, err := s.HealthCheck(ctx, nil)
			if err != nil {
				return err
			}
			fmt.Printf("server_version=%s current_database=%s\n", report.ServerVersion, report.CurrentDatabase)
			for ext, present := range report.Extensions {
				fmt.Printf("extension %s available=%t\n", ext, present)
			}
			return nil
		},
	}
	return cmd
}
