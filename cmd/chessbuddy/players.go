package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendrikReh/chessbuddy/internal/ingest"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "players",
		Short: "Manage player records.",
	}
	cmd.AddCommand(newPlayersSyncCmd())
	return cmd
}

func newPlayersSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upsert every player found in a PGN file without touching games or positions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := buildConfig(true, true)
			if err != nil {
				return err
			}
			s, pool, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			report, err := ingest.SyncPlayersFromPGN(ctx, s, cfg.PGNPath)
			if err != nil {
				return err
			}
			fmt.Printf("players_upserted=%d\n", report.PlayersUpserted)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.pgnPath, "pgn-path", "", "path to a PGN file")
	return cmd
}
