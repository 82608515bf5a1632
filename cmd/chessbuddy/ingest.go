package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/HendrikReh/chessbuddy/internal/ingest"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
)

func newIngestCmd() *cobra.Command {
	var dryRun bool
	var dirPath string
	var parallelism int

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a PGN file (or a directory of them with --dir), or report shape with --dry-run.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if dirPath != "" {
				cfg, err := buildConfig(true, false)
				if err != nil {
					return err
				}
				logger, err := buildLogger()
				if err != nil {
					return err
				}
				defer logger.Sync()

				s, pool, err := connectStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer pool.Close()

				if err := s.EnsureSchema(ctx); err != nil {
					return err
				}

				registry := pattern.NewRegistry()
				pattern.RegisterDefaults(registry)
				for _, entry := range pattern.SeedCatalog() {
					if err := s.UpsertPatternCatalogEntry(ctx, entry); err != nil {
						return err
					}
				}

				metrics := ingest.NewMetrics(prometheus.NewRegistry())
				orchestrator := ingest.NewOrchestrator(s, nil, registry, nil, metrics, logger)

				summaries, err := orchestrator.IngestDirectory(ctx, dirPath, cfg.BatchLabel, parallelism)
				for _, summary := range summaries {
					fmt.Printf("batch=%s games_ingested=%d games_failed=%d moves_recorded=%d\n",
						summary.BatchID, summary.GamesIngested, summary.GamesFailed, summary.MovesRecorded)
				}
				return err
			}

			if dryRun {
				cfg, err := buildConfig(false, true)
				if err != nil {
					return err
				}
				result, err := ingest.Inspect(ctx, cfg.PGNPath)
				if err != nil {
					return err
				}
				fmt.Printf("games=%d moves=%d unique_players=%d\n", result.TotalGames, result.TotalMoves, result.UniquePlayers)
				for _, name := range result.Players {
					fmt.Println(" -", name)
				}
				return nil
			}

			cfg, err := buildConfig(true, true)
			if err != nil {
				return err
			}

			logger, err := buildLogger()
			if err != nil {
				return err
			}
			defer logger.Sync()

			s, pool, err := connectStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := s.EnsureSchema(ctx); err != nil {
				return err
			}

			registry := pattern.NewRegistry()
			pattern.RegisterDefaults(registry)
			for _, entry := range pattern.SeedCatalog() {
				if err := s.UpsertPatternCatalogEntry(ctx, entry); err != nil {
					return err
				}
			}

			metrics := ingest.NewMetrics(prometheus.NewRegistry())
			orchestrator := ingest.NewOrchestrator(s, nil, registry, nil, metrics, logger)

			summary, err := orchestrator.IngestFile(ctx, cfg.PGNPath, cfg.BatchLabel)
			if err != nil {
				return err
			}
			fmt.Printf("batch=%s games_ingested=%d games_failed=%d moves_recorded=%d\n",
				summary.BatchID, summary.GamesIngested, summary.GamesFailed, summary.MovesRecorded)
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.pgnPath, "pgn-path", "", "path to a PGN file")
	cmd.Flags().StringVar(&dirPath, "dir", "", "path to a directory of *.pgn files, ingested concurrently (mutually exclusive with --pgn-path)")
	cmd.Flags().IntVar(&parallelism, "parallelism", 4, "maximum files ingested concurrently when --dir is set")
	cmd.Flags().StringVar(&flags.batchLabel, "batch-label", "manual", "label attached to this ingestion batch")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and report without persisting (inspect mode)")
	cmd.MarkFlagsMutuallyExclusive("pgn-path", "dir")
	return cmd
}
