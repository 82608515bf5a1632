package main

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/config"
	"github.com/HendrikReh/chessbuddy/internal/logging"
	"github.com/HendrikReh/chessbuddy/internal/store"
)

// appFlags holds the persistent flag values shared by every subcommand.
// cobra/pflag own parsing; this struct is just the landing spot (spec §6:
// "flag parsing is cobra/pflag's job").
type appFlags struct {
	dbURI       string
	pgnPath     string
	batchLabel  string
	maxPoolSize int
	logLevel    string
}

var flags appFlags

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chessbuddy",
		Short:         "Ingest PGN archives and retrieve games, positions, and strategic patterns.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flags.dbURI, "db-uri", os.Getenv("CHESSBUDDY_DB_URI"), "Postgres connection string")
	root.PersistentFlags().IntVar(&flags.maxPoolSize, "max-pool-size", 10, "maximum number of pooled connections")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	root.AddCommand(
		newIngestCmd(),
		newBatchesCmd(),
		newPlayersCmd(),
		newHealthCmd(),
		newRetrieveCmd(),
	)
	return root
}

// buildConfig resolves the process-wide Config from the parsed flags and
// validates only the fields the calling subcommand actually needs (spec
// §6 Configuration).
func buildConfig(needDB, needPGN bool) (config.Config, error) {
	cfg := config.Default()
	cfg.DBURI = flags.dbURI
	cfg.PGNPath = flags.pgnPath
	if flags.batchLabel != "" {
		cfg.BatchLabel = flags.batchLabel
	}
	if flags.maxPoolSize > 0 {
		cfg.MaxPoolSize = flags.maxPoolSize
	}
	if err := cfg.Validate(needDB, needPGN); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func buildLogger() (*zap.Logger, error) {
	return logging.New(flags.logLevel)
}

// connectStore opens a pgxpool against cfg.DBURI and wraps it in a Store.
// Callers are responsible for closing the returned pool.
func connectStore(ctx context.Context, cfg config.Config) (*store.Store, *pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DBURI)
	if err != nil {
		return nil, nil, &chesserr.ConfigError{Field: "db_uri", Reason: err.Error()}
	}
	poolCfg.MaxConns = int32(cfg.MaxPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, &chesserr.DatabaseError{Op: "connect", Err: err}
	}
	return store.New(pool), pool, nil
}
