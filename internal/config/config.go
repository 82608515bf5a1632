// Package config holds the resolved configuration ChessBuddy's core
// operates on. Populating a Config from flags or a .env file is the job
// of an external collaborator (spec §1 Non-goals); this package only
// validates the result.
package config

import "github.com/HendrikReh/chessbuddy/internal/chesserr"

// Config is every recognized option from spec §6.
type Config struct {
	DBURI          string
	PGNPath        string
	BatchLabel     string
	MaxPoolSize    int
	// RequireDBTests is test-only: it never affects Validate or any
	// production code path. internal/store's integration-tagged suite
	// reads it (via CHESSBUDDY_REQUIRE_DB_TESTS) to decide whether a
	// missing live database is a skip or a failure.
	RequireDBTests bool
}

// Default returns a Config with the spec's documented defaults.
func Default() Config {
	return Config{
		BatchLabel:  "manual",
		MaxPoolSize: 10,
	}
}

// Validate checks the fields required for the given command kind. Each
// CLI subcommand calls this with the subset of flags it actually needs;
// e.g. `inspect` needs PGNPath but not DBURI.
func (c Config) Validate(needDB, needPGN bool) error {
	if needDB && c.DBURI == "" {
		return &chesserr.ConfigError{Field: "db_uri", Reason: "required for database-touching commands"}
	}
	if needPGN && c.PGNPath == "" {
		return &chesserr.ConfigError{Field: "pgn_path", Reason: "required for ingest/inspect/sync commands"}
	}
	if c.MaxPoolSize <= 0 {
		return &chesserr.ConfigError{Field: "max_pool_size", Reason: "must be positive"}
	}
	if c.BatchLabel == "" {
		c.BatchLabel = "manual"
	}
	return nil
}
