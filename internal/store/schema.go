package store

import (
	"context"
	"fmt"
)

// Tables holds the §3 entity table names, mirroring the grounding
// source's table-name constants so every statement in this package
// references a name in one place.
const (
	TablePlayers          = "players"
	TableRatings          = "ratings"
	TableBatches          = "batches"
	TableGames            = "games"
	TableFENs             = "fens"
	TableFENEmbeddings    = "fen_embeddings"
	TablePositions        = "positions"
	TablePatternCatalog   = "pattern_catalog"
	TablePatternDetection = "pattern_detections"
)

// EnsureSchema creates every §3 table and its indexes if absent, plus the
// Postgres extensions the datastore contract (§6) requires. Every
// statement is idempotent, so EnsureSchema is safe to call on every
// process start (grounding source's Init(ctx) method shape).
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS ` + TablePlayers + ` (
			player_id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL,
			normalized_name TEXT NOT NULL,
			fide_id TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS players_fide_id_idx ON ` + TablePlayers + `(fide_id) WHERE fide_id IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS players_normalized_name_idx ON ` + TablePlayers + `(normalized_name) WHERE fide_id IS NULL`,

		`CREATE TABLE IF NOT EXISTS ` + TableRatings + ` (
			player_id TEXT NOT NULL REFERENCES ` + TablePlayers + `(player_id),
			rating_date DATE NOT NULL,
			standard INTEGER,
			rapid INTEGER,
			blitz INTEGER,
			PRIMARY KEY (player_id, rating_date)
		)`,

		`CREATE TABLE IF NOT EXISTS ` + TableBatches + ` (
			batch_id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			label TEXT NOT NULL,
			checksum TEXT NOT NULL UNIQUE,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + TableGames + ` (
			game_id TEXT PRIMARY KEY,
			white_id TEXT NOT NULL REFERENCES ` + TablePlayers + `(player_id),
			black_id TEXT NOT NULL REFERENCES ` + TablePlayers + `(player_id),
			event TEXT,
			site TEXT,
			game_date DATE,
			round TEXT,
			eco TEXT,
			opening TEXT,
			white_elo INTEGER,
			black_elo INTEGER,
			result TEXT NOT NULL,
			termination TEXT,
			source_pgn TEXT NOT NULL,
			pgn_hash TEXT NOT NULL,
			batch_id TEXT NOT NULL REFERENCES ` + TableBatches + `(batch_id) ON DELETE CASCADE,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (white_id, black_id, game_date, round, pgn_hash)
		)`,
		`CREATE INDEX IF NOT EXISTS games_eco_idx ON ` + TableGames + `(eco)`,
		`CREATE INDEX IF NOT EXISTS games_batch_idx ON ` + TableGames + `(batch_id)`,

		`CREATE TABLE IF NOT EXISTS ` + TableFENs + ` (
			fen_id TEXT PRIMARY KEY,
			fen_text TEXT NOT NULL UNIQUE,
			side_to_move TEXT NOT NULL,
			castling_rights TEXT NOT NULL,
			en_passant_file TEXT,
			material_signature TEXT NOT NULL
		)`,

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			fen_id TEXT PRIMARY KEY REFERENCES %s(fen_id),
			embedding %s NOT NULL,
			embedding_version TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, TableFENEmbeddings, TableFENs, "vector(768)"),
		`CREATE INDEX IF NOT EXISTS fen_embeddings_hnsw_idx ON ` + TableFENEmbeddings + ` USING hnsw (embedding vector_cosine_ops)`,

		`CREATE TABLE IF NOT EXISTS ` + TablePositions + ` (
			game_id TEXT NOT NULL REFERENCES ` + TableGames + `(game_id) ON DELETE CASCADE,
			ply_number INTEGER NOT NULL,
			fen_id TEXT NOT NULL REFERENCES ` + TableFENs + `(fen_id),
			side_to_move TEXT NOT NULL,
			san TEXT NOT NULL,
			uci TEXT,
			fen_before TEXT NOT NULL,
			fen_after TEXT NOT NULL,
			clock INTEGER,
			eval_cp INTEGER,
			is_capture BOOLEAN NOT NULL DEFAULT FALSE,
			is_check BOOLEAN NOT NULL DEFAULT FALSE,
			is_mate BOOLEAN NOT NULL DEFAULT FALSE,
			motif_flags TEXT[] NOT NULL DEFAULT '{}',
			PRIMARY KEY (game_id, ply_number)
		)`,
		`CREATE INDEX IF NOT EXISTS positions_fen_idx ON ` + TablePositions + `(fen_id)`,
		`CREATE INDEX IF NOT EXISTS positions_motif_flags_idx ON ` + TablePositions + ` USING gin(motif_flags)`,

		`CREATE TABLE IF NOT EXISTS ` + TablePatternCatalog + ` (
			pattern_id TEXT PRIMARY KEY,
			pattern_name TEXT NOT NULL,
			pattern_type TEXT NOT NULL,
			description TEXT,
			detector_module TEXT NOT NULL,
			success_criteria TEXT,
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,

		`CREATE TABLE IF NOT EXISTS ` + TablePatternDetection + ` (
			detection_id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL REFERENCES ` + TableGames + `(game_id) ON DELETE CASCADE,
			pattern_id TEXT NOT NULL REFERENCES ` + TablePatternCatalog + `(pattern_id),
			detected_by_color TEXT NOT NULL,
			success BOOLEAN NOT NULL,
			confidence DOUBLE PRECISION NOT NULL,
			start_ply INTEGER,
			end_ply INTEGER,
			outcome TEXT,
			metadata JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (game_id, pattern_id, detected_by_color)
		)`,
		`CREATE INDEX IF NOT EXISTS pattern_detections_metadata_idx ON ` + TablePatternDetection + ` USING gin(metadata)`,
		`CREATE INDEX IF NOT EXISTS pattern_detections_success_idx ON ` + TablePatternDetection + `(pattern_id) WHERE success`,
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return wrapDBErr("ensure_schema", err)
		}
	}
	return nil
}
