// Package ingest implements the ingestion orchestrator (spec §4.7): file
// checksum and batch bookkeeping, the per-game upsert-player/record-game
// fold, the per-move state-derivation/FEN-dedup/embed/detect pipeline, and
// the two reduced passes (inspect, sync_players_from_pgn).
package ingest

import (
	"context"

	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// GameSource is anything that yields parsed games one at a time, in order.
// *pgn.Parser satisfies this structurally; tests substitute a fake source
// to exercise malformed-game recovery without a real PGN file.
type GameSource interface {
	Next(ctx context.Context) (pgn.ParsedGame, bool, error)
}
