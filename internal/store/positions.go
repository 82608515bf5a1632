package store

import (
	"context"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// RecordPosition upserts on (game_id, ply_number) (spec §3 Position).
func (s *Store) RecordPosition(ctx context.Context, pos chessmodel.Position) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+TablePositions+` (
			game_id, ply_number, fen_id, side_to_move, san, uci,
			fen_before, fen_after, clock, eval_cp, is_capture, is_check, is_mate, motif_flags
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		 ON CONFLICT (game_id, ply_number) DO UPDATE SET
		   fen_id = EXCLUDED.fen_id,
		   side_to_move = EXCLUDED.side_to_move,
		   san = EXCLUDED.san,
		   uci = EXCLUDED.uci,
		   fen_before = EXCLUDED.fen_before,
		   fen_after = EXCLUDED.fen_after,
		   clock = EXCLUDED.clock,
		   eval_cp = EXCLUDED.eval_cp,
		   is_capture = EXCLUDED.is_capture,
		   is_check = EXCLUDED.is_check,
		   is_mate = EXCLUDED.is_mate,
		   motif_flags = EXCLUDED.motif_flags`,
		pos.GameID, pos.PlyNumber, pos.FENID, string(pos.SideToMove), pos.SAN, optString(pos.UCI),
		pos.FENBefore, pos.FENAfter, optInt(pos.Clock), optInt(pos.EvalCP),
		pos.IsCapture, pos.IsCheck, pos.IsMate, pos.MotifFlags,
	)
	if err != nil {
		return wrapDBErr("record_position", err)
	}
	return nil
}

// CountPositionsForGame returns move_count for a game, the enrichment
// query_games_with_pattern adds to each row (spec §4.8).
func (s *Store) CountPositionsForGame(ctx context.Context, gameID string) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM `+TablePositions+` WHERE game_id = $1`, gameID,
	).Scan(&count)
	if err != nil {
		return 0, wrapDBErr("count_positions_for_game", err)
	}
	return count, nil
}
