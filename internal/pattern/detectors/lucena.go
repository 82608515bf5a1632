package detectors

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// LucenaPosition flags a K+R+P vs K+R ending where the stronger side's
// pawn has reached the seventh (or, for Black, second) rank — the
// textbook winning rook-endgame shape.
type LucenaPosition struct{ pattern.BaseDetector }

func (LucenaPosition) PatternID() string                  { return "lucena_position" }
func (LucenaPosition) PatternName() string                { return "Lucena Position" }
func (LucenaPosition) PatternType() chessmodel.PatternType { return chessmodel.PatternEndgame }

func (LucenaPosition) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	return detectRookPawnShape(moves, func(pos engine.Position, strongPawnRank int) bool {
		// Only the stronger side has pawns in this material shape, so any
		// pawn on strongPawnRank is the stronger side's.
		for file := 0; file < 8; file++ {
			p := pos.Board.At(engine.Square{File: file, Rank: strongPawnRank})
			if p.Present && p.Type == engine.Pawn {
				return (p.Color == chessmodel.White && strongPawnRank == 6) ||
					(p.Color == chessmodel.Black && strongPawnRank == 1)
			}
		}
		return false
	}, 0.6)
}
