package detectors

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// PhilidorPosition flags a K+R+P vs K+R ending where the stronger side's
// pawn is still short of the seventh rank — the classic third-rank
// defense draws this shape regardless of who is "ahead" on material.
type PhilidorPosition struct{ pattern.BaseDetector }

func (PhilidorPosition) PatternID() string                  { return "philidor_position" }
func (PhilidorPosition) PatternName() string                { return "Philidor Position" }
func (PhilidorPosition) PatternType() chessmodel.PatternType { return chessmodel.PatternEndgame }

func (PhilidorPosition) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	return detectRookPawnShape(moves, func(pos engine.Position, strongPawnRank int) bool {
		return strongPawnRank >= 3 && strongPawnRank <= 4
	}, 0.55)
}

// detectRookPawnShape scans moves back-to-front for the first position
// matching a K+R+P vs K+R shape whose stronger-side pawn rank satisfies
// rankMatches, shared by the Lucena and Philidor detectors.
func detectRookPawnShape(moves []pgn.Move, rankMatches func(engine.Position, int) bool, confidence float64) pattern.Detection {
	for i := len(moves) - 1; i >= 0; i-- {
		fen := moves[i].FENAfter
		pos, err := engine.ParseFEN(fen)
		if err != nil {
			continue
		}
		white, black, err := pattern.MaterialFor(fen)
		if err != nil {
			continue
		}

		var strong chessmodel.Color
		switch {
		case pattern.IsRookPawnVsRook(white, black):
			strong = chessmodel.White
		case pattern.IsRookPawnVsRook(black, white):
			strong = chessmodel.Black
		default:
			continue
		}

		pawnRank, ok := findPawnRank(pos, strong)
		if !ok || !rankMatches(pos, pawnRank) {
			continue
		}

		return pattern.Detection{
			Detected:        true,
			Confidence:      confidence,
			InitiatingColor: chessmodel.Some(strong),
			StartPly:        chessmodel.Some(moves[i].Ply),
			EndPly:          chessmodel.Some(moves[len(moves)-1].Ply),
			Metadata:        map[string]any{"pawn_rank": pawnRank + 1},
		}
	}
	return pattern.Detection{Detected: false}
}

func findPawnRank(pos engine.Position, color chessmodel.Color) (int, bool) {
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			p := pos.Board.At(engine.Square{File: file, Rank: rank})
			if p.Present && p.Type == engine.Pawn && p.Color == color {
				return rank, true
			}
		}
	}
	return 0, false
}
