package detectors

import (
	"strings"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// GreekGiftSacrifice flags a bishop sacrifice on h7 (against Black) or h2
// (against White), the classic Bxh7+/Bxh2+ king-hunt opener.
type GreekGiftSacrifice struct{ pattern.BaseDetector }

func (GreekGiftSacrifice) PatternID() string                  { return "greek_gift_sacrifice" }
func (GreekGiftSacrifice) PatternName() string                { return "Greek Gift Sacrifice" }
func (GreekGiftSacrifice) PatternType() chessmodel.PatternType { return chessmodel.PatternTactical }

func (GreekGiftSacrifice) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	for _, m := range moves {
		if !m.IsCapture || !strings.HasPrefix(m.SAN, "B") {
			continue
		}
		clean := strings.TrimRight(m.SAN, "+#!?")
		var square string
		switch {
		case strings.HasSuffix(clean, "h7"):
			square = "h7"
		case strings.HasSuffix(clean, "h2"):
			square = "h2"
		default:
			continue
		}
		mover := colorOf(m.SideToMove)
		// A bishop lands on the victim king's own rook-file pawn square;
		// h7 is only a sacrifice when White is the mover, h2 only when
		// Black is.
		if (square == "h7" && mover != chessmodel.White) || (square == "h2" && mover != chessmodel.Black) {
			continue
		}
		return pattern.Detection{
			Detected:        true,
			Confidence:      0.65,
			InitiatingColor: chessmodel.Some(mover),
			StartPly:        chessmodel.Some(m.Ply),
			EndPly:          chessmodel.Some(moves[len(moves)-1].Ply),
			Metadata:        map[string]any{"sacrifice_square": square, "sacrifice_ply": m.Ply},
		}
	}
	return pattern.Detection{Detected: false}
}
