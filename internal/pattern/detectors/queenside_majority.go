// Package detectors holds the seeded catalog of concrete Detector
// implementations registered at startup (spec §4.5 seeded catalog).
package detectors

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// QueensideMajorityAttack flags play by the side holding the queenside
// pawn majority: the initiating color has more a-c file pawns than the
// opponent and captures with one of its queenside pawns. A non-capturing
// queenside pawn push is not flagged.
type QueensideMajorityAttack struct{ pattern.BaseDetector }

func (QueensideMajorityAttack) PatternID() string   { return "queenside_majority_attack" }
func (QueensideMajorityAttack) PatternName() string { return "Queenside Majority Attack" }
func (QueensideMajorityAttack) PatternType() chessmodel.PatternType {
	return chessmodel.PatternStrategic
}

func (QueensideMajorityAttack) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	for i, m := range moves {
		if !isQueensidePawnAdvance(m.SAN) {
			continue
		}
		counts, err := pattern.CountPawnsByBand(m.FENBefore, opposite(m.SideToMove))
		if err != nil {
			continue
		}
		myCounts, err := pattern.CountPawnsByBand(m.FENBefore, colorOf(m.SideToMove))
		if err != nil {
			continue
		}
		if myCounts.Queenside > counts.Queenside && m.IsCapture {
			conf := 0.55
			if myCounts.Queenside-counts.Queenside >= 2 {
				conf = 0.7
			}
			start := i + 1
			return pattern.Detection{
				Detected:        true,
				Confidence:      conf,
				InitiatingColor: chessmodel.Some(colorOf(m.SideToMove)),
				StartPly:        chessmodel.Some(start),
				EndPly:          chessmodel.Some(m.Ply),
				Metadata: map[string]any{
					"queenside_pawns_attacker": myCounts.Queenside,
					"queenside_pawns_defender": counts.Queenside,
				},
			}
		}
	}
	return pattern.Detection{Detected: false}
}

func isQueensidePawnAdvance(san string) bool {
	if len(san) == 0 {
		return false
	}
	file := san[0]
	return (file >= 'a' && file <= 'c') || (len(san) > 2 && san[1] >= 'a' && san[1] <= 'c' && san[2] == 'x')
}

func opposite(side chessmodel.SideToMove) chessmodel.Color {
	if side == chessmodel.SideWhite {
		return chessmodel.Black
	}
	return chessmodel.White
}

func colorOf(side chessmodel.SideToMove) chessmodel.Color {
	if side == chessmodel.SideWhite {
		return chessmodel.White
	}
	return chessmodel.Black
}
