package detectors

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// MinorityAttack flags the classic minority-attack plan: the initiating
// color advances a queenside pawn while holding fewer queenside pawns
// than the opponent, aiming to create a long-term weakness.
type MinorityAttack struct{ pattern.BaseDetector }

func (MinorityAttack) PatternID() string                  { return "minority_attack" }
func (MinorityAttack) PatternName() string                { return "Minority Attack" }
func (MinorityAttack) PatternType() chessmodel.PatternType { return chessmodel.PatternStrategic }

func (MinorityAttack) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	for _, m := range moves {
		if !isQueensidePawnAdvance(m.SAN) {
			continue
		}
		mover := colorOf(m.SideToMove)
		myCounts, err := pattern.CountPawnsByBand(m.FENBefore, mover)
		if err != nil {
			continue
		}
		theirCounts, err := pattern.CountPawnsByBand(m.FENBefore, opposite(m.SideToMove))
		if err != nil {
			continue
		}
		if myCounts.Queenside < theirCounts.Queenside && myCounts.Queenside > 0 {
			conf := 0.55
			if theirCounts.Queenside-myCounts.Queenside >= 2 {
				conf = 0.7
			}
			return pattern.Detection{
				Detected:        true,
				Confidence:      conf,
				InitiatingColor: chessmodel.Some(mover),
				StartPly:        chessmodel.Some(m.Ply),
				EndPly:          chessmodel.Some(moves[len(moves)-1].Ply),
				Metadata: map[string]any{
					"queenside_pawns_attacker": myCounts.Queenside,
					"queenside_pawns_defender": theirCounts.Queenside,
				},
			}
		}
	}
	return pattern.Detection{Detected: false}
}
