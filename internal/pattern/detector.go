// Package pattern implements the pluggable strategic/tactical/endgame
// detector framework (spec §4.5): a detector contract, a process-wide
// registry assembled once at startup, the default outcome-classification
// policy, and the shared geometry helpers individual detectors build on.
package pattern

import (
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// Detection is one detector's verdict on a single game.
type Detection struct {
	Detected        bool
	Confidence      float64
	InitiatingColor chessmodel.Option[chessmodel.Color]
	StartPly        chessmodel.Option[int]
	EndPly          chessmodel.Option[int]
	Metadata        map[string]any
}

// Detector is any entity satisfying the pattern contract (spec §4.5). It
// never re-parses SAN; it consumes the already-stamped moves for a game.
type Detector interface {
	PatternID() string
	PatternName() string
	PatternType() chessmodel.PatternType
	Detect(moves []pgn.Move, result chessmodel.Result) Detection
	ClassifySuccess(d Detection, result chessmodel.Result) (success bool, outcome chessmodel.Outcome)
}

// BaseDetector gives a concrete Detector the default outcome
// classification policy (spec §4.5), so detectors only need to implement
// Detect and the identity methods unless they want an override.
type BaseDetector struct{}

// ClassifySuccess implements the default policy: Victory if the
// initiator won, Defeat if it lost, DrawNeutral on a draw below 0.7
// confidence, DrawAdvantage on a draw at or above it.
func (BaseDetector) ClassifySuccess(d Detection, result chessmodel.Result) (bool, chessmodel.Outcome) {
	return ClassifySuccess(d, result)
}

// ClassifySuccess is the default outcome classification policy, exposed
// standalone so detectors that embed BaseDetector and ones that don't can
// both call it directly (spec §4.5, property 10).
func ClassifySuccess(d Detection, result chessmodel.Result) (success bool, outcome chessmodel.Outcome) {
	color, hasColor := d.InitiatingColor.Get()
	if !d.Detected || !hasColor {
		return false, chessmodel.OutcomeDefeat
	}

	switch result {
	case chessmodel.ResultWhiteWin:
		if color == chessmodel.White {
			return true, chessmodel.OutcomeVictory
		}
		return false, chessmodel.OutcomeDefeat
	case chessmodel.ResultBlackWin:
		if color == chessmodel.Black {
			return true, chessmodel.OutcomeVictory
		}
		return false, chessmodel.OutcomeDefeat
	case chessmodel.ResultDraw:
		if d.Confidence >= 0.7 {
			return true, chessmodel.OutcomeDrawAdvantage
		}
		return false, chessmodel.OutcomeDrawNeutral
	default:
		return false, chessmodel.OutcomeDrawNeutral
	}
}
