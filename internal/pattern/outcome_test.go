package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

func TestClassifySuccessDrawAdvantage(t *testing.T) {
	d := pattern.Detection{
		Detected:        true,
		Confidence:      0.8,
		InitiatingColor: chessmodel.Some(chessmodel.White),
	}
	success, outcome := pattern.ClassifySuccess(d, chessmodel.ResultDraw)
	require.True(t, success)
	require.Equal(t, chessmodel.OutcomeDrawAdvantage, outcome)
}

func TestClassifySuccessDrawNeutral(t *testing.T) {
	d := pattern.Detection{
		Detected:        true,
		Confidence:      0.5,
		InitiatingColor: chessmodel.Some(chessmodel.White),
	}
	success, outcome := pattern.ClassifySuccess(d, chessmodel.ResultDraw)
	require.False(t, success)
	require.Equal(t, chessmodel.OutcomeDrawNeutral, outcome)
}

func TestClassifySuccessVictoryAndDefeat(t *testing.T) {
	won := pattern.Detection{Detected: true, Confidence: 0.9, InitiatingColor: chessmodel.Some(chessmodel.White)}
	success, outcome := pattern.ClassifySuccess(won, chessmodel.ResultWhiteWin)
	require.True(t, success)
	require.Equal(t, chessmodel.OutcomeVictory, outcome)

	success, outcome = pattern.ClassifySuccess(won, chessmodel.ResultBlackWin)
	require.False(t, success)
	require.Equal(t, chessmodel.OutcomeDefeat, outcome)
}

func TestClassifySuccessUndetectedIsAlwaysDefeat(t *testing.T) {
	d := pattern.Detection{Detected: false}
	success, outcome := pattern.ClassifySuccess(d, chessmodel.ResultWhiteWin)
	require.False(t, success)
	require.Equal(t, chessmodel.OutcomeDefeat, outcome)
}

func TestRegistryListFilterLookup(t *testing.T) {
	reg := pattern.NewRegistry()
	reg.Register(fakeDetector{id: "a", typ: chessmodel.PatternStrategic})
	reg.Register(fakeDetector{id: "b", typ: chessmodel.PatternTactical})

	require.Len(t, reg.All(), 2)
	require.Len(t, reg.ByType(chessmodel.PatternStrategic), 1)

	d, ok := reg.Lookup("b")
	require.True(t, ok)
	require.Equal(t, "b", d.PatternID())

	_, ok = reg.Lookup("missing")
	require.False(t, ok)
}

func TestRegistryRejectsDuplicateID(t *testing.T) {
	reg := pattern.NewRegistry()
	reg.Register(fakeDetector{id: "a", typ: chessmodel.PatternStrategic})
	require.Panics(t, func() {
		reg.Register(fakeDetector{id: "a", typ: chessmodel.PatternStrategic})
	})
}

type fakeDetector struct {
	pattern.BaseDetector
	id  string
	typ chessmodel.PatternType
}

func (f fakeDetector) PatternID() string                   { return f.id }
func (f fakeDetector) PatternName() string                 { return f.id }
func (f fakeDetector) PatternType() chessmodel.PatternType  { return f.typ }
func (f fakeDetector) Detect(moves []pgn.Move, result chessmodel.Result) pattern.Detection {
	return pattern.Detection{}
}
