package detectors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pattern/detectors"
)

func TestMinorityAttackDetected(t *testing.T) {
	// White has one queenside pawn (b5), Black has two (a7, c7): White
	// pushing b6 is the minority-attack plan.
	start, err := engine.ParseFEN("4k3/p1p5/8/1P6/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	moves := buildGame(t, start, []string{"b6"})

	d := detectors.MinorityAttack{}
	detection := d.Detect(moves, chessmodel.ResultWhiteWin)
	require.True(t, detection.Detected)
	color, _ := detection.InitiatingColor.Get()
	require.Equal(t, chessmodel.White, color)
}

func TestMinorityAttackNotDetectedWithEqualPawns(t *testing.T) {
	d := detectors.MinorityAttack{}
	moves := buildGame(t, engine.InitialPosition(), []string{"e4", "e5", "Nf3", "Nc6"})
	detection := d.Detect(moves, chessmodel.ResultDraw)
	require.False(t, detection.Detected)
}
