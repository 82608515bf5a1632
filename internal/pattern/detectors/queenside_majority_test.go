package detectors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/fenstate"
	"github.com/HendrikReh/chessbuddy/internal/pattern/detectors"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// buildGame folds a SAN sequence through fenstate starting from start,
// producing the []pgn.Move shape a detector consumes.
func buildGame(t *testing.T, start engine.Position, sans []string) []pgn.Move {
	t.Helper()
	st := fenstate.State{Position: start}
	var moves []pgn.Move
	for i, san := range sans {
		fenBefore := st.FEN()
		side := st.SideToMove()
		next, res, err := st.Apply(san)
		require.NoError(t, err, "san=%s", san)
		st = next
		moves = append(moves, pgn.Move{
			Ply:        i + 1,
			SAN:        san,
			SideToMove: side,
			FENBefore:  fenBefore,
			FENAfter:   st.FEN(),
			IsCapture:  res.Captured,
			IsCheck:    res.IsCheck,
			IsMate:     res.IsMate,
		})
	}
	return moves
}

func TestQueensideMajorityAttackDetected(t *testing.T) {
	start, err := engine.ParseFEN("6k1/8/p7/8/1P6/8/P1P5/6K1 w - - 0 1")
	require.NoError(t, err)

	moves := buildGame(t, start, []string{"b5", "Kh8", "bxa6", "Kg7"})

	d := detectors.QueensideMajorityAttack{}
	detection := d.Detect(moves, chessmodel.ResultWhiteWin)

	require.True(t, detection.Detected)
	color, ok := detection.InitiatingColor.Get()
	require.True(t, ok)
	require.Equal(t, chessmodel.White, color)
	require.GreaterOrEqual(t, detection.Confidence, 0.55)

	success, outcome := d.ClassifySuccess(detection, chessmodel.ResultWhiteWin)
	require.True(t, success)
	require.Equal(t, chessmodel.OutcomeVictory, outcome)
}

func TestQueensideMajorityAttackNotDetectedWithoutMajority(t *testing.T) {
	d := detectors.QueensideMajorityAttack{}
	moves := buildGame(t, engine.InitialPosition(), []string{"e4", "e5", "Nf3", "Nc6"})
	detection := d.Detect(moves, chessmodel.ResultDraw)
	require.False(t, detection.Detected)
}
