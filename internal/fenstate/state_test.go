package fenstate_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/fenstate"
)

func TestPlyAlternation(t *testing.T) {
	st := fenstate.InitialState()
	require.Equal(t, chessmodel.SideWhite, st.SideToMove())

	moves := []string{"e4", "e5", "Nf3", "Nc6"}
	wantSide := []chessmodel.SideToMove{chessmodel.SideBlack, chessmodel.SideWhite, chessmodel.SideBlack, chessmodel.SideWhite}

	var err error
	for i, san := range moves {
		st, _, err = st.Apply(san)
		require.NoError(t, err)
		require.Equal(t, wantSide[i], st.SideToMove(), "ply %d", i+1)
	}

	require.Equal(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", st.FEN())
}

func TestHalfmoveClockResetsOnPawnMoveOrCapture(t *testing.T) {
	st := fenstate.InitialState()

	st, _, err := st.Apply("Nf3")
	require.NoError(t, err)
	require.Equal(t, 1, st.Position.HalfmoveClock)

	st, _, err = st.Apply("Nf6")
	require.NoError(t, err)
	require.Equal(t, 2, st.Position.HalfmoveClock)

	st, _, err = st.Apply("e4")
	require.NoError(t, err)
	require.Equal(t, 0, st.Position.HalfmoveClock, "pawn move resets the clock")
}

func TestFullmoveIncrementsAfterBlack(t *testing.T) {
	st := fenstate.InitialState()
	require.Equal(t, 1, st.Position.FullmoveNumber)

	st, _, err := st.Apply("e4")
	require.NoError(t, err)
	require.Equal(t, 1, st.Position.FullmoveNumber, "still move 1 after White's ply")

	st, _, err = st.Apply("e5")
	require.NoError(t, err)
	require.Equal(t, 2, st.Position.FullmoveNumber, "increments once Black has replied")
}

func TestApplyPropagatesInvalidMove(t *testing.T) {
	st := fenstate.InitialState()
	_, _, err := st.Apply("Qxe9")
	require.Error(t, err)
}

func TestFENBeforeAfterPair(t *testing.T) {
	st := fenstate.InitialState()
	before := st.FEN()
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", before)

	next, _, err := st.Apply("e4")
	require.NoError(t, err)
	after := next.FEN()
	require.NotEqual(t, before, after)
	require.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", after)
}
