package detectors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pattern/detectors"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

func TestLucenaPositionDetected(t *testing.T) {
	pos, err := engine.ParseFEN("4k3/1P6/8/8/8/8/r7/R3K3 w - - 0 1")
	require.NoError(t, err)

	moves := []pgn.Move{{Ply: 1, SAN: "Ke2", SideToMove: chessmodel.SideWhite, FENBefore: pos.FEN(), FENAfter: pos.FEN()}}

	d := detectors.LucenaPosition{}
	detection := d.Detect(moves, chessmodel.ResultWhiteWin)
	require.True(t, detection.Detected)
	color, _ := detection.InitiatingColor.Get()
	require.Equal(t, chessmodel.White, color)
}

func TestLucenaPositionNotDetectedWithoutSeventhRankPawn(t *testing.T) {
	pos, err := engine.ParseFEN("4k3/8/8/1P6/8/8/r7/R3K3 w - - 0 1")
	require.NoError(t, err)

	moves := []pgn.Move{{Ply: 1, SAN: "Ke2", SideToMove: chessmodel.SideWhite, FENBefore: pos.FEN(), FENAfter: pos.FEN()}}

	d := detectors.LucenaPosition{}
	detection := d.Detect(moves, chessmodel.ResultWhiteWin)
	require.False(t, detection.Detected)
}

func TestPhilidorPositionDetected(t *testing.T) {
	pos, err := engine.ParseFEN("4k3/8/8/4P3/8/8/r7/R3K3 w - - 0 1")
	require.NoError(t, err)

	moves := []pgn.Move{{Ply: 1, SAN: "Ke2", SideToMove: chessmodel.SideWhite, FENBefore: pos.FEN(), FENAfter: pos.FEN()}}

	d := detectors.PhilidorPosition{}
	detection := d.Detect(moves, chessmodel.ResultDraw)
	require.True(t, detection.Detected)
}
