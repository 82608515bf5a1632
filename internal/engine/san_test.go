package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/engine"
)

// applyOne is a small test helper folding ApplySAN into a Position, the
// way fenstate does in production.
func applyOne(t *testing.T, pos engine.Position, san string) engine.Position {
	t.Helper()
	res, err := engine.ApplySAN(pos.Board, san, pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.NoError(t, err, "san=%s", san)

	half := pos.HalfmoveClock + 1
	if res.Captured || res.IsPawnMove {
		half = 0
	}
	full := pos.FullmoveNumber
	nextSide := chessmodel.SideWhite
	if pos.SideToMove == chessmodel.SideWhite {
		nextSide = chessmodel.SideBlack
	} else {
		full++
	}

	return engine.Position{
		Board:          res.Board,
		SideToMove:     nextSide,
		CastlingRights: res.CastlingRights,
		EnPassant:      res.EnPassant,
		HalfmoveClock:  half,
		FullmoveNumber: full,
	}
}

func TestSANCoverage_e4e5Nf3Nc6(t *testing.T) {
	pos := engine.InitialPosition()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6"} {
		pos = applyOne(t, pos, san)
	}
	require.Equal(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3", pos.FEN())
}

func TestCastlingRightsDecay(t *testing.T) {
	pos := engine.InitialPosition()
	for _, san := range []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6", "Ba4", "Nf6", "O-O"} {
		pos = applyOne(t, pos, san)
	}
	require.Equal(t, "kq", pos.CastlingRights)
}

func TestEnPassantCapture(t *testing.T) {
	pos, err := engine.ParseFEN("rnbqkbnr/pppp1ppp/8/3Pp3/8/8/PPP1PPPP/RNBQKBNR w KQkq e6 0 3")
	require.NoError(t, err)

	res, err := engine.ApplySAN(pos.Board, "dxe6", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.NoError(t, err)

	require.True(t, res.Captured)
	require.False(t, res.EnPassant.IsSome())

	e5 := res.Board.At(squareOf(t, "e5"))
	require.False(t, e5.Present, "black pawn on e5 should have been captured")
	e6 := res.Board.At(squareOf(t, "e6"))
	require.True(t, e6.Present)
	require.Equal(t, chessmodel.White, e6.Color)
	require.Equal(t, engine.Pawn, e6.Type)
}

func squareOf(t *testing.T, alg string) engine.Square {
	t.Helper()
	require.Len(t, alg, 2)
	return engine.Square{File: int(alg[0] - 'a'), Rank: int(alg[1] - '1')}
}

func TestDisambiguation(t *testing.T) {
	// White knights on d2 and f2 both attack e4; the file disambiguator
	// must narrow the candidate set to exactly one source square.
	pos, err := engine.ParseFEN("4k3/8/8/8/8/8/3N1N2/4K3 w - - 0 1")
	require.NoError(t, err)

	res, err := engine.ApplySAN(pos.Board, "Nde4", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.NoError(t, err)
	e4 := res.Board.At(squareOf(t, "e4"))
	require.True(t, e4.Present)
	require.Equal(t, engine.Knight, e4.Type)
	d2 := res.Board.At(squareOf(t, "d2"))
	require.False(t, d2.Present, "source knight should have vacated d2")
	f2 := res.Board.At(squareOf(t, "f2"))
	require.True(t, f2.Present, "the other knight should remain on f2")

	_, err = engine.ApplySAN(pos.Board, "Ne4", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.Error(t, err, "undisambiguated move to e4 should be rejected as ambiguous")
}

func TestPromotion(t *testing.T) {
	pos, err := engine.ParseFEN("8/P6k/8/8/8/8/7p/4K3 w - - 0 1")
	require.NoError(t, err)
	res, err := engine.ApplySAN(pos.Board, "a8=Q", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.NoError(t, err)
	a8 := res.Board.At(squareOf(t, "a8"))
	require.True(t, a8.Present)
	require.Equal(t, engine.Queen, a8.Type)
}

func TestInvalidMoveSyntax(t *testing.T) {
	pos := engine.InitialPosition()
	_, err := engine.ApplySAN(pos.Board, "Zx9", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.Error(t, err)
}

func TestNoReachingPiece(t *testing.T) {
	pos := engine.InitialPosition()
	// No knight can legally reach e5 from the starting position's b1/g1.
	_, err := engine.ApplySAN(pos.Board, "Ne5", pos.SideToMove, pos.CastlingRights, pos.EnPassant)
	require.Error(t, err)
}
