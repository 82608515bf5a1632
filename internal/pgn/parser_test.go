package pgn_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

func collectAll(t *testing.T, p *pgn.Parser) ([]pgn.ParsedGame, []error) {
	t.Helper()
	var games []pgn.ParsedGame
	var errs []error
	ctx := context.Background()
	for {
		game, ok, err := p.Next(ctx)
		if err != nil {
			errs = append(errs, err)
			if !ok {
				break
			}
			continue
		}
		if !ok {
			break
		}
		games = append(games, game)
	}
	return games, errs
}

func TestEmptyPGNYieldsNoGames(t *testing.T) {
	p, err := pgn.NewParser(strings.NewReader(""))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Empty(t, errs)
	require.Empty(t, games)
}

func TestSingleGameFourPlies(t *testing.T) {
	src := `[White "A"]
[Black "B"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 *`

	p, err := pgn.NewParser(strings.NewReader(src))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Empty(t, errs)
	require.Len(t, games, 1)

	g := games[0]
	require.Equal(t, "A", g.Header.White)
	require.Equal(t, "B", g.Header.Black)
	require.Len(t, g.Moves, 4)

	wantSide := []chessmodel.SideToMove{chessmodel.SideWhite, chessmodel.SideBlack, chessmodel.SideWhite, chessmodel.SideBlack}
	for i, m := range g.Moves {
		require.Equal(t, i+1, m.Ply)
		require.Equal(t, wantSide[i], m.SideToMove)
	}

	distinct := map[string]bool{}
	for _, m := range g.Moves {
		distinct[m.FENAfter] = true
	}
	require.Len(t, distinct, 4, "all four fen_after values should be distinct for this sequence")
}

func TestReingestSameGameYieldsSameShape(t *testing.T) {
	src := `[White "A"]
[Black "B"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 *`

	for i := 0; i < 2; i++ {
		p, err := pgn.NewParser(strings.NewReader(src))
		require.NoError(t, err)
		games, errs := collectAll(t, p)
		require.Empty(t, errs)
		require.Len(t, games, 1)
		require.Len(t, games[0].Moves, 4)
	}
}

func TestTwoGamesConcatenatedWithoutBlankLine(t *testing.T) {
	src := `[White "A"]
[Black "B"]
[Result "1-0"]
1. e4 e5 1-0
[White "C"]
[Black "D"]
[Result "0-1"]
1. d4 d5 0-1`

	p, err := pgn.NewParser(strings.NewReader(src))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Empty(t, errs)
	require.Len(t, games, 2, "a header line mid in_moves must start a new game")
	require.Equal(t, "A", games[0].Header.White)
	require.Equal(t, "C", games[1].Header.White)
}

func TestMissingRequiredHeaderFailsThatGameOnly(t *testing.T) {
	src := `[White "A"]
[Result "*"]

1. e4 *`

	p, err := pgn.NewParser(strings.NewReader(src))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Len(t, errs, 1)
	require.Empty(t, games)
}

func TestCommentsVariationsAndNAGsAttach(t *testing.T) {
	src := `[White "A"]
[Black "B"]
[Result "*"]

1. e4 {good move} e5 (1... c5 2. Nf3) 2. Nf3 $1 Nc6 *`

	p, err := pgn.NewParser(strings.NewReader(src))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Empty(t, errs)
	require.Len(t, games, 1)
	moves := games[0].Moves
	require.Len(t, moves, 4)

	require.Equal(t, []string{"good move"}, moves[0].CommentsAfter)
	require.Len(t, moves[1].Variations, 1)
	require.Contains(t, moves[1].Variations[0], "c5")
	require.Contains(t, moves[2].NAGs, "$1")
}

func TestInvalidMoveAbortsGameWithContext(t *testing.T) {
	src := `[White "A"]
[Black "B"]
[Result "*"]

1. e4 e5 2. Ng9 *`

	p, err := pgn.NewParser(strings.NewReader(src))
	require.NoError(t, err)

	games, errs := collectAll(t, p)
	require.Empty(t, games)
	require.Len(t, errs, 1)
}
