package ingest

import (
	"bytes"
	"context"
	"os"
	"sort"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// InspectResult is the dry-run report: it never touches the store (spec
// §4.7: "parses without persisting").
type InspectResult struct {
	TotalGames    int
	TotalMoves    int
	UniquePlayers int
	Players       []string
}

// Inspect parses pgnPath and reports its shape without persisting
// anything, for the CLI's --dry-run flag.
func Inspect(ctx context.Context, pgnPath string) (InspectResult, error) {
	data, err := os.ReadFile(pgnPath)
	if err != nil {
		return InspectResult{}, &chesserr.ParseError{Reason: "reading " + pgnPath, Err: err}
	}

	parser, err := pgn.NewParser(bytes.NewReader(data))
	if err != nil {
		return InspectResult{}, &chesserr.ParseError{Reason: "tokenizing " + pgnPath, Err: err}
	}

	seen := make(map[string]struct{})
	var result InspectResult
	for {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		game, ok, err := parser.Next(ctx)
		if !ok {
			if err != nil {
				return result, err
			}
			break
		}
		if err != nil {
			continue
		}
		result.TotalGames++
		result.TotalMoves += len(game.Moves)
		seen[game.Header.White] = struct{}{}
		seen[game.Header.Black] = struct{}{}
	}

	result.Players = make([]string, 0, len(seen))
	for name := range seen {
		result.Players = append(result.Players, name)
	}
	sort.Strings(result.Players)
	result.UniquePlayers = len(result.Players)
	return result, nil
}
