package ingest

import (
	"bytes"
	"context"
	"os"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// playerStore is the narrow slice of internal/store.Store SyncPlayers
// needs; gameStore satisfies it too, so both passes share one Store.
type playerStore interface {
	UpsertPlayer(ctx context.Context, name string, fideID chessmodel.Option[string]) (string, error)
}

// SyncPlayersReport is the result of a players-only pass.
type SyncPlayersReport struct {
	PlayersUpserted int
}

// SyncPlayersFromPGN is the reduced pass of §4.7 ("a reduced pass that
// upserts only players"): no batch, no games, no positions, no detectors.
func SyncPlayersFromPGN(ctx context.Context, store playerStore, pgnPath string) (SyncPlayersReport, error) {
	data, err := os.ReadFile(pgnPath)
	if err != nil {
		return SyncPlayersReport{}, &chesserr.ParseError{Reason: "reading " + pgnPath, Err: err}
	}

	parser, err := pgn.NewParser(bytes.NewReader(data))
	if err != nil {
		return SyncPlayersReport{}, &chesserr.ParseError{Reason: "tokenizing " + pgnPath, Err: err}
	}

	var report SyncPlayersReport
	for {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		game, ok, err := parser.Next(ctx)
		if !ok {
			if err != nil {
				return report, err
			}
			break
		}
		if err != nil {
			continue
		}

		if _, err := store.UpsertPlayer(ctx, game.Header.White, game.Header.WhiteFideID); err != nil {
			return report, err
		}
		report.PlayersUpserted++
		if _, err := store.UpsertPlayer(ctx, game.Header.Black, game.Header.BlackFideID); err != nil {
			return report, err
		}
		report.PlayersUpserted++
	}

	return report, nil
}
