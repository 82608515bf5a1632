package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// pgnHash is the deterministic digest of source_pgn stored alongside each
// game (spec §3 Game: "pgn_hash is a deterministic digest of source_pgn").
func pgnHash(sourcePGN string) string {
	sum := sha256.Sum256([]byte(sourcePGN))
	return hex.EncodeToString(sum[:])
}

// RecordGame upserts on (white_id, black_id, game_date, round, pgn_hash).
func (s *Store) RecordGame(ctx context.Context, whiteID, blackID string, header chessmodel.Header, sourcePGN, batchID string) (string, error) {
	hash := pgnHash(sourcePGN)
	id := uuid.NewString()

	var gameID string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO `+TableGames+` (
			game_id, white_id, black_id, event, site, game_date, round, eco, opening,
			white_elo, black_elo, result, termination, source_pgn, pgn_hash, batch_id
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 ON CONFLICT (white_id, black_id, game_date, round, pgn_hash) DO UPDATE SET
		   event = EXCLUDED.event,
		   site = EXCLUDED.site,
		   eco = EXCLUDED.eco,
		   opening = EXCLUDED.opening,
		   white_elo = EXCLUDED.white_elo,
		   black_elo = EXCLUDED.black_elo,
		   result = EXCLUDED.result,
		   termination = EXCLUDED.termination,
		   source_pgn = EXCLUDED.source_pgn,
		   batch_id = EXCLUDED.batch_id
		 RETURNING game_id`,
		id, whiteID, blackID,
		optString(header.Event), optString(header.Site), optTime(header.GameDate), optString(header.Round),
		optString(header.ECO), optString(header.Opening),
		optInt(header.WhiteElo), optInt(header.BlackElo),
		string(header.Result), optString(header.Termination),
		sourcePGN, hash, batchID,
	).Scan(&gameID)
	if err != nil {
		return "", wrapDBErr("record_game", err)
	}
	return gameID, nil
}

// GameDetail is the response of get_game_detail (spec §4.6): the game row
// plus both player names, used directly by the CLI's retrieve commands.
type GameDetail struct {
	chessmodel.Game
	WhiteName string
	BlackName string
}

// GetGameDetail returns one game enriched with player names.
func (s *Store) GetGameDetail(ctx context.Context, gameID string) (GameDetail, error) {
	var d GameDetail
	var event, site, round, eco, opening, termination *string
	var whiteElo, blackElo *int
	var gameDate *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT g.game_id, g.white_id, g.black_id, w.full_name, b.full_name,
		        g.event, g.site, g.game_date, g.round, g.eco, g.opening,
		        g.white_elo, g.black_elo, g.result, g.termination,
		        g.source_pgn, g.pgn_hash, g.batch_id, g.ingested_at
		 FROM `+TableGames+` g
		 JOIN `+TablePlayers+` w ON w.player_id = g.white_id
		 JOIN `+TablePlayers+` b ON b.player_id = g.black_id
		 WHERE g.game_id = $1`,
		gameID,
	).Scan(
		&d.GameID, &d.WhiteID, &d.BlackID, &d.WhiteName, &d.BlackName,
		&event, &site, &gameDate, &round, &eco, &opening,
		&whiteElo, &blackElo, &d.Result, &termination,
		&d.SourcePGN, &d.PGNHash, &d.BatchID, &d.IngestedAt,
	)
	if err != nil {
		return GameDetail{}, wrapDBErr("get_game_detail", err)
	}
	d.Event = optionalString(event)
	d.Site = optionalString(site)
	d.Round = optionalString(round)
	d.ECO = optionalString(eco)
	d.Opening = optionalString(opening)
	d.Termination = optionalString(termination)
	d.GameDate = optionalTime(gameDate)
	if whiteElo != nil {
		d.WhiteElo = chessmodel.Some(*whiteElo)
	}
	if blackElo != nil {
		d.BlackElo = chessmodel.Some(*blackElo)
	}
	return d, nil
}

// ListGames returns games ordered by most recent first.
func (s *Store) ListGames(ctx context.Context, limit, offset int) ([]GameDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT g.game_id, g.white_id, g.black_id, w.full_name, b.full_name,
		        g.event, g.site, g.game_date, g.round, g.eco, g.opening,
		        g.white_elo, g.black_elo, g.result, g.termination,
		        g.source_pgn, g.pgn_hash, g.batch_id, g.ingested_at
		 FROM `+TableGames+` g
		 JOIN `+TablePlayers+` w ON w.player_id = g.white_id
		 JOIN `+TablePlayers+` b ON b.player_id = g.black_id
		 ORDER BY g.ingested_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr("list_games", err)
	}
	defer rows.Close()

	var out []GameDetail
	for rows.Next() {
		var d GameDetail
		var event, site, round, eco, opening, termination *string
		var whiteElo, blackElo *int
		var gameDate *time.Time
		if err := rows.Scan(
			&d.GameID, &d.WhiteID, &d.BlackID, &d.WhiteName, &d.BlackName,
			&event, &site, &gameDate, &round, &eco, &opening,
			&whiteElo, &blackElo, &d.Result, &termination,
			&d.SourcePGN, &d.PGNHash, &d.BatchID, &d.IngestedAt,
		); err != nil {
			return nil, wrapDBErr("list_games: scan", err)
		}
		d.Event = optionalString(event)
		d.Site = optionalString(site)
		d.Round = optionalString(round)
		d.ECO = optionalString(eco)
		d.Opening = optionalString(opening)
		d.Termination = optionalString(termination)
		d.GameDate = optionalTime(gameDate)
		if whiteElo != nil {
			d.WhiteElo = chessmodel.Some(*whiteElo)
		}
		if blackElo != nil {
			d.BlackElo = chessmodel.Some(*blackElo)
		}
		out = append(out, d)
	}
	return out, wrapDBErr("list_games: iterate", rows.Err())
}

func optString(o chessmodel.Option[string]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func optInt(o chessmodel.Option[int]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func optTime(o chessmodel.Option[time.Time]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

func optionalString(p *string) chessmodel.Option[string] {
	if p == nil {
		return chessmodel.None[string]()
	}
	return chessmodel.Some(*p)
}

func optionalTime(p *time.Time) chessmodel.Option[time.Time] {
	if p == nil {
		return chessmodel.None[time.Time]()
	}
	return chessmodel.Some(*p)
}
