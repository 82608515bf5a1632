package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// normalizeName is the identity key used when a player has no FIDE id
// (spec §3 Player: "normalized (lowercase-stripped) full_name").
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// UpsertPlayer matches by fideID when present, else by normalized name;
// inserts a new row if absent, otherwise updates full_name and returns the
// existing id. Atomic: a single statement, single round trip.
func (s *Store) UpsertPlayer(ctx context.Context, name string, fideID chessmodel.Option[string]) (string, error) {
	id := uuid.NewString()
	norm := normalizeName(name)

	if fide, ok := fideID.Get(); ok && fide != "" {
		var playerID string
		err := s.pool.QueryRow(ctx,
			`INSERT INTO `+TablePlayers+` (player_id, full_name, normalized_name, fide_id)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (fide_id) WHERE fide_id IS NOT NULL DO UPDATE SET
			   full_name = EXCLUDED.full_name,
			   normalized_name = EXCLUDED.normalized_name
			 RETURNING player_id`,
			id, name, norm, fide,
		).Scan(&playerID)
		if err != nil {
			return "", wrapDBErr("upsert_player", err)
		}
		return playerID, nil
	}

	var playerID string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO `+TablePlayers+` (player_id, full_name, normalized_name, fide_id)
		 VALUES ($1, $2, $3, NULL)
		 ON CONFLICT (normalized_name) WHERE fide_id IS NULL DO UPDATE SET
		   full_name = EXCLUDED.full_name
		 RETURNING player_id`,
		id, name, norm,
	).Scan(&playerID)
	if err != nil {
		return "", wrapDBErr("upsert_player", err)
	}
	return playerID, nil
}

// RecordRating upserts a rating snapshot on (player_id, rating_date).
func (s *Store) RecordRating(ctx context.Context, rating chessmodel.Rating) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+TableRatings+` (player_id, rating_date, standard, rapid, blitz)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (player_id, rating_date) DO UPDATE SET
		   standard = EXCLUDED.standard,
		   rapid = EXCLUDED.rapid,
		   blitz = EXCLUDED.blitz`,
		rating.PlayerID, rating.RatingDate, nullableInt(rating.Standard), nullableInt(rating.Rapid), nullableInt(rating.Blitz),
	)
	if err != nil {
		return wrapDBErr("record_rating", err)
	}
	return nil
}

func nullableInt(o chessmodel.Option[int]) any {
	if v, ok := o.Get(); ok {
		return v
	}
	return nil
}

// SearchPlayers matches full_name case-insensitively against a substring
// (spec §4.6 retrieval: search_players).
func (s *Store) SearchPlayers(ctx context.Context, nameSubstring string, limit int) ([]chessmodel.Player, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT player_id, full_name, fide_id, created_at FROM `+TablePlayers+`
		 WHERE full_name ILIKE $1
		 ORDER BY full_name
		 LIMIT $2`,
		"%"+nameSubstring+"%", limit,
	)
	if err != nil {
		return nil, wrapDBErr("search_players", err)
	}
	defer rows.Close()

	var players []chessmodel.Player
	for rows.Next() {
		var p chessmodel.Player
		var fide *string
		if err := rows.Scan(&p.PlayerID, &p.FullName, &fide, &p.CreatedAt); err != nil {
			return nil, wrapDBErr("search_players: scan", err)
		}
		if fide != nil {
			p.FideID = chessmodel.Some(*fide)
		}
		players = append(players, p)
	}
	return players, wrapDBErr("search_players: iterate", rows.Err())
}
