package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
)

// MaterialSignature is a deterministic, implementation-defined encoding of
// a position's piece counts (spec §3 FEN: material_signature; the spec
// leaves its exact encoding unspecified, see §9 Open Questions). Two FENs
// with the same signature have identical material for both colors.
func MaterialSignature(fenText string) (string, error) {
	white, black, err := pattern.MaterialFor(fenText)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("wP%dN%dB%dR%dQ%d_bP%dN%dB%dR%dQ%d",
		white.Pawns, white.Knights, white.Bishops, white.Rooks, white.Queens,
		black.Pawns, black.Knights, black.Bishops, black.Rooks, black.Queens,
	), nil
}

// UpsertFEN upserts on fen_text, computing material_signature itself so
// every caller stores a consistent encoding.
func (s *Store) UpsertFEN(ctx context.Context, fenText string, sideToMove chessmodel.SideToMove, castlingRights string, enPassantFile chessmodel.Option[string]) (string, error) {
	signature, err := MaterialSignature(fenText)
	if err != nil {
		return "", &chesserr.ValidationError{Field: "fen_text", Reason: err.Error()}
	}

	id := uuid.NewString()
	var fenID string
	err = s.pool.QueryRow(ctx,
		`INSERT INTO `+TableFENs+` (fen_id, fen_text, side_to_move, castling_rights, en_passant_file, material_signature)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (fen_text) DO UPDATE SET
		   fen_text = EXCLUDED.fen_text
		 RETURNING fen_id`,
		id, fenText, string(sideToMove), castlingRights, optString(enPassantFile), signature,
	).Scan(&fenID)
	if err != nil {
		return "", wrapDBErr("upsert_fen", err)
	}
	return fenID, nil
}

// FindFENByText looks up a FEN's id by its exact text, without upserting
// (spec §4.8 similarity search: "given a fen_text, look up its fen_id").
func (s *Store) FindFENByText(ctx context.Context, fenText string) (string, bool, error) {
	var fenID string
	err := s.pool.QueryRow(ctx, `SELECT fen_id FROM `+TableFENs+` WHERE fen_text = $1`, fenText).Scan(&fenID)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, wrapDBErr("find_fen_by_text", err)
	}
	return fenID, true, nil
}

// FENDetail is the response of get_fen_details: the FEN row plus
// usage_count (spec §4.8: "how many positions reference the FEN").
type FENDetail struct {
	chessmodel.FEN
	UsageCount int
}

// GetFENDetails returns one FEN's row plus its usage count.
func (s *Store) GetFENDetails(ctx context.Context, fenID string) (FENDetail, error) {
	var d FENDetail
	var enPassant *string
	err := s.pool.QueryRow(ctx,
		`SELECT f.fen_id, f.fen_text, f.side_to_move, f.castling_rights, f.en_passant_file, f.material_signature,
		        (SELECT COUNT(*) FROM `+TablePositions+` p WHERE p.fen_id = f.fen_id) AS usage_count
		 FROM `+TableFENs+` f
		 WHERE f.fen_id = $1`,
		fenID,
	).Scan(&d.FENID, &d.FENText, &d.SideToMove, &d.CastlingRights, &enPassant, &d.MaterialSignature, &d.UsageCount)
	if err != nil {
		return FENDetail{}, wrapDBErr("get_fen_details", err)
	}
	d.EnPassantFile = optionalString(enPassant)
	return d, nil
}

// SimilarFEN is one row of find_similar_fens: a FEN plus cosine distance
// and usage count.
type SimilarFEN struct {
	FENDetail
	Distance float64
}

// FindSimilarFENs returns the top-limit FENs by cosine distance to fenID's
// stored embedding, excluding fenID itself (spec §4.8).
func (s *Store) FindSimilarFENs(ctx context.Context, fenID string, limit int) ([]SimilarFEN, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT f.fen_id, f.fen_text, f.side_to_move, f.castling_rights, f.en_passant_file, f.material_signature,
		        (SELECT COUNT(*) FROM `+TablePositions+` p WHERE p.fen_id = f.fen_id) AS usage_count,
		        e.embedding <=> q.embedding AS distance
		 FROM `+TableFENEmbeddings+` e
		 JOIN `+TableFENs+` f ON f.fen_id = e.fen_id
		 CROSS JOIN (SELECT embedding FROM `+TableFENEmbeddings+` WHERE fen_id = $1) q
		 WHERE e.fen_id <> $1
		 ORDER BY distance ASC
		 LIMIT $2`,
		fenID, limit,
	)
	if err != nil {
		return nil, wrapDBErr("find_similar_fens", err)
	}
	defer rows.Close()

	var out []SimilarFEN
	for rows.Next() {
		var r SimilarFEN
		var enPassant *string
		if err := rows.Scan(&r.FENID, &r.FENText, &r.SideToMove, &r.CastlingRights, &enPassant, &r.MaterialSignature, &r.UsageCount, &r.Distance); err != nil {
			return nil, wrapDBErr("find_similar_fens: scan", err)
		}
		r.EnPassantFile = optionalString(enPassant)
		out = append(out, r)
	}
	return out, wrapDBErr("find_similar_fens: iterate", rows.Err())
}
