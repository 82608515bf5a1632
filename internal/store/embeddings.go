package store

import (
	"context"
	"time"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/embed"
)

// RecordEmbedding upserts on fen_id (spec §3 FEN embedding: "one-to-one
// with FEN; last-write-wins on version change"), rejecting a vector whose
// length isn't 768 before it ever reaches SQL.
func (s *Store) RecordEmbedding(ctx context.Context, fenID string, vector []float32, version string) error {
	if err := checkDimension(vector, embed.PositionVectorDimension); err != nil {
		return &chesserr.ValidationError{Field: "embedding", Reason: err.Error()}
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+TableFENEmbeddings+` (fen_id, embedding, embedding_version)
		 VALUES ($1, $2::vector, $3)
		 ON CONFLICT (fen_id) DO UPDATE SET
		   embedding = EXCLUDED.embedding,
		   embedding_version = EXCLUDED.embedding_version,
		   created_at = now()`,
		fenID, serializeEmbedding(vector), version,
	)
	if err != nil {
		return wrapDBErr("record_embedding", err)
	}
	return nil
}

// EmbeddingVersion returns the stored embedding_version for fenID, or
// ("", false) when no embedding exists yet (the orchestrator's "stored
// embedding's version differs... or no embedding exists" check, §4.7).
func (s *Store) EmbeddingVersion(ctx context.Context, fenID string) (string, bool, error) {
	var version string
	err := s.pool.QueryRow(ctx,
		`SELECT embedding_version FROM `+TableFENEmbeddings+` WHERE fen_id = $1`,
		fenID,
	).Scan(&version)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, wrapDBErr("embedding_version", err)
	}
	return version, true, nil
}

// GetEmbedding returns a FEN's stored embedding, if any.
func (s *Store) GetEmbedding(ctx context.Context, fenID string) (chessmodel.FENEmbedding, bool, error) {
	var emb chessmodel.FENEmbedding
	var vecText string
	var createdAt time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT fen_id, embedding::text, embedding_version, created_at FROM `+TableFENEmbeddings+` WHERE fen_id = $1`,
		fenID,
	).Scan(&emb.FENID, &vecText, &emb.EmbeddingVersion, &createdAt)
	if err != nil {
		if isNoRows(err) {
			return chessmodel.FENEmbedding{}, false, nil
		}
		return chessmodel.FENEmbedding{}, false, wrapDBErr("get_embedding", err)
	}
	vec, perr := parseEmbedding(vecText)
	if perr != nil {
		return chessmodel.FENEmbedding{}, false, wrapDBErr("get_embedding: decode", perr)
	}
	emb.Embedding = vec
	emb.CreatedAt = createdAt
	return emb, true, nil
}
