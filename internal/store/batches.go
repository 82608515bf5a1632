package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CreateBatch upserts on checksum (spec §3 Batch: "Re-ingesting the same
// file yields the same batch id"), returning the existing id when the
// checksum already exists.
func (s *Store) CreateBatch(ctx context.Context, sourcePath, label, checksum string) (string, error) {
	id := uuid.NewString()
	var batchID string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO `+TableBatches+` (batch_id, source_path, label, checksum)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (checksum) DO UPDATE SET
		   source_path = `+TableBatches+`.source_path
		 RETURNING batch_id`,
		id, sourcePath, label, checksum,
	).Scan(&batchID)
	if err != nil {
		return "", wrapDBErr("create_batch", err)
	}
	return batchID, nil
}

// BatchSummary is one row of list_batches / the response of
// get_batch_summary (spec §4.6, §4.8).
type BatchSummary struct {
	BatchID     string
	SourcePath  string
	Label       string
	Checksum    string
	IngestedAt  time.Time
	GameCount   int
}

// ListBatches returns every batch ordered by most recently ingested
// first, each enriched with its game count.
func (s *Store) ListBatches(ctx context.Context, limit, offset int) ([]BatchSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT b.batch_id, b.source_path, b.label, b.checksum, b.ingested_at,
		        COUNT(g.game_id) AS game_count
		 FROM `+TableBatches+` b
		 LEFT JOIN `+TableGames+` g ON g.batch_id = b.batch_id
		 GROUP BY b.batch_id
		 ORDER BY b.ingested_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, wrapDBErr("list_batches", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var b BatchSummary
		if err := rows.Scan(&b.BatchID, &b.SourcePath, &b.Label, &b.Checksum, &b.IngestedAt, &b.GameCount); err != nil {
			return nil, wrapDBErr("list_batches: scan", err)
		}
		out = append(out, b)
	}
	return out, wrapDBErr("list_batches: iterate", rows.Err())
}

// GetBatchSummary reports a single batch's game count.
func (s *Store) GetBatchSummary(ctx context.Context, batchID string) (BatchSummary, error) {
	var b BatchSummary
	err := s.pool.QueryRow(ctx,
		`SELECT b.batch_id, b.source_path, b.label, b.checksum, b.ingested_at,
		        COUNT(g.game_id) AS game_count
		 FROM `+TableBatches+` b
		 LEFT JOIN `+TableGames+` g ON g.batch_id = b.batch_id
		 WHERE b.batch_id = $1
		 GROUP BY b.batch_id`,
		batchID,
	).Scan(&b.BatchID, &b.SourcePath, &b.Label, &b.Checksum, &b.IngestedAt, &b.GameCount)
	if err != nil {
		return BatchSummary{}, wrapDBErr("get_batch_summary", err)
	}
	return b, nil
}
