package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// RecordPatternDetection upserts on (game_id, pattern_id, detected_by_color)
// (spec §3 Pattern detection: "Re-ingestion upserts"), rejecting a
// confidence outside [0,1] before it reaches SQL.
func (s *Store) RecordPatternDetection(ctx context.Context, d chessmodel.PatternDetection) error {
	if d.Confidence < 0 || d.Confidence > 1 {
		return &chesserr.ValidationError{Field: "confidence", Reason: "must be within [0.0, 1.0]"}
	}

	meta, err := json.Marshal(d.Metadata)
	if err != nil {
		return &chesserr.ValidationError{Field: "metadata", Reason: err.Error()}
	}
	if d.Metadata == nil {
		meta = []byte("{}")
	}

	id := d.DetectionID
	if id == "" {
		id = uuid.NewString()
	}

	outcome, _ := d.Outcome.Get()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+TablePatternDetection+` (
			detection_id, game_id, pattern_id, detected_by_color, success, confidence,
			start_ply, end_ply, outcome, metadata
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb)
		 ON CONFLICT (game_id, pattern_id, detected_by_color) DO UPDATE SET
		   success = EXCLUDED.success,
		   confidence = EXCLUDED.confidence,
		   start_ply = EXCLUDED.start_ply,
		   end_ply = EXCLUDED.end_ply,
		   outcome = EXCLUDED.outcome,
		   metadata = EXCLUDED.metadata`,
		id, d.GameID, d.PatternID, string(d.DetectedByColor), d.Success, d.Confidence,
		optInt(d.StartPly), optInt(d.EndPly), optOutcome(outcome, d.Outcome.IsSome()), string(meta),
	)
	if err != nil {
		return wrapDBErr("record_pattern_detection", err)
	}
	return nil
}

func optOutcome(o chessmodel.Outcome, present bool) any {
	if !present {
		return nil
	}
	return string(o)
}

// UpsertPatternCatalogEntry inserts or refreshes one seeded catalog row
// (spec §4.5: "Seeded at startup").
func (s *Store) UpsertPatternCatalogEntry(ctx context.Context, e chessmodel.PatternCatalogEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO `+TablePatternCatalog+` (
			pattern_id, pattern_name, pattern_type, description, detector_module, success_criteria, enabled
		 ) VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT (pattern_id) DO UPDATE SET
		   pattern_name = EXCLUDED.pattern_name,
		   pattern_type = EXCLUDED.pattern_type,
		   description = EXCLUDED.description,
		   detector_module = EXCLUDED.detector_module,
		   success_criteria = EXCLUDED.success_criteria,
		   enabled = EXCLUDED.enabled`,
		e.PatternID, e.PatternName, string(e.PatternType), optString(e.Description), e.DetectorModule,
		optString(e.SuccessCriteria), e.Enabled,
	)
	if err != nil {
		return wrapDBErr("upsert_pattern_catalog_entry", err)
	}
	return nil
}
