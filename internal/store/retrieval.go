package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

// PatternQuery is the full multi-filter set query_games_with_pattern
// accepts (spec §4.6). Zero-value fields are simply not applied.
type PatternQuery struct {
	PatternIDs           []string
	DetectedBy           chessmodel.Option[chessmodel.Color]
	Success              chessmodel.Option[bool]
	MinConfidence        chessmodel.Option[float64]
	MaxConfidence        chessmodel.Option[float64]
	ECOPrefix             chessmodel.Option[string]
	OpeningSubstring      chessmodel.Option[string]
	MinWhiteElo          chessmodel.Option[int]
	MaxWhiteElo          chessmodel.Option[int]
	MinBlackElo          chessmodel.Option[int]
	MaxBlackElo          chessmodel.Option[int]
	MinRatingDifference  chessmodel.Option[int]
	MinMoveCount         chessmodel.Option[int]
	MaxMoveCount         chessmodel.Option[int]
	StartDate            chessmodel.Option[time.Time]
	EndDate              chessmodel.Option[time.Time]
	WhiteNameSubstring   chessmodel.Option[string]
	BlackNameSubstring   chessmodel.Option[string]
	ResultFilter         chessmodel.Option[chessmodel.Result]
	Limit                int
	Offset               int
}

// PatternQueryRow is one result row, enriched with computed move_count
// (spec §4.8).
type PatternQueryRow struct {
	GameDetail
	PatternID       string
	DetectedByColor chessmodel.Color
	Success         bool
	Confidence      float64
	Outcome         chessmodel.Option[chessmodel.Outcome]
	MoveCount       int
}

// QueryGamesWithPattern executes the §4.6 multi-filter query, ordered by
// game_date descending, enriching each row with move_count.
func (s *Store) QueryGamesWithPattern(ctx context.Context, q PatternQuery) ([]PatternQueryRow, error) {
	var clauses []string
	var args []any
	p := 1
	next := func(v any) string {
		args = append(args, v)
		ph := fmt.Sprintf("$%d", p)
		p++
		return ph
	}

	if len(q.PatternIDs) > 0 {
		placeholders := make([]string, len(q.PatternIDs))
		for i, id := range q.PatternIDs {
			placeholders[i] = next(id)
		}
		clauses = append(clauses, "d.pattern_id IN ("+strings.Join(placeholders, ",")+")")
	}
	if v, ok := q.DetectedBy.Get(); ok {
		clauses = append(clauses, "d.detected_by_color = "+next(string(v)))
	}
	if v, ok := q.Success.Get(); ok {
		clauses = append(clauses, "d.success = "+next(v))
	}
	if v, ok := q.MinConfidence.Get(); ok {
		clauses = append(clauses, "d.confidence >= "+next(v))
	}
	if v, ok := q.MaxConfidence.Get(); ok {
		clauses = append(clauses, "d.confidence <= "+next(v))
	}
	if v, ok := q.ECOPrefix.Get(); ok {
		clauses = append(clauses, "g.eco LIKE "+next(v+"%"))
	}
	if v, ok := q.OpeningSubstring.Get(); ok {
		clauses = append(clauses, "g.opening ILIKE "+next("%"+v+"%"))
	}
	if v, ok := q.MinWhiteElo.Get(); ok {
		clauses = append(clauses, "g.white_elo >= "+next(v))
	}
	if v, ok := q.MaxWhiteElo.Get(); ok {
		clauses = append(clauses, "g.white_elo <= "+next(v))
	}
	if v, ok := q.MinBlackElo.Get(); ok {
		clauses = append(clauses, "g.black_elo >= "+next(v))
	}
	if v, ok := q.MaxBlackElo.Get(); ok {
		clauses = append(clauses, "g.black_elo <= "+next(v))
	}
	if v, ok := q.MinRatingDifference.Get(); ok {
		clauses = append(clauses, "(g.white_elo - g.black_elo) >= "+next(v))
	}
	if v, ok := q.StartDate.Get(); ok {
		clauses = append(clauses, "g.game_date >= "+next(v))
	}
	if v, ok := q.EndDate.Get(); ok {
		clauses = append(clauses, "g.game_date <= "+next(v))
	}
	if v, ok := q.WhiteNameSubstring.Get(); ok {
		clauses = append(clauses, "w.full_name ILIKE "+next("%"+v+"%"))
	}
	if v, ok := q.BlackNameSubstring.Get(); ok {
		clauses = append(clauses, "b.full_name ILIKE "+next("%"+v+"%"))
	}
	if v, ok := q.ResultFilter.Get(); ok {
		clauses = append(clauses, "g.result = "+next(string(v)))
	}

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	limitPH := next(limit)
	offsetPH := next(q.Offset)

	query := `SELECT g.game_id, g.white_id, g.black_id, w.full_name, b.full_name,
	                 g.event, g.site, g.game_date, g.round, g.eco, g.opening,
	                 g.white_elo, g.black_elo, g.result, g.termination,
	                 g.source_pgn, g.pgn_hash, g.batch_id, g.ingested_at,
	                 d.pattern_id, d.detected_by_color, d.success, d.confidence, d.outcome,
	                 (SELECT COUNT(*) FROM ` + TablePositions + ` p WHERE p.game_id = g.game_id) AS move_count
	          FROM ` + TablePatternDetection + ` d
	          JOIN ` + TableGames + ` g ON g.game_id = d.game_id
	          JOIN ` + TablePlayers + ` w ON w.player_id = g.white_id
	          JOIN ` + TablePlayers + ` b ON b.player_id = g.black_id
	          ` + where + `
	          ORDER BY g.game_date DESC
	          LIMIT ` + limitPH + ` OFFSET ` + offsetPH

	// move-count filters apply after the subquery is computed, so they are
	// expressed as a HAVING-style wrapper rather than folded into WHERE.
	if q.MinMoveCount.IsSome() || q.MaxMoveCount.IsSome() {
		query = "SELECT * FROM (" + query + ") wrapped WHERE TRUE"
		if v, ok := q.MinMoveCount.Get(); ok {
			query += " AND move_count >= " + next(v)
		}
		if v, ok := q.MaxMoveCount.Get(); ok {
			query += " AND move_count <= " + next(v)
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapDBErr("query_games_with_pattern", err)
	}
	defer rows.Close()

	var out []PatternQueryRow
	for rows.Next() {
		var r PatternQueryRow
		var event, site, round, eco, opening, termination, outcome *string
		var whiteElo, blackElo *int
		var gameDate *time.Time
		if err := rows.Scan(
			&r.GameID, &r.WhiteID, &r.BlackID, &r.WhiteName, &r.BlackName,
			&event, &site, &gameDate, &round, &eco, &opening,
			&whiteElo, &blackElo, &r.Result, &termination,
			&r.SourcePGN, &r.PGNHash, &r.BatchID, &r.IngestedAt,
			&r.PatternID, &r.DetectedByColor, &r.Success, &r.Confidence, &outcome,
			&r.MoveCount,
		); err != nil {
			return nil, wrapDBErr("query_games_with_pattern: scan", err)
		}
		r.Event = optionalString(event)
		r.Site = optionalString(site)
		r.Round = optionalString(round)
		r.ECO = optionalString(eco)
		r.Opening = optionalString(opening)
		r.Termination = optionalString(termination)
		r.GameDate = optionalTime(gameDate)
		if outcome != nil {
			r.Outcome = chessmodel.Some(chessmodel.Outcome(*outcome))
		}
		if whiteElo != nil {
			r.WhiteElo = chessmodel.Some(*whiteElo)
		}
		if blackElo != nil {
			r.BlackElo = chessmodel.Some(*blackElo)
		}
		out = append(out, r)
	}
	return out, wrapDBErr("query_games_with_pattern: iterate", rows.Err())
}

// PatternSummary reports count, average confidence, color split, and date
// range for a pattern query (spec §4.8).
type PatternSummary struct {
	Count           int
	AverageConfidence float64
	WhiteInitiated  int
	BlackInitiated  int
	EarliestDate    chessmodel.Option[time.Time]
	LatestDate      chessmodel.Option[time.Time]
}

// SummarizePatternQuery reduces the same filter set to aggregate figures
// instead of per-game rows.
func (s *Store) SummarizePatternQuery(ctx context.Context, q PatternQuery) (PatternSummary, error) {
	rows, err := s.QueryGamesWithPattern(ctx, q)
	if err != nil {
		return PatternSummary{}, err
	}

	var summary PatternSummary
	summary.Count = len(rows)
	var confidenceSum float64
	for _, r := range rows {
		confidenceSum += r.Confidence
		if r.DetectedByColor == chessmodel.White {
			summary.WhiteInitiated++
		} else {
			summary.BlackInitiated++
		}
		if date, ok := r.GameDate.Get(); ok {
			if earliest, ok := summary.EarliestDate.Get(); !ok || date.Before(earliest) {
				summary.EarliestDate = chessmodel.Some(date)
			}
			if latest, ok := summary.LatestDate.Get(); !ok || date.After(latest) {
				summary.LatestDate = chessmodel.Some(date)
			}
		}
	}
	if summary.Count > 0 {
		summary.AverageConfidence = confidenceSum / float64(summary.Count)
	}
	return summary, nil
}
