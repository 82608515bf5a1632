package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

func TestRecordPatternDetectionRejectsOutOfRangeConfidence(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newWithPool(mock)
	err = s.RecordPatternDetection(context.Background(), chessmodel.PatternDetection{
		GameID: "g-1", PatternID: "greek_gift_sacrifice", DetectedByColor: chessmodel.White,
		Success: true, Confidence: 1.5,
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestRecordPatternDetectionUpsertsRatherThanDuplicates exercises property
// 6: re-running a detector against the same game issues a single
// statement targeting the (game_id, pattern_id, detected_by_color)
// conflict target, never a plain INSERT that could duplicate the row.
func TestRecordPatternDetectionUpsertsRatherThanDuplicates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO pattern_detections").
		WithArgs(
			pgxmock.AnyArg(), "g-1", "greek_gift_sacrifice", "white", true, 0.65,
			nil, nil, nil, "{}",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := newWithPool(mock)
	err = s.RecordPatternDetection(context.Background(), chessmodel.PatternDetection{
		GameID: "g-1", PatternID: "greek_gift_sacrifice", DetectedByColor: chessmodel.White,
		Success: true, Confidence: 0.65,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
