package store

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

// TestFindSimilarFENsOrdersByAscendingDistance exercises scenario E6: the
// first non-query entry must have a distance less than or equal to every
// subsequent entry.
func TestFindSimilarFENsOrdersByAscendingDistance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{
		"fen_id", "fen_text", "side_to_move", "castling_rights", "en_passant_file",
		"material_signature", "usage_count", "distance",
	}).
		AddRow("fen-2", "fen two", "w", "KQkq", nil, "sig", 3, 0.01).
		AddRow("fen-3", "fen three", "b", "kq", nil, "sig", 1, 0.20)

	mock.ExpectQuery("SELECT f.fen_id").
		WithArgs("fen-1", 10).
		WillReturnRows(rows)

	s := newWithPool(mock)
	results, err := s.FindSimilarFENs(context.Background(), "fen-1", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for i := 1; i < len(results); i++ {
		require.LessOrEqual(t, results[i-1].Distance, results[i].Distance)
	}
	for _, r := range results {
		require.NotEqual(t, "fen-1", r.FENID)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
