package store

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
)

const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestMaterialSignatureIsDeterministic(t *testing.T) {
	a, err := MaterialSignature(startingFEN)
	require.NoError(t, err)
	b, err := MaterialSignature(startingFEN)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, "wP8N2B2R2Q1_bP8N2B2R2Q1", a)
}

// TestUpsertFENReusesRowOnDuplicateText exercises property 4 (FEN
// deduplication): two positions sharing fen_after must resolve to the
// same fen_id. Since upsert_fen is keyed on fen_text alone, issuing the
// identical insert twice must hit the same ON CONFLICT target and return
// the same id both times.
func TestUpsertFENReusesRowOnDuplicateText(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fens")).
		WithArgs(pgxmock.AnyArg(), startingFEN, "w", "KQkq", nil, "wP8N2B2R2Q1_bP8N2B2R2Q1").
		WillReturnRows(pgxmock.NewRows([]string{"fen_id"}).AddRow("fen-1"))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO fens")).
		WithArgs(pgxmock.AnyArg(), startingFEN, "w", "KQkq", nil, "wP8N2B2R2Q1_bP8N2B2R2Q1").
		WillReturnRows(pgxmock.NewRows([]string{"fen_id"}).AddRow("fen-1"))

	s := newWithPool(mock)
	id1, err := s.UpsertFEN(context.Background(), startingFEN, chessmodel.SideWhite, "KQkq", chessmodel.None[string]())
	require.NoError(t, err)
	id2, err := s.UpsertFEN(context.Background(), startingFEN, chessmodel.SideWhite, "KQkq", chessmodel.None[string]())
	require.NoError(t, err)
	require.Equal(t, id1, id2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertFENRejectsMalformedFEN(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := newWithPool(mock)
	_, err = s.UpsertFEN(context.Background(), "not a fen", chessmodel.SideWhite, "KQkq", chessmodel.None[string]())
	require.Error(t, err)
}

func TestFindFENByTextReturnsIDWhenPresent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fen_id FROM fens WHERE fen_text = $1")).
		WithArgs(startingFEN).
		WillReturnRows(pgxmock.NewRows([]string{"fen_id"}).AddRow("fen-1"))

	s := newWithPool(mock)
	id, found, err := s.FindFENByText(context.Background(), startingFEN)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "fen-1", id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindFENByTextReportsNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT fen_id FROM fens WHERE fen_text = $1")).
		WithArgs("unseen fen").
		WillReturnError(pgx.ErrNoRows)

	s := newWithPool(mock)
	_, found, err := s.FindFENByText(context.Background(), "unseen fen")
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}
