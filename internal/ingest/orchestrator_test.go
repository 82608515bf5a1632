package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
)

// fakeStore is an in-memory stand-in for internal/store.Store that
// replicates its upsert-on-unique-key semantics closely enough to exercise
// property 3 (idempotent ingestion) without a database.
type fakeStore struct {
	mu sync.Mutex

	playersByKey map[string]string
	playerSeq    int

	gamesByKey map[string]string
	gameSeq    int

	fensByText map[string]string
	fenSeq     int

	positions map[string]chessmodel.Position

	embeddingVersions map[string]string

	detections map[string]chessmodel.PatternDetection
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		playersByKey:      map[string]string{},
		gamesByKey:        map[string]string{},
		fensByText:        map[string]string{},
		positions:         map[string]chessmodel.Position{},
		embeddingVersions: map[string]string{},
		detections:        map[string]chessmodel.PatternDetection{},
	}
}

func (f *fakeStore) UpsertPlayer(_ context.Context, name string, fideID chessmodel.Option[string]) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := name
	if fide, ok := fideID.Get(); ok && fide != "" {
		key = "fide:" + fide
	}
	if id, ok := f.playersByKey[key]; ok {
		return id, nil
	}
	f.playerSeq++
	id := "player-" + strconv.Itoa(f.playerSeq)
	f.playersByKey[key] = id
	return id, nil
}

func (f *fakeStore) CreateBatch(_ context.Context, sourcePath, label, checksum string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.gamesByKey["batch:"+checksum]; ok {
		return id, nil
	}
	f.gameSeq++
	id := "batch-" + strconv.Itoa(f.gameSeq)
	f.gamesByKey["batch:"+checksum] = id
	return id, nil
}

func (f *fakeStore) RecordGame(_ context.Context, whiteID, blackID string, header chessmodel.Header, sourcePGN, batchID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := sha256.Sum256([]byte(sourcePGN))
	key := whiteID + "|" + blackID + "|" + header.Round.GetOr("") + "|" + hex.EncodeToString(sum[:])
	if id, ok := f.gamesByKey[key]; ok {
		return id, nil
	}
	f.gameSeq++
	id := "game-" + strconv.Itoa(f.gameSeq)
	f.gamesByKey[key] = id
	return id, nil
}

func (f *fakeStore) UpsertFEN(_ context.Context, fenText string, _ chessmodel.SideToMove, _ string, _ chessmodel.Option[string]) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.fensByText[fenText]; ok {
		return id, nil
	}
	f.fenSeq++
	id := "fen-" + strconv.Itoa(f.fenSeq)
	f.fensByText[fenText] = id
	return id, nil
}

func (f *fakeStore) RecordPosition(_ context.Context, pos chessmodel.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pos.GameID + "|" + strconv.Itoa(pos.PlyNumber)
	f.positions[key] = pos
	return nil
}

func (f *fakeStore) EmbeddingVersion(_ context.Context, fenID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.embeddingVersions[fenID]
	return v, ok, nil
}

func (f *fakeStore) RecordEmbedding(_ context.Context, fenID string, _ []float32, version string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddingVersions[fenID] = version
	return nil
}

func (f *fakeStore) RecordPatternDetection(_ context.Context, d chessmodel.PatternDetection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := d.GameID + "|" + d.PatternID + "|" + string(d.DetectedByColor)
	f.detections[key] = d
	return nil
}

// fakeSource replays a fixed queue of (game, ok, err) triples, letting
// tests drive the orchestrator without a real PGN file.
type fakeSource struct {
	items []sourceItem
	pos   int
}

type sourceItem struct {
	game pgn.ParsedGame
	ok   bool
	err  error
}

func (s *fakeSource) Next(_ context.Context) (pgn.ParsedGame, bool, error) {
	if s.pos >= len(s.items) {
		return pgn.ParsedGame{}, false, nil
	}
	item := s.items[s.pos]
	s.pos++
	return item.game, item.ok, item.err
}

func sampleGame(index int, white, black string) pgn.ParsedGame {
	return pgn.ParsedGame{
		Index: index,
		Header: chessmodel.Header{
			White:  white,
			Black:  black,
			Result: chessmodel.ResultWhiteWin,
		},
		SourcePGN: white + " vs " + black,
		Moves: []pgn.Move{
			{
				Ply: 1, SAN: "e4", SideToMove: chessmodel.SideWhite,
				FENBefore: "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
				FENAfter:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			},
			{
				Ply: 2, SAN: "e5", SideToMove: chessmodel.SideBlack,
				FENBefore: "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
				FENAfter:  "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
			},
		},
	}
}

func newOrchestrator(store *fakeStore) *Orchestrator {
	return NewOrchestrator(store, nil, pattern.NewRegistry(), nil, nil, nil)
}

func TestIngestFromSourceRecordsPlayersGamesAndPositions(t *testing.T) {
	store := newFakeStore()
	o := newOrchestrator(store)
	source := &fakeSource{items: []sourceItem{{game: sampleGame(0, "Alice", "Bob"), ok: true}}}

	summary, err := o.ingestFromSource(context.Background(), source, "batch-1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.GamesIngested)
	require.Equal(t, 0, summary.GamesFailed)
	require.Equal(t, 2, summary.MovesRecorded)
	require.Len(t, store.playersByKey, 2)
	require.Len(t, store.positions, 2)
}

// TestIngestIsIdempotentAcrossRuns exercises property 3: re-running the
// same game through the same store produces no additional rows.
func TestIngestIsIdempotentAcrossRuns(t *testing.T) {
	store := newFakeStore()
	o := newOrchestrator(store)

	run := func() {
		source := &fakeSource{items: []sourceItem{{game: sampleGame(0, "Alice", "Bob"), ok: true}}}
		_, err := o.ingestFromSource(context.Background(), source, "batch-1")
		require.NoError(t, err)
	}

	run()
	playersAfterFirst := len(store.playersByKey)
	gamesAfterFirst := len(store.gamesByKey)
	fensAfterFirst := len(store.fensByText)
	positionsAfterFirst := len(store.positions)

	run()
	require.Equal(t, playersAfterFirst, len(store.playersByKey))
	require.Equal(t, gamesAfterFirst, len(store.gamesByKey))
	require.Equal(t, fensAfterFirst, len(store.fensByText))
	require.Equal(t, positionsAfterFirst, len(store.positions))
}

func TestIngestSkipsMalformedGameWithoutAbortingBatch(t *testing.T) {
	store := newFakeStore()
	o := newOrchestrator(store)
	source := &fakeSource{items: []sourceItem{
		{game: pgn.ParsedGame{Index: 0}, ok: true, err: errors.New("missing header")},
		{game: sampleGame(1, "Carol", "Dave"), ok: true},
	}}

	summary, err := o.ingestFromSource(context.Background(), source, "batch-1")
	require.NoError(t, err)
	require.Equal(t, 1, summary.GamesFailed)
	require.Equal(t, 1, summary.GamesIngested)
}

// stubDetector always fires, attributing the pattern to white.
type stubDetector struct{ pattern.BaseDetector }

func (stubDetector) PatternID() string                   { return "stub_pattern" }
func (stubDetector) PatternName() string                 { return "Stub Pattern" }
func (stubDetector) PatternType() chessmodel.PatternType  { return chessmodel.PatternTactical }
func (stubDetector) Detect(_ []pgn.Move, _ chessmodel.Result) pattern.Detection {
	return pattern.Detection{
		Detected:        true,
		Confidence:      0.9,
		InitiatingColor: chessmodel.Some(chessmodel.White),
	}
}

func TestIngestRecordsPositiveDetections(t *testing.T) {
	store := newFakeStore()
	registry := pattern.NewRegistry()
	registry.Register(stubDetector{})
	o := NewOrchestrator(store, nil, registry, nil, nil, nil)

	source := &fakeSource{items: []sourceItem{{game: sampleGame(0, "Alice", "Bob"), ok: true}}}
	_, err := o.ingestFromSource(context.Background(), source, "batch-1")
	require.NoError(t, err)
	require.Len(t, store.detections, 1)
}

const onePlyPGN = `[White "%s"]
[Black "%s"]
[Result "1-0"]

1. e4 1-0`

// TestIngestDirectoryIngestsAllFilesConcurrently exercises the
// errgroup.SetLimit-bounded fan-out over a directory of PGN files: every
// file gets its own batch, and all games across all files are recorded
// regardless of completion order.
func TestIngestDirectoryIngestsAllFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	pairs := [][2]string{{"Alice", "Bob"}, {"Carol", "Dave"}, {"Erin", "Frank"}}
	for i, pair := range pairs {
		name := filepath.Join(dir, strconv.Itoa(i)+".pgn")
		content := []byte(fmt.Sprintf(onePlyPGN, pair[0], pair[1]))
		require.NoError(t, os.WriteFile(name, content, 0o644))
	}

	store := newFakeStore()
	o := newOrchestrator(store)

	summaries, err := o.IngestDirectory(context.Background(), dir, "batch-label", 2)
	require.NoError(t, err)
	require.Len(t, summaries, len(pairs))

	totalGames := 0
	for _, s := range summaries {
		totalGames += s.GamesIngested
	}
	require.Equal(t, len(pairs), totalGames)
	// gamesByKey holds both "batch:<checksum>" and per-game keys (CreateBatch
	// and RecordGame share the fake's id sequence/map): one of each per file.
	require.Len(t, store.gamesByKey, 2*len(pairs))
}

// failingEmbedder always fails Embed with a fixed error, letting tests
// drive both the transient and permanent classification branches.
type failingEmbedder struct{ err error }

func (f failingEmbedder) Embed(_ context.Context, _ string) ([]float32, string, error) {
	return nil, "", f.err
}

// timeoutNetErr is a minimal net.Error whose Timeout() reports true,
// standing in for a real dial/read timeout from an HTTP-backed embedder.
type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

var _ net.Error = timeoutNetErr{}

// TestIngestMoveClassifiesTransientEmbedderError exercises the retriable
// branch: a network timeout is wrapped into an EmbedderError with
// Transient set, and ingestion still persists the position.
func TestIngestMoveClassifiesTransientEmbedderError(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(store, failingEmbedder{err: timeoutNetErr{}}, pattern.NewRegistry(), nil, nil, nil)

	err := o.ingestMove(context.Background(), "game-1", pgn.Move{
		Ply: 1, SAN: "e4", SideToMove: chessmodel.SideWhite,
		FENBefore: startingFENForTest,
		FENAfter:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	})
	require.NoError(t, err)
	require.Len(t, store.positions, 1)
	require.Empty(t, store.embeddingVersions)
}

// TestIngestMoveClassifiesPermanentEmbedderError exercises the
// non-retriable branch: an ordinary error (not a timeout, not context
// cancellation) is wrapped into an EmbedderError with Transient false.
func TestIngestMoveClassifiesPermanentEmbedderError(t *testing.T) {
	store := newFakeStore()
	o := NewOrchestrator(store, failingEmbedder{err: errors.New("invalid api key")}, pattern.NewRegistry(), nil, nil, nil)

	err := o.ingestMove(context.Background(), "game-1", pgn.Move{
		Ply: 1, SAN: "e4", SideToMove: chessmodel.SideWhite,
		FENBefore: startingFENForTest,
		FENAfter:  "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
	})
	require.NoError(t, err)
	require.Len(t, store.positions, 1)
	require.Empty(t, store.embeddingVersions)
}

func TestIsTransientEmbedderErrClassification(t *testing.T) {
	require.True(t, isTransientEmbedderErr(context.DeadlineExceeded))
	require.True(t, isTransientEmbedderErr(context.Canceled))
	require.True(t, isTransientEmbedderErr(timeoutNetErr{}))
	require.False(t, isTransientEmbedderErr(errors.New("bad request")))
}

func TestEmbedderErrorUnwrapsViaErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("embed call failed: %w", timeoutNetErr{})
	embedErr := &chesserr.EmbedderError{FEN: startingFENForTest, Err: wrapped, Transient: isTransientEmbedderErr(wrapped)}

	var target *chesserr.EmbedderError
	require.True(t, errors.As(error(embedErr), &target))
	require.True(t, target.Transient)

	var netErr net.Error
	require.True(t, errors.As(embedErr.Unwrap(), &netErr))
}

const startingFENForTest = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
