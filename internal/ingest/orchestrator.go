package ingest

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
	"github.com/HendrikReh/chessbuddy/internal/chessmodel"
	"github.com/HendrikReh/chessbuddy/internal/embed"
	"github.com/HendrikReh/chessbuddy/internal/engine"
	"github.com/HendrikReh/chessbuddy/internal/pattern"
	"github.com/HendrikReh/chessbuddy/internal/pgn"
	"github.com/HendrikReh/chessbuddy/internal/searchindex"
)

// gameStore is the narrow slice of internal/store.Store the orchestrator
// needs. Defining it here, consumer-side, keeps ingest testable against a
// hand-written fake without reaching for a database mock.
type gameStore interface {
	UpsertPlayer(ctx context.Context, name string, fideID chessmodel.Option[string]) (string, error)
	CreateBatch(ctx context.Context, sourcePath, label, checksum string) (string, error)
	RecordGame(ctx context.Context, whiteID, blackID string, header chessmodel.Header, sourcePGN, batchID string) (string, error)
	UpsertFEN(ctx context.Context, fenText string, sideToMove chessmodel.SideToMove, castlingRights string, enPassantFile chessmodel.Option[string]) (string, error)
	RecordPosition(ctx context.Context, pos chessmodel.Position) error
	EmbeddingVersion(ctx context.Context, fenID string) (string, bool, error)
	RecordEmbedding(ctx context.Context, fenID string, vector []float32, version string) error
	RecordPatternDetection(ctx context.Context, d chessmodel.PatternDetection) error
}

// Summary is the result of one IngestFile run.
type Summary struct {
	BatchID       string
	GamesIngested int
	GamesFailed   int
	MovesRecorded int
}

// Orchestrator runs the ingestion pipeline described in spec §4.7: checksum
// → batch → per-game upsert/record → per-move fold → detectors → optional
// text-index hand-off.
type Orchestrator struct {
	store    gameStore
	embedder embed.PositionEmbedder
	registry *pattern.Registry
	indexer  searchindex.Indexer
	metrics  *Metrics
	logger   *zap.Logger
}

// NewOrchestrator wires the core's one required collaborator (store) to
// its three optional ones (embedder, text indexer, metrics). A nil logger
// is replaced with a no-op one.
func NewOrchestrator(store gameStore, embedder embed.PositionEmbedder, registry *pattern.Registry, indexer searchindex.Indexer, metrics *Metrics, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{store: store, embedder: embedder, registry: registry, indexer: indexer, metrics: metrics, logger: logger}
}

// IngestFile reads pgnPath once, computes its checksum, opens (or reuses)
// the batch row for that checksum, then folds every game the parser
// produces through ingestGame. A malformed game is logged and skipped; it
// does not abort the batch (spec §4.7: "a failure aborts the enclosing
// game but must not corrupt batch bookkeeping").
func (o *Orchestrator) IngestFile(ctx context.Context, pgnPath, batchLabel string) (Summary, error) {
	data, err := os.ReadFile(pgnPath)
	if err != nil {
		return Summary{}, &chesserr.ParseError{Reason: "reading " + pgnPath, Err: err}
	}

	sum := sha256.Sum256(data)
	checksum := hex.EncodeToString(sum[:])

	batchID, err := o.store.CreateBatch(ctx, pgnPath, batchLabel, checksum)
	if err != nil {
		return Summary{}, err
	}

	parser, err := pgn.NewParser(bytes.NewReader(data))
	if err != nil {
		return Summary{}, &chesserr.ParseError{Reason: "tokenizing " + pgnPath, Err: err}
	}

	return o.ingestFromSource(ctx, parser, batchID)
}

// IngestDirectory ingests every *.pgn file directly under dir concurrently,
// one batch per file, using errgroup.SetLimit(parallelism) to bound
// in-flight files (spec §5: cross-game/cross-file parallelism relies on
// the datastore's own uniqueness constraints for coordination, never a
// mutex around shared state). Ordering within a single file's games is
// still strictly sequential via ingestFromSource. A parallelism of 0 or
// 1 degenerates to sequential file-by-file ingestion.
func (o *Orchestrator) IngestDirectory(ctx context.Context, dir, batchLabel string, parallelism int) ([]Summary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &chesserr.ParseError{Reason: "reading directory " + dir, Err: err}
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".pgn" {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	group, gctx := errgroup.WithContext(ctx)
	if parallelism < 1 {
		parallelism = 1
	}
	group.SetLimit(parallelism)

	var mu sync.Mutex
	summaries := make([]Summary, 0, len(paths))
	for _, path := range paths {
		path := path
		group.Go(func() error {
			summary, err := o.IngestFile(gctx, path, batchLabel)
			if err != nil {
				return err
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return summaries, err
	}
	return summaries, nil
}

// ingestFromSource folds every game source yields through ingestGame. It
// is split out from IngestFile so tests can drive the pipeline from a
// fake GameSource instead of a real PGN file.
func (o *Orchestrator) ingestFromSource(ctx context.Context, source GameSource, batchID string) (Summary, error) {
	summary := Summary{BatchID: batchID}
	for {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}

		game, ok, err := source.Next(ctx)
		if !ok {
			if err != nil {
				return summary, err
			}
			break
		}
		if err != nil {
			o.logger.Warn("skipping malformed game", zap.Int("game_index", game.Index), zap.Error(err))
			summary.GamesFailed++
			continue
		}

		moves, gerr := o.ingestGame(ctx, batchID, game)
		if gerr != nil {
			o.logger.Warn("skipping game after ingest failure", zap.Int("game_index", game.Index), zap.Error(gerr))
			summary.GamesFailed++
			continue
		}
		summary.GamesIngested++
		summary.MovesRecorded += moves
	}

	return summary, nil
}

// ingestGame upserts both players, records the game row, then folds each
// move strictly in order: derive board state from fen_after, dedupe the
// FEN, record the position, conditionally embed, then run every
// registered detector once all positions exist.
func (o *Orchestrator) ingestGame(ctx context.Context, batchID string, game pgn.ParsedGame) (int, error) {
	start := time.Now()

	whiteID, err := o.store.UpsertPlayer(ctx, game.Header.White, game.Header.WhiteFideID)
	if err != nil {
		return 0, err
	}
	blackID, err := o.store.UpsertPlayer(ctx, game.Header.Black, game.Header.BlackFideID)
	if err != nil {
		return 0, err
	}

	gameID, err := o.store.RecordGame(ctx, whiteID, blackID, game.Header, game.SourcePGN, batchID)
	if err != nil {
		return 0, err
	}

	for _, move := range game.Moves {
		if err := o.ingestMove(ctx, gameID, move); err != nil {
			return 0, err
		}
	}

	if err := o.runDetectors(ctx, gameID, game); err != nil {
		return 0, err
	}

	if o.indexer != nil {
		doc := chessmodel.SearchDocument{
			EntityType: chessmodel.EntityGame,
			EntityID:   gameID,
			Content:    game.Header.White + " vs " + game.Header.Black + " (" + string(game.Header.Result) + ")",
		}
		if err := o.indexer.UpsertSearchDocument(ctx, doc); err != nil {
			o.logger.Warn("search index hand-off failed", zap.String("game_id", gameID), zap.Error(err))
		}
	}

	if o.metrics != nil {
		o.metrics.GamesIngested.Inc()
		o.metrics.GameDuration.Observe(time.Since(start).Seconds())
	}

	return len(game.Moves), nil
}

// ingestMove derives the trailing FEN fields from fen_after, dedupes the
// FEN row, records the position, and conditionally refreshes its
// embedding. It never re-derives side_to_move/castling/en_passant from
// anything but fen_after, per §4.7c.
func (o *Orchestrator) ingestMove(ctx context.Context, gameID string, move pgn.Move) error {
	after, err := engine.ParseFEN(move.FENAfter)
	if err != nil {
		return &chesserr.InvalidMoveError{Ply: move.Ply, SAN: move.SAN, Reason: err.Error()}
	}

	var enPassant chessmodel.Option[string]
	if sq, ok := after.EnPassant.Get(); ok {
		enPassant = chessmodel.Some(sq.String())
	}

	fenID, err := o.store.UpsertFEN(ctx, move.FENAfter, after.SideToMove, after.CastlingRights, enPassant)
	if err != nil {
		return err
	}

	if err := o.store.RecordPosition(ctx, chessmodel.Position{
		GameID:     gameID,
		PlyNumber:  move.Ply,
		FENID:      fenID,
		SideToMove: move.SideToMove,
		SAN:        move.SAN,
		FENBefore:  move.FENBefore,
		FENAfter:   move.FENAfter,
		IsCapture:  move.IsCapture,
		IsCheck:    move.IsCheck,
		IsMate:     move.IsMate,
	}); err != nil {
		return err
	}
	if o.metrics != nil {
		o.metrics.PositionsRecorded.Inc()
	}

	if o.embedder == nil {
		return nil
	}

	storedVersion, exists, err := o.store.EmbeddingVersion(ctx, fenID)
	if err != nil {
		return err
	}

	vector, version, err := o.embedder.Embed(ctx, move.FENAfter)
	if err != nil {
		embedErr := &chesserr.EmbedderError{FEN: move.FENAfter, Err: err, Transient: isTransientEmbedderErr(err)}
		if o.metrics != nil {
			o.metrics.EmbedderErrors.Inc()
		}
		if embedErr.Transient {
			o.logger.Warn("transient embedder error, position persisted without embedding; retriable on a later pass",
				zap.String("fen_id", fenID), zap.Error(embedErr))
		} else {
			o.logger.Warn("permanent embedder error, position persisted without embedding",
				zap.String("fen_id", fenID), zap.Error(embedErr))
		}
		return nil
	}
	if exists && version == storedVersion {
		return nil
	}
	return o.store.RecordEmbedding(ctx, fenID, vector, version)
}

// isTransientEmbedderErr classifies an embedder failure as retriable: a
// deadline/cancellation, or a network error reporting itself as a timeout.
// Anything else (bad request, auth failure, malformed response) is
// permanent.
func isTransientEmbedderErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// runDetectors runs every registered detector over the game's full move
// sequence and records every positive detection (spec §4.7d).
func (o *Orchestrator) runDetectors(ctx context.Context, gameID string, game pgn.ParsedGame) error {
	for _, detector := range o.registry.All() {
		detection := detector.Detect(game.Moves, game.Header.Result)
		if !detection.Detected {
			continue
		}
		color, ok := detection.InitiatingColor.Get()
		if !ok {
			continue
		}

		success, outcome := detector.ClassifySuccess(detection, game.Header.Result)
		err := o.store.RecordPatternDetection(ctx, chessmodel.PatternDetection{
			GameID:          gameID,
			PatternID:       detector.PatternID(),
			DetectedByColor: color,
			Success:         success,
			Confidence:      detection.Confidence,
			StartPly:        detection.StartPly,
			EndPly:          detection.EndPly,
			Outcome:         chessmodel.Some(outcome),
			Metadata:        detection.Metadata,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
