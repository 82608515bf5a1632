// Package store is ChessBuddy's persistence layer: a bounded pgxpool.Pool
// plus one file per §3 entity family, implemented against pgx/v5
// (grounded on the pgvector-backed store in
// other_examples/nevindra-oasis's store/postgres/postgres.go). Every
// operation is a single parameterized statement; string-interpolated SQL
// is never built from caller input.
package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HendrikReh/chessbuddy/internal/chesserr"
)

// isNoRows reports whether err is pgx's "no matching row" sentinel,
// distinguished from a real failure so lookups can return (zero, false,
// nil) instead of propagating an error.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// dbpool is the subset of *pgxpool.Pool every operation in this package
// uses. Narrowing to an interface lets *_test.go substitute
// pgxmock.PgxPoolIface, which implements the same methods, without a real
// Postgres connection.
type dbpool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store is the persistence layer (spec §4.6), owning a bounded connection
// pool. The caller creates and closes the pool; Store never does either.
type Store struct {
	pool dbpool
}

// New wraps an already-configured pgxpool.Pool (MaxConns = max_pool_size
// per spec §5; the pool's own acquire/execute/release cycle is the
// bounded-concurrency contract, so no semaphore is layered on top of it).
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// newWithPool wires an already-substitutable dbpool directly, used by
// tests to inject a pgxmock double.
func newWithPool(pool dbpool) *Store {
	return &Store{pool: pool}
}

// Close is a no-op: the caller owns the pool's lifecycle.
func (s *Store) Close() error { return nil }

// HealthReport is the result of a health check (spec §4.6).
type HealthReport struct {
	ServerVersion   string
	CurrentDatabase string
	Extensions      map[string]bool
}

// defaultExtensions is the configurable set spec §4.6 checks by default:
// vector similarity, UUID generation, cryptographic digest.
var defaultExtensions = []string{"vector", "uuid-ossp", "pgcrypto"}

// HealthCheck reports server version, current database, and the
// availability of each extension in exts (defaultExtensions when nil).
func (s *Store) HealthCheck(ctx context.Context, exts []string) (HealthReport, error) {
	if exts == nil {
		exts = defaultExtensions
	}

	var report HealthReport
	report.Extensions = make(map[string]bool, len(exts))

	if err := s.pool.QueryRow(ctx, `SHOW server_version`).Scan(&report.ServerVersion); err != nil {
		return HealthReport{}, &chesserr.DatabaseError{Op: "health_check: server_version", Err: err, Transient: true}
	}
	if err := s.pool.QueryRow(ctx, `SELECT current_database()`).Scan(&report.CurrentDatabase); err != nil {
		return HealthReport{}, &chesserr.DatabaseError{Op: "health_check: current_database", Err: err, Transient: true}
	}

	rows, err := s.pool.Query(ctx, `SELECT extname FROM pg_extension`)
	if err != nil {
		return HealthReport{}, &chesserr.DatabaseError{Op: "health_check: pg_extension", Err: err, Transient: true}
	}
	defer rows.Close()

	installed := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return HealthReport{}, &chesserr.DatabaseError{Op: "health_check: scan extension", Err: err, Transient: true}
		}
		installed[name] = true
	}
	if err := rows.Err(); err != nil {
		return HealthReport{}, &chesserr.DatabaseError{Op: "health_check: iterate extensions", Err: err, Transient: true}
	}

	for _, want := range exts {
		report.Extensions[want] = installed[want]
	}
	return report, nil
}

// wrapDBErr turns a raw pgx error into the closed error taxonomy (spec
// §7); store operations funnel raw database errors through this, except
// HealthCheck, which builds its DatabaseError values (marked transient)
// directly.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &chesserr.DatabaseError{Op: op, Err: err, Transient: false}
}
