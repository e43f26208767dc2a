// Package repo contains all database access logic for the itinerary API.
// Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repos bundles all per-entity repositories over one db handle. When the
// handle is a transaction, every operation through the bundle is part of
// that transaction.
type Repos struct {
	Trips     TripRepo
	Days      DayRepo
	Events    EventRepo
	Stays     StayRepo
	Transfers TransferRepo
	Links     LinkRepo
}

// NewRepos builds a Repos bundle over the given handle.
func NewRepos(d db) Repos {
	return Repos{
		Trips:     NewTripRepo(d),
		Days:      NewDayRepo(d),
		Events:    NewEventRepo(d),
		Stays:     NewStayRepo(d),
		Transfers: NewTransferRepo(d),
		Links:     NewLinkRepo(d),
	}
}

// Store owns the connection pool and hands out repo bundles. Mutating
// service operations that touch more than one row (day rescheduling, stay
// deletion with reassignment, transfer upserts) run inside WithTx so partial
// application is never observable.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore constructs a Store over the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Repos returns a pool-backed bundle for single-statement reads and writes.
func (s *Store) Repos() Repos {
	return NewRepos(s.pool)
}

// WithTx runs fn with a Repos bundle bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Store.WithTx: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Store.WithTx: commit: %w", err)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}
