// Package postgres implements RepositoryStore on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/regmig/pkg/repository"
	"github.com/m-mizutani/regmig/pkg/utils/logging"
)

// Store is a PostgreSQL-backed RepositoryStore. Count queries of the observer go to the replica
// when one is configured and fall back to the primary if the replica fails.
type Store struct {
	db      *sql.DB
	replica *sql.DB
}

type Option func(*Store)

func WithReplica(replica *sql.DB) Option {
	return func(s *Store) {
		s.replica = replica
	}
}

func New(db *sql.DB, options ...Option) *Store {
	s := &Store{db: db}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Open connects to the primary database and verifies the connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping database")
	}
	return db, nil
}

// DB returns the primary connection so that the lease and job tracker can share it.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	var errs []error
	if s.replica != nil {
		errs = append(errs, s.replica.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

// readWithReplica runs fn on the replica and retries it on the primary if the replica fails.
func (s *Store) readWithReplica(ctx context.Context, fn func(db *sql.DB) error) error {
	if s.replica != nil {
		err := fn(s.replica)
		if err == nil {
			return nil
		}
		logging.From(ctx).Warn("replica query failed, falling back to primary", "error", err)
	}
	return fn(s.db)
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func wrapQueryError(err error, msg string, values ...goerr.Option) error {
	if errors.Is(err, sql.ErrNoRows) {
		return goerr.Wrap(repository.ErrNotFound, msg, values...)
	}
	return goerr.Wrap(err, msg, values...)
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func timeOf(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}
