// Package postgres implements storage.Store on top of a pgx connection pool.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-errands/internal/storage"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	logger zerolog.Logger
	pool   *pgxpool.Pool
	q      querier
}

var _ storage.Store = (*Store)(nil)

func New(logger zerolog.Logger, pool *pgxpool.Pool) *Store {
	return &Store{
		logger: logger,
		pool:   pool,
		q:      pool,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx storage.Store) error) error {
	if _, ok := s.q.(pgx.Tx); ok {
		// Already inside a transaction.
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = fn(&Store{
		logger: s.logger,
		pool:   s.pool,
		q:      tx,
	})
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
