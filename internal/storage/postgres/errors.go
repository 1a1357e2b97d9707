package postgres

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/adanyl0v/go-errands/internal/storage"
)

// translateError maps constraint violations onto storage errors and
// returns every other error unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.ForeignKeyViolation:
		return storage.ErrReferenceNotFound
	case pgerrcode.UniqueViolation, pgerrcode.SerializationFailure:
		return storage.ErrConflict
	default:
		return err
	}
}
