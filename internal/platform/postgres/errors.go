package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/commander-api/internal/store"
)

// sqlStateErrors maps the SQLSTATE codes a commands write can raise to the
// store error they represent.
var sqlStateErrors = map[string]struct {
	err  error
	what string
}{
	"23505": {store.ErrDuplicate, "unique violation"},
	"23514": {store.ErrInvalidEntity, "check violation"},
	"23502": {store.ErrInvalidEntity, "not null violation"},
	"22001": {store.ErrInvalidEntity, "value too long"},
}

// MapError translates a PostgreSQL error into a store error. The result
// wraps both, so errors.As still finds the *pgconn.PgError. Unrecognized
// errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	mapped, ok := sqlStateErrors[pgErr.Code]
	if !ok {
		return err
	}

	detail := pgErr.ConstraintName
	if detail == "" {
		detail = pgErr.ColumnName
	}
	if detail != "" {
		return fmt.Errorf("%w: %s on %s: %w", mapped.err, mapped.what, detail, err)
	}
	return fmt.Errorf("%w: %s: %w", mapped.err, mapped.what, err)
}
