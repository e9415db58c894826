package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/store"
)

// DBTX is the statement surface shared by the pool and a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sqlx.DB)(nil)
	_ DBTX = (*sqlx.Tx)(nil)
)

// TxFn is the body of a transaction. Returning an error rolls it back.
type TxFn func(ctx context.Context, tx *sqlx.Tx) error

// RunInTransaction runs fn in a transaction on db and commits if fn succeeds.
// An error from fn is returned as is after rollback. A panic in fn rolls the
// transaction back and is re-raised.
func RunInTransaction(ctx context.Context, db *sqlx.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", store.ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("rollback after panic failed", slog.String("error", rbErr.Error()))
			}
			// ALLOW-PANIC: re-raised after rollback
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("cause", err.Error()))
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		log.Debug("transaction rolled back", slog.String("cause", err.Error()))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", store.ErrTransactionFailed, err)
	}

	return nil
}
