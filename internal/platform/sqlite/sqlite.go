// Package sqlite wires the SQL command store to an embedded SQLite database
// through the pure-Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/phrazzld/commander-api/internal/platform/sqldb"
	"github.com/phrazzld/commander-api/internal/store"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

// Dialect is the SQL dialect used for SQLite databases.
var Dialect = sqldb.Dialect{
	Name:      "sqlite3",
	Returning: false,
	MapError:  MapError,
}

// Open opens the SQLite database at path with foreign keys and WAL enabled.
// SQLite allows a single writer, so the pool is limited to one connection.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite database path is required")
	}

	dsn := filepath.Clean(path) +
		"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sqlx.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	return db, nil
}

// NewCommandStore returns a command store backed by db.
func NewCommandStore(db *sqlx.DB, logger *slog.Logger) *sqldb.CommandStore {
	return sqldb.NewCommandStore(db, Dialect, logger)
}

// MapError translates SQLite constraint errors into store errors.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
		case sqlite3lib.SQLITE_CONSTRAINT_NOTNULL, sqlite3lib.SQLITE_CONSTRAINT_CHECK,
			sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}
