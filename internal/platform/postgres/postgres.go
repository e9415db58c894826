package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/commander-api/internal/platform/sqldb"
)

// DriverName is the database/sql driver registered by pgx.
const DriverName = "pgx"

// Dialect is the SQL dialect used for PostgreSQL databases.
var Dialect = sqldb.Dialect{
	Name:      "postgres",
	Returning: true,
	MapError:  MapError,
}

// Open establishes a connection pool to the database at url and verifies it
// with a ping.
func Open(ctx context.Context, url string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(max(1, maxOpenConns/2))
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewCommandStore returns a command store backed by db.
func NewCommandStore(db *sqlx.DB, logger *slog.Logger) *sqldb.CommandStore {
	return sqldb.NewCommandStore(db, Dialect, logger)
}
