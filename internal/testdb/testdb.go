package testdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/commander-api/internal/platform/migrations"
	"github.com/phrazzld/commander-api/internal/platform/postgres"
	"github.com/phrazzld/commander-api/internal/platform/sqlite"
)

// TestTimeout bounds fixture setup.
const TestTimeout = 10 * time.Second

// DatabaseURL returns the PostgreSQL URL integration tests run against.
// COMMANDER_TEST_DATABASE_URL takes precedence over DATABASE_URL.
func DatabaseURL() string {
	if url := os.Getenv("COMMANDER_TEST_DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("DATABASE_URL")
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL database is
// available for tests.
func IsIntegrationTestEnvironment() bool {
	return DatabaseURL() != ""
}

// OpenSQLite returns a migrated SQLite database in a temporary directory.
func OpenSQLite(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "commander.db"))
	require.NoError(t, err, "failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Run(ctx, db.DB, migrations.DialectSQLite, "up", nil),
		"failed to migrate sqlite database")
	return db
}

// OpenPostgres returns a migrated PostgreSQL connection with an empty
// commands table, or skips the test when no database is configured.
func OpenPostgres(t *testing.T) *sqlx.DB {
	t.Helper()
	if !IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL not set, skipping PostgreSQL test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, DatabaseURL(), 4)
	require.NoError(t, err, "failed to connect to postgres")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Run(ctx, db.DB, migrations.DialectPostgres, "up", nil),
		"failed to migrate postgres database")

	_, err = db.ExecContext(ctx, "TRUNCATE commands RESTART IDENTITY")
	require.NoError(t, err, "failed to reset commands table")
	return db
}
