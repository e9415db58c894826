// Package migrations embeds the database schema and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
)

// TableName is the table goose uses to track applied versions.
const TableName = "schema_migrations"

// Dialects with embedded migrations. The names double as goose dialects
// and as directory names inside the embedded filesystem.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Commands lists the supported migration commands.
var Commands = []string{"up", "down", "status", "version", "reset"}

//go:embed postgres/*.sql sqlite3/*.sql
var embedded embed.FS

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Run executes a goose command against db using the migrations embedded for
// dialect. Every log line of the run carries the same correlation_id.
func Run(ctx context.Context, db *sql.DB, dialect, command string, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(
		slog.String("correlation_id", uuid.New().String()),
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", dialect),
	)

	if dialect != DialectPostgres && dialect != DialectSQLite {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedded)
	goose.SetTableName(TableName)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	start := time.Now()
	log.Info("starting migration operation")

	var err error
	switch command {
	case "up":
		err = goose.UpContext(ctx, db, dialect)
	case "down":
		err = goose.DownContext(ctx, db, dialect)
	case "reset":
		err = goose.ResetContext(ctx, db, dialect)
	case "status":
		err = goose.StatusContext(ctx, db, dialect)
	case "version":
		err = goose.VersionContext(ctx, db, dialect)
	default:
		log.Error("unknown migration command", slog.Any("valid_commands", Commands))
		return fmt.Errorf("unknown migration command: %s (expected one of %v)", command, Commands)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// Version returns the current schema version of db.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return version, nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. Unlike goose's default logger it does not
// exit; the failure is returned to the caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
