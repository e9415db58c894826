package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/commander-api/internal/config"
	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/platform/memory"
	"github.com/phrazzld/commander-api/internal/platform/migrations"
	"github.com/phrazzld/commander-api/internal/platform/postgres"
	"github.com/phrazzld/commander-api/internal/platform/sqlite"
	"github.com/phrazzld/commander-api/internal/store"
)

// application holds the shared dependencies of a running server so that
// they can be released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil for the memory backend.
	db *sqlx.DB

	commandStore store.CommandStore
}

// runServer wires the application from cfg and serves until ctx is
// canceled or a termination signal arrives.
func runServer(ctx context.Context, cfg *config.Config) error {
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("storage", cfg.Database.Storage))

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// newApplication opens the configured storage backend and, for SQL
// backends, applies pending migrations when auto_migrate is enabled.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
	}

	db, dialect, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	app.db = db

	switch cfg.Database.Storage {
	case config.StorageMemory:
		app.commandStore = memory.NewCommandStore(log)
	case config.StoragePostgres:
		app.commandStore = postgres.NewCommandStore(db, log)
	case config.StorageSQLite:
		app.commandStore = sqlite.NewCommandStore(db, log)
	}

	if db != nil && cfg.Database.AutoMigrate {
		if err := migrations.Run(ctx, db.DB, dialect, "up", log); err != nil {
			app.cleanup()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	log.Info("Application initialized", slog.String("storage", cfg.Database.Storage))
	return app, nil
}

// openDatabase connects to the SQL backend named by cfg and returns the
// goose dialect its migrations use. The memory backend has no database.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, string, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return nil, "", nil
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.URL, cfg.MaxOpenConns)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, migrations.DialectPostgres, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, migrations.DialectSQLite, nil
	default:
		return nil, "", fmt.Errorf("unsupported storage backend: %q", cfg.Storage)
	}
}

// errNoDatabase is returned by commands that need a SQL backend.
var errNoDatabase = errors.New("the memory storage backend has no database")

// cleanup releases the application's resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("Application shutdown completed")
}
