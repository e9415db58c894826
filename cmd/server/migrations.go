package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phrazzld/commander-api/internal/config"
	"github.com/phrazzld/commander-api/internal/platform/logger"
	"github.com/phrazzld/commander-api/internal/platform/migrations"
)

func newMigrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:       fmt.Sprintf("migrate <%s>", strings.Join(migrations.Commands, "|")),
		Short:     "Manage the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: migrations.Commands,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, args[0])
		},
	}
}

// runMigrations executes a goose command against the configured database.
func runMigrations(ctx context.Context, cfg *config.Config, command string) error {
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	if !cfg.Database.UsesSQL() {
		return fmt.Errorf("cannot run migrations: %w", errNoDatabase)
	}

	log.Info("Executing migrations",
		slog.String("command", command),
		slog.String("storage", cfg.Database.Storage),
		slog.String("database_url", maskDatabaseURL(cfg.Database.URL)))

	db, dialect, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return migrations.Run(ctx, db.DB, dialect, command, log)
}

// maskDatabaseURL hides the password of a connection URL so that it can be
// logged. Values that are not URLs, such as SQLite file paths, are returned
// unchanged.
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
