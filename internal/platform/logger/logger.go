package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/commander-api/internal/config"
)

type contextKey struct{}

// ParseLevel converts a configured level name (case-insensitive) to a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// Setup initializes the application's logging system based on the provided
// configuration. It creates a JSON logger writing to stdout and sets it as
// the default logger, so package-level slog calls share its settings.
//
// An unknown log level falls back to info and is reported as a warning.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit output.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		return nil, fmt.Errorf("log writer cannot be nil")
	}

	level, err := ParseLevel(cfg.LogLevel)

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	l := slog.New(handler)
	slog.SetDefault(l)

	if err != nil {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	return l, nil
}

// WithLogger returns a copy of ctx carrying the given logger.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	if l == nil {
		// ALLOW-PANIC: programming error, a nil logger would panic later anyway
		panic("logger cannot be nil")
	}
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback when ctx
// is nil or carries no logger.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx == nil {
		return fallback
	}
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return fallback
}
