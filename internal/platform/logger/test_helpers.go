package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
)

// TestLogBuffer captures JSON log lines written during a test. It is safe
// for concurrent writers.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// GetLogEntries decodes the captured output, one entry per line.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]any, error) {
	var entries []map[string]any

	scanner := bufio.NewScanner(bytes.NewBufferString(b.String()))
	for line := 1; scanner.Scan(); line++ {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("log line %d: %w", line, err)
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// SetupTestLogger returns a debug-level JSON logger that writes into a
// TestLogBuffer. The logger is the slog default until the test ends.
func SetupTestLogger(t *testing.T) (*TestLogBuffer, *slog.Logger) {
	t.Helper()

	buf := &TestLogBuffer{}
	l := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	previous := slog.Default()
	slog.SetDefault(l)
	t.Cleanup(func() { slog.SetDefault(previous) })

	return buf, l
}
