// Package logging builds the slog.Logger shared by listkeep's components.
//
// The TUI owns the terminal, so log records never go to stdout/stderr while it
// runs. They are written to a file when one is configured (log.path or
// LISTKEEP_LOG) and discarded otherwise. LISTKEEP_DEBUG=1 forces debug level.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options selects where records go and at what level.
type Options struct {
	Path  string
	Level string
}

// FromEnv fills unset fields from LISTKEEP_LOG and LISTKEEP_DEBUG.
func (o Options) FromEnv() Options {
	if v := strings.TrimSpace(os.Getenv("LISTKEEP_LOG")); v != "" {
		o.Path = v
	}
	if envBool("LISTKEEP_DEBUG") {
		o.Level = "debug"
	}
	return o
}

// New returns a logger and a close func. With no path the logger discards.
func New(o Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(o.Path) == "" {
		return Discard(), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(o.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("log dir: %w", err)
	}
	f, err := os.OpenFile(o.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return NewWriter(f, level), f.Close, nil
}

// NewWriter logs text records at level to w.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", s)
	}
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}
