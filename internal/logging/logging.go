// Package logging builds the application logger.
//
// The TUI owns the terminal, so log output goes to a file or nowhere.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	clog "github.com/charmbracelet/log"
)

// Prefix tags every line written by the application logger.
const Prefix = "mathdrill"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An empty level means warn.
func New(w io.Writer, level string) (*clog.Logger, error) {
	lvl := clog.WarnLevel
	if level != "" {
		parsed, err := clog.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	return clog.NewWithOptions(w, clog.Options{
		Prefix:          Prefix,
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *clog.Logger {
	return clog.NewWithOptions(io.Discard, clog.Options{Level: clog.FatalLevel})
}

// OpenFile returns a logger appending to path. The returned closer must be
// closed on exit. An empty path yields a discarding logger.
func OpenFile(path, level string) (*clog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *clog.Logger) *clog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
