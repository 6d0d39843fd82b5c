package common

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger installs the logger shared by every engine package.
// The engine is silent until this is called. Passing nil restores the silent default.
//
// Log levels in use:
//   - slog.LevelDebug: per-frame diagnostics (dropped lights, buffer sizes)
//   - slog.LevelInfo: lifecycle events (adapter selected, config reloaded)
//   - slog.LevelWarn: recoverable problems (skipped frames, fallback LTC tables)
//   - slog.LevelError: fatal startup failures
//
// Parameters:
//   - l: the logger to install, or nil to disable logging
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the shared engine logger. Safe for concurrent use.
//
// Returns:
//   - *slog.Logger: the active logger, never nil
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// LoggerOr returns l when it is non-nil and the shared engine logger otherwise.
// Components that accept a WithLogger option resolve their logger through this.
//
// Parameters:
//   - l: an explicitly configured logger, possibly nil
//
// Returns:
//   - *slog.Logger: the logger to use
func LoggerOr(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Logger()
}

// ParseLogLevel maps a config string to a slog level. Unknown strings map to info.
//
// Parameters:
//   - level: one of "debug", "info", "warn", "error" (case-sensitive)
//
// Returns:
//   - slog.Level: the matching level
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
