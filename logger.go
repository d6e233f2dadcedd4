package dressup

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all log records. Enabled returns false so callers
// skip record formatting entirely, keeping disabled logging near-free.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// loggerPtr holds the active logger. Stored atomically so SetLogger may be
// called while renders are in flight on other goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	l := slog.New(nopHandler{})
	loggerPtr.Store(l)
}

// SetLogger configures logging for the engine and all its subpackages.
// By default the engine is silent. Pass nil to restore that default.
//
// Levels used by the engine:
//   - slog.LevelDebug: per-sprite pipeline detail (keying, placement)
//   - slog.LevelInfo: lifecycle events (catalog loaded, scene swapped)
//   - slog.LevelWarn: recoverable failures (bitmap load → placeholder)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the engine's current logger. Subpackages call this so the
// whole module shares one configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
