package pathcov

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/pathcov/tessellate"
	"github.com/gogpu/pathcov/vertexfill"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for pathcov and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: fast-path selection, cache traffic, op choice
//   - [slog.LevelWarn]: fallbacks (declined filters, failed triangulation)
//
// SetLogger is safe for concurrent use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	tessellate.SetLogger(l)
	vertexfill.SetLogger(l)
}

// Logger returns the current logger. Sub-packages that already import
// pathcov use it directly.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
