package trellis

import (
	"context"
	"io"
	"log/slog"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// NewLogger returns a text logger writing to w at the level named by
// cfg.LogLevel. An unparsable level falls back to info.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	lvl, _ := cfg.SlogLevel()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// SetLogger configures the tree's logger. By default a tree produces no log
// output. Pass nil to restore the silent default.
//
// Log levels used:
//   - [slog.LevelDebug]: focus transfers, drag start/stop, reorders,
//     disposal, per-frame redraw stats in debug mode
//   - [slog.LevelInfo]: window start, screenshots written
//   - [slog.LevelWarn]: dropped focus requests, tab traversal with no
//     candidate, tree-shape warnings in debug mode
//
// Example:
//
//	tree.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func (t *Tree) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	t.logger = l
}

// Logger returns the tree's logger.
func (t *Tree) Logger() *slog.Logger { return t.logger }
