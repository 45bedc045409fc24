// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package frost

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false, so callers skip
// attribute formatting entirely.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return h }
func (h discardHandler) WithGroup(string) slog.Handler           { return h }

var (
	silent = slog.New(discardHandler{})
	logger atomic.Pointer[slog.Logger]
)

func init() { logger.Store(silent) }

// SetLogger sets the logger shared by frost and its sub-packages. Nothing is
// logged until SetLogger is called; nil restores the silent default.
//
// Levels:
//   - [slog.LevelDebug]: capture buffer allocation, rebinding, algorithm swaps, panel moves
//   - [slog.LevelInfo]: GPU device selection
//   - [slog.LevelWarn]: unsupported buffer formats, failed GPU uploads, GPU blur fallback
//
// Example:
//
//	frost.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
//
// SetLogger may be called while other goroutines are logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by SetLogger. The gpu and view packages log
// through it.
func Logger() *slog.Logger { return logger.Load() }
