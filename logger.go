// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggview

import (
	"log/slog"

	"github.com/gogpu/ggview/internal/logger"
)

// SetLogger configures the logger for ggview and all its sub-packages.
// By default, ggview produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ggview:
//   - [slog.LevelDebug]: per-frame diagnostics (sizes, strides, copy path)
//   - [slog.LevelInfo]: lifecycle events (device ready, torn down)
//   - [slog.LevelWarn]: non-fatal issues (skipped frame, setup failure)
//
// Example:
//
//	ggview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Set(l)
}

// Logger returns the current logger used by ggview.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logger.Get()
}
