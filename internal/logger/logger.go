// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package logger holds the process-wide slog.Logger shared by ggview and
// all of its sub-packages.
//
// The root package re-exports SetLogger and Logger; sub-packages read the
// logger from here so that no package has to import the root.
package logger

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNop() *slog.Logger { return slog.New(nopHandler{}) }

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(newNop())
}

// Set stores l as the active logger. A nil logger restores the silent default.
func Set(l *slog.Logger) {
	if l == nil {
		l = newNop()
	}
	current.Store(l)
}

// Get returns the active logger. It never returns nil.
func Get() *slog.Logger {
	return current.Load()
}
