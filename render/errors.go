// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure. Every kind is non-fatal: the frame
// is skipped and the host keeps running.
type Kind uint8

const (
	// KindTransientRender covers backend-reported or unrecognized failures
	// during render or snapshot.
	KindTransientRender Kind = iota

	// KindBackendUnavailable means the backend module or its device could
	// not be created.
	KindBackendUnavailable

	// KindContextSetup means context, view or layout binding failed.
	KindContextSetup

	// KindInvalidViewport means a viewport dimension is below 2 pixels.
	KindInvalidViewport

	// KindOverflowGuard means stride * height exceeds the safe allocation size.
	KindOverflowGuard

	// KindUnsupportedFormat means the color depth is neither 24 nor 32 bits.
	KindUnsupportedFormat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindTransientRender:
		return "TransientRenderFailure"
	case KindBackendUnavailable:
		return "BackendUnavailable"
	case KindContextSetup:
		return "ContextSetupFailure"
	case KindInvalidViewport:
		return "InvalidViewport"
	case KindOverflowGuard:
		return "OverflowGuard"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is matching against a Kind.
var (
	ErrTransientRender    = &Error{Kind: KindTransientRender}
	ErrBackendUnavailable = &Error{Kind: KindBackendUnavailable}
	ErrContextSetup       = &Error{Kind: KindContextSetup}
	ErrInvalidViewport    = &Error{Kind: KindInvalidViewport}
	ErrOverflowGuard      = &Error{Kind: KindOverflowGuard}
	ErrUnsupportedFormat  = &Error{Kind: KindUnsupportedFormat}
)

// Error is a classified pipeline error.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "device.initialize"
	Err  error  // underlying cause, may be nil
}

// Errorf builds an Error of the given kind with a formatted cause.
// A %w verb in format is honored.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap classifies err. It returns nil when err is nil and keeps an existing
// Error's kind when err already carries one.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	msg := "render: " + e.Kind.String()
	if e.Op != "" {
		msg += " in " + e.Op
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so the package sentinels work
// with errors.Is regardless of Op and cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind carried by err, or KindTransientRender for
// unclassified errors.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindTransientRender
}

// Recovered converts a recovered panic value into an Error of the given kind.
func Recovered(kind Kind, op string, v any) error {
	if err, ok := v.(error); ok {
		return &Error{Kind: kind, Op: op, Err: fmt.Errorf("panic: %w", err)}
	}
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("panic: %v", v)}
}
