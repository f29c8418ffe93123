// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindTransientRender, "TransientRenderFailure"},
		{KindBackendUnavailable, "BackendUnavailable"},
		{KindContextSetup, "ContextSetupFailure"},
		{KindInvalidViewport, "InvalidViewport"},
		{KindOverflowGuard, "OverflowGuard"},
		{KindUnsupportedFormat, "UnsupportedFormat"},
		{Kind(200), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestErrorIs(t *testing.T) {
	err := Errorf(KindOverflowGuard, "present.toDisplay", "stride %d too large", 1<<20)
	if !errors.Is(err, ErrOverflowGuard) {
		t.Error("errors.Is(err, ErrOverflowGuard) = false, want true")
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Error("errors.Is(err, ErrUnsupportedFormat) = true, want false")
	}

	wrapped := fmt.Errorf("paint: %w", err)
	if !errors.Is(wrapped, ErrOverflowGuard) {
		t.Error("wrapped error lost its kind")
	}
	if KindOf(wrapped) != KindOverflowGuard {
		t.Errorf("KindOf() = %v, want %v", KindOf(wrapped), KindOverflowGuard)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(KindContextSetup, "op", nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap(KindContextSetup, "device.initialize", io.ErrUnexpectedEOF)
	if !errors.Is(err, ErrContextSetup) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Wrap() = %v, want ContextSetup wrapping io.ErrUnexpectedEOF", err)
	}

	// Existing kinds are kept.
	inner := Errorf(KindBackendUnavailable, "backend.load", "no module")
	if got := Wrap(KindContextSetup, "device.initialize", inner); KindOf(got) != KindBackendUnavailable {
		t.Errorf("Wrap() changed kind to %v", KindOf(got))
	}

	if KindOf(io.EOF) != KindTransientRender {
		t.Errorf("KindOf(unclassified) = %v, want %v", KindOf(io.EOF), KindTransientRender)
	}
}

func TestErrorMessage(t *testing.T) {
	err := Errorf(KindInvalidViewport, "device.paint", "1x480")
	msg := err.Error()
	for _, part := range []string{"InvalidViewport", "device.paint", "1x480"} {
		if !strings.Contains(msg, part) {
			t.Errorf("Error() = %q, missing %q", msg, part)
		}
	}
}

func TestRecovered(t *testing.T) {
	err := Recovered(KindTransientRender, "device.update", "boom")
	if !errors.Is(err, ErrTransientRender) || !strings.Contains(err.Error(), "boom") {
		t.Errorf("Recovered(string) = %v", err)
	}

	err = Recovered(KindContextSetup, "device.initialize", io.ErrClosedPipe)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Errorf("Recovered(error) should wrap the panic value, got %v", err)
	}
}
