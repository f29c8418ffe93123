// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package navigator applies zoom input to a view's camera.
package navigator

import (
	"log/slog"
	"math"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/internal/logger"
)

// DefaultStep is the zoom factor applied per wheel notch.
const DefaultStep = 1.1

// minFactor is the factor magnitude below which zooming is skipped.
const minFactor = 1e-6

// Redrawer is notified after the camera changed.
// gpucontext.WindowProvider satisfies it.
type Redrawer interface {
	RequestRedraw()
}

// Navigator zooms views in fixed steps.
//
// Navigator is not safe for concurrent use.
type Navigator struct {
	step     float64
	redrawer Redrawer
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithStep sets the per-notch zoom factor. Values not above 1 are ignored.
func WithStep(step float64) Option {
	return func(n *Navigator) {
		if step > 1 && !math.IsInf(step, 0) {
			n.step = step
		}
	}
}

// WithRedrawer sets the redraw target.
func WithRedrawer(r Redrawer) Option {
	return func(n *Navigator) {
		n.redrawer = r
	}
}

// New returns a navigator with DefaultStep.
func New(opts ...Option) *Navigator {
	n := &Navigator{step: DefaultStep}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Step returns the per-notch zoom factor.
func (n *Navigator) Step() float64 {
	return n.step
}

// SetRedrawer replaces the redraw target. A nil r disables notifications.
func (n *Navigator) SetRedrawer(r Redrawer) {
	n.redrawer = r
}

// Zoom handles one wheel signal and reports whether it was consumed.
//
// A positive signal zooms out by step and a negative one zooms in. Zero is
// not consumed. Only the sign of the signal matters. A redraw is requested
// after the view changed.
func (n *Navigator) Zoom(view backend.View, signal float64) bool {
	if view == nil || signal == 0 || math.IsNaN(signal) {
		return false
	}
	factor := n.step
	if signal > 0 {
		factor = 1 / n.step
	}
	if err := n.Scale(view, factor); err != nil {
		logger.Get().Warn("navigator: zoom failed", slog.Any("error", err))
		return true
	}
	if n.redrawer != nil {
		n.redrawer.RequestRedraw()
	}
	return true
}

// Scale zooms view by factor: above 1 shrinks the field of view, below 1
// widens it. Factors too close to zero leave the view unchanged. Scale
// does not request a redraw.
func (n *Navigator) Scale(view backend.View, factor float64) error {
	if view == nil || math.Abs(factor) < minFactor {
		return nil
	}
	if z, ok := view.(backend.Zoomer); ok {
		return z.Zoom(factor)
	}
	return view.SetCamera(view.Camera().Scaled(factor))
}
