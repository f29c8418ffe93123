// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggview

import (
	"image/color"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/config"
	"github.com/gogpu/ggview/device"
	"github.com/gogpu/ggview/present"
	"github.com/gogpu/ggview/surface"
	"github.com/gogpu/gpucontext"
)

// Option configures an Item during creation.
//
// Example:
//
//	// Default: software backend, layout views, offscreen surface
//	item := ggview.NewItem(db)
//
//	// Manual view drawn straight into the host window
//	item := ggview.NewItem(db,
//	    ggview.WithStrategy(device.StrategyManual),
//	    ggview.WithTarget(device.TargetOnScreen),
//	    ggview.WithWindow(window))
type Option func(*itemOptions)

// itemOptions holds optional configuration for Item creation.
type itemOptions struct {
	backend      string
	registry     *backend.Registry
	strategy     device.Strategy
	target       device.Target
	snapshot     present.SnapshotMode
	zoomStep     float64
	platform     surface.Platform
	window       gpucontext.WindowProvider
	background   color.RGBA
	doubleBuffer bool
}

// defaultOptions returns the default item options.
func defaultOptions() itemOptions {
	cfg := config.Default()
	return itemOptions{
		backend:    cfg.Backend,
		strategy:   cfg.StrategyValue(),
		target:     cfg.TargetValue(),
		snapshot:   cfg.SnapshotValue(),
		zoomStep:   cfg.ZoomStep,
		background: cfg.BackgroundValue(),
	}
}

// WithBackend selects the backend module by registry name.
func WithBackend(name string) Option {
	return func(o *itemOptions) {
		o.backend = name
	}
}

// WithRegistry sets the registry backend modules are loaded from.
// The default is backend.Default.
func WithRegistry(r *backend.Registry) Option {
	return func(o *itemOptions) {
		o.registry = r
	}
}

// WithStrategy selects how the active view is created.
func WithStrategy(s device.Strategy) Option {
	return func(o *itemOptions) {
		o.strategy = s
	}
}

// WithTarget selects whether the device draws offscreen or into the window.
func WithTarget(t device.Target) Option {
	return func(o *itemOptions) {
		o.target = t
	}
}

// WithSnapshotMode selects how rendered pixels are read back.
func WithSnapshotMode(m present.SnapshotMode) Option {
	return func(o *itemOptions) {
		o.snapshot = m
	}
}

// WithZoomStep sets the per-notch zoom step. Values not greater than 1
// are ignored.
func WithZoomStep(step float64) Option {
	return func(o *itemOptions) {
		o.zoomStep = step
	}
}

// WithPlatform sets the platform offscreen surfaces are allocated on.
func WithPlatform(p surface.Platform) Option {
	return func(o *itemOptions) {
		o.platform = p
	}
}

// WithWindow binds the host window. It receives redraw requests after
// zooming and serves as the window handle for device.TargetOnScreen.
func WithWindow(w gpucontext.WindowProvider) Option {
	return func(o *itemOptions) {
		o.window = w
	}
}

// WithBackground sets the clear color.
func WithBackground(c color.RGBA) Option {
	return func(o *itemOptions) {
		o.background = c
	}
}

// WithDoubleBuffer enables double buffering on the device.
func WithDoubleBuffer(enabled bool) Option {
	return func(o *itemOptions) {
		o.doubleBuffer = enabled
	}
}

// WithConfig applies every setting of cfg. Later options override it.
// cfg is expected to be valid; see config.Config.Validate.
func WithConfig(cfg config.Config) Option {
	return func(o *itemOptions) {
		o.backend = cfg.Backend
		o.strategy = cfg.StrategyValue()
		o.target = cfg.TargetValue()
		o.snapshot = cfg.SnapshotValue()
		o.zoomStep = cfg.ZoomStep
		o.background = cfg.BackgroundValue()
		o.doubleBuffer = cfg.DoubleBuffer
	}
}
