// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"image/color"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/navigator"
	"github.com/gogpu/ggview/present"
	"github.com/gogpu/ggview/surface"
)

// Option configures a Manager.
type Option func(*Manager)

// WithBackend selects the backend module by name.
func WithBackend(name string) Option {
	return func(m *Manager) {
		m.moduleName = name
	}
}

// WithRegistry sets the registry modules are loaded from.
func WithRegistry(r *backend.Registry) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// WithStrategy selects the view setup strategy.
func WithStrategy(s Strategy) Option {
	return func(m *Manager) {
		m.strategy = s
	}
}

// WithTarget selects offscreen or on-screen drawing.
func WithTarget(t Target) Option {
	return func(m *Manager) {
		m.target = t
	}
}

// WithPlatform sets the platform offscreen surfaces are allocated on.
func WithPlatform(p surface.Platform) Option {
	return func(m *Manager) {
		m.platform = p
	}
}

// WithWindowHandle binds a host window for TargetOnScreen.
func WithWindowHandle(h any) Option {
	return func(m *Manager) {
		m.window = h
	}
}

// WithNavigator sets the navigator used for fitting and zooming.
func WithNavigator(n *navigator.Navigator) Option {
	return func(m *Manager) {
		if n != nil {
			m.nav = n
		}
	}
}

// WithPresenter sets the frame presenter.
func WithPresenter(p *present.Presenter) Option {
	return func(m *Manager) {
		if p != nil {
			m.presenter = p
		}
	}
}

// WithBackground sets the device clear color.
func WithBackground(c color.RGBA) Option {
	return func(m *Manager) {
		m.background = c
	}
}

// WithDoubleBuffer enables double buffering on the device.
func WithDoubleBuffer(enabled bool) Option {
	return func(m *Manager) {
		m.doubleBuffer = enabled
	}
}

// WithPalette sets the logical palette given to devices that report none.
func WithPalette(p color.Palette) Option {
	return func(m *Manager) {
		m.palette = p
	}
}
