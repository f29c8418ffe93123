// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"image/color"

	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/ggview/scene"
	"golang.org/x/image/math/f64"
)

// Common backend errors.
var (
	// ErrModuleNotFound is returned when a module name is not registered.
	ErrModuleNotFound = errors.New("backend: module not found")

	// ErrNoView is returned when a device has no view at the requested index.
	ErrNoView = errors.New("backend: no view")
)

// Module is a loadable rendering engine.
type Module interface {
	// Name returns the module identifier (e.g. "software").
	Name() string

	// CreateDevice creates a new, unconfigured rendering device.
	CreateDevice() (Device, error)

	// CreateContext binds a scene database for rendering.
	CreateContext(db scene.Database) (Context, error)

	// SetupLayoutViews creates and attaches views for the database's
	// active layout. The returned helper must be told about viewport
	// changes and released before the context.
	SetupLayoutViews(dev Device, ctx Context) (LayoutHelper, error)
}

// Device renders views into a pixel buffer.
//
// A device owns its views. It is bound to at most one context and, in
// offscreen mode, draws into the buffer published under PropSurface.
type Device interface {
	// CreateView returns a new view that is not yet attached.
	CreateView() (View, error)

	// AddView attaches v to the device.
	AddView(v View) error

	// ViewAt returns the view at index i, or nil.
	ViewAt(i int) View

	// NumViews returns the number of attached views.
	NumViews() int

	// EraseAllViews detaches every view.
	EraseAllViews()

	// OnSize informs the device of the viewport rectangle.
	OnSize(rect geom.DeviceRect) error

	// Update renders all views.
	Update() error

	// Snapshot returns the last rendered frame clipped to rect.
	Snapshot(rect geom.DeviceRect) (*render.RasterFrame, error)

	// Properties returns the device's configuration bag.
	Properties() *Properties

	// Release frees the device. It must not be used afterwards.
	Release()
}

// PixelTarget is the value bound under PropSurface. Devices draw into the
// frame it returns when its size matches the viewport.
type PixelTarget interface {
	Frame() *render.RasterFrame
}

// Context binds a scene database to a device.
type Context interface {
	// Database returns the bound database.
	Database() scene.Database

	// Release unbinds the database.
	Release()
}

// LayoutHelper keeps the views created by SetupLayoutViews in sync with
// the viewport.
type LayoutHelper interface {
	OnSize(rect geom.DeviceRect) error
	Release()
}

// View is a camera looking at content.
type View interface {
	// Camera returns the current camera.
	Camera() Camera

	// SetCamera replaces the camera.
	SetCamera(c Camera) error

	// ZoomExtents fits the camera to the box [min, max].
	ZoomExtents(min, max f64.Vec3) error

	// Add binds the content of root, resolved through ctx.
	Add(root *scene.Block, ctx Context) error
}

// Zoomer is implemented by views that scale their camera natively.
//
// A factor above 1 zooms in: the field of view shrinks by that factor.
type Zoomer interface {
	Zoom(factor float64) error
}

// RenderMode selects how a view draws geometry.
type RenderMode uint8

const (
	// ModeWireframe draws entity outlines.
	ModeWireframe RenderMode = iota
	// ModeHiddenLine draws outlines with hidden lines removed.
	ModeHiddenLine
	// ModeShaded fills closed geometry.
	ModeShaded
)

// String returns the mode name.
func (m RenderMode) String() string {
	switch m {
	case ModeWireframe:
		return "Wireframe"
	case ModeHiddenLine:
		return "HiddenLine"
	case ModeShaded:
		return "Shaded"
	default:
		return "Unknown"
	}
}

// Camera describes a view's eye.
//
// The field extents are measured in world units at the target plane.
type Camera struct {
	Position    f64.Vec3
	Target      f64.Vec3
	Up          f64.Vec3
	FieldWidth  float64
	FieldHeight float64
	Mode        RenderMode
}

// DefaultCamera returns a top-down camera over the unit square.
func DefaultCamera() Camera {
	return Camera{
		Position:    f64.Vec3{0.5, 0.5, 1},
		Target:      f64.Vec3{0.5, 0.5, 0},
		Up:          f64.Vec3{0, 1, 0},
		FieldWidth:  1,
		FieldHeight: 1,
	}
}

// Scaled returns the camera zoomed by factor around its target.
// Target and up vector are unchanged.
func (c Camera) Scaled(factor float64) Camera {
	c.Position = geom.Add(c.Target, geom.Scale(geom.Sub(c.Position, c.Target), 1/factor))
	c.FieldWidth /= factor
	c.FieldHeight /= factor
	return c
}

// Fitted returns the camera centered on [min, max] with a field that
// covers the box at the given width/height aspect.
func (c Camera) Fitted(min, max f64.Vec3, aspect float64) Camera {
	center := geom.Scale(geom.Add(min, max), 0.5)
	dir := geom.Sub(c.Position, c.Target)
	if geom.Length(dir) == 0 {
		dir = f64.Vec3{0, 0, 1}
	}
	c.Target = center
	c.Position = geom.Add(center, dir)

	w := max[0] - min[0]
	h := max[1] - min[1]
	if aspect <= 0 {
		aspect = 1
	}
	if h <= 0 || w/h > aspect {
		h = w / aspect
	} else {
		w = h * aspect
	}
	c.FieldWidth = w
	c.FieldHeight = h
	return c
}

// Background is the default device clear color.
var Background = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
