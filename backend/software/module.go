// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/scene"
	"golang.org/x/image/math/f64"
)

// Errors returned by the software module.
var (
	// ErrReleased is returned when a released object is used.
	ErrReleased = errors.New("software: released")

	// ErrNoContent is returned when there is nothing to snapshot or fit.
	ErrNoContent = errors.New("software: no content")

	// ErrForeignObject is returned when a device, view or context created
	// by another module is passed in.
	ErrForeignObject = errors.New("software: object belongs to another module")

	// ErrNilDatabase is returned by CreateContext for a nil database.
	ErrNilDatabase = errors.New("software: nil database")
)

func init() {
	backend.Register(backend.ModuleSoftware, func() backend.Module {
		return New()
	})
}

// Module is the software rendering module.
type Module struct{}

// New returns a software module.
func New() *Module {
	return &Module{}
}

// Name implements backend.Module.
func (m *Module) Name() string {
	return backend.ModuleSoftware
}

// CreateDevice implements backend.Module.
func (m *Module) CreateDevice() (backend.Device, error) {
	return NewDevice(), nil
}

// CreateContext implements backend.Module.
func (m *Module) CreateContext(db scene.Database) (backend.Context, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}
	return &Context{db: db}, nil
}

// SetupLayoutViews implements backend.Module. It creates one view showing
// the active layout, positioned on the layout's saved view or fitted to
// its block. An empty block keeps the default camera.
func (m *Module) SetupLayoutViews(dev backend.Device, ctx backend.Context) (backend.LayoutHelper, error) {
	d, ok := dev.(*Device)
	if !ok {
		return nil, ErrForeignObject
	}
	if d.released {
		return nil, ErrReleased
	}
	layout, err := ctx.Database().ActiveLayout()
	if err != nil {
		return nil, fmt.Errorf("software: active layout: %w", err)
	}

	v := newView()
	if err := v.Add(layout.Block, ctx); err != nil {
		return nil, err
	}
	if err := d.AddView(v); err != nil {
		return nil, err
	}

	if layout.HasSavedView() {
		cam := v.Camera()
		center := f64.Vec3{layout.Center[0], layout.Center[1], 0}
		cam.Target = center
		cam.Position = geom.Add(center, f64.Vec3{0, 0, 1})
		cam.FieldHeight = layout.Height
		cam.FieldWidth = layout.Height * d.aspect()
		v.cam = cam
	} else if ext := layout.Block.Extents(); ext.Valid() {
		if err := v.ZoomExtents(ext.Min, ext.Max); err != nil {
			d.EraseAllViews()
			return nil, err
		}
	}
	return &layoutHelper{dev: d, view: v}, nil
}

// Context binds a scene database to a software device.
type Context struct {
	db       scene.Database
	released bool
}

// Database implements backend.Context.
func (c *Context) Database() scene.Database {
	return c.db
}

// Release implements backend.Context.
func (c *Context) Release() {
	c.released = true
	c.db = nil
}

// layoutHelper keeps the layout view's field aspect equal to the
// device aspect. The camera is only touched when the size changes.
type layoutHelper struct {
	dev      *Device
	view     *View
	rect     geom.DeviceRect
	released bool
}

func (h *layoutHelper) OnSize(rect geom.DeviceRect) error {
	if h.released {
		return ErrReleased
	}
	if rect.Empty() || rect == h.rect {
		return nil
	}
	h.rect = rect
	aspect := float64(rect.Width) / float64(rect.Height)
	h.view.cam.FieldWidth = h.view.cam.FieldHeight * aspect
	return nil
}

func (h *layoutHelper) Release() {
	h.released = true
	h.view = nil
}

var (
	_ backend.Module  = (*Module)(nil)
	_ backend.Context = (*Context)(nil)
)
