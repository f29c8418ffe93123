// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ggview

import (
	"log/slog"

	"github.com/gogpu/ggview/device"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/integration/hostcanvas"
	"github.com/gogpu/ggview/navigator"
	"github.com/gogpu/ggview/present"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/ggview/scene"
	"github.com/gogpu/gpucontext"
)

// Item shows one scene database in a host canvas.
//
// Item is not safe for concurrent use. Paint, Frame and the input
// handlers must be called from the host's UI goroutine.
type Item struct {
	mgr    *device.Manager
	nav    *navigator.Navigator
	canvas *hostcanvas.Canvas
}

// NewItem returns an item displaying db. Nothing is created until the
// first paint.
func NewItem(db scene.Database, opts ...Option) *Item {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var redrawer navigator.Redrawer
	if o.window != nil {
		redrawer = o.window
	}
	nav := navigator.New(navigator.WithStep(o.zoomStep), navigator.WithRedrawer(redrawer))

	mopts := []device.Option{
		device.WithBackend(o.backend),
		device.WithRegistry(o.registry),
		device.WithStrategy(o.strategy),
		device.WithTarget(o.target),
		device.WithNavigator(nav),
		device.WithPresenter(present.New(present.WithMode(o.snapshot))),
		device.WithBackground(o.background),
		device.WithDoubleBuffer(o.doubleBuffer),
	}
	if o.platform != nil {
		mopts = append(mopts, device.WithPlatform(o.platform))
	}
	if o.window != nil {
		mopts = append(mopts, device.WithWindowHandle(o.window))
	}

	return &Item{
		mgr:    device.NewManager(db, mopts...),
		nav:    nav,
		canvas: hostcanvas.New(),
	}
}

// Manager returns the device manager behind the item.
func (it *Item) Manager() *device.Manager {
	return it.mgr
}

// BoundingRect returns the scene's 2D bounds. They are computed on the
// first call and reused afterwards.
func (it *Item) BoundingRect() geom.Rect {
	return it.mgr.Bounds()
}

// Paint renders a width x height frame and draws it through dc. Failures
// skip the frame and are logged; the next paint retries.
func (it *Item) Paint(dc gpucontext.TextureDrawer, width, height int) {
	img, err := it.Frame(width, height)
	if err != nil {
		Logger().Warn("ggview: frame skipped",
			slog.Int("width", width),
			slog.Int("height", height),
			slog.String("kind", render.KindOf(err).String()),
			slog.Any("error", err))
		return
	}
	if img == nil {
		return
	}
	if err := it.canvas.Present(dc, img); err != nil {
		Logger().Warn("ggview: present failed", slog.Any("error", err))
	}
}

// Frame renders a width x height frame and returns it. A nil image with a
// nil error means there was nothing to show.
func (it *Item) Frame(width, height int) (*render.DisplayImage, error) {
	return it.mgr.Paint(width, height)
}

// OnZoomInput applies one zoom notch. A positive signal zooms out and a
// negative one zooms in. It reports whether the input was consumed.
func (it *Item) OnZoomInput(signal float64) bool {
	return it.mgr.Zoom(signal)
}

// OnScroll zooms on a wheel event. Scrolling up zooms out.
func (it *Item) OnScroll(ev gpucontext.ScrollEvent) bool {
	return it.OnZoomInput(-ev.DeltaY)
}

// Attach subscribes the item to wheel events from src.
func (it *Item) Attach(src gpucontext.ScrollEventSource) {
	src.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
		it.OnScroll(ev)
	})
}

// SetScene replaces the displayed database. The device is rebuilt and
// the scene fitted again on the next paint.
func (it *Item) SetScene(db scene.Database) error {
	return it.mgr.SetDatabase(db)
}

// Close releases the device and the host texture. The item cannot paint
// afterwards.
func (it *Item) Close() error {
	it.mgr.Close()
	return it.canvas.Close()
}
