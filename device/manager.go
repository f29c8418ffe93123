// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package device

import (
	"errors"
	"image/color"
	"image/color/palette"
	"log/slog"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/extents"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/internal/logger"
	"github.com/gogpu/ggview/navigator"
	"github.com/gogpu/ggview/present"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/ggview/scene"
	"github.com/gogpu/ggview/surface"
	"golang.org/x/image/math/f64"
)

// ErrClosed is returned when a closed manager is asked to paint.
var ErrClosed = errors.New("device: manager closed")

const (
	// MinViewport is the smallest width and height a device is created for.
	MinViewport = 2

	// FitMargin is the zoom factor applied after fitting the scene, a
	// slight zoom out.
	FitMargin = 0.95

	// offscreenDepth is the depth requested for offscreen targets.
	offscreenDepth = 24
)

// Manager owns one device, context and view triple for a scene database.
//
// Manager is not safe for concurrent use. Paint, resize and zoom must be
// called from the host's UI goroutine.
type Manager struct {
	db         scene.Database
	registry   *backend.Registry
	moduleName string
	strategy   Strategy
	target     Target
	platform   surface.Platform
	window     any
	background color.RGBA
	palette    color.Palette

	doubleBuffer bool

	extents   extents.Cache
	nav       *navigator.Navigator
	presenter *present.Presenter
	alloc     *surface.Allocator

	state       State
	dev         backend.Device
	ctx         backend.Context
	helper      backend.LayoutHelper
	view        backend.View
	rect        geom.DeviceRect
	surfaceGen  uint64
	firstResize bool
	tearing     bool
}

// NewManager returns an Uninitialized manager for db.
func NewManager(db scene.Database, opts ...Option) *Manager {
	m := &Manager{
		db:         db,
		registry:   backend.Default,
		moduleName: backend.ModuleSoftware,
		background: backend.Background,
		palette:    palette.WebSafe,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.nav == nil {
		m.nav = navigator.New()
	}
	if m.presenter == nil {
		m.presenter = present.New()
	}
	return m
}

// State returns the lifecycle state.
func (m *Manager) State() State {
	return m.state
}

// Database returns the bound scene database.
func (m *Manager) Database() scene.Database {
	return m.db
}

// Navigator returns the navigator used for zooming.
func (m *Manager) Navigator() *navigator.Navigator {
	return m.nav
}

// Device returns the live device, or nil unless Ready.
func (m *Manager) Device() backend.Device {
	if m.state != StateReady {
		return nil
	}
	return m.dev
}

// ActiveView returns the view zoom input applies to, or nil unless Ready.
func (m *Manager) ActiveView() backend.View {
	if m.state != StateReady {
		return nil
	}
	return m.view
}

// Bounds returns the scene's bounding rectangle, computed once.
func (m *Manager) Bounds() geom.Rect {
	return m.extents.Bounds(m.db)
}

// Zoom applies one wheel signal to the active view and reports whether it
// was consumed.
func (m *Manager) Zoom(signal float64) bool {
	return m.nav.Zoom(m.ActiveView(), signal)
}

// Paint brings the device up if needed, resizes it to width x height,
// renders and returns the display image.
//
// A nil image with a nil error means there was nothing to show.
func (m *Manager) Paint(width, height int) (*render.DisplayImage, error) {
	if m.state == StateDestroyed {
		return nil, ErrClosed
	}
	if width < MinViewport || height < MinViewport {
		return nil, render.Errorf(render.KindInvalidViewport, "device.Paint", "%dx%d", width, height)
	}
	rect := geom.Viewport(width, height)

	if m.state == StateUninitialized {
		if err := m.Initialize(rect); err != nil {
			return nil, err
		}
	}
	if err := m.Resize(rect); err != nil {
		return nil, err
	}
	return m.Render()
}

// Initialize stands up the device for rect. On failure all partial state
// is released and the manager returns to Uninitialized.
func (m *Manager) Initialize(rect geom.DeviceRect) (err error) {
	switch m.state {
	case StateReady:
		return nil
	case StateDestroyed:
		return ErrClosed
	case StateInitializing:
		return render.Errorf(render.KindContextSetup, "device.Initialize", "reentered")
	}
	log := logger.Get()
	m.state = StateInitializing

	defer func() {
		if r := recover(); r != nil {
			err = render.Recovered(render.KindContextSetup, "device.Initialize", r)
		}
		if err != nil {
			m.Teardown()
			log.Warn("device: setup failed", slog.Any("error", err))
		}
	}()

	if err := m.initialize(rect); err != nil {
		return err
	}
	m.rect = rect
	m.firstResize = true
	m.state = StateReady
	log.Info("device: ready",
		slog.String("backend", m.moduleName),
		slog.String("strategy", m.strategy.String()),
		slog.String("target", m.target.String()),
		slog.Int("width", rect.Width),
		slog.Int("height", rect.Height))
	return nil
}

func (m *Manager) initialize(rect geom.DeviceRect) error {
	const op = "device.Initialize"

	if m.target == TargetOffscreen {
		if m.alloc == nil {
			m.alloc = surface.NewAllocator(m.platform)
		}
		if err := m.alloc.Ensure(rect.Width, rect.Height); err != nil {
			return render.Wrap(render.KindContextSetup, op, err)
		}
	}

	module, err := m.registry.LoadErr(m.moduleName)
	if err != nil {
		return render.Wrap(render.KindBackendUnavailable, op, err)
	}
	dev, err := module.CreateDevice()
	if err != nil {
		return render.Wrap(render.KindBackendUnavailable, op, err)
	}
	if dev == nil {
		return render.Errorf(render.KindBackendUnavailable, op, "module %q returned no device", m.moduleName)
	}
	m.dev = dev
	m.configure(dev.Properties())

	ctx, err := module.CreateContext(m.db)
	if err != nil {
		return render.Wrap(render.KindContextSetup, op, err)
	}
	m.ctx = ctx

	switch m.strategy {
	case StrategyManual:
		if err := m.setupManual(); err != nil {
			return render.Wrap(render.KindContextSetup, op, err)
		}
	default:
		helper, err := module.SetupLayoutViews(dev, ctx)
		if err != nil {
			return render.Wrap(render.KindContextSetup, op, err)
		}
		m.helper = helper
	}

	if err := dev.OnSize(rect); err != nil {
		return render.Wrap(render.KindContextSetup, op, err)
	}
	if m.helper != nil {
		if err := m.helper.OnSize(rect); err != nil {
			return render.Wrap(render.KindContextSetup, op, err)
		}
	}

	m.view = dev.ViewAt(0)
	if m.view == nil {
		return render.Errorf(render.KindContextSetup, op, "%w", backend.ErrNoView)
	}
	return nil
}

func (m *Manager) configure(props *backend.Properties) {
	if m.target == TargetOffscreen {
		props.Put(backend.PropBitsPerPixel, offscreenDepth)
		props.Put(backend.PropSurface, m.alloc)
		m.surfaceGen = m.alloc.Generation()
	} else if m.window != nil {
		props.Put(backend.PropWindowHandle, m.window)
	}
	if !props.Has(backend.PropPalette) && m.palette != nil {
		props.Put(backend.PropPalette, m.palette)
	}
	props.Put(backend.PropDoubleBuffer, m.doubleBuffer)
	props.Put(backend.PropBackground, m.background)
}

func (m *Manager) setupManual() error {
	view, err := m.dev.CreateView()
	if err != nil {
		return err
	}
	if err := m.dev.AddView(view); err != nil {
		return err
	}
	root, err := m.db.ContentRoot()
	if err != nil {
		return err
	}
	return view.Add(root, m.ctx)
}

// Resize keeps the device and surface in sync with rect. The first
// successful resize after initialization fits the camera to the scene.
func (m *Manager) Resize(rect geom.DeviceRect) (err error) {
	const op = "device.Resize"
	if m.state != StateReady {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = render.Recovered(render.KindTransientRender, op, r)
		}
		if err != nil {
			logger.Get().Warn("device: resize failed", slog.Any("error", err))
		}
	}()

	if m.alloc != nil {
		if err := m.alloc.Ensure(rect.Width, rect.Height); err != nil {
			return render.Wrap(render.KindTransientRender, op, err)
		}
		if gen := m.alloc.Generation(); gen != m.surfaceGen {
			m.dev.Properties().Put(backend.PropSurface, m.alloc)
			m.surfaceGen = gen
		}
	}
	if err := m.dev.OnSize(rect); err != nil {
		return render.Wrap(render.KindTransientRender, op, err)
	}
	if m.helper != nil {
		if err := m.helper.OnSize(rect); err != nil {
			return render.Wrap(render.KindTransientRender, op, err)
		}
	}
	m.rect = rect

	if m.firstResize {
		if err := m.fit(); err != nil {
			return render.Wrap(render.KindTransientRender, op, err)
		}
		m.firstResize = false
	}
	return nil
}

// fit zooms the active view to the scene bounds with a small margin.
func (m *Manager) fit() error {
	b := m.extents.Bounds(m.db)
	lo := f64.Vec3{b.X, b.Y, 0}
	hi := f64.Vec3{b.MaxX(), b.MaxY(), 0}
	if err := m.view.ZoomExtents(lo, hi); err != nil {
		return err
	}
	if err := m.nav.Scale(m.view, FitMargin); err != nil {
		return err
	}
	logger.Get().Debug("device: fitted view",
		slog.Float64("x", b.X), slog.Float64("y", b.Y),
		slog.Float64("width", b.Width), slog.Float64("height", b.Height))
	return nil
}

// Render updates the device and converts its frame. Failures skip the
// frame and are reported as transient.
func (m *Manager) Render() (img *render.DisplayImage, err error) {
	const op = "device.Render"
	if m.state != StateReady {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, render.Recovered(render.KindTransientRender, op, r)
		}
		if err != nil {
			logger.Get().Warn("device: frame skipped", slog.Any("error", err))
		}
	}()

	if err := m.dev.Update(); err != nil {
		return nil, render.Wrap(render.KindTransientRender, op, err)
	}
	return m.presenter.Present(m.dev, m.rect)
}

// Teardown releases the view, helper, context, device and surface in that
// order and returns the manager to Uninitialized. It is idempotent and
// ignores nested calls.
func (m *Manager) Teardown() {
	if m.tearing {
		return
	}
	m.tearing = true
	defer func() { m.tearing = false }()

	if m.dev != nil {
		safe("erase views", m.dev.EraseAllViews)
	}
	if m.helper != nil {
		safe("release helper", m.helper.Release)
	}
	if m.ctx != nil {
		safe("release context", m.ctx.Release)
	}
	if m.dev != nil {
		safe("release device", m.dev.Release)
	}
	if m.alloc != nil {
		safe("release surface", m.alloc.Release)
	}
	wasLive := m.dev != nil
	m.view = nil
	m.helper = nil
	m.ctx = nil
	m.dev = nil
	m.surfaceGen = 0
	m.firstResize = false
	m.rect = geom.DeviceRect{}
	m.state = StateUninitialized
	if wasLive {
		logger.Get().Info("device: torn down")
	}
}

// Close tears down and refuses further painting. Calling Teardown on a
// closed manager makes it usable again.
func (m *Manager) Close() {
	m.Teardown()
	m.state = StateDestroyed
}

// SetDatabase swaps the scene. The device is torn down and the bounds are
// computed again for the new scene on the next paint.
func (m *Manager) SetDatabase(db scene.Database) error {
	if m.state == StateDestroyed {
		return ErrClosed
	}
	m.Teardown()
	m.db = db
	m.extents = extents.Cache{}
	return nil
}

// safe runs a release step, logging instead of propagating panics.
func safe(step string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get().Warn("device: release step panicked",
				slog.String("step", step), slog.Any("panic", r))
		}
	}()
	fn()
}
