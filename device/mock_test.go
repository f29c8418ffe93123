package device

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/ggview/scene"
	"github.com/gogpu/ggview/surface"
	"golang.org/x/image/math/f64"
)

var errMock = errors.New("mock failure")

// events records backend calls in order.
type events []string

func (e *events) add(format string, args ...any) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

type mockModule struct {
	log *events

	failDevice  bool
	failContext bool
	failLayout  bool
	panicLayout bool
	noDevice    bool

	devices []*mockDevice
}

func (m *mockModule) Name() string { return "mock" }

func (m *mockModule) CreateDevice() (backend.Device, error) {
	m.log.add("CreateDevice")
	if m.failDevice {
		return nil, errMock
	}
	if m.noDevice {
		return nil, nil
	}
	d := &mockDevice{log: m.log, props: backend.NewProperties()}
	d.props.Put(backend.PropBitsPerPixel, 32)
	m.devices = append(m.devices, d)
	return d, nil
}

func (m *mockModule) CreateContext(db scene.Database) (backend.Context, error) {
	m.log.add("CreateContext")
	if m.failContext {
		return nil, errMock
	}
	return &mockContext{db: db, log: m.log}, nil
}

func (m *mockModule) SetupLayoutViews(dev backend.Device, ctx backend.Context) (backend.LayoutHelper, error) {
	m.log.add("SetupLayoutViews")
	if m.panicLayout {
		panic("layout crashed")
	}
	if m.failLayout {
		return nil, errMock
	}
	v, _ := dev.CreateView()
	if err := dev.AddView(v); err != nil {
		return nil, err
	}
	return &mockHelper{log: m.log}, nil
}

func (m *mockModule) last() *mockDevice {
	if len(m.devices) == 0 {
		return nil
	}
	return m.devices[len(m.devices)-1]
}

type mockDevice struct {
	log   *events
	props *backend.Properties
	views []backend.View
	rect  geom.DeviceRect
	sizes []geom.DeviceRect

	updates     int
	released    bool
	failUpdate  bool
	panicUpdate bool
	onRelease   func()
}

func (d *mockDevice) CreateView() (backend.View, error) {
	d.log.add("CreateView")
	return &mockView{cam: backend.DefaultCamera()}, nil
}

func (d *mockDevice) AddView(v backend.View) error {
	d.views = append(d.views, v)
	return nil
}

func (d *mockDevice) ViewAt(i int) backend.View {
	if i < 0 || i >= len(d.views) {
		return nil
	}
	return d.views[i]
}

func (d *mockDevice) NumViews() int { return len(d.views) }

func (d *mockDevice) EraseAllViews() {
	d.log.add("EraseAllViews")
	d.views = nil
}

func (d *mockDevice) OnSize(r geom.DeviceRect) error {
	d.rect = r
	d.sizes = append(d.sizes, r)
	return nil
}

func (d *mockDevice) Update() error {
	if d.panicUpdate {
		panic("update crashed")
	}
	if d.failUpdate {
		return errMock
	}
	d.updates++
	d.props.Put(backend.PropRasterImage, d.frame())
	return nil
}

// frame returns a BGRX frame of the current size filled with blue.
func (d *mockDevice) frame() *render.RasterFrame {
	w, h := d.rect.Width, d.rect.Height
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0xFF
	}
	return &render.RasterFrame{Width: w, Height: h, Depth: 32, Stride: w * 4, Pix: pix}
}

func (d *mockDevice) Snapshot(r geom.DeviceRect) (*render.RasterFrame, error) {
	return d.frame().Sub(r), nil
}

func (d *mockDevice) Properties() *backend.Properties { return d.props }

func (d *mockDevice) Release() {
	d.log.add("Device.Release")
	d.released = true
	if d.onRelease != nil {
		d.onRelease()
	}
}

type mockContext struct {
	db       scene.Database
	log      *events
	released bool
}

func (c *mockContext) Database() scene.Database { return c.db }

func (c *mockContext) Release() {
	c.log.add("Context.Release")
	c.released = true
}

type mockHelper struct {
	log   *events
	sizes int
}

func (h *mockHelper) OnSize(geom.DeviceRect) error {
	h.sizes++
	return nil
}

func (h *mockHelper) Release() { h.log.add("Helper.Release") }

type mockView struct {
	cam         backend.Camera
	root        *scene.Block
	zoomExtents int
	failExtents bool
}

func (v *mockView) Camera() backend.Camera { return v.cam }

func (v *mockView) SetCamera(c backend.Camera) error {
	v.cam = c
	return nil
}

func (v *mockView) ZoomExtents(lo, hi f64.Vec3) error {
	if v.failExtents {
		return errMock
	}
	v.zoomExtents++
	v.cam = v.cam.Fitted(lo, hi, 1)
	return nil
}

func (v *mockView) Add(root *scene.Block, _ backend.Context) error {
	v.root = root
	return nil
}

// loggingPlatform records surface destruction into the shared log.
type loggingPlatform struct {
	*surface.MemoryPlatform
	log *events
}

func (p *loggingPlatform) DestroySurface(h surface.Handle) error {
	p.log.add("Surface.Destroy")
	return p.MemoryPlatform.DestroySurface(h)
}

// fixture wires a manager to a mock module.
type fixture struct {
	log      *events
	module   *mockModule
	platform *loggingPlatform
	registry *backend.Registry
	db       *scene.Drawing
}

func newFixture() *fixture {
	log := &events{}
	f := &fixture{
		log:      log,
		module:   &mockModule{log: log},
		platform: &loggingPlatform{MemoryPlatform: surface.NewMemoryPlatform(), log: log},
		registry: backend.NewRegistry(),
		db:       scene.NewDrawing("fixture"),
	}
	f.db.Add(&scene.Line{From: f64.Vec3{0, 0, 0}, To: f64.Vec3{100, 50, 0}})
	f.registry.Register("mock", func() backend.Module { return f.module })
	return f
}

func (f *fixture) manager(opts ...Option) *Manager {
	base := []Option{
		WithRegistry(f.registry),
		WithBackend("mock"),
		WithPlatform(f.platform),
	}
	return NewManager(f.db, append(base, opts...)...)
}

func (f *fixture) count(event string) int {
	n := 0
	for _, e := range *f.log {
		if e == event {
			n++
		}
	}
	return n
}
