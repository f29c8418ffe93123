package present

import (
	"errors"
	"testing"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/render"
)

// fakeDevice serves a fixed frame.
type fakeDevice struct {
	frame     *render.RasterFrame
	err       error
	panicWith any
	props     *backend.Properties
	snapshots int
}

func newFakeDevice(f *render.RasterFrame) *fakeDevice {
	d := &fakeDevice{frame: f, props: backend.NewProperties()}
	if f != nil {
		d.props.Put(backend.PropRasterImage, f)
	}
	return d
}

func (d *fakeDevice) CreateView() (backend.View, error) { return nil, nil }
func (d *fakeDevice) AddView(backend.View) error        { return nil }
func (d *fakeDevice) ViewAt(int) backend.View           { return nil }
func (d *fakeDevice) NumViews() int                     { return 0 }
func (d *fakeDevice) EraseAllViews()                    {}
func (d *fakeDevice) OnSize(geom.DeviceRect) error      { return nil }
func (d *fakeDevice) Update() error                     { return nil }
func (d *fakeDevice) Properties() *backend.Properties   { return d.props }
func (d *fakeDevice) Release()                          {}

func (d *fakeDevice) Snapshot(r geom.DeviceRect) (*render.RasterFrame, error) {
	d.snapshots++
	if d.panicWith != nil {
		panic(d.panicWith)
	}
	if d.err != nil {
		return nil, d.err
	}
	return d.frame.Sub(r), nil
}

// bgrFrame builds a frame whose pixel (x, y) is B=x, G=y, R=x+y.
func bgrFrame(w, h, depth, stride int) *render.RasterFrame {
	bpp := (depth + 7) / 8
	pix := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := y*stride + x*bpp
			pix[o+0] = byte(x)
			pix[o+1] = byte(y)
			pix[o+2] = byte(x + y)
			if bpp == 4 {
				pix[o+3] = 0x7F
			}
		}
		for o := y*stride + w*bpp; o < (y+1)*stride; o++ {
			pix[o] = 0xEE
		}
	}
	return &render.RasterFrame{Width: w, Height: h, Depth: depth, Stride: stride, Pix: pix}
}

type copyCounter struct {
	calls int
	sizes []int
}

func (c *copyCounter) copy(dst, src []byte) int {
	c.calls++
	c.sizes = append(c.sizes, len(src))
	return copy(dst, src)
}

func TestToDisplayPaths(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		depth     int
		stride    int
		wantCalls int
		wantFmt   render.Format
	}{
		{"32bpp tight", 5, 4, 32, 20, 1, render.FormatRGBX8},
		{"24bpp aligned width", 4, 3, 24, 12, 1, render.FormatRGB8},
		{"24bpp padded", 5, 3, 24, 16, 3, render.FormatRGB8},
		{"24bpp extra padding", 4, 6, 24, 32, 6, render.FormatRGB8},
		{"32bpp padded", 3, 2, 32, 16, 2, render.FormatRGBX8},
		{"24bpp unpadded odd width", 5, 2, 24, 15, 2, render.FormatRGB8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := &copyCounter{}
			p := New(WithCopyFunc(cc.copy))
			frame := bgrFrame(tt.w, tt.h, tt.depth, tt.stride)

			img, err := p.ToDisplay(frame)
			if err != nil {
				t.Fatalf("ToDisplay() error = %v", err)
			}
			if cc.calls != tt.wantCalls {
				t.Errorf("copy calls = %d, want %d", cc.calls, tt.wantCalls)
			}
			if tt.wantCalls > 1 {
				for _, n := range cc.sizes {
					if n != frame.RowSize() {
						t.Errorf("row copy size = %d, want %d", n, frame.RowSize())
					}
				}
			}
			if img.Format != tt.wantFmt {
				t.Errorf("Format = %v, want %v", img.Format, tt.wantFmt)
			}
			if img.Stride%4 != 0 {
				t.Errorf("Stride = %d, want multiple of 4", img.Stride)
			}
			for y := 0; y < tt.h; y++ {
				for x := 0; x < tt.w; x++ {
					got := img.RGBAAt(x, y)
					if got.R != byte(x+y) || got.G != byte(y) || got.B != byte(x) {
						t.Fatalf("pixel (%d,%d) = %v, want R=%d G=%d B=%d", x, y, got, x+y, y, x)
					}
					if tt.depth == 32 {
						if a := img.Pix[y*img.Stride+x*4+3]; a != 0xFF {
							t.Fatalf("pixel (%d,%d) unused byte = %#x, want 0xff", x, y, a)
						}
					}
				}
			}
		})
	}
}

func TestToDisplayUnpaddedLastRow(t *testing.T) {
	frame := bgrFrame(5, 3, 24, 16)
	frame.Pix = frame.Pix[:16*2+15]
	img, err := New().ToDisplay(frame)
	if err != nil {
		t.Fatalf("ToDisplay() error = %v", err)
	}
	if got := img.RGBAAt(4, 2); got.R != 6 || got.B != 4 {
		t.Errorf("last pixel = %v, want R=6 B=4", got)
	}
}

func TestToDisplayErrors(t *testing.T) {
	tests := []struct {
		name    string
		frame   *render.RasterFrame
		wantErr error
	}{
		{"16bpp", &render.RasterFrame{Width: 2, Height: 2, Depth: 16, Stride: 4, Pix: make([]byte, 8)}, render.ErrUnsupportedFormat},
		{"8bpp", &render.RasterFrame{Width: 2, Height: 2, Depth: 8, Stride: 4, Pix: make([]byte, 8)}, render.ErrUnsupportedFormat},
		{"stride too small", &render.RasterFrame{Width: 4, Height: 2, Depth: 24, Stride: 8, Pix: make([]byte, 24)}, render.ErrTransientRender},
		{"short data fast", &render.RasterFrame{Width: 4, Height: 2, Depth: 32, Stride: 16, Pix: make([]byte, 20)}, render.ErrTransientRender},
		{"short data slow", &render.RasterFrame{Width: 3, Height: 2, Depth: 24, Stride: 12, Pix: make([]byte, 13)}, render.ErrTransientRender},
		{"overflow", &render.RasterFrame{Width: 1, Height: 1 << 20, Depth: 24, Stride: 1 << 13}, render.ErrOverflowGuard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := &copyCounter{}
			img, err := New(WithCopyFunc(cc.copy)).ToDisplay(tt.frame)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ToDisplay() error = %v, want %v", err, tt.wantErr)
			}
			if img != nil {
				t.Error("ToDisplay() returned an image on error")
			}
			if cc.calls != 0 {
				t.Errorf("copy calls = %d, want 0", cc.calls)
			}
		})
	}
}

func TestToDisplayEmpty(t *testing.T) {
	p := New()
	for _, f := range []*render.RasterFrame{nil, {Width: 0, Height: 5, Depth: 24}, {Width: 5, Height: -1, Depth: 32}} {
		img, err := p.ToDisplay(f)
		if img != nil || err != nil {
			t.Errorf("ToDisplay(%v) = %v, %v; want nil, nil", f, img, err)
		}
	}
}

func TestSnapshotModes(t *testing.T) {
	frame := bgrFrame(8, 6, 32, 32)
	for _, mode := range []SnapshotMode{SnapshotCall, SnapshotProperty} {
		t.Run(mode.String(), func(t *testing.T) {
			dev := newFakeDevice(frame)
			p := New(WithMode(mode))
			got, err := p.Snapshot(dev, geom.DeviceRect{X: 2, Y: 1, Width: 4, Height: 4})
			if err != nil {
				t.Fatalf("Snapshot() error = %v", err)
			}
			if got.Width != 4 || got.Height != 4 {
				t.Errorf("Snapshot() = %dx%d, want 4x4", got.Width, got.Height)
			}
			wantCalls := 0
			if mode == SnapshotCall {
				wantCalls = 1
			}
			if dev.snapshots != wantCalls {
				t.Errorf("device snapshots = %d, want %d", dev.snapshots, wantCalls)
			}
		})
	}
}

func TestSnapshotZeroDimensions(t *testing.T) {
	dev := newFakeDevice(bgrFrame(4, 4, 24, 12))
	p := New()
	for _, r := range []geom.DeviceRect{geom.Viewport(0, 4), geom.Viewport(4, 0), geom.Viewport(-1, 3)} {
		f, err := p.Snapshot(dev, r)
		if f != nil || err != nil {
			t.Errorf("Snapshot(%v) = %v, %v; want nil, nil", r, f, err)
		}
	}
	if dev.snapshots != 0 {
		t.Errorf("device snapshots = %d, want 0", dev.snapshots)
	}

	dev.frame = &render.RasterFrame{Width: 0, Height: 0, Depth: 24}
	f, err := p.Snapshot(dev, geom.Viewport(4, 4))
	if f != nil || err != nil {
		t.Errorf("Snapshot() of empty frame = %v, %v; want nil, nil", f, err)
	}

	prop := newFakeDevice(nil)
	f, err = New(WithMode(SnapshotProperty)).Snapshot(prop, geom.Viewport(4, 4))
	if f != nil || err != nil {
		t.Errorf("Snapshot() without property = %v, %v; want nil, nil", f, err)
	}
}

func TestSnapshotFailures(t *testing.T) {
	dev := newFakeDevice(bgrFrame(4, 4, 24, 12))
	dev.err = errors.New("device lost")
	if _, err := New().Snapshot(dev, geom.Viewport(4, 4)); !errors.Is(err, render.ErrTransientRender) {
		t.Errorf("Snapshot() error = %v, want ErrTransientRender", err)
	}

	dev.err = nil
	dev.panicWith = "native crash"
	if _, err := New().Snapshot(dev, geom.Viewport(4, 4)); !errors.Is(err, render.ErrTransientRender) {
		t.Errorf("Snapshot() after panic error = %v, want ErrTransientRender", err)
	}

	bad := newFakeDevice(nil)
	bad.props.Put(backend.PropRasterImage, "not a frame")
	if _, err := New(WithMode(SnapshotProperty)).Snapshot(bad, geom.Viewport(4, 4)); !errors.Is(err, render.ErrTransientRender) {
		t.Errorf("Snapshot() with bad property error = %v, want ErrTransientRender", err)
	}
}

func TestPresent(t *testing.T) {
	dev := newFakeDevice(bgrFrame(6, 3, 24, 20))
	img, err := New().Present(dev, geom.Viewport(6, 3))
	if err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if img.Width != 6 || img.Height != 3 || img.Stride != 20 {
		t.Errorf("Present() = %dx%d stride %d, want 6x3 stride 20", img.Width, img.Height, img.Stride)
	}
}

func TestParseSnapshotMode(t *testing.T) {
	tests := []struct {
		in   string
		want SnapshotMode
		ok   bool
	}{
		{"call", SnapshotCall, true},
		{"", SnapshotCall, true},
		{"property", SnapshotProperty, true},
		{"grab", SnapshotCall, false},
	}
	for _, tt := range tests {
		got, ok := ParseSnapshotMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseSnapshotMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
