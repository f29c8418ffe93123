// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/internal/logger"
	"github.com/gogpu/ggview/internal/parallel"
	"github.com/gogpu/ggview/render"
)

// NativeDepth is the depth devices render at unless configured otherwise.
const NativeDepth = 32

// packBand is the smallest number of rows packed on one worker.
const packBand = 64

// packPool is shared by all devices and lives for the process.
var packPool = sync.OnceValue(func() *parallel.WorkerPool {
	return parallel.NewWorkerPool(0)
})

// Device renders views into a BGR(X) pixel buffer.
//
// Device is not safe for concurrent use.
type Device struct {
	props *backend.Properties
	views []*View
	rect  geom.DeviceRect

	scratch *image.RGBA
	painter painter

	// own buffers, two when double buffering
	buffers [2][]byte
	back    int

	frame    *render.RasterFrame
	updates  int
	released bool
}

// NewDevice returns a device with native depth and a white background.
func NewDevice() *Device {
	d := &Device{props: backend.NewProperties()}
	d.props.Put(backend.PropBitsPerPixel, NativeDepth)
	d.props.Put(backend.PropBackground, backend.Background)
	return d
}

// CreateView implements backend.Device.
func (d *Device) CreateView() (backend.View, error) {
	if d.released {
		return nil, ErrReleased
	}
	return newView(), nil
}

// AddView implements backend.Device.
func (d *Device) AddView(v backend.View) error {
	if d.released {
		return ErrReleased
	}
	sv, ok := v.(*View)
	if !ok {
		return ErrForeignObject
	}
	sv.dev = d
	d.views = append(d.views, sv)
	return nil
}

// ViewAt implements backend.Device.
func (d *Device) ViewAt(i int) backend.View {
	if i < 0 || i >= len(d.views) {
		return nil
	}
	return d.views[i]
}

// NumViews implements backend.Device.
func (d *Device) NumViews() int {
	return len(d.views)
}

// EraseAllViews implements backend.Device.
func (d *Device) EraseAllViews() {
	for _, v := range d.views {
		v.dev = nil
	}
	d.views = nil
}

// OnSize implements backend.Device.
func (d *Device) OnSize(rect geom.DeviceRect) error {
	if d.released {
		return ErrReleased
	}
	if rect.Empty() {
		return render.Errorf(render.KindInvalidViewport, "software.OnSize", "%dx%d", rect.Width, rect.Height)
	}
	d.rect = rect
	return nil
}

// Properties implements backend.Device.
func (d *Device) Properties() *backend.Properties {
	return d.props
}

// Updates returns the number of completed updates.
func (d *Device) Updates() int {
	return d.updates
}

// Update implements backend.Device. It renders every view and publishes
// the result under PropRasterImage.
func (d *Device) Update() error {
	if d.released {
		return ErrReleased
	}
	w, h := d.rect.Width, d.rect.Height
	if w <= 0 || h <= 0 {
		return nil
	}

	depth := d.props.Int(backend.PropBitsPerPixel, NativeDepth)
	format, ok := render.DeviceFormat(depth)
	if !ok {
		return render.Errorf(render.KindUnsupportedFormat, "software.Update", "depth %d", depth)
	}

	if d.scratch == nil || d.scratch.Bounds().Dx() != w || d.scratch.Bounds().Dy() != h {
		d.scratch = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	bg := d.props.Color(backend.PropBackground, backend.Background)
	draw.Draw(d.scratch, d.scratch.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, v := range d.views {
		if v.root == nil {
			continue
		}
		d.painter.paint(d.scratch, v.transform(w, h), v.cam.Mode, v.root.Entities)
	}

	frame := d.target(w, h, depth, format)
	pack(frame, d.scratch, format)
	d.frame = frame
	d.props.Put(backend.PropRasterImage, frame)
	d.updates++
	return nil
}

// target returns the frame to pack into: the bound surface when it
// matches, else one of the device's own buffers.
func (d *Device) target(w, h, depth int, format render.Format) *render.RasterFrame {
	if depth == 24 {
		if v, ok := d.props.Get(backend.PropSurface); ok {
			if pt, ok := v.(backend.PixelTarget); ok {
				if f := pt.Frame(); f != nil && f.Width == w && f.Height == h && f.Depth == 24 && f.Validate() == nil {
					return f
				}
				logger.Get().Debug("software: surface size mismatch, using own buffer",
					slog.Int("width", w), slog.Int("height", h))
			}
		}
	}

	stride := format.Stride(w)
	idx := 0
	if d.props.Bool(backend.PropDoubleBuffer) {
		idx = d.back
		d.back ^= 1
	}
	if need := stride * h; cap(d.buffers[idx]) < need {
		d.buffers[idx] = make([]byte, need)
	} else {
		d.buffers[idx] = d.buffers[idx][:need]
	}
	return &render.RasterFrame{
		Width:  w,
		Height: h,
		Depth:  depth,
		Stride: stride,
		Pix:    d.buffers[idx],
	}
}

// pack converts RGBA pixels into the frame's BGR(X) layout. Tall frames
// are packed in bands on the shared pool.
func pack(dst *render.RasterFrame, src *image.RGBA, format render.Format) {
	var pool *parallel.WorkerPool
	if dst.Height >= 2*packBand {
		pool = packPool()
	}
	parallel.Rows(pool, dst.Height, packBand, func(y0, y1 int) {
		packRows(dst, src, format.BytesPerPixel(), y0, y1)
	})
}

func packRows(dst *render.RasterFrame, src *image.RGBA, bpp, y0, y1 int) {
	for y := y0; y < y1; y++ {
		s := src.Pix[y*src.Stride : y*src.Stride+dst.Width*4]
		row := dst.Pix[y*dst.Stride:]
		for x := 0; x < dst.Width; x++ {
			o := x * bpp
			row[o+0] = s[x*4+2]
			row[o+1] = s[x*4+1]
			row[o+2] = s[x*4+0]
			if bpp == 4 {
				row[o+3] = 0xFF
			}
		}
	}
}

// Snapshot implements backend.Device. The returned frame shares the
// device's memory and is valid until the next Update.
func (d *Device) Snapshot(rect geom.DeviceRect) (*render.RasterFrame, error) {
	if d.released {
		return nil, ErrReleased
	}
	if d.frame == nil {
		return nil, ErrNoContent
	}
	return d.frame.Sub(rect), nil
}

// Release implements backend.Device.
func (d *Device) Release() {
	if d.released {
		return
	}
	d.EraseAllViews()
	d.props.Put(backend.PropSurface, nil)
	d.props.Put(backend.PropRasterImage, nil)
	d.frame = nil
	d.scratch = nil
	d.buffers = [2][]byte{}
	d.released = true
}

func (d *Device) aspect() float64 {
	if d.rect.Empty() {
		return 1
	}
	return float64(d.rect.Width) / float64(d.rect.Height)
}

func (d *Device) String() string {
	return fmt.Sprintf("software.Device(%dx%d, %d views)", d.rect.Width, d.rect.Height, len(d.views))
}

var _ backend.Device = (*Device)(nil)
