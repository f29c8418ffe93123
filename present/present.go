// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present pulls rendered frames out of a device and reshapes them
// into display images.
//
// Device frames are BGR or BGRX with arbitrary row padding. Display images
// are RGB with rows padded to 4 bytes, or RGBX. The conversion copies
// whole rows and then swaps the red and blue channels in place.
package present

import (
	"log/slog"
	"math"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/internal/logger"
	"github.com/gogpu/ggview/render"
)

// SnapshotMode selects how frames are obtained from a device.
type SnapshotMode uint8

const (
	// SnapshotCall asks the device for a snapshot of the viewport.
	SnapshotCall SnapshotMode = iota

	// SnapshotProperty reads the frame the device published under
	// backend.PropRasterImage.
	SnapshotProperty
)

// String returns the mode name.
func (m SnapshotMode) String() string {
	switch m {
	case SnapshotCall:
		return "call"
	case SnapshotProperty:
		return "property"
	default:
		return "unknown"
	}
}

// ParseSnapshotMode parses "call" or "property".
func ParseSnapshotMode(s string) (SnapshotMode, bool) {
	switch s {
	case "call", "":
		return SnapshotCall, true
	case "property":
		return SnapshotProperty, true
	default:
		return SnapshotCall, false
	}
}

// CopyFunc copies src into dst and returns the number of bytes copied.
type CopyFunc func(dst, src []byte) int

func builtinCopy(dst, src []byte) int {
	return copy(dst, src)
}

// Presenter converts device frames to display images.
//
// Presenter is not safe for concurrent use.
type Presenter struct {
	mode SnapshotMode
	copy CopyFunc
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithMode sets the snapshot mode.
func WithMode(m SnapshotMode) Option {
	return func(p *Presenter) {
		p.mode = m
	}
}

// WithCopyFunc routes every bulk copy through fn.
func WithCopyFunc(fn CopyFunc) Option {
	return func(p *Presenter) {
		if fn != nil {
			p.copy = fn
		}
	}
}

// New returns a presenter in SnapshotCall mode.
func New(opts ...Option) *Presenter {
	p := &Presenter{mode: SnapshotCall, copy: builtinCopy}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the snapshot mode.
func (p *Presenter) Mode() SnapshotMode {
	return p.mode
}

// Snapshot obtains the frame for rect from dev. It returns nil without an
// error when rect or the obtained frame has no area. Device panics are
// reported as transient render failures.
func (p *Presenter) Snapshot(dev backend.Device, rect geom.DeviceRect) (frame *render.RasterFrame, err error) {
	if dev == nil || rect.Empty() {
		return nil, nil
	}
	defer func() {
		if r := recover(); r != nil {
			frame, err = nil, render.Recovered(render.KindTransientRender, "present.Snapshot", r)
		}
	}()

	switch p.mode {
	case SnapshotProperty:
		v, ok := dev.Properties().Get(backend.PropRasterImage)
		if !ok {
			return nil, nil
		}
		f, ok := v.(*render.RasterFrame)
		if !ok {
			return nil, render.Errorf(render.KindTransientRender, "present.Snapshot", "property %s holds %T", backend.PropRasterImage, v)
		}
		frame = f.Sub(rect)
	default:
		frame, err = dev.Snapshot(rect)
		if err != nil {
			return nil, render.Wrap(render.KindTransientRender, "present.Snapshot", err)
		}
	}
	if frame.Empty() {
		return nil, nil
	}
	return frame, nil
}

// ToDisplay converts a 24 or 32 bit device frame into a display image.
//
// When source stride, row size and destination stride agree the pixels are
// moved with one copy; otherwise the frame is staged through a temporary
// buffer and copied row by row. A nil or empty frame yields nil.
func (p *Presenter) ToDisplay(frame *render.RasterFrame) (*render.DisplayImage, error) {
	const op = "present.ToDisplay"
	if frame.Empty() {
		return nil, nil
	}
	if frame.Depth != 24 && frame.Depth != 32 {
		return nil, render.Errorf(render.KindUnsupportedFormat, op, "%d bits per pixel", frame.Depth)
	}

	w, h := frame.Width, frame.Height
	rowSize := frame.RowSize()
	format := frame.Format().Swapped()
	dstStride := format.Stride(w)
	log := logger.Get()

	if frame.Stride == rowSize && rowSize == dstStride {
		if err := frame.Validate(); err != nil {
			return nil, render.Wrap(render.KindTransientRender, op, err)
		}
		dst := render.NewDisplayImage(w, h, format)
		p.copy(dst.Pix, frame.Pix[:rowSize*h])
		swapRB(dst)
		log.Debug("present: fast path", slog.Int("width", w), slog.Int("height", h))
		return dst, nil
	}

	if uint64(frame.Stride)*uint64(h) > math.MaxUint32 {
		return nil, render.Errorf(render.KindOverflowGuard, op, "stride %d x height %d", frame.Stride, h)
	}
	if err := frame.Validate(); err != nil {
		return nil, render.Wrap(render.KindTransientRender, op, err)
	}

	tmp := make([]byte, frame.Stride*h)
	frame.ReadScanlines(tmp)
	dst := render.NewDisplayImage(w, h, format)
	for y := 0; y < h; y++ {
		s := y * frame.Stride
		d := y * dstStride
		p.copy(dst.Pix[d:d+rowSize], tmp[s:s+rowSize])
	}
	swapRB(dst)
	log.Debug("present: row copy",
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("srcStride", frame.Stride),
		slog.Int("dstStride", dstStride))
	return dst, nil
}

// Present snapshots dev and converts the result.
func (p *Presenter) Present(dev backend.Device, rect geom.DeviceRect) (*render.DisplayImage, error) {
	frame, err := p.Snapshot(dev, rect)
	if err != nil || frame == nil {
		return nil, err
	}
	return p.ToDisplay(frame)
}

// swapRB exchanges the first and third byte of every pixel. The unused
// byte of 32-bit pixels is set opaque so RGBX rows upload as RGBA.
func swapRB(m *render.DisplayImage) {
	bpp := m.Format.BytesPerPixel()
	rowSize := m.Width * bpp
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Stride : y*m.Stride+rowSize]
		for i := 0; i+2 < len(row); i += bpp {
			row[i], row[i+2] = row[i+2], row[i]
			if bpp == 4 {
				row[i+3] = 0xFF
			}
		}
	}
}
