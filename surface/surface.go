// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/ggview/internal/logger"
	"github.com/gogpu/ggview/render"
)

// Depth is the bit depth of offscreen pixel buffers.
const Depth = 24

// ErrInvalidSize is returned by Ensure for non-positive dimensions.
var ErrInvalidSize = errors.New("surface: invalid size")

// Stride returns the padded row size of a 24-bit buffer of the given width.
func Stride(width int) int {
	return (width*3 + 3) &^ 3
}

// Surface is an allocated offscreen surface.
type Surface struct {
	Window  Handle
	Context Handle
	Bitmap  Handle
	Pix     []byte
	Width   int
	Height  int
	Stride  int
}

// Allocator owns at most one offscreen surface.
//
// The zero value is not usable; create allocators with NewAllocator.
type Allocator struct {
	platform   Platform
	s          Surface
	generation uint64
}

// NewAllocator returns an allocator using p. A nil p selects the best
// available registered platform, falling back to a MemoryPlatform.
func NewAllocator(p Platform) *Allocator {
	if p == nil {
		var err error
		if p, err = NewPlatform(); err != nil {
			p = NewMemoryPlatform()
		}
	}
	return &Allocator{platform: p}
}

// Platform returns the allocator's platform.
func (a *Allocator) Platform() Platform {
	return a.platform
}

// Ensure makes sure a surface of exactly width x height exists.
//
// No platform call is made when the cached size matches. Otherwise the
// current surface is released first and a new one acquired. On failure
// everything acquired so far is released and the allocator is left empty.
func (a *Allocator) Ensure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if a.s.Bitmap != 0 && a.s.Width == width && a.s.Height == height {
		return nil
	}

	a.Release()

	log := logger.Get()
	p := a.platform
	stride := Stride(width)

	win, err := p.CreateSurface()
	if err != nil {
		return fmt.Errorf("surface: create surface: %w", err)
	}
	dc, err := p.CreateDrawingContext(win)
	if err != nil {
		a.destroy(win)
		return fmt.Errorf("surface: create drawing context: %w", err)
	}
	bmp, pix, err := p.CreatePixelBuffer(dc, width, height, stride)
	if err != nil {
		a.releaseContext(win, dc)
		a.destroy(win)
		return fmt.Errorf("surface: create pixel buffer: %w", err)
	}
	if len(pix) < stride*height {
		_ = p.ReleasePixelBuffer(dc, bmp)
		a.releaseContext(win, dc)
		a.destroy(win)
		return fmt.Errorf("surface: pixel buffer too small: %d < %d", len(pix), stride*height)
	}

	a.s = Surface{
		Window:  win,
		Context: dc,
		Bitmap:  bmp,
		Pix:     pix,
		Width:   width,
		Height:  height,
		Stride:  stride,
	}
	a.generation++
	log.Debug("surface: allocated",
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("stride", stride))
	return nil
}

// Release frees the surface in reverse acquisition order. Calling Release
// on an empty allocator does nothing.
func (a *Allocator) Release() {
	s := a.s
	a.s = Surface{}
	if s.Bitmap != 0 {
		if err := a.platform.ReleasePixelBuffer(s.Context, s.Bitmap); err != nil {
			logger.Get().Warn("surface: release pixel buffer", slog.Any("error", err))
		}
	}
	if s.Context != 0 {
		a.releaseContext(s.Window, s.Context)
	}
	if s.Window != 0 {
		a.destroy(s.Window)
	}
}

func (a *Allocator) releaseContext(win, dc Handle) {
	if err := a.platform.ReleaseDrawingContext(win, dc); err != nil {
		logger.Get().Warn("surface: release drawing context", slog.Any("error", err))
	}
}

func (a *Allocator) destroy(win Handle) {
	if err := a.platform.DestroySurface(win); err != nil {
		logger.Get().Warn("surface: destroy surface", slog.Any("error", err))
	}
}

// Size returns the cached size, (0, 0) when nothing is allocated.
func (a *Allocator) Size() (width, height int) {
	return a.s.Width, a.s.Height
}

// Allocated reports whether a surface exists.
func (a *Allocator) Allocated() bool {
	return a.s.Bitmap != 0
}

// Surface returns a copy of the current surface description.
func (a *Allocator) Surface() Surface {
	return a.s
}

// Generation increases every time a new surface is acquired.
func (a *Allocator) Generation() uint64 {
	return a.generation
}

// Frame exposes the pixel buffer as a 24-bit frame, or nil when nothing is
// allocated. The frame shares the surface memory.
func (a *Allocator) Frame() *render.RasterFrame {
	if a.s.Bitmap == 0 {
		return nil
	}
	return &render.RasterFrame{
		Width:  a.s.Width,
		Height: a.s.Height,
		Depth:  Depth,
		Stride: a.s.Stride,
		Pix:    a.s.Pix,
	}
}
