// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/gputypes"
)

// Frame validation errors.
var (
	// ErrStrideTooSmall is returned when a frame's stride cannot hold a row.
	ErrStrideTooSmall = errors.New("render: stride too small for width")

	// ErrDataTooSmall is returned when a frame's pixel data is shorter than
	// its geometry requires.
	ErrDataTooSmall = errors.New("render: pixel data too small")
)

// RasterFrame is a rendered pixel buffer as produced by a backend device.
//
// Pixels are row-major, BGR for 24-bit and BGRX for 32-bit depth. Stride
// may include padding. A frame is only valid for the paint that produced
// it: the device may reuse Pix on the next update.
type RasterFrame struct {
	Width  int
	Height int
	Depth  int // bits per pixel
	Stride int // bytes per row, including padding
	Pix    []byte
}

// BytesPerPixel returns ceil(Depth / 8).
func (f *RasterFrame) BytesPerPixel() int {
	return (f.Depth + 7) / 8
}

// RowSize returns the number of meaningful bytes in a row.
func (f *RasterFrame) RowSize() int {
	return f.Width * f.BytesPerPixel()
}

// Empty reports whether the frame has no pixels.
func (f *RasterFrame) Empty() bool {
	return f == nil || f.Width <= 0 || f.Height <= 0
}

// Format returns the device pixel layout for the frame's depth.
func (f *RasterFrame) Format() Format {
	format, _ := DeviceFormat(f.Depth)
	return format
}

// Validate checks that Stride and Pix can hold Width x Height pixels.
func (f *RasterFrame) Validate() error {
	rowSize := f.RowSize()
	if f.Stride < rowSize {
		return fmt.Errorf("%w: stride=%d, row=%d", ErrStrideTooSmall, f.Stride, rowSize)
	}
	need := f.Stride*(f.Height-1) + rowSize
	if len(f.Pix) < need {
		return fmt.Errorf("%w: have %d, need %d", ErrDataTooSmall, len(f.Pix), need)
	}
	return nil
}

// ReadScanlines copies the frame's rows, padding included, into dst and
// returns the number of bytes written. The last row may be short when
// the backend does not pad it.
func (f *RasterFrame) ReadScanlines(dst []byte) int {
	n := min(len(dst), f.Stride*f.Height, len(f.Pix))
	return copy(dst[:n], f.Pix[:n])
}

// Sub returns a frame sharing f's memory restricted to r. The result is
// nil when r does not overlap the frame.
func (f *RasterFrame) Sub(r geom.DeviceRect) *RasterFrame {
	r = r.Intersect(geom.Viewport(f.Width, f.Height))
	if r.Empty() {
		return nil
	}
	if r == geom.Viewport(f.Width, f.Height) {
		return f
	}
	offset := r.Y*f.Stride + r.X*f.BytesPerPixel()
	return &RasterFrame{
		Width:  r.Width,
		Height: r.Height,
		Depth:  f.Depth,
		Stride: f.Stride,
		Pix:    f.Pix[offset:],
	}
}

// DisplayImage is a display-ready image in RGB8 or RGBX8 layout.
//
// DisplayImage implements image.Image so it can be encoded or drawn with
// the standard image packages. The unused byte of RGBX8 reads as opaque.
type DisplayImage struct {
	Width  int
	Height int
	Stride int
	Format Format
	Pix    []byte
}

// NewDisplayImage allocates a display image with aligned rows.
func NewDisplayImage(width, height int, format Format) *DisplayImage {
	stride := format.Stride(width)
	return &DisplayImage{
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
		Pix:    make([]byte, stride*height),
	}
}

// Depth returns the color depth in bits.
func (m *DisplayImage) Depth() int {
	return m.Format.BitsPerPixel()
}

// TextureFormat returns the GPU texture format of the image's layout.
func (m *DisplayImage) TextureFormat() gputypes.TextureFormat {
	return m.Format.TextureFormat()
}

// ColorModel implements image.Image.
func (m *DisplayImage) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (m *DisplayImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image.
func (m *DisplayImage) At(x, y int) color.Color {
	return m.RGBAAt(x, y)
}

// RGBAAt returns the pixel at (x, y) as an opaque color.
func (m *DisplayImage) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.RGBA{}
	}
	info := m.Format.Info()
	i := y*m.Stride + x*info.BytesPerPixel
	return color.RGBA{
		R: m.Pix[i+info.RedOffset],
		G: m.Pix[i+1],
		B: m.Pix[i+info.BlueOffset],
		A: 0xFF,
	}
}

// RGBA returns a tightly packed RGBA copy, the layout texture uploads expect.
func (m *DisplayImage) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    m.AppendRGBA(make([]byte, 0, m.Width*m.Height*4)),
		Stride: m.Width * 4,
		Rect:   m.Bounds(),
	}
}

// AppendRGBA appends the image as tightly packed opaque RGBA to buf and
// returns the extended buffer.
func (m *DisplayImage) AppendRGBA(buf []byte) []byte {
	n := len(buf)
	need := n + m.Width*m.Height*4
	if cap(buf) < need {
		grown := make([]byte, n, need)
		copy(grown, buf)
		buf = grown
	}
	buf = buf[:need]

	info := m.Format.Info()
	bpp := info.BytesPerPixel
	for y := 0; y < m.Height; y++ {
		src := m.Pix[y*m.Stride:]
		row := buf[n+y*m.Width*4:]
		for x := 0; x < m.Width; x++ {
			s := src[x*bpp:]
			d := row[x*4 : x*4+4]
			d[0] = s[info.RedOffset]
			d[1] = s[1]
			d[2] = s[info.BlueOffset]
			d[3] = 0xFF
		}
	}
	return buf
}
