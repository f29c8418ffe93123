// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/gputypes"

// Format is a packed 8-bit-per-channel pixel layout.
type Format uint8

const (
	// FormatUnknown is the zero value.
	FormatUnknown Format = iota

	// FormatBGR8 is 24-bit blue, green, red. Native offscreen device layout.
	FormatBGR8

	// FormatBGRX8 is 32-bit blue, green, red, unused.
	FormatBGRX8

	// FormatRGB8 is 24-bit red, green, blue. Display layout for 24-bit frames.
	FormatRGB8

	// FormatRGBX8 is 32-bit red, green, blue, unused.
	FormatRGBX8

	formatCount
)

// FormatInfo contains metadata about a pixel format.
type FormatInfo struct {
	// BytesPerPixel is the number of bytes per pixel.
	BytesPerPixel int

	// RedOffset and BlueOffset are the byte offsets of the red and blue
	// channels inside one pixel.
	RedOffset  int
	BlueOffset int

	// RowAlign is the row alignment in bytes that images of this format
	// use when they own their memory.
	RowAlign int
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatBGR8:  {BytesPerPixel: 3, RedOffset: 2, BlueOffset: 0, RowAlign: 4},
	FormatBGRX8: {BytesPerPixel: 4, RedOffset: 2, BlueOffset: 0, RowAlign: 4},
	FormatRGB8:  {BytesPerPixel: 3, RedOffset: 0, BlueOffset: 2, RowAlign: 4},
	FormatRGBX8: {BytesPerPixel: 4, RedOffset: 0, BlueOffset: 2, RowAlign: 4},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if the format is a known, non-zero format.
func (f Format) IsValid() bool {
	return f > FormatUnknown && f < formatCount
}

// BytesPerPixel returns the number of bytes per pixel.
func (f Format) BytesPerPixel() int {
	return f.Info().BytesPerPixel
}

// BitsPerPixel returns the color depth.
func (f Format) BitsPerPixel() int {
	return f.BytesPerPixel() * 8
}

// RowBytes returns the unpadded size of a row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// Stride returns the row size of the given width padded to RowAlign.
func (f Format) Stride(width int) int {
	return AlignStride(f.RowBytes(width), f.Info().RowAlign)
}

// Swapped returns the format with red and blue exchanged.
func (f Format) Swapped() Format {
	switch f {
	case FormatBGR8:
		return FormatRGB8
	case FormatBGRX8:
		return FormatRGBX8
	case FormatRGB8:
		return FormatBGR8
	case FormatRGBX8:
		return FormatBGRX8
	default:
		return FormatUnknown
	}
}

// TextureFormat returns the matching GPU texture format. 24-bit formats
// have no texture equivalent and return TextureFormatUndefined.
func (f Format) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatBGRX8:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatRGBX8:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatBGR8:
		return "BGR8"
	case FormatBGRX8:
		return "BGRX8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBX8:
		return "RGBX8"
	default:
		return "Unknown"
	}
}

// DeviceFormat returns the backend pixel layout for a color depth.
// Only 24 and 32 bits are supported.
func DeviceFormat(depth int) (Format, bool) {
	switch depth {
	case 24:
		return FormatBGR8, true
	case 32:
		return FormatBGRX8, true
	default:
		return FormatUnknown, false
	}
}

// AlignStride rounds rowBytes up to a multiple of align.
// align must be a power of two; values below 2 disable alignment.
func AlignStride(rowBytes, align int) int {
	if align < 2 {
		return rowBytes
	}
	return (rowBytes + align - 1) &^ (align - 1)
}
