// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render defines the vocabulary shared by the ggview pipeline:
// the error taxonomy, raster frames produced by backend devices and the
// display images handed to the host.
//
// # Pixel layout
//
// A [RasterFrame] is what a device produces: 24 or 32 bits per pixel in
// BGR(X) order, rows possibly padded (Stride >= Width*bytesPerPixel).
// A [DisplayImage] is what the host consumes: RGB888 with 4-byte aligned
// rows, or RGBX8888. Converting between the two is the job of package
// present.
package render
