// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software is a pure Go rendering module for ggview.
//
// The module rasterizes scene entities with golang.org/x/image/vector and
// labels with a fixed bitmap face. It registers itself as "software" in
// backend.Default:
//
//	import _ "github.com/gogpu/ggview/backend/software"
//
// Devices render at 32 bits per pixel (BGRX) unless PropBitsPerPixel
// selects 24. When an offscreen surface is bound under PropSurface and
// matches the viewport, pixels are written straight into its memory.
package software
