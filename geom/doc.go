// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package geom provides the small amount of geometry ggview needs:
// axis-aligned rectangles in world and device space, 3D extents and
// helpers over [f64.Vec3] points.
//
// World coordinates follow drawing conventions (Y grows up). Device
// rectangles follow raster conventions (origin top-left, Y grows down).
package geom
