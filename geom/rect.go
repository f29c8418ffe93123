// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import "golang.org/x/exp/constraints"

type numeric interface {
	constraints.Integer | constraints.Float
}

// Rectangle is an axis-aligned rectangle stored as origin and size.
type Rectangle[T numeric] struct {
	X, Y          T
	Width, Height T
}

// Rect is a world-space rectangle.
type Rect = Rectangle[float64]

// DeviceRect is a device-space rectangle in pixels.
type DeviceRect = Rectangle[int]

// RectFromPoints returns the rectangle spanned by two corners.
func RectFromPoints[T numeric](x0, y0, x1, y1 T) Rectangle[T] {
	return Rectangle[T]{
		X:      min(x0, x1),
		Y:      min(y0, y1),
		Width:  max(x0, x1) - min(x0, x1),
		Height: max(y0, y1) - min(y0, y1),
	}
}

// Empty reports whether the rectangle has no area.
func (r Rectangle[T]) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MaxX returns the right edge.
func (r Rectangle[T]) MaxX() T { return r.X + r.Width }

// MaxY returns the far edge along Y.
func (r Rectangle[T]) MaxY() T { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rectangle[T]) Center() (x, y T) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// XYWH unpacks the rectangle.
func (r Rectangle[T]) XYWH() (T, T, T, T) {
	return r.X, r.Y, r.Width, r.Height
}

// Intersect returns the overlap of r and o. The result is empty when
// they do not overlap.
func (r Rectangle[T]) Intersect(o Rectangle[T]) Rectangle[T] {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.MaxX(), o.MaxX())
	y1 := min(r.MaxY(), o.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rectangle[T]{X: x0, Y: y0}
	}
	return Rectangle[T]{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Viewport returns the device rectangle covering a width x height viewport.
func Viewport(width, height int) DeviceRect {
	return DeviceRect{Width: width, Height: height}
}
