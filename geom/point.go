// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Add returns a + b.
func Add(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns a - b.
func Sub(a, b f64.Vec3) f64.Vec3 {
	return f64.Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns v * s.
func Scale(v f64.Vec3, s float64) f64.Vec3 {
	return f64.Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Length returns the Euclidean length of v.
func Length(v f64.Vec3) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b f64.Vec3) float64 {
	return Length(Sub(a, b))
}

// Extents is a 3D axis-aligned bounding box.
type Extents struct {
	Min f64.Vec3
	Max f64.Vec3
}

// EmptyExtents returns extents that any point will grow.
func EmptyExtents() Extents {
	inf := math.Inf(1)
	return Extents{
		Min: f64.Vec3{inf, inf, inf},
		Max: f64.Vec3{-inf, -inf, -inf},
	}
}

// Valid reports whether Min <= Max on every axis and no coordinate is NaN.
func (e Extents) Valid() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(e.Min[i]) || math.IsNaN(e.Max[i]) || e.Min[i] > e.Max[i] {
			return false
		}
	}
	return true
}

// AddPoint grows e to include p.
func (e Extents) AddPoint(p f64.Vec3) Extents {
	for i := 0; i < 3; i++ {
		e.Min[i] = min(e.Min[i], p[i])
		e.Max[i] = max(e.Max[i], p[i])
	}
	return e
}

// Union grows e to include o. Invalid extents are ignored.
func (e Extents) Union(o Extents) Extents {
	if !o.Valid() {
		return e
	}
	return e.AddPoint(o.Min).AddPoint(o.Max)
}

// Rect projects the extents onto the XY plane.
func (e Extents) Rect() Rect {
	return RectFromPoints(e.Min[0], e.Min[1], e.Max[0], e.Max[1])
}

// ExtentsFromRect lifts a world rectangle to flat extents at z = 0.
func ExtentsFromRect(r Rect) Extents {
	return Extents{
		Min: f64.Vec3{r.X, r.Y, 0},
		Max: f64.Vec3{r.MaxX(), r.MaxY(), 0},
	}
}
