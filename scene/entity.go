// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"image/color"

	"github.com/gogpu/ggview/geom"
	"golang.org/x/image/math/f64"
)

// Entity is a drawable element of a block.
type Entity interface {
	// Bounds returns the entity's 3D extents.
	Bounds() geom.Extents

	// StrokeColor returns the color the entity is drawn with.
	StrokeColor() color.RGBA
}

// Style carries the attributes shared by all entities.
type Style struct {
	Color color.RGBA
}

// StrokeColor returns the style color, black when unset.
func (s Style) StrokeColor() color.RGBA {
	if s.Color == (color.RGBA{}) {
		return color.RGBA{A: 0xFF}
	}
	return s.Color
}

// Line is a straight segment.
type Line struct {
	Style
	From, To f64.Vec3
}

// Bounds implements Entity.
func (l *Line) Bounds() geom.Extents {
	return geom.EmptyExtents().AddPoint(l.From).AddPoint(l.To)
}

// Polyline is a chain of segments, optionally closed.
type Polyline struct {
	Style
	Points []f64.Vec3
	Closed bool
}

// Bounds implements Entity.
func (p *Polyline) Bounds() geom.Extents {
	ext := geom.EmptyExtents()
	for _, pt := range p.Points {
		ext = ext.AddPoint(pt)
	}
	return ext
}

// Circle is a full circle in the XY plane.
type Circle struct {
	Style
	Center f64.Vec3
	Radius float64
}

// Bounds implements Entity.
func (c *Circle) Bounds() geom.Extents {
	r := f64.Vec3{c.Radius, c.Radius, 0}
	return geom.Extents{Min: geom.Sub(c.Center, r), Max: geom.Add(c.Center, r)}
}

// textAspect approximates glyph advance relative to text height.
const textAspect = 0.6

// Text is a single-line label anchored at its lower-left corner.
type Text struct {
	Style
	Position f64.Vec3
	Value    string
	Height   float64
}

// Bounds implements Entity. The width is estimated from the character count.
func (t *Text) Bounds() geom.Extents {
	w := float64(len([]rune(t.Value))) * t.Height * textAspect
	return geom.Extents{
		Min: t.Position,
		Max: geom.Add(t.Position, f64.Vec3{w, t.Height, 0}),
	}
}
