// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"math"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	// lineWidth is the stroke width in device pixels.
	lineWidth = 1.0

	// circleSegments is the number of chords approximating a circle.
	circleSegments = 64

	// minTextPixels is the device height below which labels are skipped.
	minTextPixels = 4.0
)

// painter draws entities onto an RGBA image.
type painter struct {
	ras vector.Rasterizer
}

func (p *painter) paint(dst *image.RGBA, m f64.Aff3, mode backend.RenderMode, entities []scene.Entity) {
	for _, e := range entities {
		src := image.NewUniform(e.StrokeColor())
		switch e := e.(type) {
		case *scene.Line:
			p.stroke(dst, src, []f64.Vec2{apply(m, e.From), apply(m, e.To)}, false)
		case *scene.Polyline:
			pts := make([]f64.Vec2, len(e.Points))
			for i, pt := range e.Points {
				pts[i] = apply(m, pt)
			}
			if e.Closed && mode == backend.ModeShaded {
				p.fill(dst, src, pts)
				continue
			}
			p.stroke(dst, src, pts, e.Closed)
		case *scene.Circle:
			pts := circle(m, e)
			if mode == backend.ModeShaded {
				p.fill(dst, src, pts)
				continue
			}
			p.stroke(dst, src, pts, true)
		case *scene.Text:
			p.text(dst, src, m, e)
		}
	}
}

// stroke draws each segment as a thin quad.
func (p *painter) stroke(dst *image.RGBA, src image.Image, pts []f64.Vec2, closed bool) {
	if len(pts) < 2 {
		return
	}
	b := dst.Bounds()
	p.ras.Reset(b.Dx(), b.Dy())
	n := len(pts) - 1
	if closed {
		n = len(pts)
	}
	for i := 0; i < n; i++ {
		a, c := pts[i], pts[(i+1)%len(pts)]
		dx, dy := c[0]-a[0], c[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*lineWidth/2, dx/l*lineWidth/2
		p.ras.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
		p.ras.LineTo(float32(c[0]+nx), float32(c[1]+ny))
		p.ras.LineTo(float32(c[0]-nx), float32(c[1]-ny))
		p.ras.LineTo(float32(a[0]-nx), float32(a[1]-ny))
		p.ras.ClosePath()
	}
	p.ras.Draw(dst, b, src, image.Point{})
}

func (p *painter) fill(dst *image.RGBA, src image.Image, pts []f64.Vec2) {
	if len(pts) < 3 {
		return
	}
	b := dst.Bounds()
	p.ras.Reset(b.Dx(), b.Dy())
	p.ras.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, pt := range pts[1:] {
		p.ras.LineTo(float32(pt[0]), float32(pt[1]))
	}
	p.ras.ClosePath()
	p.ras.Draw(dst, b, src, image.Point{})
}

// text draws a label with the fixed 7x13 face anchored at its baseline.
func (p *painter) text(dst *image.RGBA, src image.Image, m f64.Aff3, t *scene.Text) {
	if t.Value == "" || t.Height*math.Abs(m[4]) < minTextPixels {
		return
	}
	at := apply(m, t.Position)
	d := font.Drawer{
		Dst:  dst,
		Src:  src,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(at[0])), int(math.Round(at[1]))),
	}
	d.DrawString(t.Value)
}

func circle(m f64.Aff3, c *scene.Circle) []f64.Vec2 {
	pts := make([]f64.Vec2, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = apply(m, f64.Vec3{
			c.Center[0] + c.Radius*math.Cos(a),
			c.Center[1] + c.Radius*math.Sin(a),
			c.Center[2],
		})
	}
	return pts
}

// apply maps a world point to device space, dropping z.
func apply(m f64.Aff3, p f64.Vec3) f64.Vec2 {
	return f64.Vec2{
		m[0]*p[0] + m[1]*p[1] + m[2],
		m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

