// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package extents computes the world-space bounding rectangle of a scene
// once and remembers it.
//
// The rectangle is derived defensively: a missing database, a failed or
// panicking query, inverted extents, degenerate and absurdly large boxes
// all produce a usable rectangle instead of an error.
package extents

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/ggview/geom"
	"github.com/gogpu/ggview/internal/logger"
	"github.com/gogpu/ggview/scene"
	"golang.org/x/image/math/f64"
)

const (
	// MinDiagonal is the extents diagonal below which the box is padded.
	MinDiagonal = 1.0

	// Pad is added on each side of X and Y for degenerate extents.
	Pad = 50.0

	// Limit is the largest size or origin magnitude accepted as-is.
	Limit = 1e7
)

var (
	// Fallback is the rectangle used when extents cannot be computed.
	Fallback = geom.Rect{X: 0, Y: 0, Width: 1000, Height: 1000}

	// Clamped replaces extents that exceed Limit.
	Clamped = geom.Rect{X: -5e6, Y: -5e6, Width: 1e7, Height: 1e7}
)

// Cache memoizes the bounding rectangle of a scene.
//
// The first result, real or fallback, is kept for the lifetime of the
// cache. Edits to the scene are not observed; create a new Cache for a
// new scene. Cache is not safe for concurrent use.
type Cache struct {
	rect       geom.Rect
	calculated bool
}

// Bounds returns the cached rectangle, computing it from db on first use.
func (c *Cache) Bounds(db scene.Database) geom.Rect {
	if c.calculated {
		return c.rect
	}
	c.rect = compute(db)
	c.calculated = true
	return c.rect
}

// Calculated reports whether Bounds has run.
func (c *Cache) Calculated() bool {
	return c.calculated
}

// Reset forgets the cached rectangle.
func (c *Cache) Reset() {
	*c = Cache{}
}

func compute(db scene.Database) geom.Rect {
	log := logger.Get()
	if db == nil {
		return Fallback
	}
	ext, err := query(db)
	if err != nil {
		log.Warn("extents: query failed, using fallback", slog.Any("error", err))
		return Fallback
	}
	if !ext.Valid() {
		log.Debug("extents: invalid extents, using fallback")
		return Fallback
	}

	lo, hi := ext.Min, ext.Max
	if geom.Distance(lo, hi) < MinDiagonal {
		lo = geom.Sub(lo, f64.Vec3{Pad, Pad, 0})
		hi = geom.Add(hi, f64.Vec3{Pad, Pad, 0})
	}

	w := hi[0] - lo[0]
	h := hi[1] - lo[1]
	if w > Limit || h > Limit || math.Abs(lo[0]) > Limit || math.Abs(lo[1]) > Limit {
		log.Debug("extents: clamped", slog.Float64("width", w), slog.Float64("height", h))
		return Clamped
	}
	return geom.Rect{X: lo[0], Y: lo[1], Width: w, Height: h}
}

// query calls db.GeomExtents, turning a panic into an error.
func query(db scene.Database) (ext geom.Extents, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extents: panic: %v", r)
		}
	}()
	return db.GeomExtents()
}
