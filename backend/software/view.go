// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/scene"
	"golang.org/x/image/math/f64"
)

// ErrInvalidFactor is returned by Zoom for non-positive factors.
var ErrInvalidFactor = errors.New("software: zoom factor must be positive")

// View is a camera bound to a block of content.
type View struct {
	cam  backend.Camera
	root *scene.Block
	ctx  backend.Context
	dev  *Device
}

func newView() *View {
	return &View{cam: backend.DefaultCamera()}
}

// Camera implements backend.View.
func (v *View) Camera() backend.Camera {
	return v.cam
}

// SetCamera implements backend.View.
func (v *View) SetCamera(c backend.Camera) error {
	v.cam = c
	return nil
}

// ZoomExtents implements backend.View. The field keeps the aspect of the
// device the view is attached to.
func (v *View) ZoomExtents(min, max f64.Vec3) error {
	aspect := 1.0
	if v.dev != nil {
		aspect = v.dev.aspect()
	}
	v.cam = v.cam.Fitted(min, max, aspect)
	return nil
}

// Zoom implements backend.Zoomer.
func (v *View) Zoom(factor float64) error {
	if factor <= 0 {
		return ErrInvalidFactor
	}
	v.cam = v.cam.Scaled(factor)
	return nil
}

// Add implements backend.View.
func (v *View) Add(root *scene.Block, ctx backend.Context) error {
	if _, ok := ctx.(*Context); !ok {
		return ErrForeignObject
	}
	if root == nil {
		return ErrNoContent
	}
	v.root = root
	v.ctx = ctx
	return nil
}

// transform returns the world to device transform for a w x h viewport.
// Device y grows downwards.
func (v *View) transform(w, h int) f64.Aff3 {
	fw, fh := v.cam.FieldWidth, v.cam.FieldHeight
	if fw <= 0 || fh <= 0 {
		fw, fh = 1, 1
	}
	s := min(float64(w)/fw, float64(h)/fh)
	tx, ty := v.cam.Target[0], v.cam.Target[1]
	return f64.Aff3{
		s, 0, float64(w)/2 - tx*s,
		0, -s, float64(h)/2 + ty*s,
	}
}

var (
	_ backend.View   = (*View)(nil)
	_ backend.Zoomer = (*View)(nil)
)
