// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hostcanvas

import (
	"github.com/gogpu/ggview/render"
	"github.com/gogpu/gpucontext"
)

// Present uploads img and draws it at the top-left corner of dc.
func (c *Canvas) Present(dc gpucontext.TextureDrawer, img *render.DisplayImage) error {
	return c.PresentAt(dc, img, 0, 0)
}

// PresentAt uploads img and draws it at (x, y).
func (c *Canvas) PresentAt(dc gpucontext.TextureDrawer, img *render.DisplayImage, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if dc == nil {
		return ErrInvalidRenderer
	}
	tex, err := c.Upload(dc.TextureCreator(), img)
	if err != nil {
		return err
	}
	return dc.DrawTexture(tex, x, y)
}
