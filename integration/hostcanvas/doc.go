// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hostcanvas shows ggview display images inside a host that draws
// GPU textures, such as a gogpu window.
//
// The host exposes a gpucontext.TextureDrawer. A [Canvas] keeps one texture
// for the item, creating it on first use, updating it in place while the
// viewport size is stable and recreating it when the size changes:
//
//	canvas := hostcanvas.New()
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    img, err := manager.Paint(w, h)
//	    if err != nil || img == nil {
//	        return
//	    }
//	    canvas.Present(dc.AsTextureDrawer(), img)
//	})
//
// Canvas is not safe for concurrent use.
package hostcanvas
