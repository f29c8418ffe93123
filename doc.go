// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ggview displays scene databases inside a host canvas.
//
// # Overview
//
// An [Item] binds one scene database to a rendering backend. On every
// paint it brings the backend device up if needed, sizes it to the host
// viewport, renders, and hands the host a display image. The first paint
// fits the whole scene into view; mouse wheel input zooms the camera.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/ggview"
//	    "github.com/gogpu/ggview/scene"
//	    _ "github.com/gogpu/ggview/backend/software"
//	)
//
//	db, err := scene.FileLoader{}.Load("plan.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	item := ggview.NewItem(db, ggview.WithWindow(window))
//	defer item.Close()
//
//	// In the host draw callback:
//	item.Paint(dc, width, height)
//
// # Architecture
//
// The library is organized into:
//   - Facade: Item, options, logger
//   - Lifecycle: device (state machine), surface (offscreen buffers)
//   - Pipeline: extents, navigator, present
//   - Collaborators: backend (module registry), scene (databases)
//   - Hosts: integration/hostcanvas (GPU texture upload)
//
// # Errors
//
// Pipeline failures never abort the host. Paint skips the frame and logs;
// Frame returns a [render.Error] whose kind can be tested with errors.Is
// against the render sentinels.
//
// Item is not safe for concurrent use.
package ggview

// Version is the current version of the library.
const Version = "0.1.0"
