// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package device manages the lifetime of a rendering device, its context
// and its active view for one displayed scene.
//
// A [Manager] is a small state machine:
//
//	Uninitialized --paint--> Initializing --ok--> Ready
//	      ^                       |                 |
//	      +-------failure---------+---- Teardown ---+
//
//	Close: any state --> Destroyed
//
// Every paint while Ready resizes the device to the viewport, renders and
// converts the frame for display. The first successful resize fits the
// camera to the scene extents and backs off slightly so the content does
// not touch the viewport edges.
//
// Backend failures never escape as panics. Setup failures leave the
// manager Uninitialized so the next paint retries; render failures skip
// the frame.
package device
