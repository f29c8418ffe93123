// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface allocates the offscreen pixel buffer a rendering device
// draws into.
//
// An offscreen surface is a triple of native resources: a hidden drawing
// surface, a drawing context created on it, and a 24-bit pixel buffer
// selected into that context. The [Allocator] keeps exactly one such triple
// sized to the current viewport and reuses it while the size is unchanged.
//
// # Platforms
//
// Native resources are created through a [Platform]. Platforms register
// themselves by name and priority:
//
//	func init() {
//	    surface.Register("win32", 100, newWin32Platform, win32Available)
//	}
//
// The pure Go "memory" platform is always registered and serves headless
// rendering and tests.
//
// # Row layout
//
// Rows are 3 bytes per pixel, blue first, padded to a multiple of 4 bytes:
//
//	stride := (width*3 + 3) &^ 3
//
// # Thread Safety
//
// Allocators are NOT thread-safe. Registries and the memory platform are.
package surface
