// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package scene defines the scene database boundary consumed by ggview and
// ships a small reference implementation.
//
// ggview never creates, mutates or frees a [Database]; it only queries
// geometric extents, the active layout and the content root. Anything that
// implements the interface can be displayed, whether it wraps a CAD engine
// or the in-memory [Drawing] provided here.
//
// Loading is a capability, not global state: components that need to open
// files receive a [Loader]. [FileLoader] reads the TOML drawing format,
// [CachingLoader] keeps recently loaded drawings.
package scene
