// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package backend defines the boundary between ggview and a rendering engine.
//
// A rendering engine is packaged as a [Module] and registered by name in a
// [Registry]. ggview loads the module, creates a [Device], configures it
// through its [Properties] bag, binds a scene database with a [Context] and
// attaches one [View]. Everything behind these interfaces is owned by the
// module.
//
// # Registration
//
// Modules register themselves from init functions:
//
//	func init() {
//		backend.Register(backend.ModuleSoftware, func() backend.Module {
//			return &Module{}
//		})
//	}
//
// Importing the module package for side effects makes it loadable:
//
//	import _ "github.com/gogpu/ggview/backend/software"
//
// # Available Modules
//
//   - "software": pure Go reference rasterizer (backend/software)
package backend
