// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"image/color"
	"sort"
	"sync"
)

// Well-known device property keys.
const (
	// PropBitsPerPixel holds the output depth as an int.
	PropBitsPerPixel = "BitsPerPixel"

	// PropDoubleBuffer holds a bool enabling double buffering.
	PropDoubleBuffer = "DoubleBufferEnabled"

	// PropPalette holds a color.Palette used for indexed output.
	PropPalette = "Palette"

	// PropWindowHandle binds an on-screen window.
	PropWindowHandle = "WindowHandle"

	// PropSurface binds an offscreen surface the device draws into.
	PropSurface = "OffscreenSurface"

	// PropRasterImage is published by devices after each update and holds
	// the last *render.RasterFrame.
	PropRasterImage = "RasterImage"

	// PropBackground holds the clear color as color.RGBA.
	PropBackground = "BackgroundColor"
)

// Properties is a device's configuration bag. It is safe for concurrent use.
type Properties struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewProperties returns an empty bag.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]any)}
}

// Get returns the value stored under key.
func (p *Properties) Get(key string) (any, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is set.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Put stores v under key. A nil v removes the key.
func (p *Properties) Put(key string, v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v == nil {
		delete(p.values, key)
		return
	}
	p.values[key] = v
}

// Keys returns the set keys in sorted order.
func (p *Properties) Keys() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	keys := make([]string, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Int returns the int stored under key, or def.
func (p *Properties) Int(key string, def int) int {
	if v, ok := p.Get(key); ok {
		if i, ok := v.(int); ok {
			return i
		}
	}
	return def
}

// Bool returns the bool stored under key, or false.
func (p *Properties) Bool(key string) bool {
	if v, ok := p.Get(key); ok {
		b, _ := v.(bool)
		return b
	}
	return false
}

// Color returns the color stored under key, or def.
func (p *Properties) Color(key string, def color.RGBA) color.RGBA {
	if v, ok := p.Get(key); ok {
		if c, ok := v.(color.RGBA); ok {
			return c
		}
	}
	return def
}
