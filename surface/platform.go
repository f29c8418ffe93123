// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"fmt"
	"sync"
)

// Handle is an opaque native resource handle. Zero is never a valid handle.
type Handle uintptr

// Platform creates and frees the native resources behind a surface.
//
// Implementations must be safe for concurrent use.
type Platform interface {
	// Name returns the platform identifier.
	Name() string

	// CreateSurface creates a hidden drawing surface.
	CreateSurface() (Handle, error)

	// CreateDrawingContext creates a drawing context on surface.
	CreateDrawingContext(surface Handle) (Handle, error)

	// CreatePixelBuffer creates a top-down 24-bit buffer
	// of height rows of stride bytes and selects it into dc.
	CreatePixelBuffer(dc Handle, width, height, stride int) (Handle, []byte, error)

	// ReleasePixelBuffer deselects buf from dc and frees it.
	ReleasePixelBuffer(dc, buf Handle) error

	// ReleaseDrawingContext frees dc.
	ReleaseDrawingContext(surface, dc Handle) error

	// DestroySurface destroys surface.
	DestroySurface(surface Handle) error
}

// ErrUnknownHandle is returned when a handle is not live.
var ErrUnknownHandle = errors.New("surface: unknown handle")

// PlatformMemory is the name of the pure Go platform.
const PlatformMemory = "memory"

type handleKind uint8

const (
	kindSurface handleKind = iota + 1
	kindContext
	kindBuffer
)

// MemoryPlatform is a Platform backed by Go memory.
type MemoryPlatform struct {
	mu   sync.Mutex
	next Handle
	live map[Handle]handleKind
}

// NewMemoryPlatform returns an empty memory platform.
func NewMemoryPlatform() *MemoryPlatform {
	return &MemoryPlatform{live: make(map[Handle]handleKind)}
}

// Name implements Platform.
func (p *MemoryPlatform) Name() string { return PlatformMemory }

func (p *MemoryPlatform) alloc(k handleKind) Handle {
	p.next++
	p.live[p.next] = k
	return p.next
}

func (p *MemoryPlatform) free(h Handle, k handleKind) error {
	if p.live[h] != k {
		return fmt.Errorf("%w: %#x", ErrUnknownHandle, uintptr(h))
	}
	delete(p.live, h)
	return nil
}

// CreateSurface implements Platform.
func (p *MemoryPlatform) CreateSurface() (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alloc(kindSurface), nil
}

// CreateDrawingContext implements Platform.
func (p *MemoryPlatform) CreateDrawingContext(surface Handle) (Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live[surface] != kindSurface {
		return 0, fmt.Errorf("%w: %#x", ErrUnknownHandle, uintptr(surface))
	}
	return p.alloc(kindContext), nil
}

// CreatePixelBuffer implements Platform.
func (p *MemoryPlatform) CreatePixelBuffer(dc Handle, width, height, stride int) (Handle, []byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live[dc] != kindContext {
		return 0, nil, fmt.Errorf("%w: %#x", ErrUnknownHandle, uintptr(dc))
	}
	if width <= 0 || height <= 0 || stride < width*3 {
		return 0, nil, fmt.Errorf("%w: %dx%d stride %d", ErrInvalidSize, width, height, stride)
	}
	return p.alloc(kindBuffer), make([]byte, stride*height), nil
}

// ReleasePixelBuffer implements Platform.
func (p *MemoryPlatform) ReleasePixelBuffer(_, buf Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free(buf, kindBuffer)
}

// ReleaseDrawingContext implements Platform.
func (p *MemoryPlatform) ReleaseDrawingContext(_, dc Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free(dc, kindContext)
}

// DestroySurface implements Platform.
func (p *MemoryPlatform) DestroySurface(surface Handle) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free(surface, kindSurface)
}

// Live returns the number of handles not yet freed.
func (p *MemoryPlatform) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

var _ Platform = (*MemoryPlatform)(nil)
