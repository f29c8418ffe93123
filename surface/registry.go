// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNoPlatformAvailable is returned when no registered platform can be
// created on the current system.
var ErrNoPlatformAvailable = errors.New("surface: no platform available")

// Factory creates a Platform.
type Factory func() (Platform, error)

type platformEntry struct {
	name      string
	priority  int
	factory   Factory
	available func() bool
}

// Registry selects a platform by priority among the usable ones.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]platformEntry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]platformEntry)}
}

// Register adds or replaces a platform. A higher priority is preferred;
// native windowing platforms use 100 and the memory platform 10. A nil
// available func means the platform always works.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	r.entries[name] = platformEntry{name: name, priority: priority, factory: factory, available: available}
	r.mu.Unlock()
}

// Unregister removes a platform.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.entries, name)
	r.mu.Unlock()
}

// Available returns the usable platforms, preferred first.
func (r *Registry) Available() []string {
	usable := r.usable()
	names := make([]string, len(usable))
	for i, e := range usable {
		names[i] = e.name
	}
	return names
}

// NewPlatform creates the preferred platform. When a factory fails the
// next one is tried; the errors are joined if all of them fail.
func (r *Registry) NewPlatform() (Platform, error) {
	usable := r.usable()
	if len(usable) == 0 {
		return nil, ErrNoPlatformAvailable
	}
	var errs []error
	for _, e := range usable {
		p, err := e.factory()
		if err == nil {
			return p, nil
		}
		errs = append(errs, fmt.Errorf("surface: platform %s: %w", e.name, err))
	}
	return nil, errors.Join(errs...)
}

func (r *Registry) usable() []platformEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]platformEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.available() {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b platformEntry) int {
		if c := cmp.Compare(b.priority, a.priority); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})
	return out
}

var platforms = NewRegistry()

// Register adds a platform to the process-wide registry.
func Register(name string, priority int, factory Factory, available func() bool) {
	platforms.Register(name, priority, factory, available)
}

// Available lists the usable platforms of the process-wide registry,
// preferred first.
func Available() []string {
	return platforms.Available()
}

// NewPlatform creates the preferred platform of the process-wide registry.
func NewPlatform() (Platform, error) {
	return platforms.NewPlatform()
}

func init() {
	Register(PlatformMemory, 10, func() (Platform, error) {
		return NewMemoryPlatform(), nil
	}, nil)
}
