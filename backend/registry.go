// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"
)

// ModuleSoftware is the name of the pure Go reference module.
const ModuleSoftware = "software"

// Registry holds module factories by name. It is safe for concurrent use.
type Registry struct {
	r *gpucontext.Registry[Module]
}

// NewRegistry returns an empty registry. Names in priority are preferred,
// in order, by BestName.
func NewRegistry(priority ...string) *Registry {
	return &Registry{r: gpucontext.NewRegistry[Module](gpucontext.WithPriority(priority...))}
}

// Default is the process-wide registry modules add themselves to.
var Default = NewRegistry(ModuleSoftware)

// Register adds a module factory. An existing entry with the same name is
// replaced.
func (r *Registry) Register(name string, factory func() Module) {
	r.r.Register(name, factory)
}

// Unregister removes a module.
func (r *Registry) Unregister(name string) {
	r.r.Unregister(name)
}

// Load returns a new instance of the named module, or nil if it is not
// registered.
func (r *Registry) Load(name string) Module {
	return r.r.Get(name)
}

// LoadErr is like Load but returns ErrModuleNotFound for unknown names.
func (r *Registry) LoadErr(name string) (Module, error) {
	m := r.Load(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, name)
	}
	return m, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	return r.r.Has(name)
}

// BestName returns the highest-priority registered name, or "".
func (r *Registry) BestName() string {
	return r.r.BestName()
}

// Available returns the registered names in sorted order.
func (r *Registry) Available() []string {
	names := r.r.Available()
	sort.Strings(names)
	return names
}

// Count returns the number of registered modules.
func (r *Registry) Count() int {
	return r.r.Count()
}

// Register adds a module factory to Default.
func Register(name string, factory func() Module) {
	Default.Register(name, factory)
}

// Load returns a module from Default.
func Load(name string) Module {
	return Default.Load(name)
}
