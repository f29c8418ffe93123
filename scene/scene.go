// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggview/geom"
	"golang.org/x/image/math/f64"
)

// Database errors.
var (
	// ErrEmpty is returned when a drawing has no geometry to measure.
	ErrEmpty = errors.New("scene: drawing is empty")

	// ErrNoContent is returned when a drawing has no content root.
	ErrNoContent = errors.New("scene: no content root")

	// ErrLayoutNotFound is returned when the active layout name is unknown.
	ErrLayoutNotFound = errors.New("scene: layout not found")
)

// ModelLayoutName is the name of the implicit layout showing model space.
const ModelLayoutName = "Model"

// Database is a read-only handle to fully loaded vector content.
//
// Implementations are owned by the caller. ggview holds the handle for
// the lifetime of the item that displays it and never mutates it.
type Database interface {
	// GeomExtents returns the 3D extents of all geometry.
	GeomExtents() (geom.Extents, error)

	// ActiveLayout returns the layout the drawing should open with.
	ActiveLayout() (*Layout, error)

	// ContentRoot returns the block holding model-space content.
	ContentRoot() (*Block, error)
}

// Block is a named, ordered collection of entities.
type Block struct {
	Name     string
	Entities []Entity
}

// Extents returns the union of the entity bounds.
func (b *Block) Extents() geom.Extents {
	ext := geom.EmptyExtents()
	if b == nil {
		return ext
	}
	for _, e := range b.Entities {
		ext = ext.Union(e.Bounds())
	}
	return ext
}

// Layout describes how a block is presented when the drawing opens.
//
// A zero Height means no saved view: the layout is fitted to its block.
type Layout struct {
	Name   string
	Block  *Block
	Center f64.Vec2
	Height float64
}

// HasSavedView reports whether the layout carries a saved view.
func (l *Layout) HasSavedView() bool {
	return l.Height > 0
}

// Drawing is an in-memory Database.
type Drawing struct {
	Name    string
	Model   *Block
	Layouts []*Layout
	Active  string
}

// NewDrawing returns an empty drawing with a model-space block.
func NewDrawing(name string) *Drawing {
	return &Drawing{
		Name:  name,
		Model: &Block{Name: "*Model_Space"},
	}
}

// Add appends entities to model space.
func (d *Drawing) Add(entities ...Entity) {
	if d.Model == nil {
		d.Model = &Block{Name: "*Model_Space"}
	}
	d.Model.Entities = append(d.Model.Entities, entities...)
}

// GeomExtents implements Database.
func (d *Drawing) GeomExtents() (geom.Extents, error) {
	ext := d.Model.Extents()
	if !ext.Valid() {
		return ext, ErrEmpty
	}
	return ext, nil
}

// ActiveLayout implements Database. An empty Active name or the model
// layout name selects model space.
func (d *Drawing) ActiveLayout() (*Layout, error) {
	if d.Active == "" || d.Active == ModelLayoutName {
		if d.Model == nil {
			return nil, ErrNoContent
		}
		return &Layout{Name: ModelLayoutName, Block: d.Model}, nil
	}
	for _, l := range d.Layouts {
		if l.Name == d.Active {
			if l.Block == nil {
				l.Block = d.Model
			}
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, d.Active)
}

// ContentRoot implements Database.
func (d *Drawing) ContentRoot() (*Block, error) {
	if d.Model == nil {
		return nil, ErrNoContent
	}
	return d.Model, nil
}

var _ Database = (*Drawing)(nil)
