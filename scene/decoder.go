// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package scene

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/math/f64"
)

// Decoder errors.
var (
	// ErrUnknownEntity is returned for an entity type the decoder does not know.
	ErrUnknownEntity = errors.New("scene: unknown entity type")

	// ErrInvalidColor is returned for a color that is not "#rrggbb".
	ErrInvalidColor = errors.New("scene: invalid color")

	// ErrInvalidPoint is returned for a point with fewer than 2 or more
	// than 3 coordinates.
	ErrInvalidPoint = errors.New("scene: invalid point")
)

// Entity type names used in drawing files.
const (
	TypeLine     = "line"
	TypePolyline = "polyline"
	TypeCircle   = "circle"
	TypeText     = "text"
)

type fileDrawing struct {
	Name         string       `toml:"name"`
	ActiveLayout string       `toml:"active_layout"`
	Entities     []fileEntity `toml:"entities"`
	Layouts      []fileLayout `toml:"layouts"`
}

type fileEntity struct {
	Type     string      `toml:"type"`
	Color    string      `toml:"color"`
	From     []float64   `toml:"from"`
	To       []float64   `toml:"to"`
	Points   [][]float64 `toml:"points"`
	Closed   bool        `toml:"closed"`
	Center   []float64   `toml:"center"`
	Radius   float64     `toml:"radius"`
	Position []float64   `toml:"position"`
	Value    string      `toml:"value"`
	Height   float64     `toml:"height"`
}

type fileLayout struct {
	Name   string    `toml:"name"`
	Center []float64 `toml:"center"`
	Height float64   `toml:"height"`
}

// Decode reads a drawing in TOML form.
//
// Unknown keys are rejected so that typos in hand-written files surface as
// errors instead of silently missing geometry.
func Decode(r io.Reader) (*Drawing, error) {
	var fd fileDrawing
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&fd); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}

	d := NewDrawing(fd.Name)
	d.Active = fd.ActiveLayout
	for i, fe := range fd.Entities {
		e, err := fe.entity()
		if err != nil {
			return nil, fmt.Errorf("scene: entity %d: %w", i, err)
		}
		d.Add(e)
	}
	for i, fl := range fd.Layouts {
		l := &Layout{Name: fl.Name, Block: d.Model, Height: fl.Height}
		if fl.Center != nil {
			c, err := point(fl.Center)
			if err != nil {
				return nil, fmt.Errorf("scene: layout %d: %w", i, err)
			}
			l.Center = f64.Vec2{c[0], c[1]}
		}
		d.Layouts = append(d.Layouts, l)
	}
	return d, nil
}

func (fe fileEntity) entity() (Entity, error) {
	c, err := ParseColor(fe.Color)
	if err != nil {
		return nil, err
	}
	style := Style{Color: c}

	switch strings.ToLower(fe.Type) {
	case TypeLine:
		from, err := point(fe.From)
		if err != nil {
			return nil, err
		}
		to, err := point(fe.To)
		if err != nil {
			return nil, err
		}
		return &Line{Style: style, From: from, To: to}, nil
	case TypePolyline:
		pts := make([]f64.Vec3, 0, len(fe.Points))
		for _, p := range fe.Points {
			v, err := point(p)
			if err != nil {
				return nil, err
			}
			pts = append(pts, v)
		}
		return &Polyline{Style: style, Points: pts, Closed: fe.Closed}, nil
	case TypeCircle:
		center, err := point(fe.Center)
		if err != nil {
			return nil, err
		}
		return &Circle{Style: style, Center: center, Radius: fe.Radius}, nil
	case TypeText:
		pos, err := point(fe.Position)
		if err != nil {
			return nil, err
		}
		return &Text{Style: style, Position: pos, Value: fe.Value, Height: fe.Height}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEntity, fe.Type)
	}
}

func point(v []float64) (f64.Vec3, error) {
	switch len(v) {
	case 2:
		return f64.Vec3{v[0], v[1], 0}, nil
	case 3:
		return f64.Vec3{v[0], v[1], v[2]}, nil
	default:
		return f64.Vec3{}, fmt.Errorf("%w: %d coordinates", ErrInvalidPoint, len(v))
	}
}

// ParseColor parses "#rrggbb". An empty string yields the zero color, which
// entities draw as black.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
