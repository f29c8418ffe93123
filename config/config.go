// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads ggview deployment settings from TOML files.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]:
//
//	backend  = "software"
//	strategy = "manual"
//	zoom_step = 1.25
//
//	[viewport]
//	width  = 1280
//	height = 720
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/device"
	"github.com/gogpu/ggview/navigator"
	"github.com/gogpu/ggview/present"
	"github.com/gogpu/ggview/scene"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// Viewport is the frame size used when the host does not supply one.
type Viewport struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Config holds the settings of one deployment.
type Config struct {
	Backend      string   `toml:"backend"`
	Strategy     string   `toml:"strategy"`
	Target       string   `toml:"target"`
	Snapshot     string   `toml:"snapshot"`
	ZoomStep     float64  `toml:"zoom_step"`
	DoubleBuffer bool     `toml:"double_buffer"`
	Background   string   `toml:"background"`
	LogLevel     string   `toml:"log_level"`
	Viewport     Viewport `toml:"viewport"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:    backend.ModuleSoftware,
		Strategy:   device.StrategyLayout.String(),
		Target:     device.TargetOffscreen.String(),
		Snapshot:   present.SnapshotCall.String(),
		ZoomStep:   navigator.DefaultStep,
		Background: "#ffffff",
		LogLevel:   "warn",
		Viewport:   Viewport{Width: 800, Height: 600},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("config: unknown keys:\n%s", strict.String())
		}
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every field holds an accepted value.
func (c Config) Validate() error {
	if c.Backend == "" {
		return fmt.Errorf("%w: empty backend", ErrInvalid)
	}
	if _, ok := device.ParseStrategy(c.Strategy); !ok {
		return fmt.Errorf("%w: strategy %q", ErrInvalid, c.Strategy)
	}
	if _, ok := device.ParseTarget(c.Target); !ok {
		return fmt.Errorf("%w: target %q", ErrInvalid, c.Target)
	}
	if _, ok := present.ParseSnapshotMode(c.Snapshot); !ok {
		return fmt.Errorf("%w: snapshot %q", ErrInvalid, c.Snapshot)
	}
	if !(c.ZoomStep > 1) || math.IsInf(c.ZoomStep, 0) {
		return fmt.Errorf("%w: zoom_step %v must be greater than 1", ErrInvalid, c.ZoomStep)
	}
	if _, err := scene.ParseColor(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	if c.Viewport.Width < device.MinViewport || c.Viewport.Height < device.MinViewport {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// StrategyValue returns the parsed view strategy.
func (c Config) StrategyValue() device.Strategy {
	s, _ := device.ParseStrategy(c.Strategy)
	return s
}

// TargetValue returns the parsed drawing target.
func (c Config) TargetValue() device.Target {
	t, _ := device.ParseTarget(c.Target)
	return t
}

// SnapshotValue returns the parsed snapshot mode.
func (c Config) SnapshotValue() present.SnapshotMode {
	m, _ := present.ParseSnapshotMode(c.Snapshot)
	return m
}

// BackgroundValue returns the parsed background color. An empty value is
// white.
func (c Config) BackgroundValue() color.RGBA {
	bg, err := scene.ParseColor(c.Background)
	if err != nil || c.Background == "" {
		return backend.Background
	}
	return bg
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning", "":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}
