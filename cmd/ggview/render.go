// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"image/png"
	"os"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/device"
	"github.com/gogpu/ggview/scene"
	"github.com/urfave/cli"
)

var errNoScene = errors.New("no scene file given")

// loader is shared by the commands so repeated files are decoded once.
var loader = func() *scene.CachingLoader {
	l, err := scene.NewCachingLoader(scene.FileLoader{}, scene.DefaultCacheSize)
	if err != nil {
		panic(err)
	}
	return l
}()

// renderFrame renders one frame of a scene file to PNG.
func renderFrame(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errNoScene
	}
	db, err := loader.Load(ctx.Args().First())
	if err != nil {
		return err
	}

	width, height := cfg.Viewport.Width, cfg.Viewport.Height
	if ctx.IsSet("width") {
		width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		height = ctx.Int("height")
	}

	item := ggview.NewItem(db,
		ggview.WithConfig(cfg),
		// Headless rendering has no window to draw into.
		ggview.WithTarget(device.TargetOffscreen))
	defer item.Close()

	// The first frame brings the device up and fits the scene.
	img, err := item.Frame(width, height)
	if err != nil {
		return err
	}
	if zoom := ctx.Int("zoom"); zoom != 0 {
		signal := 1.0
		if zoom < 0 {
			signal, zoom = -1, -zoom
		}
		for i := 0; i < zoom; i++ {
			item.OnZoomInput(signal)
		}
		if img, err = item.Frame(width, height); err != nil {
			return err
		}
	}
	if img == nil {
		return fmt.Errorf("nothing rendered for %dx%d", width, height)
	}

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	ggview.Logger().Info("frame written", "file", out, "width", img.Width, "height", img.Height)
	fmt.Fprintf(ctx.App.Writer, "wrote %s (%dx%d)\n", out, img.Width, img.Height)
	return nil
}
