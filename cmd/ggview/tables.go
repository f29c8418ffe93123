// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/backend"
	"github.com/gogpu/ggview/scene"
	"github.com/gogpu/ggview/surface"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// listBackends prints the registered backend modules and surface
// platforms.
func listBackends(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Module", "Preferred", "Configured"})
	best := backend.Default.BestName()
	for _, name := range backend.Default.Available() {
		table.Append([]string{
			name,
			fmt.Sprintf("%t", name == best),
			fmt.Sprintf("%t", name == cfg.Backend),
		})
	}
	table.SetFooter([]string{"", "TOTAL", fmt.Sprintf("%d", backend.Default.Count())})
	table.Render()

	platforms := tablewriter.NewWriter(ctx.App.Writer)
	platforms.SetAutoFormatHeaders(false)
	platforms.SetHeader([]string{"Surface platform", "Selected"})
	for i, name := range surface.Available() {
		platforms.Append([]string{name, fmt.Sprintf("%t", i == 0)})
	}
	platforms.Render()
	return nil
}

// sceneInfo prints the extents and bounding rectangle of scene files.
func sceneInfo(ctx *cli.Context) error {
	if _, err := setup(ctx); err != nil {
		return err
	}
	if ctx.NArg() == 0 {
		return errNoScene
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Entities", "Min", "Max", "Bounding rect"})
	for _, path := range ctx.Args() {
		db, err := loader.Load(path)
		if err != nil {
			return err
		}
		ext, err := db.GeomExtents()
		if err != nil && !errors.Is(err, scene.ErrEmpty) {
			return err
		}
		entities := 0
		if root, err := db.ContentRoot(); err == nil {
			entities = len(root.Entities)
		}

		item := ggview.NewItem(db)
		r := item.BoundingRect()
		item.Close()

		table.Append([]string{
			path,
			fmt.Sprintf("%d", entities),
			fmt.Sprintf("%.3g, %.3g", ext.Min[0], ext.Min[1]),
			fmt.Sprintf("%.3g, %.3g", ext.Max[0], ext.Max[1]),
			fmt.Sprintf("%.3g, %.3g %.3gx%.3g", r.X, r.Y, r.Width, r.Height),
		})
	}
	table.Render()
	return nil
}
