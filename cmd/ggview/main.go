// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command ggview renders scene files headlessly and inspects backends.
//
// Usage:
//
//	ggview [-v|-vv] [--config ggview.toml] render plan.toml --out plan.png
//	ggview backends
//	ggview info plan.toml
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/ggview"
	_ "github.com/gogpu/ggview/backend/software"
	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ggview:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "ggview"
	app.Usage = "render scene databases through ggview backends"
	app.Version = ggview.Version
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a TOML file",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render one frame of a scene to PNG",
			Description: `
Load a scene file, bring up the configured backend offscreen, fit the scene
into the frame and write the result as a PNG image.

Each --zoom step applies one wheel notch after fitting: positive values
zoom out and negative values zoom in.`,
			ArgsUsage: "scene.toml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width (default from config)",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height (default from config)",
				},
				cli.IntFlag{
					Name:  "zoom",
					Usage: "wheel notches to apply after fitting",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: renderFrame,
		},
		{
			Name:   "backends",
			Usage:  "list registered backend modules and surface platforms",
			Action: listBackends,
		},
		{
			Name:      "info",
			Usage:     "print scene extents and bounding rectangle",
			ArgsUsage: "scene.toml ...",
			Action:    sceneInfo,
		},
	}
	return app
}
