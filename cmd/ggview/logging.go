// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/ggview"
	"github.com/gogpu/ggview/config"
	"github.com/urfave/cli"
)

// setup loads the configuration and installs a stderr logger at the level
// it names, raised by -v and -vv.
func setup(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	level := cfg.Level()
	if ctx.GlobalBool("v") {
		level = min(level, slog.LevelInfo)
	}
	if ctx.GlobalBool("vv") {
		level = slog.LevelDebug
	}
	ggview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return cfg, nil
}
