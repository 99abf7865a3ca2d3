// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/termview"
)

func preview(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	fs.IntVar(&cfg.Preview.FPS, "fps", cfg.Preview.FPS, "the frames per second")
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}
	cp, err := cfg.NewCompositor()
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	vw := termview.NewView(screen, cp.Hotspots.Curve)
	vw.Camera = cp.Camera
	vw.Samples = cfg.Preview.Samples
	vw.FogNear = cfg.Preview.FogNear
	vw.FogFar = cfg.Preview.FogFar
	in := &termview.Input{Pages: cfg.Preview.Pages}
	return termview.Preview(ctx, screen, cp, vw, in, time.Second/time.Duration(cfg.Preview.FPS))
}
