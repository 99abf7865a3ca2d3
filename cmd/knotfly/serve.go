// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"sync/atomic"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/server"
)

// serveFlags returns the flags of the serve command, bound to cfg.
func serveFlags(cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "the address to listen on")
	fs.StringVar(&cfg.Server.Static, "static", cfg.Server.Static, "the directory of static files to serve at /")
	fs.IntVar(&cfg.Server.FPS, "fps", cfg.Server.FPS, "the frames per second sent to each client")
	return fs
}

func serve(ctx context.Context, cfg *config.Config, args []string) error {
	fs := serveFlags(cfg)
	fs.Parse(args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var current atomic.Pointer[config.Config]
	current.Store(cfg)
	if *configFile != "" {
		go func() {
			keep := keepServerFlags(fs, cfg)
			err := config.Watch(ctx, *configFile, func(c *config.Config) {
				keep(c)
				current.Store(c)
			})
			if !errors.Is(err, context.Canceled) {
				errors.Log(err)
			}
		}()
	}
	sv := server.New(current.Load)
	return sv.ListenAndServe(ctx)
}

// keepServerFlags returns a function that carries the server settings of
// cfg into a reloaded config. The address and static directory are bound
// when the server starts, so they are always kept; the frame rate is kept
// only when it was given on the command line.
func keepServerFlags(fs *flag.FlagSet, cfg *config.Config) func(c *config.Config) {
	fps := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fps" {
			fps = true
		}
	})
	return func(c *config.Config) {
		c.Server.Addr = cfg.Server.Addr
		c.Server.Static = cfg.Server.Static
		if fps {
			c.Server.FPS = cfg.Server.FPS
		}
	}
}
