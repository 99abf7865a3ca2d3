// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command knotfly serves and previews scroll-driven camera fly-throughs
// along a knot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/logx"
)

var (
	configFile = flag.String("config", "", "the config file (.toml, .yaml or .json); defaults if empty")
	vv         = flag.Bool("vv", false, "very verbose: show debug messages")
	v          = flag.Bool("v", false, "verbose: show info messages")
	q          = flag.Bool("q", false, "quiet: only show errors")
)

// commands are the subcommands, by name.
var commands = map[string]func(ctx context.Context, cfg *config.Config, args []string) error{
	"serve":   serve,
	"preview": preview,
	"trace":   trace,
	"config":  writeConfig,
}

func main() {
	flag.Usage = Usage
	flag.Parse()
	setLogLevel(*vv, *v, *q)
	defer logx.InitColor()()
	logx.SetDefaultLogger()

	args := flag.Args()
	if len(args) == 0 {
		Usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "knotfly: unknown command %q\n", args[0])
		Usage()
		os.Exit(2)
	}
	cfg, err := loadConfig()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cmd(ctx, cfg, args[1:]); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

// setLogLevel sets [logx.UserLevel] from the verbosity flags,
// keeping the build default when none is given.
func setLogLevel(vv, v, q bool) {
	if vv || v || q {
		logx.UserLevel = logx.LevelFromFlags(vv, v, q)
	}
}

func loadConfig() (*config.Config, error) {
	if *configFile == "" {
		return config.Default(), nil
	}
	return config.Open(*configFile)
}

// Usage is a replacement usage function for the flags package.
func Usage() {
	_, _ = fmt.Fprintf(os.Stderr, "Knotfly flies a camera along a knot as the page scrolls.\n")
	_, _ = fmt.Fprintf(os.Stderr, "Usage:\n")
	_, _ = fmt.Fprintf(os.Stderr, "\tknotfly [flags] serve [-addr :8080] [-static dir] [-fps 60]\n")
	_, _ = fmt.Fprintf(os.Stderr, "\tknotfly [flags] preview [-fps 30]\n")
	_, _ = fmt.Fprintf(os.Stderr, "\tknotfly [flags] trace [-ticks 120] [-scroll 0,0.5,1] [-url ws://host/ws]\n")
	_, _ = fmt.Fprintf(os.Stderr, "\tknotfly [flags] config [-o knotfly.toml]\n")
	_, _ = fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}
