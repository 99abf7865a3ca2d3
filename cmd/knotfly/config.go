// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/knotfly/knotfly/config"
)

// writeConfig writes the current config, which is the defaults
// unless -config is given, to a file or standard output.
func writeConfig(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	out := fs.String("o", "", "the file to write (.toml, .yaml or .json); TOML to standard output if empty")
	fs.Parse(args)
	if *out != "" {
		return cfg.Save(*out)
	}
	b, err := cfg.Encode(config.TOML)
	if err != nil {
		return err
	}
	fmt.Print(string(b))
	return nil
}
