// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/knotfly/knotfly/base/errors"
	"github.com/mitchellh/go-homedir"
)

// Watch reopens the config file at the given path whenever it changes
// and calls fn with each new valid config. Invalid configs are logged
// and skipped. It does not return until ctx is done, so it should
// typically be called in a separate goroutine.
func Watch(ctx context.Context, path string, fn func(c *Config)) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	path = filepath.Clean(path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file instead of writing it,
	// so we watch the directory and filter by name
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			c, err := Open(path)
			if errors.Log(err) != nil {
				continue
			}
			slog.Info("config reloaded", "path", path)
			fn(c)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}
