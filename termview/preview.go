// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termview

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/events"
)

// Preview runs the compositor on the given initialized screen until the
// user quits or ctx is done, at the given frame interval. The view
// becomes the renderer and navigation sink of the compositor. The caller
// owns the screen and must finalize it afterwards.
func Preview(ctx context.Context, screen tcell.Screen, cp *compositor.Compositor, vw *View, in *Input, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	screen.EnableMouse()
	cp.Renderer = vw
	cp.Sink = vw

	inputs := make(chan events.Event, 64)
	go func() {
		defer close(inputs)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			evs, quit := in.Translate(ev)
			if quit {
				cancel()
				return
			}
			for _, e := range evs {
				select {
				case inputs <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	err := cp.Run(ctx, interval, inputs)
	if errors.Is(err, context.Canceled) {
		return nil // quit
	}
	return err
}
