// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/base/websocket"
	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/config"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/pick"
	"github.com/knotfly/knotfly/server"
)

// The virtual page that trace scrolls: 1000 pixels of scroll range.
const (
	traceScrollHeight   = 1500
	traceViewportHeight = 500
)

func trace(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trace", flag.ExitOnError)
	ticks := fs.Int("ticks", 120, "the number of ticks to run at each scroll position")
	scrolls := fs.String("scroll", "0,0.5,1", "comma separated scroll positions, as fractions of the page")
	url := fs.String("url", "", "the websocket url of a running server to trace instead of a local compositor")
	fs.Parse(args)

	pcts, err := parseScrolls(*scrolls)
	if err != nil {
		return err
	}
	if *url != "" {
		return traceRemote(ctx, *url, pcts, time.Duration(*ticks)*time.Second/time.Duration(cfg.Server.FPS))
	}
	cp, err := cfg.NewCompositor()
	if err != nil {
		return err
	}
	return traceLocal(ctx, os.Stdout, cp, pcts, *ticks)
}

func parseScrolls(s string) ([]float32, error) {
	var pcts []float32
	for f := range strings.SplitSeq(s, ",") {
		p, err := strconv.ParseFloat(strings.TrimSpace(f), 32)
		if err != nil {
			return nil, fmt.Errorf("trace: invalid scroll position %q: %w", f, err)
		}
		pcts = append(pcts, float32(p))
	}
	return pcts, nil
}

func scrollEvent(pct float32) *events.ScrollEvent {
	return events.NewScroll(pct*(traceScrollHeight-traceViewportHeight), traceScrollHeight, traceViewportHeight)
}

// traceLocal runs the compositor headlessly, writing every frame to w
// as a line of JSON.
func traceLocal(ctx context.Context, w io.Writer, cp *compositor.Compositor, pcts []float32, ticks int) error {
	enc := json.NewEncoder(w)
	cp.Renderer = compositor.RendererFunc(func(fr *compositor.Frame) error {
		return enc.Encode(&server.Output{Type: server.FrameOutput, Frame: fr})
	})
	cp.Sink = compositor.NavigatorFunc(func(req pick.Request) {
		errors.Log(enc.Encode(&server.Output{Type: server.NavigateOutput, Target: req.Target, Label: req.Label}))
	})
	cp.HandleResize(events.NewResize(800, 600))
	for _, pct := range pcts {
		cp.HandleScroll(scrollEvent(pct))
		for range ticks {
			if err := ctx.Err(); err != nil {
				return err
			}
			cp.Tick(time.Second / 60)
		}
	}
	return nil
}

// traceRemote drives a running server, printing the messages it sends.
func traceRemote(ctx context.Context, url string, pcts []float32, step time.Duration) error {
	client, err := websocket.Connect(url)
	if err != nil {
		return err
	}
	client.OnMessage(func(typ websocket.MessageTypes, msg []byte) {
		fmt.Println(string(msg))
	})
	client.OnClose(func() {
		slog.Info("trace: server closed the connection", "url", url)
	})
	defer client.Close()
	if err := client.SendJSON(&server.Message{Type: "resize", Width: 800, Height: 600}); err != nil {
		return err
	}
	for _, pct := range pcts {
		sc := scrollEvent(pct)
		msg := &server.Message{Type: "scroll", Offset: sc.Offset, ScrollHeight: sc.ScrollHeight, ViewportHeight: sc.ViewportHeight}
		if err := client.SendJSON(msg); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-client.Done():
			return nil
		case <-time.After(step):
		}
	}
	return nil
}
