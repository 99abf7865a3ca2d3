// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compositor runs the per-frame pipeline of a fly-through session:
// it reads the latest scroll and pointer state, advances the camera along
// the curve, places the hotspots, resolves hover, and hands the resulting
// [Frame] to a [Renderer]. Clicks are resolved against the camera of the
// last frame and forwarded to a [Navigator].
//
// A Compositor is not safe for concurrent use: all calls must come from
// a single goroutine, which is what [Compositor.Run] provides.
package compositor

import (
	"context"
	"log/slog"
	"time"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/navigator"
	"github.com/knotfly/knotfly/pick"
	"github.com/knotfly/knotfly/scroll"
	"github.com/knotfly/knotfly/xyz"
)

// State is the single mutable state record of a session. Input handlers
// overwrite it (last write wins) and each tick reads it once.
type State struct {

	// Scroll is the latest scroll state.
	Scroll scroll.Tracker `json:"scroll"`

	// Pointer is the latest pointer state, including the hover result
	// of the last tick.
	Pointer pick.Pointer `json:"pointer"`

	// Nav is the smoothed progress and intro blend.
	Nav navigator.State `json:"nav"`

	// Width and Height are the viewport size in pixels.
	Width  float32 `json:"width"`
	Height float32 `json:"height"`

	// Intro is the intro effect state.
	Intro Intro `json:"intro"`

	// Tick is the number of ticks run so far.
	Tick uint64 `json:"tick"`
}

// Frame is the output of one tick. Its Hotspots slice is reused by the
// next tick, so a [Renderer] must not retain it past Render.
type Frame struct {
	Tick     uint64         `json:"tick"`
	Camera   navigator.Pose `json:"camera"`
	Progress float32        `json:"progress"`
	Blend    float32        `json:"blend"`

	// Hotspots are the hotspot visuals in registration order.
	Hotspots []hotspot.Visual `json:"hotspots"`

	// Hovered is the id of the hovered hotspot, or -1 if none.
	Hovered int `json:"hovered"`

	Intro Intro `json:"intro"`
}

// Renderer consumes frames.
type Renderer interface {
	Render(fr *Frame) error
}

// RendererFunc is a function that implements [Renderer].
type RendererFunc func(fr *Frame) error

func (f RendererFunc) Render(fr *Frame) error { return f(fr) }

// Navigator consumes navigation requests resolved from clicks.
type Navigator interface {
	Navigate(req pick.Request)
}

// NavigatorFunc is a function that implements [Navigator].
type NavigatorFunc func(req pick.Request)

func (f NavigatorFunc) Navigate(req pick.Request) { f(req) }

// Compositor orchestrates the components of one session.
type Compositor struct {

	// Path drives the camera along the curve.
	Path *navigator.Navigator

	// Hotspots is the fixed hotspot set and link table.
	Hotspots *hotspot.Registry

	// Picker resolves hover and clicks.
	Picker *pick.Picker

	// Renderer receives every frame; it may be nil.
	Renderer Renderer

	// Sink receives navigation requests; it may be nil.
	Sink Navigator

	// State is the session state record.
	State State

	// Camera is the camera of the last tick. Its lens settings
	// (FOV, Near, Far) are preserved across ticks.
	Camera xyz.Camera

	visuals []hotspot.Visual
	frame   Frame
}

// New returns a compositor for the given components, with the camera
// and hotspots laid out for the initial state so that clicks arriving
// before the first tick resolve against the intro pose.
func New(path *navigator.Navigator, hotspots *hotspot.Registry, picker *pick.Picker) *Compositor {
	cp := &Compositor{Path: path, Hotspots: hotspots, Picker: picker}
	cp.Camera.Defaults()
	cp.layout(path.Pose(&cp.State.Nav))
	return cp
}

// layout points the camera along pose and places the hotspots for it.
func (cp *Compositor) layout(pose navigator.Pose) {
	st := &cp.State
	cp.Camera.LookAt(pose.Position, pose.Look)
	cp.Camera.SetAspect(st.Width, st.Height)
	cp.visuals = cp.Hotspots.Place(cp.visuals, st.Nav.Progress, st.Nav.Blend, &cp.Camera)
}

// Tick runs one frame: it advances the navigator toward the latest scroll
// progress, places the hotspots with the new camera, applies the hover
// scale, and renders the frame. Renderer errors are logged and otherwise
// ignored. The returned frame is only valid until the next tick.
func (cp *Compositor) Tick(dt time.Duration) *Frame {
	st := &cp.State
	target := st.Scroll.Percent()
	pose := cp.Path.Advance(&st.Nav, target, dt)
	cp.layout(pose)
	idx, hovered := cp.Picker.Hover(&st.Pointer, &cp.Camera, cp.visuals)
	st.Intro.Update(st.Nav.Blend)
	st.Tick++

	fr := &cp.frame
	fr.Tick = st.Tick
	fr.Camera = pose
	fr.Progress = st.Nav.Progress
	fr.Blend = st.Nav.Blend
	fr.Hotspots = cp.visuals
	fr.Hovered = -1
	if hovered {
		fr.Hovered = cp.visuals[idx].ID
	}
	fr.Intro = st.Intro
	if cp.Renderer != nil {
		errors.Log(cp.Renderer.Render(fr))
	}
	return fr
}

// HandleScroll records the latest scroll position.
func (cp *Compositor) HandleScroll(ev *events.ScrollEvent) {
	cp.State.Scroll.Update(ev)
}

// HandlePointer records the latest pointer position. A click is resolved
// immediately against the camera and hotspots of the last tick; a
// resulting navigation request is sent to the Sink and returned.
// Pointer events are ignored until the viewport size is known, since
// client coordinates cannot be mapped without it.
func (cp *Compositor) HandlePointer(ev *events.Pointer) (pick.Request, bool) {
	st := &cp.State
	if st.Width <= 0 || st.Height <= 0 {
		slog.Debug("compositor: pointer before resize", "event", ev)
		return pick.Request{}, false
	}
	ndc := ev.NDC(st.Width, st.Height)
	st.Pointer.NDC = ndc
	if ev.Type() != events.Click {
		return pick.Request{}, false
	}
	req, ok := cp.Picker.Click(ndc, &cp.Camera, cp.visuals, cp.Hotspots)
	if !ok {
		return req, false
	}
	slog.Debug("compositor: navigate", "target", req.Target, "label", req.Label)
	if cp.Sink != nil {
		cp.Sink.Navigate(req)
	}
	return req, true
}

// HandleResize records the viewport size and updates the camera aspect.
func (cp *Compositor) HandleResize(ev *events.ResizeEvent) {
	cp.State.Width = ev.Width
	cp.State.Height = ev.Height
	cp.Camera.SetAspect(ev.Width, ev.Height)
}

// Handle dispatches the given event to its handler.
// Unknown events are ignored.
func (cp *Compositor) Handle(ev events.Event) {
	switch e := ev.(type) {
	case *events.ScrollEvent:
		cp.HandleScroll(e)
	case *events.Pointer:
		cp.HandlePointer(e)
	case *events.ResizeEvent:
		cp.HandleResize(e)
	default:
		slog.Debug("compositor: ignoring event", "event", ev)
	}
}

// Run ticks the compositor at the given interval and handles events from
// inputs in between, all on the calling goroutine, so that input handling
// never overlaps a tick. It returns nil when inputs is closed, and the
// context error when ctx is done.
func (cp *Compositor) Run(ctx context.Context, interval time.Duration, inputs <-chan events.Event) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-inputs:
			if !ok {
				return nil
			}
			cp.Handle(ev)
		case now := <-tick.C:
			dt := now.Sub(last)
			last = now
			cp.Tick(dt)
		}
	}
}
