// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/knotfly/knotfly/base/tolassert"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/navigator"
	"github.com/knotfly/knotfly/pick"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sections = []hotspot.Section{
	{Label: "ABOUT", T: 0.3},
	{Label: "CV", T: 0.52},
	{Label: "PROJECTS", T: 0.7},
	{Label: "TEACHING", T: 0.85},
	{Label: "CONTACT", T: 0.94},
}

var links = map[string]string{
	"ABOUT":    "about/",
	"CV":       "cv/",
	"PROJECTS": "projects/",
	"TEACHING": "teaching/",
	"CONTACT":  "contact/",
}

func newCompositor(t *testing.T) *Compositor {
	t.Helper()
	knot := curve.NewKnot()
	rg, err := hotspot.NewRegistry(knot, sections, links)
	require.NoError(t, err)
	cp := New(navigator.New(knot), rg, pick.New())
	cp.HandleResize(events.NewResize(800, 600))
	return cp
}

func TestTickProgress(t *testing.T) {
	cp := newCompositor(t)
	cp.HandleScroll(events.NewScroll(1000, 1500, 500))
	assert.Equal(t, float32(1), cp.State.Scroll.Percent())

	fr := cp.Tick(time.Second / 60)
	assert.Equal(t, uint64(1), fr.Tick)
	tolassert.EqualTol(t, 0.05, fr.Progress, 1e-6)
	fr = cp.Tick(time.Second / 60)
	assert.Equal(t, uint64(2), fr.Tick)
	tolassert.EqualTol(t, 0.0975, fr.Progress, 1e-6)
	tolassert.EqualTol(t, 0.975, fr.Blend, 1e-5)
}

func TestTickScrollScenario(t *testing.T) {
	cp := newCompositor(t)
	cp.HandleScroll(events.NewScroll(250, 1500, 500))
	assert.Equal(t, float32(0.25), cp.State.Scroll.Percent())
	fr := cp.Tick(0)
	tolassert.EqualTol(t, 0.25*0.05, fr.Progress, 1e-6)
}

// checkFrame is a renderer that verifies the frame pipeline order:
// the camera, placement and hover all belong to the same frame.
func checkFrame(t *testing.T, cp *Compositor, count *int) RendererFunc {
	return func(fr *Frame) error {
		*count++
		st := navigator.State{Progress: fr.Progress}
		pose := cp.Path.Pose(&st)
		assert.Equal(t, pose, fr.Camera)
		assert.Equal(t, st.Blend, fr.Blend)
		assert.Equal(t, pose.Position, cp.Camera.Pos)
		assert.Len(t, fr.Hotspots, len(sections))
		for i, vs := range fr.Hotspots {
			hs := cp.Hotspots.Hotspot(i)
			assert.Equal(t, hs.ID, vs.ID)
			assert.Equal(t, cp.Hotspots.Opacity(hs.T, fr.Progress, fr.Blend), vs.Opacity)
			if fr.Blend < 1 {
				assert.Zero(t, vs.Opacity)
			}
			if vs.ID == fr.Hovered {
				assert.Equal(t, math32.Vector3Scalar(1.1), vs.Scale)
			} else {
				assert.Equal(t, math32.Vector3Scalar(1), vs.Scale)
			}
		}
		return nil
	}
}

func TestTickOrder(t *testing.T) {
	cp := newCompositor(t)
	count := 0
	cp.Renderer = checkFrame(t, cp, &count)

	// hover the PROJECTS hotspot from the intro pose
	ndc, _, ok := cp.Camera.Project(cp.Hotspots.Curve.Sample(0.7))
	require.True(t, ok)
	cp.State.Pointer.NDC = ndc
	fr := cp.Tick(0)
	assert.Equal(t, 2, fr.Hovered)
	assert.True(t, cp.State.Pointer.HasHover)

	cp.HandleScroll(events.NewScroll(700, 1500, 500))
	for range 200 {
		cp.Tick(0)
	}
	assert.Equal(t, 201, count)
	tolassert.EqualTol(t, 1, cp.State.Nav.Blend, 0)
}

func TestRendererError(t *testing.T) {
	cp := newCompositor(t)
	cp.Renderer = RendererFunc(func(fr *Frame) error {
		return fmt.Errorf("render failed at tick %d", fr.Tick)
	})
	for range 3 {
		cp.Tick(0)
	}
	assert.Equal(t, uint64(3), cp.State.Tick)
}

func TestClick(t *testing.T) {
	cp := newCompositor(t)
	var reqs []pick.Request
	cp.Sink = NavigatorFunc(func(req pick.Request) {
		reqs = append(reqs, req)
	})
	cp.Tick(0)

	ndc, _, ok := cp.Camera.Project(cp.Hotspots.Curve.Sample(0.7))
	require.True(t, ok)
	x := (ndc.X + 1) / 2 * cp.State.Width
	y := (1 - ndc.Y) / 2 * cp.State.Height
	req, ok := cp.HandlePointer(events.NewClick(x, y))
	assert.True(t, ok)
	assert.Equal(t, "projects/", req.Target)
	require.Len(t, reqs, 1)
	assert.Equal(t, pick.Request{Target: "projects/", Label: "PROJECTS", ID: 2}, reqs[0])

	// nothing at the top of the screen
	_, ok = cp.HandlePointer(events.NewClick(400, 20))
	assert.False(t, ok)
	assert.Len(t, reqs, 1)

	// a move over the hotspot never navigates
	_, ok = cp.HandlePointer(events.NewPointerMove(x, y))
	assert.False(t, ok)
	assert.Len(t, reqs, 1)
	tolassert.EqualTol(t, ndc.X, cp.State.Pointer.NDC.X, 1e-5)
}

func TestClickBeforeFirstTick(t *testing.T) {
	cp := newCompositor(t)
	ndc, _, ok := cp.Camera.Project(cp.Hotspots.Curve.Sample(0.3))
	require.True(t, ok)
	req, ok := cp.HandlePointer(events.NewClick((ndc.X+1)/2*800, (1-ndc.Y)/2*600))
	assert.True(t, ok)
	assert.Equal(t, "about/", req.Target)
}

func TestPointerBeforeResize(t *testing.T) {
	knot := curve.NewKnot()
	rg, err := hotspot.NewRegistry(knot, sections, links)
	require.NoError(t, err)
	cp := New(navigator.New(knot), rg, pick.New())
	var reqs []pick.Request
	cp.Sink = NavigatorFunc(func(req pick.Request) {
		reqs = append(reqs, req)
	})

	// without a viewport every position would map to the center
	cp.State.Pointer.NDC = math32.Vec2(0.5, 0.5)
	_, ok := cp.HandlePointer(events.NewClick(400, 300))
	assert.False(t, ok)
	assert.Empty(t, reqs)
	assert.Equal(t, math32.Vec2(0.5, 0.5), cp.State.Pointer.NDC)

	cp.HandleResize(events.NewResize(800, 600))
	ndc, _, ok := cp.Camera.Project(knot.Sample(0.7))
	require.True(t, ok)
	req, ok := cp.HandlePointer(events.NewClick((ndc.X+1)/2*800, (1-ndc.Y)/2*600))
	assert.True(t, ok)
	assert.Equal(t, "projects/", req.Target)
	assert.Len(t, reqs, 1)
}

func TestRun(t *testing.T) {
	cp := newCompositor(t)
	count := 0
	cp.Renderer = checkFrame(t, cp, &count)
	inputs := make(chan events.Event)
	done := make(chan error)
	go func() {
		done <- cp.Run(context.Background(), time.Millisecond, inputs)
	}()
	inputs <- events.NewScroll(250, 1500, 500)
	inputs <- events.NewResize(1000, 500)
	inputs <- events.NewPointerMove(500, 250)
	close(inputs)
	require.NoError(t, <-done)

	assert.Equal(t, float32(0.25), cp.State.Scroll.Percent())
	assert.Equal(t, float32(2), cp.Camera.Aspect)
	assert.Equal(t, math32.Vector2{}, cp.State.Pointer.NDC)
	assert.Equal(t, int(cp.State.Tick), count)
}

func TestRunCancel(t *testing.T) {
	cp := newCompositor(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- cp.Run(ctx, time.Millisecond, nil)
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestIntro(t *testing.T) {
	in := Intro{}
	in.Update(0)
	tolassert.EqualTol(t, 0.0005, in.WorldRotation.X, 1e-7)
	tolassert.EqualTol(t, 0.002, in.WorldRotation.Y, 1e-7)
	assert.Equal(t, float32(1), in.TitleOpacity)

	in.Update(0.5)
	tolassert.EqualTol(t, 0.00075, in.WorldRotation.X, 1e-7)
	tolassert.EqualTol(t, 0.003, in.WorldRotation.Y, 1e-7)
	assert.Equal(t, float32(0), in.TitleOpacity)

	in.Update(1)
	tolassert.EqualTol(t, 0.0027, in.WorldRotation.Y, 1e-7)
	for range 500 {
		in.Update(1)
	}
	tolassert.EqualTol(t, 0, in.WorldRotation.Y, 1e-7)
}
