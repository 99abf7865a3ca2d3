// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package navigator smooths scroll progress over time and derives the
// camera pose along the curve, blending in from a fixed intro pose.
package navigator

import (
	"fmt"
	"time"

	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/math32"
)

// DampingModes determines how the damping coefficient is applied.
type DampingModes int32

const (
	// DampingFrame applies the coefficient once per tick, regardless of
	// elapsed time, so the perceived speed follows the frame rate.
	DampingFrame DampingModes = iota

	// DampingTime scales the coefficient by the elapsed time, so that it
	// equals the configured value at exactly RefRate ticks per second.
	DampingTime
)

func (dm DampingModes) String() string {
	switch dm {
	case DampingFrame:
		return "frame"
	case DampingTime:
		return "time"
	}
	return fmt.Sprintf("DampingModes(%d)", int32(dm))
}

// SetString sets the mode from its name.
func (dm *DampingModes) SetString(s string) error {
	switch s {
	case "frame", "":
		*dm = DampingFrame
	case "time":
		*dm = DampingTime
	default:
		return fmt.Errorf("navigator.DampingModes: unknown damping mode %q", s)
	}
	return nil
}

// Pose is a camera placement: where it is and where it looks.
type Pose struct {
	Position math32.Vector3 `json:"position"`
	Look     math32.Vector3 `json:"look"`
}

// State is the per-session navigator state. It persists across ticks
// and is owned by the compositor state record.
type State struct {

	// Progress is the smoothed scroll progress. It approaches the target
	// exponentially and never quite reaches it.
	Progress float32 `json:"progress"`

	// Blend is the intro blend factor of the last tick, in [0, 1]:
	// 0 is the intro pose and 1 is fully on the curve.
	Blend float32 `json:"blend"`
}

// Navigator derives the camera pose from smoothed progress.
// Its fields are fixed for the lifetime of a session; all mutable
// state lives in [State].
type Navigator struct {

	// Curve is the camera path.
	Curve curve.Curve

	// Damping is the per-tick exponential moving average weight, in (0, 1).
	Damping float32

	// Mode determines whether Damping is applied per tick or per time.
	Mode DampingModes

	// RefRate is the tick rate, in ticks per second, at which time-based
	// damping matches per-tick damping.
	RefRate float32

	// IntroEnd is the progress at which the intro blend completes.
	IntroEnd float32

	// LookAhead is the parameter offset along the curve of the look target.
	LookAhead float32

	// Intro is the fixed camera pose before scrolling starts.
	Intro Pose
}

// New returns a navigator on the given curve with the reference
// parameters: damping .05 per tick, intro end .1, look-ahead .01,
// and an intro pose at 0,0,5 looking at the origin.
func New(c curve.Curve) *Navigator {
	return &Navigator{
		Curve:     c,
		Damping:   0.05,
		Mode:      DampingFrame,
		RefRate:   60,
		IntroEnd:  0.1,
		LookAhead: 0.01,
		Intro:     Pose{Position: math32.Vec3(0, 0, 5)},
	}
}

// Coefficient returns the damping weight to apply for a tick of
// duration dt. In [DampingFrame] mode dt is ignored.
func (nv *Navigator) Coefficient(dt time.Duration) float32 {
	if nv.Mode != DampingTime || dt <= 0 || nv.RefRate <= 0 {
		return nv.Damping
	}
	steps := float32(dt.Seconds()) * nv.RefRate
	return 1 - math32.Pow(1-nv.Damping, steps)
}

// Advance moves the smoothed progress one tick toward target and
// returns the resulting camera pose.
func (nv *Navigator) Advance(st *State, target float32, dt time.Duration) Pose {
	st.Progress += (target - st.Progress) * nv.Coefficient(dt)
	return nv.Pose(st)
}

// Pose computes the camera pose for the current state without advancing it,
// updating st.Blend.
func (nv *Navigator) Pose(st *State) Pose {
	st.Blend = nv.BlendAt(st.Progress)
	return Pose{
		Position: nv.Intro.Position.Lerp(nv.Curve.Sample(st.Progress), st.Blend),
		Look:     nv.Intro.Look.Lerp(nv.Curve.Sample(st.Progress+nv.LookAhead), st.Blend),
	}
}

// BlendAt returns the intro blend for the given progress:
// progress / IntroEnd clamped to [0, 1].
func (nv *Navigator) BlendAt(progress float32) float32 {
	if nv.IntroEnd <= 0 {
		return 1
	}
	return math32.Clamp(progress/nv.IntroEnd, 0, 1)
}
