// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package navigator

import (
	"testing"
	"time"

	"github.com/knotfly/knotfly/base/tolassert"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/math32"
	"github.com/stretchr/testify/assert"
)

const tol = float32(1e-5)

func assertVec(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	tolassert.EqualTol(t, want.X, got.X, tol)
	tolassert.EqualTol(t, want.Y, got.Y, tol)
	tolassert.EqualTol(t, want.Z, got.Z, tol)
}

func TestAdvanceScenario(t *testing.T) {
	nv := New(curve.NewKnot())
	st := State{}
	nv.Advance(&st, 1, time.Second/60)
	tolassert.EqualTol(t, 0.05, st.Progress, 1e-7)
	nv.Advance(&st, 1, time.Second/60)
	tolassert.EqualTol(t, 0.0975, st.Progress, 1e-6)
}

func TestAdvanceClosedForm(t *testing.T) {
	nv := New(curve.NewKnot())
	for _, tc := range []struct{ start, target float32 }{{0, 1}, {0.8, 0.3}, {0.25, 0.25}, {1, 0}} {
		st := State{Progress: tc.start}
		prevDist := math32.Abs(tc.target - tc.start)
		for n := 1; n <= 60; n++ {
			nv.Advance(&st, tc.target, 0)
			dist := math32.Abs(tc.target - st.Progress)
			want := math32.Abs(tc.target-tc.start) * math32.Pow(1-nv.Damping, float32(n))
			tolassert.EqualTol(t, want, dist, 5e-5)
			if prevDist > 0 {
				assert.Less(t, dist, prevDist)
			}
			// never overshoots
			if tc.target > tc.start {
				assert.LessOrEqual(t, st.Progress, tc.target)
			} else {
				assert.GreaterOrEqual(t, st.Progress, tc.target)
			}
			prevDist = dist
		}
	}
}

func TestCoefficient(t *testing.T) {
	nv := New(curve.NewKnot())
	assert.Equal(t, float32(0.05), nv.Coefficient(time.Second))
	assert.Equal(t, float32(0.05), nv.Coefficient(0))

	nv.Mode = DampingTime
	tolassert.EqualTol(t, 0.05, nv.Coefficient(time.Second/60), 1e-5)
	// two reference frames in one tick compound
	tolassert.EqualTol(t, 0.0975, nv.Coefficient(time.Second/30), 1e-5)
	assert.Equal(t, float32(0.05), nv.Coefficient(0))
}

func TestDampingModes(t *testing.T) {
	var dm DampingModes
	assert.NoError(t, dm.SetString("time"))
	assert.Equal(t, DampingTime, dm)
	assert.Equal(t, "time", dm.String())
	assert.NoError(t, dm.SetString(""))
	assert.Equal(t, DampingFrame, dm)
	assert.Error(t, dm.SetString("wallclock"))
}

func TestPoseBlend(t *testing.T) {
	kn := curve.NewKnot()
	nv := New(kn)

	st := State{}
	ps := nv.Pose(&st)
	assert.Equal(t, float32(0), st.Blend)
	assertVec(t, math32.Vec3(0, 0, 5), ps.Position)
	assertVec(t, math32.Vector3{}, ps.Look)

	st.Progress = 0.05
	ps = nv.Pose(&st)
	tolassert.EqualTol(t, 0.5, st.Blend, tol)
	assertVec(t, math32.Vec3(0, 0, 5).Lerp(kn.Sample(0.05), 0.5), ps.Position)

	st.Progress = 0.7
	ps = nv.Pose(&st)
	assert.Equal(t, float32(1), st.Blend)
	assertVec(t, kn.Sample(0.7), ps.Position)
	assertVec(t, kn.Sample(0.71), ps.Look)

	// look-ahead wraps around the seam
	st.Progress = 0.995
	ps = nv.Pose(&st)
	assertVec(t, kn.Sample(0.005), ps.Look)

	assert.Equal(t, float32(0), nv.BlendAt(-0.2))
	assert.Equal(t, float32(1), nv.BlendAt(2))
}
