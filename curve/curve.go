// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve provides the closed parametric path that the camera
// flies along and that the hotspots are anchored to.
package curve

import "github.com/knotfly/knotfly/math32"

// Curve maps a parameter to a 3D position. Implementations must be
// pure, continuous and periodic with period 1, so that
// Sample(t) == Sample(t+1) for every t.
type Curve interface {
	Sample(t float32) math32.Vector3
}

// Wrap maps any parameter into [0, 1) by taking it modulo 1.
// Non-finite parameters map to 0.
func Wrap(t float32) float32 {
	return math32.Fract(t)
}

// Knot is a (P, Q) torus knot: it winds P times around the axis of
// a torus of the given Radius and Q times through its hole, with
// the tube perturbation given by Scale.
type Knot struct {
	P      int
	Q      int
	Radius float32
	Scale  float32
}

// NewKnot returns the reference (2, 3) knot with radius 2 and scale 0.5.
func NewKnot() *Knot {
	return &Knot{P: 2, Q: 3, Radius: 2, Scale: 0.5}
}

// Sample returns the position on the knot at parameter t, wrapped into [0, 1).
func (kn *Knot) Sample(t float32) math32.Vector3 {
	theta := 2 * math32.Pi * Wrap(t)
	qt := float32(kn.Q) * theta
	pt := float32(kn.P) * theta
	rr := kn.Radius + kn.Scale*math32.Cos(qt)
	return math32.Vec3(rr*math32.Cos(pt), rr*math32.Sin(pt), kn.Scale*math32.Sin(qt))
}
