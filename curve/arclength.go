// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve

import (
	"sort"

	"github.com/knotfly/knotfly/math32"
)

// DefaultDivisions is the default number of segments used to
// approximate the length of a curve.
const DefaultDivisions = 200

// ArcLength reparameterizes a [Curve] by arc length, so that equal
// parameter steps cover equal distances along the path.
// It is still periodic with period 1.
type ArcLength struct {
	Curve Curve

	// lengths are the cumulative lengths at Divisions+1 evenly spaced
	// parameters of the underlying curve.
	lengths []float32
}

// NewArcLength returns an [ArcLength] over the given curve using the
// given number of divisions (DefaultDivisions if <= 0).
func NewArcLength(c Curve, divisions int) *ArcLength {
	if divisions <= 0 {
		divisions = DefaultDivisions
	}
	al := &ArcLength{Curve: c, lengths: make([]float32, divisions+1)}
	last := c.Sample(0)
	var sum float32
	for i := 1; i <= divisions; i++ {
		cur := c.Sample(float32(i) / float32(divisions))
		sum += cur.DistanceTo(last)
		al.lengths[i] = sum
		last = cur
	}
	return al
}

// Length returns the approximate total length of the curve.
func (al *ArcLength) Length() float32 {
	return al.lengths[len(al.lengths)-1]
}

// Param returns the underlying curve parameter for the given
// arc-length parameter u, wrapped into [0, 1).
func (al *ArcLength) Param(u float32) float32 {
	u = Wrap(u)
	total := al.Length()
	if total == 0 {
		return u
	}
	target := u * total
	n := len(al.lengths) - 1
	// first index with a cumulative length >= target
	i := sort.Search(len(al.lengths), func(i int) bool { return al.lengths[i] >= target })
	if i == 0 {
		return 0
	}
	if i > n {
		i = n
	}
	before := al.lengths[i-1]
	seg := al.lengths[i] - before
	frac := float32(0)
	if seg > 0 {
		frac = (target - before) / seg
	}
	return (float32(i-1) + frac) / float32(n)
}

// Sample returns the position at arc-length parameter u.
func (al *ArcLength) Sample(u float32) math32.Vector3 {
	return al.Curve.Sample(al.Param(u))
}
