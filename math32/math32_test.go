// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/knotfly/knotfly/base/tolassert"
	"github.com/stretchr/testify/assert"
)

const standardTol = float32(1.0e-5)

func tolAssertEqualVector(t *testing.T, vt, va Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, standardTol)
	tolassert.EqualTol(t, vt.Y, va.Y, standardTol)
	tolassert.EqualTol(t, vt.Z, va.Z, standardTol)
}

func TestFract(t *testing.T) {
	assert.Equal(t, float32(0), Fract(0))
	assert.Equal(t, float32(0), Fract(1))
	assert.Equal(t, float32(0), Fract(-3))
	tolassert.EqualTol(t, 0.25, Fract(1.25), standardTol)
	tolassert.EqualTol(t, 0.75, Fract(-0.25), standardTol)
	assert.Equal(t, float32(0), Fract(NaN()))
	assert.Equal(t, float32(0), Fract(Infinity))
	assert.Less(t, Fract(-1e-9), float32(1))
}

func TestVector3(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, 5, 6)
	assert.Equal(t, Vec3(5, 7, 9), a.Add(b))
	assert.Equal(t, Vec3(3, 3, 3), b.Sub(a))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, Vector3Z, Vector3X.Cross(Vector3Y))
	tolassert.EqualTol(t, 1, Vec3(3, 4, 0).Normal().Length(), standardTol)
	assert.Equal(t, Vector3{}, Vector3{}.Normal())
	assert.Equal(t, Vec3(2.5, 3.5, 4.5), a.Lerp(b, 0.5))
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	tolassert.EqualTol(t, 5, Vec3(0, 3, 4).DistanceTo(Vector3{}), standardTol)
	assert.False(t, Vec3(0, NaN(), 0).IsFinite())
}

func TestQuatBasis(t *testing.T) {
	q := NewQuatBasis(Vector3X, Vector3Y, Vector3Z)
	assert.True(t, q.IsIdentity())

	// 90 degrees around Y: local Z maps to world X
	q = NewQuatBasis(Vec3(0, 0, -1), Vector3Y, Vector3X)
	tolAssertEqualVector(t, Vector3X, Vector3Z.MulQuat(q))
	tolAssertEqualVector(t, Vec3(0, 0, -1), Vector3X.MulQuat(q))
	tolAssertEqualVector(t, Vector3Y, Vector3Y.MulQuat(q))
	tolassert.EqualTol(t, 1, q.Length(), standardTol)

	aa := NewQuatAxisAngle(Vector3Y, DegToRad(90))
	tolAssertEqualVector(t, Vector3X, Vector3Z.MulQuat(aa))

	// 180 degrees around Y takes the non-positive trace branches
	q = NewQuatBasis(Vec3(-1, 0, 0), Vector3Y, Vec3(0, 0, -1))
	tolAssertEqualVector(t, Vec3(0, 0, -1), Vector3Z.MulQuat(q))
	q = NewQuatBasis(Vector3X, Vec3(0, -1, 0), Vec3(0, 0, -1))
	tolAssertEqualVector(t, Vec3(0, -1, 0), Vector3Y.MulQuat(q))
}

func TestRayPlane(t *testing.T) {
	ray := NewRay(Vec3(0, 0, 5), Vec3(0, 0, -2))
	tolAssertEqualVector(t, Vec3(0, 0, -1), ray.Dir)

	plane := NewPlaneNormalPoint(Vector3Z, Vector3{})
	d, ok := ray.DistanceToPlane(plane)
	assert.True(t, ok)
	tolassert.EqualTol(t, 5, d, standardTol)
	pt, ok := ray.IntersectPlane(plane)
	assert.True(t, ok)
	tolAssertEqualVector(t, Vector3{}, pt)

	// plane behind the origin
	behind := NewPlaneNormalPoint(Vector3Z, Vec3(0, 0, 10))
	_, ok = ray.IntersectPlane(behind)
	assert.False(t, ok)

	// parallel
	side := NewPlaneNormalPoint(Vector3X, Vec3(3, 0, 0))
	_, ok = ray.IntersectPlane(side)
	assert.False(t, ok)
}
