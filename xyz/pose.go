// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "github.com/knotfly/knotfly/math32"

// Pose contains the full description of position, orientation and scale
// of an element in world coordinates.
type Pose struct {

	// position of center of element
	Pos math32.Vector3 `json:"pos"`

	// scale of element
	Scale math32.Vector3 `json:"scale"`

	// element rotation specified as a Quat
	Quat math32.Quat `json:"quat"`
}

// Defaults sets defaults only if current values are nil
func (ps *Pose) Defaults() {
	if ps.Scale.IsNil() {
		ps.Scale.Set(1, 1, 1)
	}
	if ps.Quat.IsNil() {
		ps.Quat.SetIdentity()
	}
}

// SetUniformScale sets the same scale factor on all three axes.
func (ps *Pose) SetUniformScale(s float32) {
	ps.Scale.SetScalar(s)
}

// FaceToward rotates the element so that its local +Z axis points at
// the given target, keeping local +Y as close to upDir as possible.
// This is the billboard orientation used for flat labels.
func (ps *Pose) FaceToward(target, upDir math32.Vector3) {
	x, y, z := LookAtBasis(target, ps.Pos, upDir)
	ps.Quat.SetFromBasis(x, y, z)
}

// LocalAxis returns the given local axis rotated into world coordinates.
func (ps *Pose) LocalAxis(axis math32.Vector3) math32.Vector3 {
	return axis.MulQuat(ps.Quat)
}

// LookAtBasis returns the orthonormal basis of a rotation whose z axis
// points from target toward eye and whose y axis is as close to upDir
// as possible. A camera at eye using this basis looks down its -z axis
// at target. Degenerate inputs (eye == target, or z parallel to upDir)
// are nudged so that the basis is always valid.
func LookAtBasis(eye, target, upDir math32.Vector3) (x, y, z math32.Vector3) {
	if upDir.IsNil() {
		upDir = math32.Vector3Y
	}
	z = eye.Sub(target)
	if z.LengthSquared() == 0 {
		z.Z = 1 // eye and target are in the same position
	}
	z = z.Normal()
	x = upDir.Cross(z)
	if x.LengthSquared() == 0 {
		// up and z are parallel
		if math32.Abs(upDir.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z = z.Normal()
		x = upDir.Cross(z)
	}
	x = x.Normal()
	y = z.Cross(x)
	return
}
