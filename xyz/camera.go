// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz holds the camera and pose types of the fly-through:
// camera framing, pointer rays and the billboard orientation of
// flat elements.
package xyz

import "github.com/knotfly/knotfly/math32"

// Camera defines the properties of a perspective camera.
// It is a plain value: the compositor rebuilds it each frame
// from the navigator pose.
type Camera struct {

	// position of the camera
	Pos math32.Vector3 `json:"pos"`

	// target location for the camera, where it is pointing at
	Target math32.Vector3 `json:"target"`

	// up direction for camera, which way is up; defaults to positive Y axis
	UpDir math32.Vector3 `json:"upDir"`

	// vertical field of view in degrees
	FOV float32 `json:"fov"`

	// aspect ratio (width/height)
	Aspect float32 `json:"aspect"`

	// near plane distance
	Near float32 `json:"near"`

	// far plane distance
	Far float32 `json:"far"`
}

// Defaults sets the camera lens to FOV 75, aspect 1, near .1 and far 1000,
// looking at the origin from 0,0,5 with up Y axis.
func (cm *Camera) Defaults() {
	cm.FOV = 75
	cm.Aspect = 1
	cm.Near = .1
	cm.Far = 1000
	cm.LookAt(math32.Vec3(0, 0, 5), math32.Vector3{})
}

// LookAt places the camera at pos pointing at the given target.
func (cm *Camera) LookAt(pos, target math32.Vector3) {
	cm.Pos = pos
	cm.Target = target
	if cm.UpDir.IsNil() {
		cm.UpDir = math32.Vector3Y
	}
}

// SetAspect sets the aspect ratio from a viewport size,
// leaving it unchanged for an empty viewport.
func (cm *Camera) SetAspect(width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	cm.Aspect = width / height
}

// Basis returns the camera right, up and forward unit vectors in world space.
func (cm *Camera) Basis() (right, up, forward math32.Vector3) {
	x, y, z := LookAtBasis(cm.Pos, cm.Target, cm.UpDir)
	return x, y, z.Negate()
}

// Quat returns the camera orientation, looking down its local -Z axis.
func (cm *Camera) Quat() math32.Quat {
	return math32.NewQuatBasis(LookAtBasis(cm.Pos, cm.Target, cm.UpDir))
}

// tanHalfFOV returns the tangent of half the vertical field of view.
func (cm *Camera) tanHalfFOV() float32 {
	return math32.Tan(math32.DegToRad(cm.FOV * 0.5))
}

// Ray returns the ray from the camera position through the given point
// in normalized device coordinates (x right, y up, both in [-1, 1]).
func (cm *Camera) Ray(ndc math32.Vector2) math32.Ray {
	right, up, forward := cm.Basis()
	th := cm.tanHalfFOV()
	dir := forward.Add(right.MulScalar(ndc.X * th * cm.Aspect)).Add(up.MulScalar(ndc.Y * th))
	return *math32.NewRay(cm.Pos, dir)
}

// Project returns the normalized device coordinates of the given world point
// and its depth along the view direction. ok is false for points that are
// not in front of the near plane.
func (cm *Camera) Project(pt math32.Vector3) (ndc math32.Vector2, depth float32, ok bool) {
	right, up, forward := cm.Basis()
	v := pt.Sub(cm.Pos)
	depth = v.Dot(forward)
	if depth <= cm.Near {
		return ndc, depth, false
	}
	th := cm.tanHalfFOV()
	ndc.X = v.Dot(right) / (depth * th * cm.Aspect)
	ndc.Y = v.Dot(up) / (depth * th)
	return ndc, depth, true
}
