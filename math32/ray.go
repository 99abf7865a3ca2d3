// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially adapted from cogentcore.org/core/math32
// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Ray represents an oriented 3D line segment defined by an origin point and a direction vector.
type Ray struct {
	Origin Vector3
	Dir    Vector3
}

// NewRay creates and returns a pointer to a Ray object with
// the specified origin and direction vectors.
// The direction is normalized so that distances along the ray are world units.
func NewRay(origin, dir Vector3) *Ray {
	return &Ray{Origin: origin, Dir: dir.Normal()}
}

// At calculates the point in the ray which is at the specified t distance from the origin
// along its direction.
func (ray *Ray) At(t float32) Vector3 {
	return ray.Dir.MulScalar(t).Add(ray.Origin)
}

// DistanceToPlane returns the distance along the ray to the specified plane,
// and false if the ray is parallel to it or points away from it.
// If the origin lies in the plane the distance is 0.
func (ray *Ray) DistanceToPlane(plane Plane) (float32, bool) {
	denom := plane.Norm.Dot(ray.Dir)
	if denom == 0 {
		// line is coplanar, return origin
		if plane.DistanceToPoint(ray.Origin) == 0 {
			return 0, true
		}
		return 0, false
	}
	t := -(ray.Origin.Dot(plane.Norm) + plane.Off) / denom
	if t < 0 || !IsFinite(t) {
		return 0, false
	}
	return t, true
}

// IntersectPlane returns the intersection point of this ray with the
// specified plane, and false if there is no intersection in front of the origin.
func (ray *Ray) IntersectPlane(plane Plane) (Vector3, bool) {
	t, ok := ray.DistanceToPlane(plane)
	if !ok {
		return Vector3{}, false
	}
	return ray.At(t), true
}
