// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Vector2 is a 2D vector/point with X and Y components.
// It is used for normalized device coordinates.
type Vector2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{X: x, Y: y}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

// Set sets this vector X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// Clamp returns the vector with each component clamped to [lo, hi].
func (v Vector2) Clamp(lo, hi float32) Vector2 {
	return Vec2(Clamp(v.X, lo, hi), Clamp(v.Y, lo, hi))
}
