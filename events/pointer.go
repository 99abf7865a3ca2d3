// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"

	"github.com/knotfly/knotfly/math32"
)

// Pointer is a pointer move or click in viewport client coordinates,
// with the origin at the top-left corner.
type Pointer struct {
	Typ Types

	// ClientX is the horizontal position, in pixels.
	ClientX float32

	// ClientY is the vertical position, in pixels, growing downward.
	ClientY float32
}

// NewPointerMove returns a new [PointerMove] event at the given position.
func NewPointerMove(x, y float32) *Pointer {
	return &Pointer{Typ: PointerMove, ClientX: x, ClientY: y}
}

// NewClick returns a new [Click] event at the given position.
func NewClick(x, y float32) *Pointer {
	return &Pointer{Typ: Click, ClientX: x, ClientY: y}
}

func (ev *Pointer) Type() Types {
	return ev.Typ
}

func (ev *Pointer) String() string {
	return fmt.Sprintf("%v{Pos: (%g, %g)}", ev.Type(), ev.ClientX, ev.ClientY)
}

// NDC returns the pointer position in normalized device coordinates
// for a viewport of the given size: x grows to the right and y grows
// upward, both in [-1, 1]. An empty viewport maps to the center.
func (ev *Pointer) NDC(width, height float32) math32.Vector2 {
	if width <= 0 || height <= 0 {
		return math32.Vector2{}
	}
	ndc := math32.Vec2(ev.ClientX/width*2-1, -(ev.ClientY/height*2 - 1))
	if !math32.IsFinite(ndc.X) || !math32.IsFinite(ndc.Y) {
		return math32.Vector2{}
	}
	return ndc.Clamp(-1, 1)
}
