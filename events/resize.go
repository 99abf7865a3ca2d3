// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// ResizeEvent reports the current viewport size, in pixels.
type ResizeEvent struct {
	Width  float32
	Height float32
}

// NewResize returns a new [ResizeEvent].
func NewResize(width, height float32) *ResizeEvent {
	return &ResizeEvent{Width: width, Height: height}
}

func (ev *ResizeEvent) Type() Types {
	return Resize
}

func (ev *ResizeEvent) String() string {
	return fmt.Sprintf("%v{Size: %gx%g}", ev.Type(), ev.Width, ev.Height)
}
