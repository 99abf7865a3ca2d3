// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// ScrollEvent is a scroll notification: how far the document is
// scrolled and how much of it can be scrolled.
type ScrollEvent struct {

	// Offset is the vertical scroll offset of the document, in pixels.
	Offset float32

	// ScrollHeight is the full scrollable height of the document, in pixels.
	ScrollHeight float32

	// ViewportHeight is the visible height of the viewport, in pixels.
	ViewportHeight float32
}

// NewScroll returns a new [ScrollEvent].
func NewScroll(offset, scrollHeight, viewportHeight float32) *ScrollEvent {
	return &ScrollEvent{Offset: offset, ScrollHeight: scrollHeight, ViewportHeight: viewportHeight}
}

func (ev *ScrollEvent) Type() Types {
	return Scroll
}

func (ev *ScrollEvent) String() string {
	return fmt.Sprintf("%v{Offset: %g, ScrollHeight: %g, ViewportHeight: %g}", ev.Type(), ev.Offset, ev.ScrollHeight, ev.ViewportHeight)
}
