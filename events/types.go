// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the input notifications consumed by the
// fly-through: scroll state, pointer motion and clicks, and viewport
// resizes. Events carry only the latest value; there is no queue.
package events

import "fmt"

// Types determines the type of input event.
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// Scroll reports the current scroll offset of the document,
	// together with the document and viewport heights.
	Scroll

	// PointerMove is sent whenever the pointer moves over the viewport.
	PointerMove

	// Click is a completed primary button press at the pointer position.
	Click

	// Resize happens when the viewport has been resized.
	Resize
)

var typeNames = [...]string{"unknown", "scroll", "move", "click", "resize"}

// String returns the lower-case wire name of the type.
func (tp Types) String() string {
	if tp < 0 || int(tp) >= len(typeNames) {
		return fmt.Sprintf("Types(%d)", int32(tp))
	}
	return typeNames[tp]
}

// SetString sets the type from its wire name.
func (tp *Types) SetString(s string) error {
	for i, nm := range typeNames {
		if nm == s {
			*tp = Types(i)
			return nil
		}
	}
	return fmt.Errorf("events.Types: unknown event type %q", s)
}

// Event is the interface for all input events.
type Event interface {
	fmt.Stringer

	// Type returns the type of the event.
	Type() Types
}
