// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"fmt"

	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/events"
)

// Message is a message from a client. Which fields are used depends on Type:
//
//	{"type": "scroll", "offset": 250, "scrollHeight": 1500, "viewportHeight": 500}
//	{"type": "pointer", "kind": "move", "x": 10, "y": 20}
//	{"type": "pointer", "kind": "click", "x": 10, "y": 20}
//	{"type": "resize", "width": 800, "height": 600}
type Message struct {
	Type string `json:"type"`

	Offset         float32 `json:"offset,omitempty"`
	ScrollHeight   float32 `json:"scrollHeight,omitempty"`
	ViewportHeight float32 `json:"viewportHeight,omitempty"`

	// Kind is "move" or "click".
	Kind string  `json:"kind,omitempty"`
	X    float32 `json:"x,omitempty"`
	Y    float32 `json:"y,omitempty"`

	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`
}

// Event returns the input event for the message.
func (ms *Message) Event() (events.Event, error) {
	switch ms.Type {
	case "scroll":
		return events.NewScroll(ms.Offset, ms.ScrollHeight, ms.ViewportHeight), nil
	case "pointer":
		var kind events.Types
		if err := kind.SetString(ms.Kind); err != nil {
			return nil, fmt.Errorf("server: pointer message: %w", err)
		}
		switch kind {
		case events.PointerMove:
			return events.NewPointerMove(ms.X, ms.Y), nil
		case events.Click:
			return events.NewClick(ms.X, ms.Y), nil
		}
		return nil, fmt.Errorf("server: pointer message: invalid kind %q", ms.Kind)
	case "resize":
		return events.NewResize(ms.Width, ms.Height), nil
	}
	return nil, fmt.Errorf("server: unknown message type %q", ms.Type)
}

// Output message types.
const (
	HelloOutput    = "hello"
	FrameOutput    = "frame"
	NavigateOutput = "navigate"
)

// Output is a message to a client: a hello with the session id when the
// session starts, a frame every tick, and a navigate request on clicks.
type Output struct {
	Type    string            `json:"type"`
	Session string            `json:"session,omitempty"`
	Frame   *compositor.Frame `json:"frame,omitempty"`
	Target  string            `json:"target,omitempty"`
	Label   string            `json:"label,omitempty"`
}
