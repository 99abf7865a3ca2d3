// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/math32"
)

// Input translates terminal events into fly-through input events.
// The terminal has no document to scroll, so Input scrolls a virtual
// document that is Pages viewports tall.
type Input struct {

	// Pages is the height of the virtual document, in viewports.
	Pages float32

	// Offset is the scroll offset of the virtual document, in pixels.
	Offset float32

	// cols and rows are the screen size in cells.
	cols, rows int

	// buttons are the mouse buttons held at the last mouse event.
	buttons tcell.ButtonMask
}

// viewport returns the pixel viewport height.
func (in *Input) viewport() float32 {
	return float32(2 * in.rows)
}

// scrollHeight returns the pixel height of the virtual document.
func (in *Input) scrollHeight() float32 {
	return max(in.Pages, 1) * in.viewport()
}

// scrollBy moves the scroll offset by delta pixels, within the document,
// and returns the resulting scroll event.
func (in *Input) scrollBy(delta float32) events.Event {
	in.Offset = math32.Clamp(in.Offset+delta, 0, in.scrollHeight()-in.viewport())
	return events.NewScroll(in.Offset, in.scrollHeight(), in.viewport())
}

// Translate returns the input events for the given terminal event,
// and whether the user asked to quit.
func (in *Input) Translate(ev tcell.Event) (evs []events.Event, quit bool) {
	step := in.viewport() / 10
	switch e := ev.(type) {
	case *tcell.EventResize:
		in.cols, in.rows = e.Size()
		return []events.Event{
			events.NewResize(float32(in.cols), in.viewport()),
			in.scrollBy(0),
		}, false
	case *tcell.EventKey:
		switch e.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return nil, true
		case tcell.KeyUp:
			return []events.Event{in.scrollBy(-step)}, false
		case tcell.KeyDown:
			return []events.Event{in.scrollBy(step)}, false
		case tcell.KeyPgUp:
			return []events.Event{in.scrollBy(-in.viewport())}, false
		case tcell.KeyPgDn:
			return []events.Event{in.scrollBy(in.viewport())}, false
		case tcell.KeyHome:
			return []events.Event{in.scrollBy(-in.Offset)}, false
		case tcell.KeyEnd:
			return []events.Event{in.scrollBy(in.scrollHeight())}, false
		case tcell.KeyRune:
			switch e.Rune() {
			case 'q':
				return nil, true
			case 'k':
				return []events.Event{in.scrollBy(-step)}, false
			case 'j', ' ':
				return []events.Event{in.scrollBy(step)}, false
			}
		}
	case *tcell.EventMouse:
		x, y := e.Position()
		px, py := float32(x)+0.5, float32(2*y+1)
		btn := e.Buttons()
		evs = append(evs, events.NewPointerMove(px, py))
		if btn&tcell.WheelUp != 0 {
			evs = append(evs, in.scrollBy(-step))
		}
		if btn&tcell.WheelDown != 0 {
			evs = append(evs, in.scrollBy(step))
		}
		if btn&tcell.Button1 != 0 && in.buttons&tcell.Button1 == 0 {
			evs = append(evs, events.NewClick(px, py))
		}
		in.buttons = btn
		return evs, false
	}
	return nil, false
}
