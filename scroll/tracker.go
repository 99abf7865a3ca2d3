// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scroll turns raw document scroll notifications into
// a normalized progress value in [0, 1].
package scroll

import (
	"github.com/knotfly/knotfly/events"
	"github.com/knotfly/knotfly/math32"
)

// State is the latest scroll state.
type State struct {

	// Raw is offset / (scrollHeight - viewportHeight), before sanitizing.
	// It may be non-finite when the document cannot be scrolled.
	Raw float32

	// Percent is the sanitized progress, always in [0, 1].
	Percent float32
}

// Tracker keeps the latest scroll [State]. Every input is sanitized
// into a valid progress value, so there are no error conditions.
// The zero value is ready to use and reports 0.
type Tracker struct {
	State State
}

// Update recomputes the state from the given scroll notification
// and returns the clamped progress.
func (tr *Tracker) Update(ev *events.ScrollEvent) float32 {
	tr.State = Compute(ev.Offset, ev.ScrollHeight, ev.ViewportHeight)
	return tr.State.Percent
}

// Percent returns the latest clamped progress.
func (tr *Tracker) Percent() float32 {
	return tr.State.Percent
}

// Compute returns the scroll state for the given offset and heights.
// A non-scrollable document (scrollHeight <= viewportHeight) or any
// non-finite ratio yields 0.
func Compute(offset, scrollHeight, viewportHeight float32) State {
	st := State{}
	denom := scrollHeight - viewportHeight
	if denom <= 0 || !math32.IsFinite(denom) {
		st.Raw = math32.NaN()
		return st
	}
	st.Raw = offset / denom
	if !math32.IsFinite(st.Raw) {
		return st
	}
	st.Percent = math32.Clamp(st.Raw, 0, 1)
	return st
}
