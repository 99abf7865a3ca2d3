// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package compositor

import "github.com/knotfly/knotfly/math32"

// Intro holds the intro effects: a slow spin of the world while the
// camera is still on its intro pose, and the fading title.
// They are hints for the renderer; hotspot positions are unaffected.
type Intro struct {

	// WorldRotation is the accumulated rotation of the world mesh
	// about the X and Y axes, in radians.
	WorldRotation math32.Vector2 `json:"worldRotation"`

	// TitleOpacity is the opacity of the title text, in [0, 1].
	TitleOpacity float32 `json:"titleOpacity"`
}

// Spin rates and post-intro decay of the world rotation, per tick.
const (
	IntroSpinX = 0.0005
	IntroSpinY = 0.002
	IntroDecay = 0.9
)

// Update advances the intro effects by one tick for the given blend.
// While the intro is running the spin accumulates, slowing as the
// blend approaches 1; afterwards it decays back toward rest.
func (in *Intro) Update(blend float32) {
	if blend < 1 {
		in.WorldRotation.X += IntroSpinX * (1 - blend)
		in.WorldRotation.Y += IntroSpinY * (1 - blend)
	} else {
		in.WorldRotation.X *= IntroDecay
		in.WorldRotation.Y *= IntroDecay
	}
	in.TitleOpacity = math32.Clamp(1-2*blend, 0, 1)
}
