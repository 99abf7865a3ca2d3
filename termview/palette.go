// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package termview

import (
	"github.com/gdamore/tcell/v2"
	"github.com/knotfly/knotfly/math32"
)

// Palette is the ten color gradient of the knot, from deep teal
// through sand to dark red, indexed by normalized height.
var Palette = []uint32{
	0x001219, 0x005f73, 0x0a9396, 0x94d2bd, 0xe9d8a6,
	0xee9b00, 0xca6702, 0xbb3e03, 0xae2012, 0x9b2226,
}

// PaletteColor returns the palette color for the given normalized
// height in [0, 1], faded toward black by fog in [0, 1].
func PaletteColor(height, fog float32) tcell.Color {
	i := int(math32.Clamp(height, 0, 1) * float32(len(Palette)-1))
	hex := Palette[i]
	keep := 1 - math32.Clamp(fog, 0, 1)
	r := float32(hex>>16&0xff) * keep
	g := float32(hex>>8&0xff) * keep
	b := float32(hex&0xff) * keep
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// grayColor returns a gray level color for the given brightness in [0, 1].
func grayColor(brightness float32) tcell.Color {
	v := int32(55 + 200*math32.Clamp(brightness, 0, 1))
	return tcell.NewRGBColor(v, v, v)
}
