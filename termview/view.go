// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package termview previews a fly-through in a terminal with tcell:
// the knot is drawn as colored dots, hotspots as text labels, and the
// mouse wheel, arrow keys and mouse drive the compositor.
package termview

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/pick"
	"github.com/knotfly/knotfly/xyz"
)

// Title is drawn at the top of the screen during the intro.
const Title = "knotfly"

// View is a [compositor.Renderer] and [compositor.Navigator] that draws
// frames on a tcell screen. Each cell is one pixel wide and two pixels
// tall, so that the pixel viewport of a cols×rows screen is cols×2·rows.
type View struct {

	// Screen is the screen to draw on.
	Screen tcell.Screen

	// Curve is the knot to draw.
	Curve curve.Curve

	// Camera holds the lens; its pose is set from each frame.
	Camera xyz.Camera

	// Samples is the number of curve points drawn.
	Samples int

	// FogNear and FogFar are the fog distances: points nearer than
	// FogNear have full color and points beyond FogFar are not drawn.
	FogNear, FogFar float32

	// status is the last navigation target.
	status string

	depth []float32
}

// NewView returns a view of the given curve on the given screen,
// with the reference lens and fog.
func NewView(screen tcell.Screen, c curve.Curve) *View {
	vw := &View{Screen: screen, Curve: c, Samples: 600, FogNear: 6, FogFar: 20}
	vw.Camera.Defaults()
	return vw
}

// Navigate records the navigation target for the status line.
func (vw *View) Navigate(req pick.Request) {
	vw.status = req.Target
}

// Status returns the last navigation target, or "" if none.
func (vw *View) Status() string {
	return vw.status
}

// Render draws the frame and shows it.
func (vw *View) Render(fr *compositor.Frame) error {
	cols, rows := vw.Screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	vw.Screen.Clear()
	vw.Camera.LookAt(fr.Camera.Position, fr.Camera.Look)
	vw.Camera.SetAspect(float32(cols), float32(2*rows))
	vw.drawCurve(fr, cols, rows)
	vw.drawHotspots(fr, cols, rows)
	if fr.Intro.TitleOpacity > 0 {
		vw.drawText((cols-len(Title))/2, 1, Title, tcell.StyleDefault.Foreground(grayColor(fr.Intro.TitleOpacity)).Bold(true))
	}
	vw.drawStatus(fr, cols, rows)
	vw.Screen.Show()
	return nil
}

// cell returns the screen cell of the given normalized device coordinates,
// and false if it is off screen.
func cell(ndc math32.Vector2, cols, rows int) (x, y int, ok bool) {
	x = int(math32.Floor((ndc.X + 1) / 2 * float32(cols)))
	y = int(math32.Floor((1 - ndc.Y) / 2 * float32(rows)))
	return x, y, x >= 0 && x < cols && y >= 0 && y < rows
}

// drawCurve draws the knot, rotated by the intro world rotation,
// keeping the nearest point in each cell.
func (vw *View) drawCurve(fr *compositor.Frame, cols, rows int) {
	n := vw.Samples
	if n <= 0 {
		return
	}
	if cap(vw.depth) < cols*rows {
		vw.depth = make([]float32, cols*rows)
	}
	vw.depth = vw.depth[:cols*rows]
	for i := range vw.depth {
		vw.depth[i] = math32.Infinity
	}
	rx := math32.NewQuatAxisAngle(math32.Vector3X, fr.Intro.WorldRotation.X)
	ry := math32.NewQuatAxisAngle(math32.Vector3Y, fr.Intro.WorldRotation.Y)

	pts := make([]math32.Vector3, n)
	lo, hi := math32.Infinity, -math32.Infinity
	for i := range pts {
		p := vw.Curve.Sample(float32(i) / float32(n)).MulQuat(ry).MulQuat(rx)
		pts[i] = p
		lo = min(lo, p.Y)
		hi = max(hi, p.Y)
	}
	span := hi - lo
	for _, p := range pts {
		ndc, depth, ok := vw.Camera.Project(p)
		if !ok || depth >= vw.FogFar {
			continue
		}
		x, y, ok := cell(ndc, cols, rows)
		if !ok || depth >= vw.depth[y*cols+x] {
			continue
		}
		vw.depth[y*cols+x] = depth
		height := float32(0.5)
		if span > 0 {
			height = (p.Y - lo) / span
		}
		fog := (depth - vw.FogNear) / (vw.FogFar - vw.FogNear)
		glyph := '•'
		if depth > vw.FogNear {
			glyph = '·'
		}
		vw.Screen.SetContent(x, y, glyph, nil, tcell.StyleDefault.Foreground(PaletteColor(height, fog)))
	}
}

// drawHotspots draws the visible hotspot labels centered on their
// positions, brighter with opacity and bold when hovered.
func (vw *View) drawHotspots(fr *compositor.Frame, cols, rows int) {
	for i := range fr.Hotspots {
		vs := &fr.Hotspots[i]
		hovered := vs.ID == fr.Hovered
		if vs.Opacity <= 0 && !hovered {
			continue
		}
		ndc, _, ok := vw.Camera.Project(vs.Pos)
		if !ok {
			continue
		}
		x, y, ok := cell(ndc, cols, rows)
		if !ok {
			continue
		}
		st := tcell.StyleDefault.Foreground(grayColor(vs.Opacity))
		if hovered {
			st = st.Bold(true).Underline(true)
		}
		vw.drawText(x-utf8.RuneCountInString(vs.Label)/2, y, vs.Label, st)
	}
}

// drawStatus draws the status line on the last row.
func (vw *View) drawStatus(fr *compositor.Frame, cols, rows int) {
	hover := "-"
	for i := range fr.Hotspots {
		if fr.Hotspots[i].ID == fr.Hovered {
			hover = fr.Hotspots[i].Label
		}
	}
	line := fmt.Sprintf("progress %.3f  blend %.2f  hover %s", fr.Progress, fr.Blend, hover)
	if vw.status != "" {
		line += "  -> " + vw.status
	}
	vw.drawText(0, rows-1, line, tcell.StyleDefault.Reverse(true))
}

// drawText draws str starting at the given cell, clipped to the screen.
func (vw *View) drawText(x, y int, str string, st tcell.Style) {
	cols, rows := vw.Screen.Size()
	if y < 0 || y >= rows {
		return
	}
	for _, r := range str {
		if x >= 0 && x < cols {
			vw.Screen.SetContent(x, y, r, nil, st)
		}
		x++
	}
}
