// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pick casts pointer rays against hotspot hit-quads and
// resolves hover and click outcomes.
package pick

import (
	"log/slog"

	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/xyz"
)

// Pointer is the latest pointer state, read once per frame.
type Pointer struct {

	// NDC is the pointer position in normalized device coordinates.
	NDC math32.Vector2 `json:"ndc"`

	// Hovered is the id of the hotspot hovered in the last frame,
	// valid only if HasHover.
	Hovered int `json:"hovered"`

	// HasHover is whether a hotspot was hovered in the last frame.
	HasHover bool `json:"hasHover"`
}

// Request is a navigation request resolved from a click.
type Request struct {
	Target string `json:"target"`
	Label  string `json:"label"`
	ID     int    `json:"id"`
}

// Linker resolves a hotspot label to a navigation target.
// [hotspot.Registry] is a Linker.
type Linker interface {
	Lookup(label string) (string, bool)
}

// Picker intersects rays with the planar hit-quads of hotspots.
// Each quad is centered on the hotspot position and spans its
// local X and Y axes. The quad size is fixed and ignores the
// visual scale.
type Picker struct {

	// Width of the hit-quad along the local X axis.
	Width float32

	// Height of the hit-quad along the local Y axis.
	Height float32

	// HoverScale is the uniform scale applied to the hovered hotspot.
	HoverScale float32

	// MinOpacity is the minimum opacity for a hotspot to be pickable.
	// At 0 every hotspot is pickable, including invisible ones.
	MinOpacity float32
}

// New returns a picker with the reference 2x1 hit-quad and 1.1 hover scale.
func New() *Picker {
	return &Picker{Width: 2, Height: 1, HoverScale: 1.1}
}

// Hit returns the distance along the ray to the hit-quad of the given
// visual, and false if the ray misses it.
func (pk *Picker) Hit(ray *math32.Ray, vs *hotspot.Visual) (float32, bool) {
	plane := math32.NewPlaneNormalPoint(vs.LocalAxis(math32.Vector3Z), vs.Pos)
	dist, ok := ray.DistanceToPlane(plane)
	if !ok {
		return 0, false
	}
	local := ray.At(dist).Sub(vs.Pos)
	if math32.Abs(local.Dot(vs.LocalAxis(math32.Vector3X))) > pk.Width/2 {
		return 0, false
	}
	if math32.Abs(local.Dot(vs.LocalAxis(math32.Vector3Y))) > pk.Height/2 {
		return 0, false
	}
	return dist, true
}

// Pick returns the index in vis of the hit-quad nearest to the ray origin.
// Equal distances keep the earliest index, which is registration order.
// It is a linear scan, fine for a handful of hotspots.
func (pk *Picker) Pick(ray *math32.Ray, vis []hotspot.Visual) (idx int, dist float32, ok bool) {
	idx = -1
	for i := range vis {
		vs := &vis[i]
		if vs.Opacity < pk.MinOpacity {
			continue
		}
		d, hit := pk.Hit(ray, vs)
		if !hit {
			continue
		}
		if !ok || d < dist {
			idx, dist, ok = i, d, true
		}
	}
	return
}

// Hover resets every visual to the baseline scale and enlarges the one
// under the pointer, if any, recording it in ptr. It recomputes
// everything from scratch each frame.
func (pk *Picker) Hover(ptr *Pointer, cam *xyz.Camera, vis []hotspot.Visual) (int, bool) {
	for i := range vis {
		vis[i].SetUniformScale(1)
	}
	ray := cam.Ray(ptr.NDC)
	idx, _, ok := pk.Pick(&ray, vis)
	ptr.HasHover = ok
	ptr.Hovered = 0
	if !ok {
		return -1, false
	}
	vis[idx].SetUniformScale(pk.HoverScale)
	ptr.Hovered = vis[idx].ID
	return idx, true
}

// Click casts the ray for a click at ndc and resolves the picked hotspot
// label through links. It returns false when nothing is hit or the label
// has no target; neither case is an error.
func (pk *Picker) Click(ndc math32.Vector2, cam *xyz.Camera, vis []hotspot.Visual, links Linker) (Request, bool) {
	ray := cam.Ray(ndc)
	idx, _, ok := pk.Pick(&ray, vis)
	if !ok {
		return Request{}, false
	}
	vs := &vis[idx]
	target, ok := links.Lookup(vs.Label)
	if !ok {
		slog.Debug("pick: no link for hotspot", "label", vs.Label)
		return Request{}, false
	}
	return Request{Target: target, Label: vs.Label, ID: vs.ID}, true
}
