// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hotspot manages the fixed set of labeled hotspots anchored
// to the curve, and computes their per-frame placement, billboard
// orientation and opacity.
package hotspot

import (
	"fmt"
	"slices"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/base/ordmap"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/xyz"
)

// Section is one entry of the static placement table:
// a label and the curve parameter it is anchored at.
type Section struct {
	Label string  `json:"label" toml:"label" yaml:"label"`
	T     float32 `json:"t" toml:"t" yaml:"t"`
}

// Hotspot is a labeled point on the curve. It is immutable after
// the [Registry] is constructed.
type Hotspot struct {

	// ID is the registration index, stable for the session.
	ID int `json:"id"`

	// Label is the displayed text, also the key into the link table.
	Label string `json:"label"`

	// T is the curve parameter, in [0, 1).
	T float32 `json:"t"`

	// Target is the navigation target from the link table, or "" if none.
	Target string `json:"target,omitempty"`
}

// Visual is the per-frame visual state of a hotspot. It carries
// no history: it is fully recomputed every frame.
type Visual struct {
	ID    int    `json:"id"`
	Label string `json:"label"`

	xyz.Pose

	// Opacity is in [0, 1].
	Opacity float32 `json:"opacity"`
}

// DefaultFalloff is the reference opacity falloff: a hotspot is visible
// within 1/8 of the curve around the current progress.
const DefaultFalloff = 8

// Registry is the fixed set of hotspots in registration order,
// together with the label to target link table.
type Registry struct {

	// Curve is the path the hotspots are anchored to.
	Curve curve.Curve

	// Falloff controls the width of the visible window around
	// the current progress.
	Falloff float32

	// UpDir is the world up direction for billboards.
	UpDir math32.Vector3

	hotspots ordmap.Map[string, Hotspot]
	links    ordmap.Map[string, string]
}

// NewRegistry returns a registry of hotspots for the given sections,
// in order, with targets resolved from links. Parameters outside [0, 1)
// are wrapped. Duplicate labels are an error.
func NewRegistry(c curve.Curve, sections []Section, links map[string]string) (*Registry, error) {
	rg := &Registry{Curve: c, Falloff: DefaultFalloff, UpDir: math32.Vector3Y}
	var errs []error
	for _, sec := range sections {
		if _, has := rg.hotspots.ValueByKeyTry(sec.Label); has {
			errs = append(errs, fmt.Errorf("hotspot.NewRegistry: duplicate label %q", sec.Label))
			continue
		}
		hs := Hotspot{ID: rg.hotspots.Len(), Label: sec.Label, T: curve.Wrap(sec.T)}
		if tg, ok := links[sec.Label]; ok {
			hs.Target = tg
			rg.links.Add(sec.Label, tg)
		}
		rg.hotspots.Add(sec.Label, hs)
	}
	// links without a hotspot are kept, sorted, for completeness
	extra := make([]string, 0, len(links))
	for lb := range links {
		if _, has := rg.links.ValueByKeyTry(lb); !has {
			extra = append(extra, lb)
		}
	}
	slices.Sort(extra)
	for _, lb := range extra {
		rg.links.Add(lb, links[lb])
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rg, nil
}

// Len returns the number of hotspots.
func (rg *Registry) Len() int {
	return rg.hotspots.Len()
}

// Hotspots returns the hotspots in registration order.
func (rg *Registry) Hotspots() []Hotspot {
	return rg.hotspots.Values()
}

// Hotspot returns the hotspot with the given id.
func (rg *Registry) Hotspot(id int) Hotspot {
	return rg.hotspots.ValueByIndex(id)
}

// Lookup returns the navigation target for the given label.
func (rg *Registry) Lookup(label string) (string, bool) {
	return rg.links.ValueByKeyTry(label)
}

// Links returns the link table as label, target pairs in order.
func (rg *Registry) Links() []ordmap.KeyValue[string, string] {
	return slices.Clone(rg.links.Order)
}

// Opacity returns the opacity of a hotspot at parameter t for the given
// progress and intro blend. It is exactly 0 during the intro (blend < 1).
func (rg *Registry) Opacity(t, progress, blend float32) float32 {
	if blend < 1 {
		return 0
	}
	dist := math32.Abs(t - progress)
	return math32.Clamp(1-dist*rg.Falloff, 0, 1)
}

// Place computes the visual state of every hotspot for the given progress
// and blend, facing the given camera, appending to dst[:0] in registration
// order. Scale is always the baseline 1; hover overrides are applied
// afterwards by picking.
func (rg *Registry) Place(dst []Visual, progress, blend float32, cam *xyz.Camera) []Visual {
	dst = dst[:0]
	for _, kv := range rg.hotspots.Order {
		hs := kv.Value
		vs := Visual{ID: hs.ID, Label: hs.Label}
		vs.Pos = rg.Curve.Sample(hs.T)
		vs.Scale.Set(1, 1, 1)
		vs.FaceToward(cam.Pos, rg.UpDir)
		vs.Opacity = rg.Opacity(hs.T, progress, blend)
		dst = append(dst, vs)
	}
	return dst
}
