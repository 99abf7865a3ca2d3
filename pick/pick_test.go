// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pick

import (
	"testing"

	"github.com/knotfly/knotfly/base/tolassert"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/xyz"
	"github.com/stretchr/testify/assert"
)

type linkTable map[string]string

func (lt linkTable) Lookup(label string) (string, bool) {
	tg, ok := lt[label]
	return tg, ok
}

var links = linkTable{"ABOUT": "about/", "PROJECTS": "projects/"}

func newCamera() *xyz.Camera {
	cam := &xyz.Camera{}
	cam.Defaults()
	return cam
}

func visual(cam *xyz.Camera, id int, label string, pos math32.Vector3) hotspot.Visual {
	vs := hotspot.Visual{ID: id, Label: label, Opacity: 1}
	vs.Pos = pos
	vs.Defaults()
	vs.FaceToward(cam.Pos, math32.Vector3Y)
	return vs
}

func TestHit(t *testing.T) {
	cam := newCamera()
	pk := New()
	vs := visual(cam, 0, "ABOUT", math32.Vector3{})

	ray := cam.Ray(math32.Vector2{})
	d, ok := pk.Hit(&ray, &vs)
	assert.True(t, ok)
	tolassert.EqualTol(t, 5, d, 1e-5)

	// just inside and just outside the 2x1 quad at distance 5
	inside := *math32.NewRay(cam.Pos, math32.Vec3(0.99, 0.49, -5))
	_, ok = pk.Hit(&inside, &vs)
	assert.True(t, ok)
	outside := *math32.NewRay(cam.Pos, math32.Vec3(0.5, 0.51, -5))
	_, ok = pk.Hit(&outside, &vs)
	assert.False(t, ok)

	// scale does not enlarge the quad
	vs.SetUniformScale(3)
	_, ok = pk.Hit(&outside, &vs)
	assert.False(t, ok)

	// pointing away
	away := *math32.NewRay(cam.Pos, math32.Vec3(0, 0, 1))
	_, ok = pk.Hit(&away, &vs)
	assert.False(t, ok)
}

func TestPickNearestSingle(t *testing.T) {
	cam := newCamera()
	pk := New()
	vis := []hotspot.Visual{
		visual(cam, 0, "ABOUT", math32.Vector3{}),
		visual(cam, 1, "PROJECTS", math32.Vec3(0, 0, 2)),
		visual(cam, 2, "CV", math32.Vec3(0.2, 0.1, -1)),
	}
	ray := cam.Ray(math32.Vector2{})
	idx, d, ok := pk.Pick(&ray, vis)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	tolassert.EqualTol(t, 3, d, 1e-5)

	// empty space
	ray = cam.Ray(math32.Vec2(0.95, 0.95))
	idx, _, ok = pk.Pick(&ray, vis)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)

	_, _, ok = pk.Pick(&ray, nil)
	assert.False(t, ok)
}

func TestPickTieFirstRegistered(t *testing.T) {
	cam := newCamera()
	pk := New()
	vis := []hotspot.Visual{
		visual(cam, 0, "A", math32.Vec3(0, 0, 1)),
		visual(cam, 1, "B", math32.Vec3(0, 0, 1)),
	}
	ray := cam.Ray(math32.Vector2{})
	idx, _, ok := pk.Pick(&ray, vis)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestPickMinOpacity(t *testing.T) {
	cam := newCamera()
	pk := New()
	vis := []hotspot.Visual{visual(cam, 0, "ABOUT", math32.Vector3{})}
	vis[0].Opacity = 0
	ray := cam.Ray(math32.Vector2{})
	_, _, ok := pk.Pick(&ray, vis)
	assert.True(t, ok)

	pk.MinOpacity = 0.01
	_, _, ok = pk.Pick(&ray, vis)
	assert.False(t, ok)
}

func TestHover(t *testing.T) {
	cam := newCamera()
	pk := New()
	vis := []hotspot.Visual{
		visual(cam, 0, "ABOUT", math32.Vector3{}),
		visual(cam, 1, "PROJECTS", math32.Vec3(3, 0, 0)),
	}
	// left over from a previous frame
	vis[0].SetUniformScale(1.1)

	ndc, _, ok := cam.Project(vis[1].Pos)
	assert.True(t, ok)
	ptr := Pointer{NDC: ndc}
	idx, ok := pk.Hover(&ptr, cam, vis)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.True(t, ptr.HasHover)
	assert.Equal(t, 1, ptr.Hovered)
	assert.Equal(t, math32.Vec3(1, 1, 1), vis[0].Scale)
	assert.Equal(t, math32.Vector3Scalar(1.1), vis[1].Scale)

	// pointer moves off every hotspot
	ptr.NDC = math32.Vec2(-0.95, 0.95)
	idx, ok = pk.Hover(&ptr, cam, vis)
	assert.False(t, ok)
	assert.Equal(t, -1, idx)
	assert.False(t, ptr.HasHover)
	for _, vs := range vis {
		assert.Equal(t, math32.Vec3(1, 1, 1), vs.Scale)
	}
}

func TestClick(t *testing.T) {
	cam := newCamera()
	pk := New()
	vis := []hotspot.Visual{
		visual(cam, 0, "ABOUT", math32.Vec3(-3, 0, 0)),
		visual(cam, 1, "PROJECTS", math32.Vector3{}),
		visual(cam, 2, "UNLINKED", math32.Vec3(3, 0, 0)),
	}

	req, ok := pk.Click(math32.Vector2{}, cam, vis, links)
	assert.True(t, ok)
	assert.Equal(t, Request{Target: "projects/", Label: "PROJECTS", ID: 1}, req)

	// nothing under the pointer
	_, ok = pk.Click(math32.Vec2(0, 0.95), cam, vis, links)
	assert.False(t, ok)

	// hit, but the label has no target
	ndc, _, _ := cam.Project(vis[2].Pos)
	_, ok = pk.Click(ndc, cam, vis, links)
	assert.False(t, ok)
}

func TestClickRegistryLinks(t *testing.T) {
	rg, err := hotspot.NewRegistry(curve.NewKnot(),
		[]hotspot.Section{{Label: "PROJECTS", T: 0.7}},
		map[string]string{"PROJECTS": "projects/"})
	assert.NoError(t, err)

	cam := newCamera()
	pos := rg.Curve.Sample(0.7)
	cam.LookAt(pos.Add(math32.Vec3(0, 0, 4)), pos)
	vis := rg.Place(nil, 0.7, 1, cam)

	req, ok := New().Click(math32.Vector2{}, cam, vis, rg)
	assert.True(t, ok)
	assert.Equal(t, "projects/", req.Target)
	assert.Equal(t, 0, req.ID)
}
