// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/compositor"
	"github.com/knotfly/knotfly/curve"
	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/navigator"
	"github.com/knotfly/knotfly/pick"
)

// NewCurve returns the configured camera path.
func (c *Config) NewCurve() curve.Curve {
	cc := &c.Curve
	kn := &curve.Knot{P: cc.P, Q: cc.Q, Radius: cc.Radius, Scale: cc.Scale}
	if cc.ArcLength {
		return curve.NewArcLength(kn, cc.Divisions)
	}
	return kn
}

// NewNavigator returns the configured navigator on the given curve.
func (c *Config) NewNavigator(path curve.Curve) *navigator.Navigator {
	cn := &c.Navigator
	nv := navigator.New(path)
	nv.Damping = cn.Damping
	errors.Log(nv.Mode.SetString(cn.Mode))
	nv.RefRate = cn.RefRate
	nv.IntroEnd = cn.IntroEnd
	nv.LookAhead = cn.LookAhead
	nv.Intro = navigator.Pose{Position: cn.IntroPosition, Look: cn.IntroLook}
	return nv
}

// NewRegistry returns the configured hotspots on the given curve.
func (c *Config) NewRegistry(path curve.Curve) (*hotspot.Registry, error) {
	rg, err := hotspot.NewRegistry(path, c.Hotspots.Sections, c.Hotspots.Links)
	if err != nil {
		return nil, err
	}
	rg.Falloff = c.Hotspots.Falloff
	return rg, nil
}

// NewPicker returns the configured picker.
func (c *Config) NewPicker() *pick.Picker {
	return &pick.Picker{
		Width:      c.Pick.Width,
		Height:     c.Pick.Height,
		HoverScale: c.Pick.HoverScale,
		MinOpacity: c.Pick.MinOpacity,
	}
}

// NewCompositor returns a compositor for a new session, with all of
// its components built from the config and no renderer or sink.
func (c *Config) NewCompositor() (*compositor.Compositor, error) {
	path := c.NewCurve()
	rg, err := c.NewRegistry(path)
	if err != nil {
		return nil, err
	}
	cp := compositor.New(c.NewNavigator(path), rg, c.NewPicker())
	cp.Camera.FOV = c.Camera.FOV
	cp.Camera.Near = c.Camera.Near
	cp.Camera.Far = c.Camera.Far
	return cp, nil
}
