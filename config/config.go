// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of a fly-through: the curve,
// camera damping, hotspot tables, picking, and the server and preview
// front ends. A Config is static for the lifetime of a session.
package config

import (
	"fmt"
	"time"

	"github.com/knotfly/knotfly/base/errors"
	"github.com/knotfly/knotfly/hotspot"
	"github.com/knotfly/knotfly/math32"
	"github.com/knotfly/knotfly/navigator"
)

// Config is the main config struct.
type Config struct {

	// the camera path
	Curve Curve `json:"curve" toml:"curve" yaml:"curve"`

	// smoothing and intro of the camera motion
	Navigator Navigator `json:"navigator" toml:"navigator" yaml:"navigator"`

	// camera lens
	Camera Camera `json:"camera" toml:"camera" yaml:"camera"`

	// the hotspot placement and link tables
	Hotspots Hotspots `json:"hotspots" toml:"hotspots" yaml:"hotspots"`

	// hit-quads and hover
	Pick Pick `json:"pick" toml:"pick" yaml:"pick"`

	// the websocket server
	Server Server `json:"server" toml:"server" yaml:"server"`

	// the terminal preview
	Preview Preview `json:"preview" toml:"preview" yaml:"preview"`
}

// Curve configures the camera path.
type Curve struct {

	// winding numbers of the knot
	P int `json:"p" toml:"p" yaml:"p"`
	Q int `json:"q" toml:"q" yaml:"q"`

	// base radius of the knot
	Radius float32 `json:"radius" toml:"radius" yaml:"radius"`

	// perturbation scale of the knot
	Scale float32 `json:"scale" toml:"scale" yaml:"scale"`

	// whether to reparameterize the knot by arc length,
	// for constant camera speed along the path
	ArcLength bool `json:"arcLength" toml:"arcLength" yaml:"arcLength"`

	// number of segments of the arc length table
	Divisions int `json:"divisions" toml:"divisions" yaml:"divisions"`
}

// Navigator configures the camera motion.
type Navigator struct {

	// per-tick smoothing weight, in (0, 1)
	Damping float32 `json:"damping" toml:"damping" yaml:"damping"`

	// "frame" applies Damping once per tick; "time" scales it
	// by the elapsed time relative to RefRate
	Mode string `json:"mode" toml:"mode" yaml:"mode"`

	// reference tick rate for time based damping
	RefRate float32 `json:"refRate" toml:"refRate" yaml:"refRate"`

	// progress at which the intro blend completes
	IntroEnd float32 `json:"introEnd" toml:"introEnd" yaml:"introEnd"`

	// curve parameter offset of the look target
	LookAhead float32 `json:"lookAhead" toml:"lookAhead" yaml:"lookAhead"`

	// camera position during the intro
	IntroPosition math32.Vector3 `json:"introPosition" toml:"introPosition" yaml:"introPosition"`

	// camera look target during the intro
	IntroLook math32.Vector3 `json:"introLook" toml:"introLook" yaml:"introLook"`
}

// Camera configures the camera lens.
type Camera struct {

	// vertical field of view in degrees
	FOV float32 `json:"fov" toml:"fov" yaml:"fov"`

	// near and far clipping distances
	Near float32 `json:"near" toml:"near" yaml:"near"`
	Far  float32 `json:"far" toml:"far" yaml:"far"`
}

// Hotspots configures the hotspot tables. A nil table is replaced
// by the default table, so the two can be overridden separately.
type Hotspots struct {

	// width of the visible window around the current progress is 2/Falloff
	Falloff float32 `json:"falloff" toml:"falloff" yaml:"falloff"`

	// label and curve parameter of each hotspot, in order
	Sections []hotspot.Section `json:"sections" toml:"sections" yaml:"sections"`

	// navigation target of each label
	Links map[string]string `json:"links" toml:"links" yaml:"links"`
}

// Pick configures picking.
type Pick struct {

	// size of the hit-quad
	Width  float32 `json:"width" toml:"width" yaml:"width"`
	Height float32 `json:"height" toml:"height" yaml:"height"`

	// scale of the hovered hotspot
	HoverScale float32 `json:"hoverScale" toml:"hoverScale" yaml:"hoverScale"`

	// minimum opacity of a pickable hotspot
	MinOpacity float32 `json:"minOpacity" toml:"minOpacity" yaml:"minOpacity"`
}

// Server configures the websocket server.
type Server struct {

	// address to listen on
	Addr string `json:"addr" toml:"addr" yaml:"addr"`

	// directory of static files served at /, if any
	Static string `json:"static" toml:"static" yaml:"static"`

	// frames per second sent to each client
	FPS int `json:"fps" toml:"fps" yaml:"fps"`

	// maximum size in bytes of a client message
	ReadLimit int64 `json:"readLimit" toml:"readLimit" yaml:"readLimit"`

	// time allowed to write a message to a client
	WriteTimeout Duration `json:"writeTimeout" toml:"writeTimeout" yaml:"writeTimeout"`
}

// Preview configures the terminal preview.
type Preview struct {

	// frames per second
	FPS int `json:"fps" toml:"fps" yaml:"fps"`

	// height of the virtual document, in viewports
	Pages float32 `json:"pages" toml:"pages" yaml:"pages"`

	// number of curve samples drawn
	Samples int `json:"samples" toml:"samples" yaml:"samples"`

	// fog distances: full color before FogNear, faded out at FogFar
	FogNear float32 `json:"fogNear" toml:"fogNear" yaml:"fogNear"`
	FogFar  float32 `json:"fogFar" toml:"fogFar" yaml:"fogFar"`
}

// Duration is a [time.Duration] that is written as text, like "10s".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	td, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// DefaultSections returns the reference hotspot placement table.
func DefaultSections() []hotspot.Section {
	return []hotspot.Section{
		{Label: "ABOUT", T: 0.3},
		{Label: "CV", T: 0.52},
		{Label: "PROJECTS", T: 0.7},
		{Label: "TEACHING", T: 0.85},
		{Label: "CONTACT", T: 0.94},
	}
}

// DefaultLinks returns the reference link table.
func DefaultLinks() map[string]string {
	return map[string]string{
		"ABOUT":    "about/",
		"CV":       "cv/",
		"PROJECTS": "projects/",
		"TEACHING": "teaching/",
		"CONTACT":  "contact/",
	}
}

// Default returns a new config with the reference values.
func Default() *Config {
	c := &Config{}
	c.Defaults()
	return c
}

// Defaults sets all fields to the reference values.
func (c *Config) Defaults() {
	c.Curve = Curve{P: 2, Q: 3, Radius: 2, Scale: 0.5, Divisions: 200}
	c.Navigator = Navigator{
		Damping:       0.05,
		Mode:          navigator.DampingFrame.String(),
		RefRate:       60,
		IntroEnd:      0.1,
		LookAhead:     0.01,
		IntroPosition: math32.Vec3(0, 0, 5),
	}
	c.Camera = Camera{FOV: 75, Near: 0.1, Far: 1000}
	c.Hotspots = Hotspots{
		Falloff:  hotspot.DefaultFalloff,
		Sections: DefaultSections(),
		Links:    DefaultLinks(),
	}
	c.Pick = Pick{Width: 2, Height: 1, HoverScale: 1.1}
	c.Server = Server{
		Addr:         ":8080",
		FPS:          60,
		ReadLimit:    4096,
		WriteTimeout: Duration(10 * time.Second),
	}
	c.Preview = Preview{FPS: 30, Pages: 5, Samples: 600, FogNear: 6, FogFar: 20}
}

// Validate returns all of the problems with the config joined
// into one error, or nil if it is usable.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("config: "+format, args...))
	}
	if c.Curve.Radius <= 0 || !math32.IsFinite(c.Curve.Radius) {
		add("curve.radius must be positive, not %g", c.Curve.Radius)
	}
	if !math32.IsFinite(c.Curve.Scale) {
		add("curve.scale must be finite")
	}
	nv := &c.Navigator
	if !(nv.Damping > 0 && nv.Damping < 1) {
		add("navigator.damping must be in (0, 1), not %g", nv.Damping)
	}
	var mode navigator.DampingModes
	if err := mode.SetString(nv.Mode); err != nil {
		add("navigator.mode: %w", err)
	}
	if mode == navigator.DampingTime && nv.RefRate <= 0 {
		add("navigator.refRate must be positive for time damping, not %g", nv.RefRate)
	}
	if nv.IntroEnd <= 0 {
		add("navigator.introEnd must be positive, not %g", nv.IntroEnd)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		add("camera.fov must be in (0, 180), not %g", c.Camera.FOV)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		add("camera needs 0 < near < far, not near %g far %g", c.Camera.Near, c.Camera.Far)
	}
	if c.Hotspots.Falloff <= 0 {
		add("hotspots.falloff must be positive, not %g", c.Hotspots.Falloff)
	}
	seen := map[string]bool{}
	for _, sec := range c.Hotspots.Sections {
		if seen[sec.Label] {
			add("hotspots: duplicate label %q", sec.Label)
		}
		seen[sec.Label] = true
		if !math32.IsFinite(sec.T) {
			add("hotspots: section %q has a non-finite t", sec.Label)
		}
	}
	if c.Pick.Width <= 0 || c.Pick.Height <= 0 {
		add("pick: hit-quad size must be positive, not %gx%g", c.Pick.Width, c.Pick.Height)
	}
	if c.Server.FPS <= 0 {
		add("server.fps must be positive, not %d", c.Server.FPS)
	}
	if c.Preview.FPS <= 0 {
		add("preview.fps must be positive, not %d", c.Preview.FPS)
	}
	if c.Preview.Pages < 1 {
		add("preview.pages must be at least 1, not %g", c.Preview.Pages)
	}
	return errors.Join(errs...)
}
