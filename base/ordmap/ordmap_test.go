// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ordmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	var om Map[string, string]
	om.Add("ABOUT", "about/")
	om.Add("CV", "cv/")
	om.Add("PROJECTS", "projects/")
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, []string{"about/", "cv/", "projects/"}, om.Values())

	v, ok := om.ValueByKeyTry("CV")
	assert.True(t, ok)
	assert.Equal(t, "cv/", v)
	_, ok = om.ValueByKeyTry("BLOG")
	assert.False(t, ok)

	// replacing keeps the original position
	om.Add("ABOUT", "me/")
	assert.Equal(t, 3, om.Len())
	assert.Equal(t, "me/", om.ValueByIndex(0))
	assert.Equal(t, "ABOUT", om.Order[0].Key)

	var empty *Map[string, int]
	assert.Equal(t, 0, empty.Len())
}
