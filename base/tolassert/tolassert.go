// Copyright (c) 2026, The Knotfly Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of numbers
// with tolerance (in other words, it checks whether numbers are about equal).
package tolassert

import "github.com/stretchr/testify/assert"

// Float is a floating point type accepted by the assertions.
type Float interface {
	~float32 | ~float64
}

// EqualTol asserts that the given two numbers are about equal to each other,
// using the given tolerance value.
func EqualTol[T Float](t assert.TestingT, expected, actual, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance || diff != diff {
		return assert.Equal(t, expected, actual, msgAndArgs...)
	}
	return true
}
