// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality
// of numbers with tolerance (in other words, it checks whether
// numbers are about equal).
package tolassert

import (
	"github.com/stretchr/testify/assert"
)

// Number is a type constraint for the numbers that can be compared.
type Number interface {
	~float32 | ~float64
}

// Equal asserts that the given two numbers are about equal,
// within a standard tolerance of 0.001.
func Equal[T Number](t assert.TestingT, expected T, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the given two numbers are about equal,
// within the given tolerance.
func EqualTol[T Number](t assert.TestingT, expected T, actual T, tolerance T, msgAndArgs ...any) bool {
	return assert.InDelta(t, expected, actual, float64(tolerance), msgAndArgs...)
}
