// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

import "fmt"

// Vector2i is a 2D vector/point with X and Y int32 components.
type Vector2i struct {
	X int32
	Y int32
}

// Vec2i returns a new [Vector2i] with the given x and y components.
func Vec2i(x, y int32) Vector2i {
	return Vector2i{X: x, Y: y}
}

// Vector2iScalar returns a new [Vector2i] with all components set to the given scalar value.
func Vector2iScalar(scalar int32) Vector2i {
	return Vector2i{X: scalar, Y: scalar}
}

// Set sets this vector's X and Y components.
func (v *Vector2i) Set(x, y int32) {
	v.X = x
	v.Y = y
}

// SetScalar sets all vector components to the same scalar value.
func (v *Vector2i) SetScalar(scalar int32) {
	v.X = scalar
	v.Y = scalar
}

func (v Vector2i) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// Add adds the other given vector to this one and returns the result as a new vector.
func (v Vector2i) Add(other Vector2i) Vector2i {
	return Vec2i(v.X+other.X, v.Y+other.Y)
}

// Sub subtracts the other given vector from this one and returns the result as a new vector.
func (v Vector2i) Sub(other Vector2i) Vector2i {
	return Vec2i(v.X-other.X, v.Y-other.Y)
}

// Mul multiplies each component of this vector by the corresponding one of the
// other given vector and returns the result as a new vector.
func (v Vector2i) Mul(other Vector2i) Vector2i {
	return Vec2i(v.X*other.X, v.Y*other.Y)
}

// MulScalar multiplies each component of this vector by the given scalar
// and returns the result as a new vector.
func (v Vector2i) MulScalar(scalar int32) Vector2i {
	return Vec2i(v.X*scalar, v.Y*scalar)
}

// Min returns a new vector with the minimum of each component of this
// vector and the corresponding component of the other given vector.
func (v Vector2i) Min(other Vector2i) Vector2i {
	return Vec2i(min(v.X, other.X), min(v.Y, other.Y))
}

// Max returns a new vector with the maximum of each component of this
// vector and the corresponding component of the other given vector.
func (v Vector2i) Max(other Vector2i) Vector2i {
	return Vec2i(max(v.X, other.X), max(v.Y, other.Y))
}
