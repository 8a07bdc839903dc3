// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// ArrayF32 is a slice of float32 with additional convenience methods
// for dealing with vertex data.
type ArrayF32 []float32

// NewArrayF32 creates a new array of float32 values
// with the specified initial size and capacity.
func NewArrayF32(size, capacity int) ArrayF32 {
	return make(ArrayF32, size, capacity)
}

// NumBytes returns the size of the array in bytes.
func (a ArrayF32) NumBytes() int {
	return len(a) * 4
}

// Append appends any number of values to the array.
func (a *ArrayF32) Append(v ...float32) {
	*a = append(*a, v...)
}

// AppendVector2 appends any number of [Vector2] values to the array.
func (a *ArrayF32) AppendVector2(v ...Vector2) {
	for i := 0; i < len(v); i++ {
		*a = append(*a, v[i].X, v[i].Y)
	}
}

// AppendVector3 appends any number of [Vector3] values to the array.
func (a *ArrayF32) AppendVector3(v ...Vector3) {
	for i := 0; i < len(v); i++ {
		*a = append(*a, v[i].X, v[i].Y, v[i].Z)
	}
}

// Set sets the values of the array starting at the given index
// from the given values.
func (a ArrayF32) Set(idx int, v ...float32) {
	for i, vv := range v {
		a[idx+i] = vv
	}
}

// SetVector2 sets the values of the array at the given index
// from the X, Y values of the given [Vector2].
func (a ArrayF32) SetVector2(idx int, v Vector2) {
	v.ToSlice(a, idx)
}

// SetVector3 sets the values of the array at the given index
// from the X, Y, Z values of the given [Vector3].
func (a ArrayF32) SetVector3(idx int, v Vector3) {
	v.ToSlice(a, idx)
}

// GetVector2 stores in the given [Vector2] the values from the array
// starting at the given index.
func (a ArrayF32) GetVector2(idx int, v *Vector2) {
	v.X = a[idx]
	v.Y = a[idx+1]
}

// GetVector3 stores in the given [Vector3] the values from the array
// starting at the given index.
func (a ArrayF32) GetVector3(idx int, v *Vector3) {
	v.FromSlice(a, idx)
}

// ArrayU32 is a slice of uint32 with additional convenience methods,
// used for vertex indexes.
type ArrayU32 []uint32

// NewArrayU32 creates a new array of uint32 values
// with the specified initial size and capacity.
func NewArrayU32(size, capacity int) ArrayU32 {
	return make(ArrayU32, size, capacity)
}

// NumBytes returns the size of the array in bytes.
func (a ArrayU32) NumBytes() int {
	return len(a) * 4
}

// Append appends any number of values to the array.
func (a *ArrayU32) Append(v ...uint32) {
	*a = append(*a, v...)
}

// Set sets the values of the array starting at the given index
// from the given values.
func (a ArrayU32) Set(idx int, v ...uint32) {
	for i, vv := range v {
		a[idx+i] = vv
	}
}
