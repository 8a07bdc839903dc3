// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/cubemobile/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestVector3(t *testing.T) {
	assert.Equal(t, Vector3{5, 10, 15}, Vec3(5, 10, 15))
	assert.Equal(t, Vector3{20, 20, 20}, Vector3Scalar(20))
	assert.Equal(t, Vector3{1, 2, 3}, Vector3FromVector4(Vec4(1, 2, 3, 4)))

	v := Vector3{}
	v.Set(-1, 7, 12)
	assert.Equal(t, Vector3{-1, 7, 12}, v)

	v.SetScalar(8.12)
	assert.Equal(t, Vector3{8.12, 8.12, 8.12}, v)

	v.SetFromVector3i(Vec3i(8, 9, 10))
	assert.Equal(t, Vector3{8, 9, 10}, v)

	v.SetDim(X, -1)
	assert.Equal(t, Vector3{-1, 9, 10}, v)
	assert.Equal(t, float32(9), v.Dim(Y))

	v.SetZero()
	assert.Equal(t, Vector3{}, v)
}

func TestVector3Ops(t *testing.T) {
	a := Vec3(1, 2, 3)
	b := Vec3(4, -5, 6)

	assert.Equal(t, Vec3(5, -3, 9), a.Add(b))
	assert.Equal(t, Vec3(-3, 7, -3), a.Sub(b))
	assert.Equal(t, Vec3(4, -10, 18), a.Mul(b))
	assert.Equal(t, Vec3(2, 4, 6), a.MulScalar(2))
	assert.Equal(t, Vec3(0.5, 1, 1.5), a.DivScalar(2))
	assert.Equal(t, Vec3(-1, -2, -3), a.Negate())
	assert.Equal(t, Vec3(4, 5, 6), b.Abs())

	assert.Equal(t, Vec3(1, -5, 3), a.Min(b))
	assert.Equal(t, Vec3(4, 2, 6), a.Max(b))

	assert.Equal(t, float32(12), a.Dot(b))
	assert.Equal(t, float32(14), a.LengthSquared())
	tolassert.EqualTol(t, Sqrt(14), a.Length(), StandardTol)
	tolassert.EqualTol(t, 1, a.Normal().Length(), StandardTol)

	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, Vec3(1, 0, 0), Vec3(0, 1, 0).Cross(Vec3(0, 0, 1)))

	assert.Equal(t, float32(5), Vec3(3, 4, 0).DistanceTo(Vector3{}))
	assert.Equal(t, Vec3(2, 3, 4), Vec3(0, 0, 0).Lerp(Vec3(4, 6, 8), 0.5))
}

func TestVector3MulQuat(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	TolAssertEqualVector3(t, StandardTol, Vec3(0, 0, -1), Vec3(1, 0, 0).MulQuat(q))
	TolAssertEqualVector3(t, StandardTol, Vec3(1, 0, 0), Vec3(0, 0, 1).MulQuat(q))

	// matches the equivalent rotation matrix
	var ry Matrix4
	ry.SetRotationY(DegToRad(90))
	pt := Vec3(2, 5, -3)
	TolAssertEqualVector3(t, StandardTol, pt.MulMatrix4(&ry), pt.MulQuat(q))
}
