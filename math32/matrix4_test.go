// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/cubemobile/base/tolassert"
	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-6)

func TolAssertEqualVector3(t *testing.T, tol float32, vt, va Vector3) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
	tolassert.EqualTol(t, vt.Z, va.Z, tol)
}

func TestMatrix4Basic(t *testing.T) {
	id := NewMatrix4()
	assert.True(t, id.IsIdentity())

	var tr Matrix4
	tr.SetTranslation(1, 2, 3)
	assert.Equal(t, Vec3(1, 2, 3), tr.Pos())
	assert.Equal(t, Vec3(1, 2, 3), Vec3(0, 0, 0).MulMatrix4(&tr))

	var sc Matrix4
	sc.SetScale(2, 3, 4)
	assert.Equal(t, Vec3(2, 6, 12), Vec3(1, 2, 3).MulMatrix4(&sc))

	var cp Matrix4
	cp.CopyFrom(&tr)
	assert.Equal(t, tr, cp)
}

func TestMatrix4Rotation(t *testing.T) {
	vx := Vec3(1, 0, 0)
	vy := Vec3(0, 1, 0)
	vz := Vec3(0, 0, 1)

	var rx Matrix4
	rx.SetRotationX(DegToRad(90))
	TolAssertEqualVector3(t, StandardTol, vz, vy.MulMatrix4(&rx))

	var ry Matrix4
	ry.SetRotationY(DegToRad(90))
	TolAssertEqualVector3(t, StandardTol, Vec3(0, 0, -1), vx.MulMatrix4(&ry))
	TolAssertEqualVector3(t, StandardTol, vx, vz.MulMatrix4(&ry))

	var rz Matrix4
	rz.SetRotationZ(DegToRad(90))
	TolAssertEqualVector3(t, StandardTol, vy, vx.MulMatrix4(&rz))
}

func TestMatrix4Mul(t *testing.T) {
	vx := Vec3(1, 0, 0)

	// 1,0,0 -> scale(2) = 2,0,0 -> rotate z 90 = 0,2,0 -> trans 1,1,0 -> 1,3,0
	// multiplication order is *reverse* of "logical" order:
	var tr, rz, sc Matrix4
	tr.SetTranslation(1, 1, 0)
	rz.SetRotationZ(DegToRad(90))
	sc.SetScale(2, 2, 2)
	xf := tr.Mul(&rz).Mul(&sc)
	TolAssertEqualVector3(t, StandardTol, Vec3(1, 3, 0), vx.MulMatrix4(xf))

	var mm Matrix4
	mm.MulMatrices(tr.Mul(&rz), &sc)
	assert.Equal(t, *xf, mm)
}

func TestMatrix4Transform(t *testing.T) {
	pos := Vec3(1, 2, 3)
	rot := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	scale := Vec3(2, 2, 2)

	var xf Matrix4
	xf.SetTransform(pos, rot, scale)

	// equivalent to T * R * S composition
	var tr, ry, sc Matrix4
	tr.SetTranslation(pos.X, pos.Y, pos.Z)
	ry.SetRotationY(DegToRad(90))
	sc.SetScale(scale.X, scale.Y, scale.Z)
	cmp := tr.Mul(&ry).Mul(&sc)
	for i := range xf {
		tolassert.EqualTol(t, cmp[i], xf[i], StandardTol)
	}
}

func TestMatrix4Inverse(t *testing.T) {
	var tr, ry Matrix4
	tr.SetTranslation(3, -2, 5)
	ry.SetRotationY(DegToRad(33))
	xf := tr.Mul(&ry)

	inv, err := xf.Inverse()
	assert.NoError(t, err)
	res := xf.Mul(inv)
	id := NewMatrix4()
	for i := range res {
		tolassert.EqualTol(t, id[i], res[i], StandardTol)
	}

	var zero Matrix4
	zero.SetZero()
	_, err = zero.Inverse()
	assert.Error(t, err)
}

func TestMatrix4Projection(t *testing.T) {
	campos := Vec3(0, 0, 10)
	target := Vec3(0, 0, 0)
	var lookq Quat
	lookq.SetFromRotationMatrix(NewLookAt(campos, target, Vec3(0, 1, 0)))
	scale := Vec3(1, 1, 1)
	var cview Matrix4
	cview.SetTransform(campos, lookq, scale)
	view, err := cview.Inverse()
	assert.NoError(t, err)

	var glprjn Matrix4
	glprjn.SetPerspective(90, 1.5, 0.01, 100)

	var proj Matrix4
	proj.MulMatrices(&glprjn, view)

	// origin projects to the center of the screen
	org := Vector4{0, 0, 0, 1}.MulMatrix4(&proj).PerspDiv()
	tolassert.EqualTol(t, 0, org.X, StandardTol)
	tolassert.EqualTol(t, 0, org.Y, StandardTol)
	assert.Greater(t, org.Z, float32(0))
	assert.Less(t, org.Z, float32(1))

	// x+ is right, y+ is up, farther points have larger depth
	right := Vector4{1, 0, 0, 1}.MulMatrix4(&proj).PerspDiv()
	assert.Greater(t, right.X, float32(0))
	up := Vector4{0, 1, 0, 1}.MulMatrix4(&proj).PerspDiv()
	assert.Greater(t, up.Y, float32(0))
	far := Vector4{0, 0, -5, 1}.MulMatrix4(&proj).PerspDiv()
	assert.Greater(t, far.Z, org.Z)
}

func TestMatrix4Frustum(t *testing.T) {
	var pj Matrix4
	pj.SetPerspective(90, 1, 0.1, 100)

	// near plane maps to 0, far plane maps to 1
	near := Vector4{0, 0, -0.1, 1}.MulMatrix4(&pj).PerspDiv()
	tolassert.EqualTol(t, 0, near.Z, StandardTol)
	far := Vector4{0, 0, -100, 1}.MulMatrix4(&pj).PerspDiv()
	tolassert.EqualTol(t, 1, far.Z, StandardTol)

	// 90 degree fov: y = z extent at the near plane hits the frustum edge
	edge := Vector4{0, 0.1, -0.1, 1}.MulMatrix4(&pj).PerspDiv()
	tolassert.EqualTol(t, 1, edge.Y, StandardTol)
}
