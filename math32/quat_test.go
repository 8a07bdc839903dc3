// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/cubemobile/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func TestQuatBasic(t *testing.T) {
	q := NewQuat(1, 2, 3, 4)
	assert.Equal(t, Quat{1, 2, 3, 4}, q)

	q.SetIdentity()
	assert.True(t, q.IsIdentity())
	tolassert.EqualTol(t, 1, q.Length(), StandardTol)

	q.Set(0, 3, 0, 4)
	tolassert.EqualTol(t, 5, q.Length(), StandardTol)
	q.Normalize()
	tolassert.EqualTol(t, 1, q.Length(), StandardTol)
}

func TestQuatAxisAngle(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	s, c := Sincos(DegToRad(45))
	tolassert.EqualTol(t, 0, q.X, StandardTol)
	tolassert.EqualTol(t, s, q.Y, StandardTol)
	tolassert.EqualTol(t, 0, q.Z, StandardTol)
	tolassert.EqualTol(t, c, q.W, StandardTol)
}

func TestQuatRotationMatrix(t *testing.T) {
	// axis-angle -> matrix -> quat roundtrip
	axes := []Vector3{{0, 1, 0}, {1, 0, 0}, {0, 0, 1}}
	angles := []float32{30, 90, 145, -60}
	for _, ax := range axes {
		for _, ang := range angles {
			q := NewQuatAxisAngle(ax, DegToRad(ang))
			var m Matrix4
			m.SetRotationFromQuat(q)
			var rq Quat
			rq.SetFromRotationMatrix(&m)
			if rq.Dot(q) < 0 { // q and -q are the same rotation
				rq.X, rq.Y, rq.Z, rq.W = -rq.X, -rq.Y, -rq.Z, -rq.W
			}
			tolassert.EqualTol(t, q.X, rq.X, 1.0e-5)
			tolassert.EqualTol(t, q.Y, rq.Y, 1.0e-5)
			tolassert.EqualTol(t, q.Z, rq.Z, 1.0e-5)
			tolassert.EqualTol(t, q.W, rq.W, 1.0e-5)
		}
	}
}

func TestQuatMul(t *testing.T) {
	qa := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(45))
	qb := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(45))
	var q Quat
	q.MulQuats(qa, qb)

	q90 := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(90))
	tolassert.EqualTol(t, q90.Y, q.Y, StandardTol)
	tolassert.EqualTol(t, q90.W, q.W, StandardTol)

	qc := qa
	qc.SetMul(qb)
	assert.Equal(t, q, qc)

	// conjugate reverses the rotation
	qi := q90
	qi.SetConjugate()
	pt := Vec3(1, 0, 0)
	TolAssertEqualVector3(t, StandardTol, pt, pt.MulQuat(q90).MulQuat(qi))
}
