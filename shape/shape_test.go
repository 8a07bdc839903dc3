// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"cogentcore.org/cubemobile/base/tolassert"
	"cogentcore.org/cubemobile/math32"
	"github.com/stretchr/testify/assert"
)

func allocArrays(sp Mesh) (vertex, normal, texcoord math32.ArrayF32, index math32.ArrayU32) {
	nv, ni, _ := sp.MeshSize()
	vertex = make(math32.ArrayF32, nv*3)
	normal = make(math32.ArrayF32, nv*3)
	texcoord = make(math32.ArrayF32, nv*2)
	index = make(math32.ArrayU32, ni)
	return
}

func TestPlane(t *testing.T) {
	pl := NewPlane(math32.Z, 2, 4)
	nv, ni, hc := pl.MeshSize()
	assert.Equal(t, 4, nv)
	assert.Equal(t, 6, ni)
	assert.False(t, hc)

	vertex, normal, texcoord, index := allocArrays(pl)
	pl.Set(vertex, normal, texcoord, nil, index)

	bb := pl.BBox()
	tolassert.Equal(t, float32(-1), bb.Min.X)
	tolassert.Equal(t, float32(-2), bb.Min.Y)
	tolassert.Equal(t, float32(1), bb.Max.X)
	tolassert.Equal(t, float32(2), bb.Max.Y)
	tolassert.Equal(t, float32(0), bb.Min.Z)
	tolassert.Equal(t, float32(0), bb.Max.Z)

	// all normals along +z
	for i := 0; i < nv; i++ {
		var n math32.Vector3
		normal.GetVector3(i*3, &n)
		tolassert.Equal(t, float32(0), n.X)
		tolassert.Equal(t, float32(0), n.Y)
		tolassert.Equal(t, float32(1), n.Z)
	}

	// texture v = 0 at the top (+y) row
	var top math32.Vector3
	vertex.GetVector3(0, &top)
	tolassert.Equal(t, float32(2), top.Y)
	tolassert.Equal(t, float32(0), texcoord[1])
}

func TestPlaneSegs(t *testing.T) {
	pl := NewPlane(math32.Y, 1, 1)
	pl.Segs.Set(2, 3)
	nv, ni, _ := pl.MeshSize()
	assert.Equal(t, 12, nv)
	assert.Equal(t, 36, ni)

	vertex, normal, texcoord, index := allocArrays(pl)
	pl.Set(vertex, normal, texcoord, nil, index)
	for _, ix := range index {
		assert.Less(t, int(ix), nv)
	}
}

func TestBox(t *testing.T) {
	bx := NewBox(1, 1, 1)
	nv, ni, hc := bx.MeshSize()
	assert.Equal(t, 24, nv)
	assert.Equal(t, 36, ni)
	assert.False(t, hc)

	vertex, normal, texcoord, index := allocArrays(bx)
	bx.Set(vertex, normal, texcoord, nil, index)

	bb := bx.BBox()
	tolassert.Equal(t, float32(-0.5), bb.Min.X)
	tolassert.Equal(t, float32(0.5), bb.Max.Z)

	// every vertex is on a corner of the unit cube,
	// and its normal points out of the face it belongs to
	for i := 0; i < nv; i++ {
		var p, n math32.Vector3
		vertex.GetVector3(i*3, &p)
		normal.GetVector3(i*3, &n)
		tolassert.Equal(t, float32(0.5), math32.Abs(p.X))
		tolassert.Equal(t, float32(0.5), math32.Abs(p.Y))
		tolassert.Equal(t, float32(0.5), math32.Abs(p.Z))
		tolassert.Equal(t, float32(1), n.Length())
		tolassert.Equal(t, float32(0.5), p.Dot(n))
	}

	// full texture range on each face
	for i := 0; i < nv; i++ {
		u, v := texcoord[i*2], texcoord[i*2+1]
		assert.True(t, u == 0 || u == 1)
		assert.True(t, v == 0 || v == 1)
	}

	// triangles wind counter-clockwise as seen from the outside
	for i := 0; i < ni; i += 3 {
		var a, b, c, n math32.Vector3
		vertex.GetVector3(int(index[i])*3, &a)
		vertex.GetVector3(int(index[i+1])*3, &b)
		vertex.GetVector3(int(index[i+2])*3, &c)
		normal.GetVector3(int(index[i])*3, &n)
		face := b.Sub(a).Cross(c.Sub(a))
		assert.Greater(t, face.Dot(n), float32(0))
	}
}

func TestBoxPos(t *testing.T) {
	bx := NewBox(2, 2, 2)
	bx.Pos.Set(0, 3, 0)
	vertex, normal, texcoord, index := allocArrays(bx)
	bx.Set(vertex, normal, texcoord, nil, index)
	bb := bx.BBox()
	tolassert.Equal(t, float32(2), bb.Min.Y)
	tolassert.Equal(t, float32(4), bb.Max.Y)
}

func TestGroup(t *testing.T) {
	gp := &Group{}
	gp.Shapes = append(gp.Shapes, NewBox(1, 1, 1), NewPlane(math32.Y, 4, 4))
	nv, ni, _ := gp.MeshSize()
	assert.Equal(t, 24+4, nv)
	assert.Equal(t, 36+6, ni)

	vertex, normal, texcoord, index := allocArrays(gp)
	gp.Set(vertex, normal, texcoord, nil, index)

	vo, io := gp.Shapes[1].Offsets()
	assert.Equal(t, 24, vo)
	assert.Equal(t, 36, io)
	for _, ix := range index[36:] {
		assert.GreaterOrEqual(t, int(ix), 24)
	}
}
