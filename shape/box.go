// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/cubemobile/math32"

// Box is a rectangular-shaped solid (cuboid), with each face
// carrying the full texture coordinate range, so a texture
// appears once per face.
type Box struct {
	ShapeBase

	// Size is the size along each dimension.
	Size math32.Vector3

	// Segs is the number of segments to divide each plane into
	// (enforced to be at least 1).
	Segs math32.Vector3i
}

// NewBox returns a Box shape with the given size.
func NewBox(width, height, depth float32) *Box {
	bx := &Box{}
	bx.Defaults()
	bx.Size.Set(width, height, depth)
	return bx
}

func (bx *Box) Defaults() {
	bx.Size.Set(1, 1, 1)
	bx.Segs.Set(1, 1, 1)
}

func (bx *Box) MeshSize() (numVertex, numIndex int, hasColor bool) {
	nv, ni := PlaneSize(int(bx.Segs.X), int(bx.Segs.Y))
	numVertex += 2 * nv
	numIndex += 2 * ni
	nv, ni = PlaneSize(int(bx.Segs.X), int(bx.Segs.Z))
	numVertex += 2 * nv
	numIndex += 2 * ni
	nv, ni = PlaneSize(int(bx.Segs.Z), int(bx.Segs.Y))
	numVertex += 2 * nv
	numIndex += 2 * ni
	return
}

// Set sets box points in given allocated arrays.
func (bx *Box) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	hSz := bx.Size.DivScalar(2)

	nVtx, nIdx := PlaneSize(int(bx.Segs.X), int(bx.Segs.Y))
	voff := bx.VertexOffset
	ioff := bx.IndexOffset

	bx.CBBox.SetEmpty()

	// start with neg z as typically back
	sb := SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.X, math32.Y, -1, -1, bx.Size.X, bx.Size.Y, -hSz.X, -hSz.Y, -hSz.Z, int(bx.Segs.X), int(bx.Segs.Y), bx.Pos) // nz
	bx.CBBox.ExpandByBox(sb)
	voff += nVtx
	ioff += nIdx

	nVtx, nIdx = PlaneSize(int(bx.Segs.X), int(bx.Segs.Z))
	sb = SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.X, math32.Z, 1, -1, bx.Size.X, bx.Size.Z, -hSz.X, -hSz.Z, -hSz.Y, int(bx.Segs.X), int(bx.Segs.Z), bx.Pos) // ny
	bx.CBBox.ExpandByBox(sb)
	voff += nVtx
	ioff += nIdx

	nVtx, nIdx = PlaneSize(int(bx.Segs.Z), int(bx.Segs.Y))
	sb = SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.Z, math32.Y, -1, -1, bx.Size.Z, bx.Size.Y, -hSz.Z, -hSz.Y, hSz.X, int(bx.Segs.Z), int(bx.Segs.Y), bx.Pos) // px
	bx.CBBox.ExpandByBox(sb)
	voff += nVtx
	ioff += nIdx

	sb = SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.Z, math32.Y, 1, -1, bx.Size.Z, bx.Size.Y, -hSz.Z, -hSz.Y, -hSz.X, int(bx.Segs.Z), int(bx.Segs.Y), bx.Pos) // nx
	bx.CBBox.ExpandByBox(sb)
	voff += nVtx
	ioff += nIdx

	nVtx, nIdx = PlaneSize(int(bx.Segs.X), int(bx.Segs.Z))
	sb = SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.X, math32.Z, 1, 1, bx.Size.X, bx.Size.Z, -hSz.X, -hSz.Z, hSz.Y, int(bx.Segs.X), int(bx.Segs.Z), bx.Pos) // py
	bx.CBBox.ExpandByBox(sb)
	voff += nVtx
	ioff += nIdx

	sb = SetPlane(vertex, normal, texcoord, index, voff, ioff, math32.X, math32.Y, 1, -1, bx.Size.X, bx.Size.Y, -hSz.X, -hSz.Y, hSz.Z, int(bx.Segs.X), int(bx.Segs.Y), bx.Pos) // pz
	bx.CBBox.ExpandByBox(sb)
}
