// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/cubemobile/math32"

// Group is a group of shapes rendered into a shared set of arrays,
// with each shape writing at its own offsets.
type Group struct {
	ShapeBase

	// Shapes is the list of shapes in the group.
	Shapes []Mesh
}

func (gp *Group) MeshSize() (numVertex, numIndex int, hasColor bool) {
	for _, sh := range gp.Shapes {
		nv, ni, hc := sh.MeshSize()
		numVertex += nv
		numIndex += ni
		hasColor = hasColor || hc
	}
	return
}

// Set sets points in given allocated arrays, also updating
// the offsets of each shape in the group.
func (gp *Group) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	vo := gp.VertexOffset
	io := gp.IndexOffset
	gp.CBBox.SetEmpty()
	for _, sh := range gp.Shapes {
		sh.SetOffsets(vo, io)
		sh.Set(vertex, normal, texcoord, clrs, index)
		gp.CBBox.ExpandByBox(sh.BBox())
		nv, ni, _ := sh.MeshSize()
		vo += nv
		io += ni
	}
}
