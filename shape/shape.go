// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape generates standard 3D shape meshes as flat arrays
// of vertex, normal, texture coordinate, and index data, suitable
// for direct upload to GPU vertex buffers.
package shape

import "cogentcore.org/cubemobile/math32"

// Mesh is an interface for all shape-constructing elements,
// including individual shapes and groups of shapes.
type Mesh interface {
	// MeshSize returns the number of vertex and index elements
	// in the shape, and whether it has per-vertex color data.
	MeshSize() (numVertex, numIndex int, hasColor bool)

	// Set sets shape data into given arrays, at the current offsets,
	// which must have been allocated to hold the data per Size.
	Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32)

	// Offsets returns the starting vertex and index element offsets
	// for this shape, which determine where Set writes its data.
	Offsets() (vtxOffset, idxOffset int)

	// SetOffsets sets the starting vertex and index element offsets.
	SetOffsets(vtxOffset, idxOffset int)

	// BBox returns the bounding box of the shape,
	// as computed by the last call to Set.
	BBox() math32.Box3
}

// ShapeBase is the base shape element, implementing the
// offset and bounding-box parts of the [Mesh] interface.
type ShapeBase struct {
	// VertexOffset is the starting vertex element offset, set by SetOffsets.
	VertexOffset int

	// IndexOffset is the starting index element offset, set by SetOffsets.
	IndexOffset int

	// CBBox is the current bounding box, updated during Set.
	CBBox math32.Box3

	// Pos is a 3D position offset applied to all vertex positions,
	// enabling composition of shapes within a larger mesh.
	Pos math32.Vector3
}

// Offsets returns the starting vertex and index element offsets.
func (sb *ShapeBase) Offsets() (vtxOffset, idxOffset int) {
	return sb.VertexOffset, sb.IndexOffset
}

// SetOffsets sets the starting vertex and index element offsets.
func (sb *ShapeBase) SetOffsets(vtxOffset, idxOffset int) {
	sb.VertexOffset = vtxOffset
	sb.IndexOffset = idxOffset
}

// BBox returns the bounding box of the shape.
func (sb *ShapeBase) BBox() math32.Box3 {
	return sb.CBBox
}
