// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import "cogentcore.org/cubemobile/math32"

// Plane is a flat 2D plane shape, with a configurable normal axis,
// subdivided into segments along each of its two axes.
type Plane struct {
	ShapeBase

	// NormAxis is the axis along which the normal of the plane points.
	NormAxis math32.Dims

	// NormNeg is true if the normal points in the negative direction
	// along NormAxis.
	NormNeg bool

	// Size is the 2D size of the plane, in the order of the
	// two non-normal axes (e.g., X, Y for a Z-normal plane).
	Size math32.Vector2

	// Segs is the number of segments to divide the plane into;
	// 1 is the minimum. More finely subdivided planes are useful
	// for effects operating on vertex positions.
	Segs math32.Vector2i

	// Offset is the distance of the plane from the origin,
	// along the normal axis.
	Offset float32
}

// NewPlane returns a Plane shape with the given normal axis and size.
func NewPlane(normAxis math32.Dims, width, height float32) *Plane {
	pl := &Plane{}
	pl.Defaults()
	pl.NormAxis = normAxis
	pl.Size.Set(width, height)
	return pl
}

func (pl *Plane) Defaults() {
	pl.NormAxis = math32.Z
	pl.Size.Set(1, 1)
	pl.Segs.Set(1, 1)
}

func (pl *Plane) MeshSize() (numVertex, numIndex int, hasColor bool) {
	numVertex, numIndex = PlaneSize(int(pl.Segs.X), int(pl.Segs.Y))
	return
}

// Set sets points in given allocated arrays.
func (pl *Plane) Set(vertex, normal, texcoord, clrs math32.ArrayF32, index math32.ArrayU32) {
	hSz := pl.Size.DivScalar(2)
	sz := pl.Offset
	if pl.NormNeg {
		sz = -sz
	}
	var sb math32.Box3
	switch pl.NormAxis {
	case math32.X:
		if pl.NormNeg {
			// nx
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.Z, math32.Y, 1, -1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		} else {
			// px
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.Z, math32.Y, -1, -1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		}
	case math32.Y:
		if pl.NormNeg {
			// ny
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.X, math32.Z, 1, -1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		} else {
			// py
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.X, math32.Z, 1, 1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		}
	case math32.Z:
		if pl.NormNeg {
			// nz
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.X, math32.Y, -1, -1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		} else {
			// pz
			sb = SetPlane(vertex, normal, texcoord, index, pl.VertexOffset, pl.IndexOffset, math32.X, math32.Y, 1, -1, pl.Size.X, pl.Size.Y, -hSz.X, -hSz.Y, sz, int(pl.Segs.X), int(pl.Segs.Y), pl.Pos)
		}
	}
	pl.CBBox = sb
}

// PlaneSize returns the number of vertex and index elements
// for a plane with the given number of segments along each axis.
func PlaneSize(wsegs, hsegs int) (numVertex, numIndex int) {
	wsegs = max(wsegs, 1)
	hsegs = max(hsegs, 1)
	numVertex = (wsegs + 1) * (hsegs + 1)
	numIndex = wsegs * hsegs * 6
	return
}

// SetPlane sets plane vertex, normal, texture, and index data
// at given starting element offsets, and returns the bounding box.
//   - waxis, haxis are the axes along the width and height of the plane,
//     with the normal along the remaining third axis.
//   - wdir, hdir (+1 or -1) are the directions along each axis in which
//     the texture coordinates increase. Vertices wind counter-clockwise
//     as seen from the positive side of the normal axis.
//   - woff, hoff are the coordinates, before applying the direction sign,
//     of the corner at texture coordinate (0, 0): pos = dir * (off + i*seg).
//   - zoff is the position along the normal axis, and its sign determines
//     the direction of the normal.
func SetPlane(vertex, normal, texcoord math32.ArrayF32, index math32.ArrayU32, vtxOff, idxOff int, waxis, haxis math32.Dims, wdir, hdir float32, width, height, woff, hoff, zoff float32, wsegs, hsegs int, pos math32.Vector3) math32.Box3 {
	naxis := math32.Z
	switch {
	case (waxis == math32.X && haxis == math32.Z) || (waxis == math32.Z && haxis == math32.X):
		naxis = math32.Y
	case (waxis == math32.Y && haxis == math32.Z) || (waxis == math32.Z && haxis == math32.Y):
		naxis = math32.X
	}
	wsegs = max(wsegs, 1)
	hsegs = max(hsegs, 1)
	segWidth := width / float32(wsegs)
	segHeight := height / float32(hsegs)

	var norm math32.Vector3
	if zoff >= 0 {
		norm.SetDim(naxis, 1)
	} else {
		norm.SetDim(naxis, -1)
	}

	bb := math32.B3Empty()
	vidx := vtxOff
	var pt math32.Vector3
	for iy := 0; iy <= hsegs; iy++ {
		for ix := 0; ix <= wsegs; ix++ {
			pt.SetDim(waxis, (woff+float32(ix)*segWidth)*wdir)
			pt.SetDim(haxis, (hoff+float32(iy)*segHeight)*hdir)
			pt.SetDim(naxis, zoff)
			pt.SetAdd(pos)
			vertex.SetVector3(vidx*3, pt)
			normal.SetVector3(vidx*3, norm)
			texcoord.Set(vidx*2, float32(ix)/float32(wsegs), float32(iy)/float32(hsegs))
			bb.ExpandByPoint(pt)
			vidx++
		}
	}

	sidx := idxOff
	wrow := uint32(wsegs + 1)
	voff := uint32(vtxOff)
	for iy := 0; iy < hsegs; iy++ {
		for ix := 0; ix < wsegs; ix++ {
			a := voff + uint32(ix) + wrow*uint32(iy)
			b := voff + uint32(ix) + wrow*uint32(iy+1)
			c := b + 1
			d := a + 1
			index.Set(sidx, a, b, d, d, b, c)
			sidx += 6
		}
	}
	return bb
}
