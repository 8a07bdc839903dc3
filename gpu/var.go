// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Var specifies a variable used in a pipeline, accessed in shader programs.
// A Var represents a type of input or output into the GPU program,
// including things like Vertex arrays, transformation matrices (Uniforms),
// and Textures. There are one or more corresponding Value items for each Var,
// which represent the actual value of the variable: Var only represents
// all the type-level info. Each Var belongs to a VarGroup, and its Binding
// location is allocated within that, and these numbers are used in WGSL
// shader via @group and @binding to refer to the variables.
type Var struct {
	// Name is the name of the variable, as used in the shader.
	Name string

	// Type of data in the variable. Note that there are strict contraints
	// on the alignment of fields within structs: if you can keep all fields
	// at 4 byte increments, that works, but otherwise larger fields trigger
	// a 16 byte alignment constraint.
	Type Types

	// ArrayN is the number of elements if this is a fixed array.
	// Use 1 if singular element, and 0 if a variable-sized array,
	// where each Value can have its own specific size.
	ArrayN int

	// Role of the variable: Vertex and Index are configured separately
	// in the vertex layout, and everything else is configured in a
	// bind group. Note: Push is not supported in WebGPU.
	Role VarRoles

	// Shaders is the bit flags for the set of shader stages that this
	// variable is used in, set by the named stages passed to the adder.
	Shaders wgpu.ShaderStage

	// Group binding for this variable, indicated by @group in WGSL shader.
	// In general, put data that is updated at the same point in time in the
	// same group, as everything within a group is updated together.
	Group int

	// Binding number for this variable, indicated by @binding in WGSL
	// shader. These are automatically assigned sequentially within Group.
	Binding int

	// SizeOf is the size in bytes of one element (not the array size).
	// Arrays in Uniform require 16 byte alignment for each element.
	SizeOf int

	// DynamicOffset indicates to use a dynamic offset to access different
	// elements of the value buffer, with the offset set by
	// [Value.SetDynamicIndex]. Only for Uniform and Storage variables.
	DynamicOffset bool

	// Values is the array of Values allocated for this variable.
	// Each Value has its own device buffer or texture resources,
	// and the current one is selected with [Values.SetCurrentValue].
	Values Values

	// alignBytes is the alignment for content size of buffers,
	// from the owning VarGroup.
	alignBytes int
}

func (vr *Var) init(name string, typ Types, arrayN int, role VarRoles, group int, shaders ...ShaderTypes) {
	vr.Name = name
	vr.Type = typ
	vr.ArrayN = max(arrayN, 1)
	vr.Role = role
	vr.SizeOf = typ.Bytes()
	vr.Group = group
	vr.Shaders = 0
	for _, sh := range shaders {
		vr.Shaders |= ShaderStageFlags[sh]
	}
}

func (vr *Var) String() string {
	typ := vr.Type.String()
	if vr.ArrayN > 1 {
		if vr.ArrayN > 10000 {
			typ = fmt.Sprintf("%s[0x%X]", typ, vr.ArrayN)
		} else {
			typ = fmt.Sprintf("%s[%d]", typ, vr.ArrayN)
		}
	}
	s := fmt.Sprintf("%d:\t%s\t%s\t(size: %d)\tValues: %d", vr.Binding, vr.Name, typ, vr.SizeOf, len(vr.Values.Values))
	return s
}

// MemSize returns the memory allocation size for one Value
// of this variable, in bytes.
func (vr *Var) MemSize() int {
	n := max(vr.ArrayN, 1)
	switch {
	case vr.Role >= SampledTexture:
		return 0
	case n == 1 || vr.Role < Uniform:
		return vr.SizeOf * n
	case vr.Role == Uniform:
		return MemSizeAlign(vr.SizeOf, 16) * n
	default:
		return vr.SizeOf * n
	}
}

// SetNValues sets specified number of Values for this var.
// Returns true if changed.
func (vr *Var) SetNValues(dev *Device, nvals int) bool {
	return vr.Values.SetN(vr, dev, nvals)
}

// SetCurrentValue sets the index of the current Value to use
// in rendering, via [Values.SetCurrentValue].
func (vr *Var) SetCurrentValue(idx int) {
	vr.Values.SetCurrentValue(idx)
}

// Release releases all the Value resources for this variable.
func (vr *Var) Release() {
	vr.Values.Release()
}

// VarRoles are the functional roles of variables.
type VarRoles int32

const (
	UndefinedVarRole VarRoles = iota

	// Vertex is vertex shader input data: mesh geometry points, normals, etc.
	Vertex

	// Index is for indexes to access Vertex data.
	Index

	// Push is push constants, which are NOT supported in WebGPU.
	Push

	// Uniform is read-only general purpose data, with a more limited
	// capacity, but faster access.
	Uniform

	// Storage is read-write general purpose data.
	Storage

	// StorageTexture is read-write storage-based texture data.
	StorageTexture

	// SampledTexture is a Texture + Sampler that is sampled in a
	// fragment shader.
	SampledTexture

	VarRolesN
)

var varRoleNames = []string{"UndefinedVarRole", "Vertex", "Index", "Push",
	"Uniform", "Storage", "StorageTexture", "SampledTexture"}

func (vr VarRoles) String() string {
	if vr < 0 || int(vr) >= len(varRoleNames) {
		return "UndefinedVarRole"
	}
	return varRoleNames[vr]
}

// IsDynamic returns true if role has dynamic offset binding:
// Vertex and Index data is rebound per draw.
func (vr VarRoles) IsDynamic() bool {
	return vr == Vertex || vr == Index
}

// BufferUsages returns the BufferUsage flags for buffers of this role.
func (vr VarRoles) BufferUsages() wgpu.BufferUsage {
	return RoleBufferUsages[vr]
}

// RoleBufferUsages maps VarRoles into buffer usage flags.
var RoleBufferUsages = map[VarRoles]wgpu.BufferUsage{
	Vertex:  wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	Index:   wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	Uniform: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	Storage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
}

// RoleBindingTypes maps VarRoles into buffer binding types.
var RoleBindingTypes = map[VarRoles]wgpu.BufferBindingType{
	Vertex:  wgpu.BufferBindingTypeUniform,
	Index:   wgpu.BufferBindingTypeUniform,
	Uniform: wgpu.BufferBindingTypeUniform,
	Storage: wgpu.BufferBindingTypeStorage,
}
