// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	// VertexGroup is the group number for Vertex and Index variables,
	// which have special bindings outside of the bind groups.
	VertexGroup = -2

	// PushGroup is the group number for Push constants,
	// which are not supported in WebGPU.
	PushGroup = -1
)

// VarGroup contains a group of Var variables that are all updated
// at the same time point, and that share the same @group number in
// the WGSL shader. The Vertex and Index variables live in their own
// VertexGroup, which is bound through the vertex buffer mechanism
// instead of a bind group.
type VarGroup struct {
	// Name of the group, used in debugging output.
	Name string

	// Group index: -2 for the VertexGroup, -1 for the PushGroup,
	// 0..3 for the bind groups, as @group in the shader.
	Group int

	// Role is the role of variables added to this group:
	// [Vertex] for the VertexGroup (with the Index variable
	// marked explicitly after adding), [Uniform] or [Storage]
	// for bind groups.
	Role VarRoles

	// Vars are the variables in this group, in the order added,
	// which determines their Binding numbers.
	Vars []*Var

	// VarMap is a map of vars by name, for quick access.
	VarMap map[string]*Var

	// RoleMap is a map of vars by their roles, built in [VarGroup.Config].
	RoleMap map[VarRoles][]*Var

	// alignBytes is the alignment of content size for the buffers of
	// our variables, from the adapter offset alignment limits.
	alignBytes int

	// our device
	device Device
}

// Add adds a new variable of given type, array size, and shader stages
// where the variable is used. The Role is that of the group; for the
// Index variable of a VertexGroup, set the Role after adding.
func (vg *VarGroup) Add(name string, typ Types, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(name, typ, arrayN, vg.Role, vg.Group, shaders...)
	vr.alignBytes = vg.alignBytes
	vg.addVar(vr)
	return vr
}

// AddStruct adds a new struct variable of given total byte size and
// array size, and the shader stages where the variable is used.
// Fields in a struct must obey the 16 byte alignment constraints
// of uniform data.
func (vg *VarGroup) AddStruct(name string, size int, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(name, Struct, arrayN, vg.Role, vg.Group, shaders...)
	vr.SizeOf = size
	vr.alignBytes = vg.alignBytes
	vg.addVar(vr)
	return vr
}

func (vg *VarGroup) addVar(vr *Var) {
	if vg.VarMap == nil {
		vg.VarMap = make(map[string]*Var)
	}
	vg.Vars = append(vg.Vars, vr)
	vg.VarMap[vr.Name] = vr
}

// SetNValues sets the number of Values for all vars in this group.
// Typically all vars in a group have the same number of values,
// managed with one call here.
func (vg *VarGroup) SetNValues(nvals int) {
	for _, vr := range vg.Vars {
		vr.SetNValues(&vg.device, nvals)
	}
}

// VarByName returns Var by name.
// Returns nil if not found (error is logged).
func (vg *VarGroup) VarByName(name string) *Var {
	return errors.Log1(vg.VarByNameTry(name))
}

// VarByNameTry returns Var by name, returning an error if not found.
func (vg *VarGroup) VarByNameTry(name string) (*Var, error) {
	vr, ok := vg.VarMap[name]
	if !ok {
		return nil, fmt.Errorf("gpu.VarGroup: variable named %s not found in group %s", name, vg.Name)
	}
	return vr, nil
}

// ValueByNameTry returns a value by first looking up the variable
// name, then the value name, returning an error if not found.
func (vg *VarGroup) ValueByNameTry(varName, valName string) (*Value, error) {
	vr, err := vg.VarByNameTry(varName)
	if err != nil {
		return nil, err
	}
	return vr.Values.ValueByNameTry(valName)
}

// ValueByIndexTry returns a value by first looking up the variable
// name, then the value index, returning an error if not found.
func (vg *VarGroup) ValueByIndexTry(varName string, valIndex int) (*Value, error) {
	vr, err := vg.VarByNameTry(varName)
	if err != nil {
		return nil, err
	}
	return vr.Values.ValueByIndexTry(valIndex)
}

// IndexVar returns the Index role variable in this group,
// nil if none.
func (vg *VarGroup) IndexVar() *Var {
	for _, vr := range vg.Vars {
		if vr.Role == Index {
			return vr
		}
	}
	return nil
}

// Config assigns the Binding numbers for each variable, sequentially
// in order added, and builds the RoleMap. A SampledTexture takes two
// binding slots, one for the texture and one for its sampler.
// Returns an error if a variable role is not valid for the group.
func (vg *VarGroup) Config(dev *Device) error {
	vg.device = *dev
	vg.RoleMap = make(map[VarRoles][]*Var)
	var errs []error
	bnum := 0
	for _, vr := range vg.Vars {
		if vg.Group == VertexGroup && vr.Role > Index {
			err := fmt.Errorf("gpu.VarGroup: vertex group vars must be Vertex or Index role, not: %s", vr.Role.String())
			errors.Log(err)
			errs = append(errs, err)
			continue
		}
		if vg.Group >= 0 && vr.Role <= Index {
			err := fmt.Errorf("gpu.VarGroup: Vertex or Index roles must be in the VertexGroup, not group: %d", vg.Group)
			errors.Log(err)
			errs = append(errs, err)
			continue
		}
		vg.RoleMap[vr.Role] = append(vg.RoleMap[vr.Role], vr)
		if vr.Role == Index { // does not consume a binding slot
			continue
		}
		vr.Binding = bnum
		if vr.Role == SampledTexture {
			bnum += 2
		} else {
			bnum++
		}
	}
	return errors.Join(errs...)
}

// Release releases all the Value resources for all variables.
func (vg *VarGroup) Release() {
	for _, vr := range vg.Vars {
		vr.Release()
	}
}

// usedVars returns the vars to process: the given used list,
// or all vars in the group if none specified.
func (vg *VarGroup) usedVars(used ...*Var) []*Var {
	if len(used) > 0 {
		return used
	}
	return vg.Vars
}

// vertexLayout returns the vertex buffer layouts for the Vertex role
// variables, one buffer per variable with ShaderLocation = Binding.
// The Index variable is not included: it is bound directly as the
// index buffer at draw time.
func (vg *VarGroup) vertexLayout() []wgpu.VertexBufferLayout {
	var vbl []wgpu.VertexBufferLayout
	for _, vr := range vg.Vars {
		if vr.Role != Vertex {
			continue
		}
		vbl = append(vbl, wgpu.VertexBufferLayout{
			ArrayStride: uint64(vr.SizeOf),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: vr.Type.VertexFormat(), Offset: 0, ShaderLocation: uint32(vr.Binding)},
			},
		})
	}
	return vbl
}

// bindLayout returns a BindGroupLayout for the given subset of
// variables in this group (all by default).
// The caller is responsible for releasing the layout.
func (vg *VarGroup) bindLayout(vs *Vars, used ...*Var) (*wgpu.BindGroupLayout, error) {
	var entries []wgpu.BindGroupLayoutEntry
	vars := vg.usedVars(used...)
	for _, vr := range vars {
		switch vr.Role {
		case SampledTexture:
			entries = append(entries,
				wgpu.BindGroupLayoutEntry{
					Binding:    uint32(vr.Binding),
					Visibility: vr.Shaders,
					Texture: wgpu.TextureBindingLayout{
						Multisampled:  false,
						ViewDimension: wgpu.TextureViewDimension2D,
						SampleType:    wgpu.TextureSampleTypeFloat,
					},
				},
				wgpu.BindGroupLayoutEntry{
					Binding:    uint32(vr.Binding + 1),
					Visibility: vr.Shaders,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				})
		case Uniform, Storage:
			entries = append(entries, wgpu.BindGroupLayoutEntry{
				Binding:    uint32(vr.Binding),
				Visibility: vr.Shaders,
				Buffer: wgpu.BufferBindingLayout{
					Type:             RoleBindingTypes[vr.Role],
					HasDynamicOffset: vr.DynamicOffset,
					MinBindingSize:   0,
				},
			})
		default:
			err := fmt.Errorf("gpu.VarGroup: variable %s role %s cannot be in a bind group", vr.Name, vr.Role.String())
			return nil, errors.Log(err)
		}
	}
	bgl, err := vg.device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   vg.Name,
		Entries: entries,
	})
	return bgl, errors.Log(err)
}

// bindGroup returns a new BindGroup for the current values of the
// variables in this group (or given subset). The caller is
// responsible for releasing it when no longer in use.
func (vg *VarGroup) bindGroup(vs *Vars, used ...*Var) (*wgpu.BindGroup, error) {
	bgl, err := vg.bindLayout(vs, used...)
	if err != nil {
		return nil, err
	}
	defer bgl.Release()
	var entries []wgpu.BindGroupEntry
	vars := vg.usedVars(used...)
	for _, vr := range vars {
		entries = append(entries, vr.Values.bindGroupEntry(vr)...)
	}
	bg, err := vg.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   vg.Name,
		Layout:  bgl,
		Entries: entries,
	})
	return bg, errors.Log(err)
}

// dynamicOffsets returns the dynamic offsets for the DynamicOffset
// variables among given subset (all by default), in Binding order.
func (vg *VarGroup) dynamicOffsets(used ...*Var) []uint32 {
	var offs []uint32
	vars := vg.usedVars(used...)
	for _, vr := range vars {
		if !vr.DynamicOffset {
			continue
		}
		offs = append(offs, vr.Values.dynamicOffset())
	}
	return offs
}

// BindGroupUpdateCount returns a counter that changes whenever the
// current values or their underlying buffers change, to know when
// cached bind groups need to be rebuilt.
func (vg *VarGroup) BindGroupUpdateCount() int {
	count := 0
	for _, vr := range vg.Vars {
		count += vr.Values.Current + 1
		for _, vl := range vr.Values.Values {
			count += vl.updateCount
		}
	}
	return count
}
