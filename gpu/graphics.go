// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a Pipeline for the graphics stack,
// equivalent to a pipeline state object: the compiled combination
// of shaders and fixed-function configuration (topology, culling,
// blending, depth testing) that renders with the Vars / Values
// of its GraphicsSystem.
type GraphicsPipeline struct {
	Pipeline

	// Primitive has the settings for the graphics primitives,
	// e.g., TriangleList, culling, front face winding.
	Primitive wgpu.PrimitiveState

	// AlphaBlend uses alpha blending if true; otherwise new color
	// overwrites old. Set with [GraphicsPipeline.SetAlphaBlend].
	AlphaBlend bool

	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline with
// default settings, in the given GraphicsSystem.
func NewGraphicsPipeline(name string, sy *GraphicsSystem) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.Name = name
	pl.System = sy
	pl.SetGraphicsDefaults()
	return pl
}

// VertexEntry returns the [ShaderEntry] for [VertexShader].
// Can be nil if no vertex shader defined.
func (pl *GraphicsPipeline) VertexEntry() *ShaderEntry {
	return pl.EntryByType(VertexShader)
}

// FragmentEntry returns the [ShaderEntry] for [FragmentShader].
// Can be nil if no fragment shader defined.
func (pl *GraphicsPipeline) FragmentEntry() *ShaderEntry {
	return pl.EntryByType(FragmentShader)
}

// Config builds the WebGPU render pipeline, after the shaders have
// been loaded and the system Vars configured. It is called
// automatically in BindPipeline if needed.
// The rebuild flag forces a rebuild of an existing pipeline,
// e.g., after a shader is reloaded.
func (pl *GraphicsPipeline) Config(rebuild bool) error {
	if pl.renderPipeline != nil {
		if !rebuild {
			return nil
		}
		pl.releasePipeline()
	}
	lay, err := pl.bindLayout()
	if err != nil {
		return err
	}
	defer lay.Release()
	rd := pl.System.Render()
	pd := &wgpu.RenderPipelineDescriptor{
		Label:     pl.Name,
		Layout:    lay,
		Primitive: pl.Primitive,
		Multisample: wgpu.MultisampleState{
			Count:                  uint32(max(1, rd.Format.Samples)),
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}
	if ve := pl.VertexEntry(); ve != nil {
		pd.Vertex = wgpu.VertexState{
			Module:     ve.Shader.module,
			EntryPoint: ve.Entry,
			Buffers:    pl.Vars().VertexLayout(),
		}
	}
	if fe := pl.FragmentEntry(); fe != nil {
		pd.Fragment = &wgpu.FragmentState{
			Module:     fe.Shader.module,
			EntryPoint: fe.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    rd.Format.Format,
				Blend:     pl.blendState(),
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
	}
	if rd.depthFormat != UndefinedType {
		pd.DepthStencil = &wgpu.DepthStencilState{
			Format:            rd.depthFormat.TextureFormat(),
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilReadMask:  0xFFFFFFFF,
			StencilWriteMask: 0xFFFFFFFF,
		}
	}
	rp, err := pl.System.Device().Device.CreateRenderPipeline(pd)
	if errors.Log(err) != nil {
		return err
	}
	pl.renderPipeline = rp
	return nil
}

func (pl *GraphicsPipeline) blendState() *wgpu.BlendState {
	if !pl.AlphaBlend {
		return &wgpu.BlendStateReplace
	}
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorZero,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// BindPipeline binds this pipeline as the one to use for next
// commands in the given render pass, building it first if needed.
// This also binds the current Value for all variable bind groups,
// with current dynamic offsets; set the desired current values
// and dynamic indexes before calling. Vertex values are bound
// separately in [GraphicsPipeline.BindDrawIndexed].
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		err := pl.Config(false)
		if err != nil {
			return err
		}
	}
	rp.SetPipeline(pl.renderPipeline)
	return pl.BindAllGroups(rp)
}

// BindAllGroups binds the Current Value for all variables across
// all bind groups. Called automatically in BindPipeline.
func (pl *GraphicsPipeline) BindAllGroups(rp *wgpu.RenderPassEncoder) error {
	vs := pl.Vars()
	ngp := vs.NGroups()
	for gi := range ngp {
		err := pl.BindGroup(rp, gi)
		if err != nil {
			return err
		}
	}
	return nil
}

// BindGroup binds the Current Value for all variables in given
// bind group number, with the current dynamic offsets.
func (pl *GraphicsPipeline) BindGroup(rp *wgpu.RenderPassEncoder, group int) error {
	vg, err := pl.Vars().GroupTry(group)
	if err != nil {
		return err
	}
	bg, dynOffs, err := pl.bindGroup(vg)
	if err != nil {
		return err
	}
	rp.SetBindGroup(uint32(vg.Group), bg, dynOffs)
	return nil
}

// BindDrawIndexed binds the Current Value for all VertexGroup
// variables, as the vertex and index data, and then does a
// DrawIndexed call for the full set of indexes.
func (pl *GraphicsPipeline) BindDrawIndexed(rp *wgpu.RenderPassEncoder) {
	pl.BindVertex(rp)
	pl.DrawIndexed(rp)
}

// BindVertex binds the Current Value for all VertexGroup variables,
// as the vertex data to use for the next DrawIndexed call.
func (pl *GraphicsPipeline) BindVertex(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	vg := vs.Groups[VertexGroup]
	if vg == nil {
		return
	}
	for _, vr := range vg.Vars {
		vl := vr.Values.CurrentValue()
		if vl.buffer == nil {
			continue
		}
		if vr.Role == Index {
			rp.SetIndexBuffer(vl.buffer, vr.Type.IndexType(), 0, wgpu.WholeSize)
		} else {
			rp.SetVertexBuffer(uint32(vr.Binding), vl.buffer, 0, wgpu.WholeSize)
		}
	}
}

// DrawIndexed does a DrawIndexed call for the full set of indexes
// in the current Index variable value, which must have been bound
// with [GraphicsPipeline.BindVertex].
func (pl *GraphicsPipeline) DrawIndexed(rp *wgpu.RenderPassEncoder) {
	vs := pl.Vars()
	vg := vs.Groups[VertexGroup]
	if vg == nil {
		return
	}
	ix := vg.IndexVar()
	if ix == nil {
		return
	}
	iv := ix.Values.CurrentValue()
	rp.DrawIndexed(uint32(iv.DynamicN), 1, 0, 0, 0)
}

func (pl *GraphicsPipeline) Release() {
	pl.releaseShaders()
	pl.releasePipeline()
}

func (pl *GraphicsPipeline) releasePipeline() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

////////////////////////////////////////////////////
// Set graphics options

// SetGraphicsDefaults configures the default settings:
// TriangleList topology, CCW front face, back-face culling,
// alpha blending on.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList, false)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetAlphaBlend(true)
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies, restartEnable bool) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order for what counts as a
// front face, for culling purposes. CCW is the default.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode: Back is the default.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

// SetAlphaBlend determines the alpha (transparency) blending
// function: either 1-source alpha (alphaBlend = true, default)
// or no blending, where new color overwrites old.
func (pl *GraphicsPipeline) SetAlphaBlend(alphaBlend bool) *GraphicsPipeline {
	pl.AlphaBlend = alphaBlend
	return pl
}

// Topologies are the different vertex topologies.
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
