// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"

	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages various elements needed for rendering to a
// [Renderer] target: the clear values, the optional depth buffer
// texture, and the optional multisampling texture that is resolved
// into the target texture at the end of each render pass.
type Render struct {
	// Format has the target texture format and dimensions.
	// Samples > 1 turns on the multisampling texture.
	Format TextureFormat

	// ClearColor is the color to clear the target texture to
	// at the start of a (non-NoClear) render pass.
	ClearColor color.Color

	// ClearDepth is the depth value to clear the depth buffer to.
	ClearDepth float32

	// ClearStencil is the stencil value to clear to.
	ClearStencil uint32

	// Multi is the multisampling texture, rendered to and then
	// resolved into the target when Format.Samples > 1.
	Multi Texture

	// Depth is the depth buffer texture, present when a depth
	// format was passed to Config.
	Depth Texture

	// depthFormat is the format of the Depth texture,
	// UndefinedType for none.
	depthFormat Types

	device Device
}

// Config configures the render for the given target format,
// and depth buffer format (pass UndefinedType for no depth buffer).
func (rd *Render) Config(dev *Device, imgFmt *TextureFormat, depthFmt Types) {
	rd.device = *dev
	rd.Format = *imgFmt
	rd.ClearColor = color.Black
	rd.ClearDepth = 1
	rd.ClearStencil = 0
	rd.depthFormat = depthFmt
	rd.configTextures()
}

func (rd *Render) configTextures() {
	if rd.depthFormat != UndefinedType {
		rd.Depth.ConfigDepth(&rd.device, rd.depthFormat, &rd.Format)
	}
	if rd.Format.Samples > 1 {
		rd.Multi.ConfigMulti(&rd.device, &rd.Format)
	}
}

// SetSize reconfigures the depth and multisampling textures
// for the given size, if it has changed.
func (rd *Render) SetSize(size image.Point) {
	if rd.Format.Size == size {
		return
	}
	rd.Format.Size = size
	rd.configTextures()
}

func (rd *Render) Release() {
	rd.Multi.Release()
	rd.Depth.Release()
}

// ClearRenderPass returns a render pass descriptor that clears
// the target texture view to the current clear values.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	r, g, b, a := rd.ClearColor.RGBA()
	rgba := wgpu.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
		A: float64(a) / 0xffff,
	}
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: rgba,
			StoreOp:    wgpu.StoreOpStore,
		}},
	}
	rd.setMultiDepth(rpd, view)
	return rpd
}

// LoadRenderPass returns a render pass descriptor that preserves
// the prior contents of the target texture view.
func (rd *Render) LoadRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	rpd := &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	}
	rd.setMultiDepth(rpd, view)
	return rpd
}

// setMultiDepth sets the multisampling resolve target and the
// depth attachment on given descriptor, as configured.
func (rd *Render) setMultiDepth(rpd *wgpu.RenderPassDescriptor, view *wgpu.TextureView) {
	if rd.Format.Samples > 1 && rd.Multi.view != nil {
		rpd.ColorAttachments[0].View = rd.Multi.view
		rpd.ColorAttachments[0].ResolveTarget = view
	}
	if rd.depthFormat != UndefinedType && rd.Depth.view != nil {
		rpd.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:            rd.Depth.view,
			DepthClearValue: rd.ClearDepth,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
		}
	}
}

// BeginRenderPass begins a render pass on the given command
// encoder, rendering to the given target texture view,
// clearing it first to the configured clear values.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

// BeginRenderPassNoClear begins a render pass on the given command
// encoder, rendering to the given target texture view, preserving
// the existing contents (e.g., for rendering a second pass over
// a prior render).
func (rd *Render) BeginRenderPassNoClear(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.LoadRenderPass(view))
}
