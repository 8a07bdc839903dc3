// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is the interface for the render target of a
// [GraphicsSystem]: either a [Surface] for display in a window,
// or a [RenderTexture] for offscreen rendering.
type Renderer interface {
	// Render returns the Render helper that manages the clearing,
	// depth and multisampling textures for rendering to this target.
	Render() *Render

	// GetCurrentTexture returns the texture view to render into
	// for the current frame.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// Device returns the device for this renderer.
	// Surfaces own their device; RenderTextures share one.
	Device() *Device

	// SetSize sets the size of the render target.
	SetSize(size image.Point)

	// Present presents the rendered frame to the display,
	// and is a no-op for offscreen targets.
	Present()

	// Release releases the renderer resources.
	// The Surface also releases its Device.
	Release()
}

// Surface manages the swapchain for presenting rendered frames
// to a window surface. It is owned by a higher-level window
// manager (e.g., glfw), which provides the wgpu.Surface handle.
type Surface struct {
	// Format has the current swapchain image format and dimensions.
	// The Format.Samples is the desired number of multisamples,
	// implemented in the render helper, not the swapchain itself.
	Format TextureFormat

	// render manages the clearing, depth and multisample
	// textures for rendering to this surface.
	render Render

	// pointer to the GPU.
	GPU *GPU

	// device for this surface: each window surface has its own
	// device, so that windows can be rendered in parallel.
	device *Device

	// the underlying WebGPU surface, owned by the window system.
	surface *wgpu.Surface

	// the texture of the current frame, between
	// GetCurrentTexture and Present.
	curTexture *wgpu.Texture

	// present mode from the surface capabilities.
	presentMode wgpu.PresentMode

	// alpha compositing mode from the surface capabilities.
	alphaMode wgpu.CompositeAlphaMode

	// set when the surface has been reconfigured and the
	// current texture must be re-acquired.
	needsReconfig bool
}

// NewSurface returns a new surface for the given [wgpu.Surface]
// handle from the window system, of given size. A new device is
// created for the surface, which owns it.
//   - samples is the multisampling anti-aliasing parameter: 1 = none,
//     4 = typical default value for smooth "no jaggy" edges.
//   - depthFmt is the depth buffer format: UndefinedType for none,
//     or Depth32 recommended for best performance.
func NewSurface(gp *GPU, wsurf *wgpu.Surface, size image.Point, samples int, depthFmt Types) *Surface {
	sf := &Surface{}
	sf.init(gp, wsurf, size, samples, depthFmt)
	return sf
}

func (sf *Surface) Device() *Device { return sf.device }
func (sf *Surface) Render() *Render { return &sf.render }

func (sf *Surface) init(gp *GPU, ws *wgpu.Surface, size image.Point, samples int, depthFmt Types) error {
	sf.GPU = gp
	sf.surface = ws
	dev, err := NewDevice(gp)
	if err != nil {
		return err
	}
	sf.device = dev
	caps := ws.GetCapabilities(gp.GPU)
	sf.Format.Defaults()
	if len(caps.Formats) > 0 {
		sf.Format.Format = caps.Formats[0]
	}
	sf.Format.Size = size
	sf.Format.SetMultisample(samples)
	sf.presentMode = wgpu.PresentModeFifo
	sf.alphaMode = wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		sf.alphaMode = caps.AlphaModes[0]
	}
	sf.config()
	sf.render.Config(sf.device, &sf.Format, depthFmt)
	return nil
}

// config configures the wgpu surface for the current format size.
func (sf *Surface) config() {
	sf.surface.Configure(sf.GPU.GPU, sf.device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(sf.Format.Size.X),
		Height:      uint32(sf.Format.Size.Y),
		PresentMode: sf.presentMode,
		AlphaMode:   sf.alphaMode,
	})
}

// When the render surface (e.g., window) is resized, call this function.
// WebGPU does not have any internal mechanism for tracking this,
// so we need to drive it from external events.
func (sf *Surface) SetSize(size image.Point) {
	if size.X == 0 || size.Y == 0 || sf.Format.Size == size {
		return
	}
	sf.Format.Size = size
	sf.config()
	sf.render.SetSize(size)
}

// GetCurrentTexture returns the texture view to render into for
// the current frame, acquiring the next swapchain texture.
// If the surface has been lost or is outdated (e.g., after a
// window resize the size callback missed), it is reconfigured
// once and re-acquired; a persistent failure returns an error.
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	if sf.Format.Size.X == 0 || sf.Format.Size.Y == 0 {
		return nil, errors.New("gpu.Surface: zero size")
	}
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		sf.config()
		tex, err = sf.surface.GetCurrentTexture()
		if err != nil {
			return nil, fmt.Errorf("gpu.Surface.GetCurrentTexture: %w", err)
		}
	}
	sf.curTexture = tex
	view, err := tex.CreateView(nil)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Present presents the current frame to the window.
// Must have called GetCurrentTexture first.
func (sf *Surface) Present() {
	if sf.curTexture == nil {
		return
	}
	sf.surface.Present()
	sf.curTexture.Release()
	sf.curTexture = nil
}

func (sf *Surface) Release() {
	sf.render.Release()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	if sf.device != nil {
		sf.device.Release()
		sf.device = nil
	}
	sf.GPU = nil
}
