// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sampler determines how a texture is sampled in a shader.
// It is immutable once configured on the device: set the fields
// before setting the texture image.
type Sampler struct {
	// UMode is the wrap mode for U (horizontal) texture coordinates
	// outside of [0..1].
	UMode SamplerModes

	// VMode is the wrap mode for V (vertical) texture coordinates.
	VMode SamplerModes

	// WMode is the wrap mode for W (depth) texture coordinates.
	WMode SamplerModes

	// MagFilter is the filter used when the texture is magnified.
	MagFilter Filters

	// MinFilter is the filter used when the texture is minified.
	MinFilter Filters

	// MipFilter is the filter used between mipmap levels.
	MipFilter Filters

	sampler *wgpu.Sampler
}

// Defaults sets default values: linear filtering, Repeat wrap.
func (sm *Sampler) Defaults() {
	sm.UMode = Repeat
	sm.VMode = Repeat
	sm.WMode = Repeat
	sm.MagFilter = Linear
	sm.MinFilter = Linear
	sm.MipFilter = Linear
}

// Config configures the sampler on the device, releasing any
// previously configured sampler.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  sm.UMode.Mode(),
		AddressModeV:  sm.VMode.Mode(),
		AddressModeW:  sm.WMode.Mode(),
		MagFilter:     sm.MagFilter.Mode(),
		MinFilter:     sm.MinFilter.Mode(),
		MipmapFilter:  sm.MipFilter.MipmapMode(),
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

func (sm *Sampler) Release() {
	if sm.sampler != nil {
		sm.sampler.Release()
		sm.sampler = nil
	}
}

// SamplerModes are options for how to treat texture coordinates
// outside of the [0..1] range.
type SamplerModes int32

const (
	// Repeat the texture when going beyond the image dimensions.
	Repeat SamplerModes = iota

	// MirroredRepeat is like Repeat, but inverts the coordinates
	// to mirror the image when going beyond the dimensions.
	MirroredRepeat

	// ClampToEdge takes the value of the edge closest to the coordinate.
	ClampToEdge
)

// Mode returns the WebGPU address mode.
func (sm SamplerModes) Mode() wgpu.AddressMode {
	return WebGPUSamplerModes[sm]
}

// WebGPUSamplerModes maps the sampler modes into the WebGPU
// address modes.
var WebGPUSamplerModes = map[SamplerModes]wgpu.AddressMode{
	Repeat:         wgpu.AddressModeRepeat,
	MirroredRepeat: wgpu.AddressModeMirrorRepeat,
	ClampToEdge:    wgpu.AddressModeClampToEdge,
}

// Filters are the texture filtering modes for sampling.
type Filters int32

const (
	// Linear interpolates among the nearest texels.
	Linear Filters = iota

	// Nearest takes the nearest single texel, for a pixelated look.
	Nearest
)

// Mode returns the WebGPU filter mode.
func (fl Filters) Mode() wgpu.FilterMode {
	if fl == Nearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

// MipmapMode returns the WebGPU mipmap filter mode.
func (fl Filters) MipmapMode() wgpu.MipmapFilterMode {
	if fl == Nearest {
		return wgpu.MipmapFilterModeNearest
	}
	return wgpu.MipmapFilterModeLinear
}
