// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug turns on extra logging of WebGPU configuration,
// variable binding layouts, and other diagnostics.
// It is much easier to debug issues with this on.
var Debug = false

// GPU represents the GPU hardware.
type GPU struct {
	// Instance represents the WebGPU system overall.
	Instance *wgpu.Instance

	// GPU represents the specific GPU hardware device used.
	// It is selected in [GPU.Config].
	GPU *wgpu.Adapter

	// name of application, passed during adapter configuration.
	AppName string

	// Limits are the limits of the current GPU adapter.
	// The alignment of dynamic uniform offsets comes from here.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU with the WebGPU Instance created.
// Call [GPU.Config] to select the adapter, which must be done
// before creating any devices or surfaces.
func NewGPU() *GPU {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	return gp
}

// Config configures the GPU adapter for given app name.
// The high performance adapter is requested by default;
// set the CUBE_MOBILE_ADAPTER environment variable to
// "low-power" or "fallback" (software renderer) to override.
func (gp *GPU) Config(name string) error {
	gp.AppName = name
	opts := &wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	}
	switch strings.ToLower(os.Getenv("CUBE_MOBILE_ADAPTER")) {
	case "low-power":
		opts.PowerPreference = wgpu.PowerPreferenceLowPower
	case "fallback":
		opts.ForceFallbackAdapter = true
	}
	ad, err := gp.Instance.RequestAdapter(opts)
	if errors.Log(err) != nil {
		return err
	}
	gp.GPU = ad
	gp.Limits = ad.GetLimits()
	if Debug {
		slog.Info("gpu: adapter limits",
			"MaxTextureDimension2D", gp.Limits.Limits.MaxTextureDimension2D,
			"MaxBindGroups", gp.Limits.Limits.MaxBindGroups,
			"MaxBufferSize", gp.Limits.Limits.MaxBufferSize,
			"MinUniformBufferOffsetAlignment", gp.Limits.Limits.MinUniformBufferOffsetAlignment)
	}
	return nil
}

// Release releases GPU resources.
// Call after everything else using the GPU has been released.
func (gp *GPU) Release() {
	if gp.GPU != nil {
		gp.GPU.Release()
		gp.GPU = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// NoDisplayGPU returns a GPU and Device configured without a display
// surface, for offscreen rendering and testing.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp := NewGPU()
	if err := gp.Config("nodisplay"); err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	return gp, dev, err
}
