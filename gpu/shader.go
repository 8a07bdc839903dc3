// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"io/fs"
	"os"

	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a single Shader program, which can have
// multiple entry points: see [ShaderEntry].
type Shader struct {
	Name string

	module *wgpu.ShaderModule

	device Device
}

// NewShader returns a new Shader with given name, for given device.
func NewShader(name string, dev *Device) *Shader {
	return &Shader{Name: name, device: *dev}
}

// OpenFile loads WGSL code from given filename,
// and compiles the shader module from it.
func (sh *Shader) OpenFile(fname string) error {
	b, err := os.ReadFile(fname)
	if errors.Log(err) != nil {
		return err
	}
	return sh.OpenCode(string(b))
}

// OpenFileFS loads WGSL code from given filename in given filesystem
// (e.g., an embed.FS), and compiles the shader module from it.
func (sh *Shader) OpenFileFS(fsys fs.FS, fname string) error {
	b, err := fs.ReadFile(fsys, fname)
	if errors.Log(err) != nil {
		return err
	}
	return sh.OpenCode(string(b))
}

// OpenCode compiles given WGSL code into the shader module.
// Use [IncludeFS] first if the code has #include directives.
func (sh *Shader) OpenCode(code string) error {
	sh.Release()
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if errors.Log(err) != nil {
		return err
	}
	sh.module = module
	return nil
}

// Release releases the shader module, which can be done once
// the pipelines using it have been configured.
func (sh *Shader) Release() {
	if sh.module == nil {
		return
	}
	sh.module.Release()
	sh.module = nil
}

// ShaderEntry is an entry point into a Shader, for a specific
// pipeline stage.
type ShaderEntry struct {
	// Shader has the code.
	Shader *Shader

	// Type is the stage of this entry point.
	Type ShaderTypes

	// Entry is the name of the function to call for this entry,
	// e.g., "vs_main", "fs_main".
	Entry string
}

// NewShaderEntry returns a new ShaderEntry for given shader, stage
// type, and entry function name.
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	return &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
}

// ShaderTypes is a list of GPU shader stage types.
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota

	// VertexShader is the vertex stage.
	VertexShader

	// FragmentShader is the fragment (pixel) stage.
	FragmentShader

	// ComputeShader is the compute stage.
	ComputeShader
)

// ShaderStageFlags maps the shader stage types into the WebGPU
// stage visibility flags, which can be combined.
var ShaderStageFlags = map[ShaderTypes]wgpu.ShaderStage{
	UnknownShader:  wgpu.ShaderStageNone,
	VertexShader:   wgpu.ShaderStageVertex,
	FragmentShader: wgpu.ShaderStageFragment,
	ComputeShader:  wgpu.ShaderStageCompute,
}
