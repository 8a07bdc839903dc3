// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene renders twelve rotating textured cubes:
// a central cluster of tilted spinning cubes, two orbiters,
// and scaled rod cubes, all instances of one shared cube mesh
// drawn with per-cube dynamic uniform offsets.
package scene

import (
	"embed"
	"image"
	"image/color"
	"log/slog"
	"unsafe"

	"cogentcore.org/cubemobile/base/errors"
	"cogentcore.org/cubemobile/base/iox/imagex"
	"cogentcore.org/cubemobile/gpu"
	"cogentcore.org/cubemobile/math32"
	"cogentcore.org/cubemobile/shape"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shader.wgsl logo.png
var content embed.FS

// NumCubes is the number of cubes in the scene, each with
// its own model matrix.
const NumCubes = 12

// params is the static scene uniform, padded to 16 bytes.
type params struct {
	// Gamma is > 0 when the fragment shader must convert its
	// output to gamma space, for non-sRGB surface formats.
	Gamma float32

	pad [3]float32
}

// Scene is the textured-cube scene: one cube mesh, one texture,
// and twelve model matrices recomputed every frame from elapsed time.
type Scene struct {
	// Camera has the view and projection transforms.
	Camera Camera

	// Config has the scene configuration parameters.
	Config *Config

	// Models has the twelve model matrices, recomputed
	// by [Scene.Update] from elapsed time.
	Models [NumCubes]math32.Matrix4

	sy       *gpu.GraphicsSystem
	pipeline *gpu.GraphicsPipeline
	released bool
}

// NewScene returns a new Scene rendering to the given system,
// with the given configuration, ready for Init.
func NewScene(sy *gpu.GraphicsSystem, cfg *Config) *Scene {
	sc := &Scene{sy: sy, Config: cfg}
	sc.Camera.Defaults(cfg)
	return sc
}

// System returns the graphics system the scene renders to.
func (sc *Scene) System() *gpu.GraphicsSystem { return sc.sy }

// Init configures the pipeline, variables, cube mesh, and texture.
// GPU resource handles are valid from here until [Scene.Release].
func (sc *Scene) Init() error {
	sy := sc.sy
	pl := sy.AddGraphicsPipeline("cubes")
	sc.pipeline = pl
	configPipeline(pl)

	code, err := content.ReadFile("shader.wgsl")
	if errors.Log(err) != nil {
		return err
	}
	sh := pl.AddShader("cubes")
	if err := sh.OpenCode(gpu.IncludeFS(content, ".", string(code))); err != nil {
		return err
	}
	pl.AddEntry(sh, gpu.VertexShader, "vs_main")
	pl.AddEntry(sh, gpu.FragmentShader, "fs_main")

	vars := sy.Vars()
	vgp := vars.AddVertexGroup()
	posv := vgp.Add("Pos", gpu.Float32Vector3, 0, gpu.VertexShader)
	texv := vgp.Add("TexCoord", gpu.Float32Vector2, 0, gpu.VertexShader)
	idxv := vgp.Add("Index", gpu.Uint32, 0, gpu.VertexShader)
	idxv.Role = gpu.Index

	ugp := vars.AddGroup(gpu.Uniform, "Camera")
	mtxv := ugp.AddStruct("Camera", int(unsafe.Sizeof(math32.Matrix4{})), 1, gpu.VertexShader)
	mtxv.DynamicOffset = true
	ugp.AddStruct("Params", 16, 1, gpu.FragmentShader)

	tgp := vars.AddGroup(gpu.SampledTexture, "Texture")
	tgp.Add("Logo", gpu.TextureRGBA32, 1, gpu.FragmentShader)

	vgp.SetNValues(1)
	ugp.SetNValues(1)
	tgp.SetNValues(1)
	sy.Config()

	sc.setMesh(posv, texv, idxv)
	sc.setTexture()
	sc.setParams()
	mtxv.Values.Values[0].DynamicN = NumCubes
	return nil
}

// configPipeline sets the fixed-function state for the cube pipeline:
// clockwise front faces under the left-handed projection, back-face
// culling, and no blending, so new color overwrites old even when a
// texture override has an alpha channel.
func configPipeline(pl *gpu.GraphicsPipeline) {
	pl.SetFrontFace(wgpu.FrontFaceCW)
	pl.SetCullMode(wgpu.CullModeBack)
	pl.SetAlphaBlend(false)
}

// setMesh generates the shared cube mesh and uploads
// position, texture coordinate, and index buffers.
func (sc *Scene) setMesh(posv, texv, idxv *gpu.Var) {
	cube := shape.NewBox(2, 2, 2)
	nv, ni, _ := cube.MeshSize()
	vertex := make(math32.ArrayF32, nv*3)
	normal := make(math32.ArrayF32, nv*3) // generated but not uploaded
	texcoord := make(math32.ArrayF32, nv*2)
	index := make(math32.ArrayU32, ni)
	cube.Set(vertex, normal, texcoord, nil, index)

	gpu.SetValueFrom(posv.Values.Values[0], []float32(vertex))
	gpu.SetValueFrom(texv.Values.Values[0], []float32(texcoord))
	gpu.SetValueFrom(idxv.Values.Values[0], []uint32(index))
}

// setTexture uploads the cube texture: the config override file
// if set and decodable, otherwise the embedded logo. The texture
// gets a full CPU mip chain and the linear clamp-to-edge sampler.
func (sc *Scene) setTexture() {
	img := sc.openTexture()
	tvl := sc.sy.Vars().ValueByIndex(1, "Logo", 0)
	tx := tvl.Texture
	tx.SetMipmapped(true)
	tx.Sampler.UMode = gpu.ClampToEdge
	tx.Sampler.VMode = gpu.ClampToEdge
	tx.Sampler.WMode = gpu.ClampToEdge
	tvl.SetFromGoImage(img, 0)
}

func (sc *Scene) openTexture() image.Image {
	if sc.Config.Texture != "" {
		img, _, err := imagex.Open(sc.Config.Texture)
		if err == nil {
			return img
		}
		slog.Error("scene: cannot open texture override, using embedded logo", "file", sc.Config.Texture, "err", err)
	}
	img, _, err := imagex.OpenFS(content, "logo.png")
	errors.Log(err)
	return img
}

// setParams sets the static scene uniform and the clear color,
// converting both for gamma when the surface format is not sRGB.
func (sc *Scene) setParams() {
	srgb := srgbFormat(sc.sy.Render().Format.Format)
	var ps params
	if !srgb {
		ps.Gamma = 1
	}
	pvl := sc.sy.Vars().ValueByIndex(0, "Params", 0)
	gpu.SetValueFrom(pvl, []params{ps})

	cc := sc.Config.ClearColor
	r, g, b := cc[0], cc[1], cc[2]
	if !srgb {
		r, g, b = gpu.SRGBFromLinear(r, g, b)
	}
	sc.sy.SetClearColor(color.RGBA{
		R: gpu.ImgCompToUint8(r),
		G: gpu.ImgCompToUint8(g),
		B: gpu.ImgCompToUint8(b),
		A: gpu.ImgCompToUint8(cc[3]),
	})
}

// srgbFormat is true for surface formats with sRGB encoding,
// where the hardware applies the gamma conversion on output.
func srgbFormat(f wgpu.TextureFormat) bool {
	switch f {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

// SetShader replaces the shader code, expanding #include lines
// against the embedded sources, and rebuilds the pipeline, for
// shader hot-reloading. On error the previous pipeline remains
// in use.
func (sc *Scene) SetShader(code string) error {
	sh := sc.pipeline.ShaderByName("cubes")
	if err := sh.OpenCode(gpu.IncludeFS(content, ".", code)); err != nil {
		return err
	}
	return sc.pipeline.Config(true)
}

// Update recomputes the twelve model matrices for elapsed time t
// in seconds. It is pure matrix math with no GPU calls, so it can
// run at any time and is deterministic for a given t.
func (sc *Scene) Update(t float32) {
	t *= sc.Config.Speed
	var tilt, spin, base, tr, sca, tmp math32.Matrix4
	tilt.SetRotationX(-0.1 * math32.Pi)
	spin.SetRotationY(t)
	base.MulMatrices(&tilt, &spin)

	// central cube and its four translated neighbors
	sc.Models[0] = base
	tr.SetTranslation(3, 0, 0)
	sc.Models[1].MulMatrices(&base, &tr)
	tr.SetTranslation(-3, 0, 0)
	sc.Models[2].MulMatrices(&base, &tr)
	tr.SetTranslation(3, -3, 0)
	sc.Models[3].MulMatrices(&base, &tr)
	tr.SetTranslation(-3, -4, 0)
	sc.Models[4].MulMatrices(&base, &tr)

	// two orbiters built from the below-right and below-left
	// transforms, half a turn apart on the small circle
	var orbit, ospin, opos math32.Matrix4
	ospin.SetRotationY(0.5 * t)
	opos.SetTranslation(1, 0, 0)
	tmp.SetRotationY(0.3 * t)
	orbit.MulMatrices(&opos, &tmp)
	tmp.MulMatrices(&sc.Models[3], &ospin)
	tmp.SetMul(&orbit)
	sc.Models[5].MulMatrices(&tmp, &sc.Models[4])

	tmp.SetRotationY(0.3*t + math32.Pi)
	orbit.MulMatrices(&opos, &tmp)
	tmp.MulMatrices(&sc.Models[3], &ospin)
	tmp.SetMul(&orbit)
	sc.Models[6].MulMatrices(&tmp, &sc.Models[4])

	// top cube spinning the other way
	spin.SetRotationY(-0.5 * t)
	tmp.MulMatrices(&tilt, &spin)
	tr.SetTranslation(0, 5, 0)
	sc.Models[7].MulMatrices(&tmp, &tr)

	// rod cubes: scaled thin and long
	sca.SetScale(0.1, 2, 0.1)
	tr.SetTranslation(0, 1, 0)
	tmp.MulMatrices(&base, &sca)
	sc.Models[8].MulMatrices(&tmp, &tr)

	sca.SetScale(4, 0.1, 0.1)
	tr.SetTranslation(0, 0, 0)
	tmp.MulMatrices(&base, &sca)
	sc.Models[9].MulMatrices(&tmp, &tr)

	sca.SetScale(0.1, 2, 0.1)
	tmp.MulMatrices(&base, &sca)
	tr.SetTranslation(30, -1, 0)
	sc.Models[10].MulMatrices(&tmp, &tr)
	tr.SetTranslation(-30, -1, 0)
	sc.Models[11].MulMatrices(&tmp, &tr)
}

// Render stages the twelve world-view-projection matrices, begins
// the render pass, and draws each cube at its dynamic uniform offset.
// The returned pass has been ended but not submitted: follow with
// SubmitRender and Present (or AssertImage in tests).
func (sc *Scene) Render() (*wgpu.RenderPassEncoder, error) {
	sy := sc.sy
	mvl := sy.Vars().ValueByIndex(0, "Camera", 0)
	vp := sc.Camera.ViewProjection()
	for i := range NumCubes {
		var wvp math32.Matrix4
		wvp.MulMatrices(&vp, &sc.Models[i])
		gpu.SetDynamicValueFrom(mvl, i, []math32.Matrix4{wvp})
	}
	if err := mvl.WriteDynamicBuffer(); err != nil {
		return nil, err
	}

	rp, err := sy.BeginRenderPass()
	if err != nil {
		return nil, err
	}
	pl := sc.pipeline
	if err := pl.BindPipeline(rp); err != nil {
		return nil, err
	}
	pl.BindVertex(rp)
	for i := range NumCubes {
		mvl.SetDynamicIndex(i)
		pl.BindGroup(rp, 0)
		pl.DrawIndexed(rp)
	}
	rp.End()
	return rp, nil
}

// Release releases the underlying graphics system resources.
// It is idempotent.
func (sc *Scene) Release() {
	if sc.released {
		return
	}
	sc.released = true
	sc.sy.Release()
}
