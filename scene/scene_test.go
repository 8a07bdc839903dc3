// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/cubemobile/base/tolassert"
	"cogentcore.org/cubemobile/gpu"
	"cogentcore.org/cubemobile/math32"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gogpu/naga"
	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	cf := &Config{}
	cf.Defaults()
	return cf
}

func assertVec3(t *testing.T, want, got math32.Vector3) {
	t.Helper()
	tolassert.EqualTol(t, want.X, got.X, 1.0e-4)
	tolassert.EqualTol(t, want.Y, got.Y, 1.0e-4)
	tolassert.EqualTol(t, want.Z, got.Z, 1.0e-4)
}

// origin returns where the given model matrix places the cube center.
func origin(m *math32.Matrix4) math32.Vector3 {
	return math32.Vec3(0, 0, 0).MulMatrix4(m)
}

func TestUpdate(t *testing.T) {
	sc := &Scene{Config: testConfig()}
	tm := float32(1.234)
	sc.Update(tm)

	var tilt, spin, base math32.Matrix4
	tilt.SetRotationX(-0.1 * math32.Pi)
	spin.SetRotationY(tm)
	base.MulMatrices(&tilt, &spin)

	// center cube spins in place
	assertVec3(t, math32.Vec3(0, 0, 0), origin(&sc.Models[0]))
	for i := range 16 {
		tolassert.EqualTol(t, base[i], sc.Models[0][i], 1.0e-5)
	}

	// translated neighbors: center is the offset carried through base
	assertVec3(t, math32.Vec3(3, 0, 0).MulMatrix4(&base), origin(&sc.Models[1]))
	assertVec3(t, math32.Vec3(-3, 0, 0).MulMatrix4(&base), origin(&sc.Models[2]))
	assertVec3(t, math32.Vec3(3, -3, 0).MulMatrix4(&base), origin(&sc.Models[3]))
	assertVec3(t, math32.Vec3(-3, -4, 0).MulMatrix4(&base), origin(&sc.Models[4]))

	// orbiter A: apply the elementary transforms right-to-left to a point
	var ry3, ry5 math32.Matrix4
	ry3.SetRotationY(0.3 * tm)
	ry5.SetRotationY(0.5 * tm)
	p := origin(&sc.Models[4])
	p = p.MulMatrix4(&ry3)
	p = p.Add(math32.Vec3(1, 0, 0))
	p = p.MulMatrix4(&ry5)
	p = p.MulMatrix4(&sc.Models[3])
	assertVec3(t, p, origin(&sc.Models[5]))

	// orbiter B is half a turn further along the small circle
	ry3.SetRotationY(0.3*tm + math32.Pi)
	p = origin(&sc.Models[4])
	p = p.MulMatrix4(&ry3)
	p = p.Add(math32.Vec3(1, 0, 0))
	p = p.MulMatrix4(&ry5)
	p = p.MulMatrix4(&sc.Models[3])
	assertVec3(t, p, origin(&sc.Models[6]))

	// top cube counter-spins above the center
	var cspin, top math32.Matrix4
	cspin.SetRotationY(-0.5 * tm)
	top.MulMatrices(&tilt, &cspin)
	assertVec3(t, math32.Vec3(0, 5, 0).MulMatrix4(&top), origin(&sc.Models[7]))

	// rods: translation first, then scale, then base
	assertVec3(t, math32.Vec3(0, 2, 0).MulMatrix4(&base), origin(&sc.Models[8]))
	assertVec3(t, math32.Vec3(0, 0, 0).MulMatrix4(&base), origin(&sc.Models[9]))
	assertVec3(t, math32.Vec3(3, -2, 0).MulMatrix4(&base), origin(&sc.Models[10]))
	assertVec3(t, math32.Vec3(-3, -2, 0).MulMatrix4(&base), origin(&sc.Models[11]))
}

func TestUpdateSpeed(t *testing.T) {
	fast := &Scene{Config: testConfig()}
	fast.Config.Speed = 2
	fast.Update(1)

	ref := &Scene{Config: testConfig()}
	ref.Update(2)

	for i := range NumCubes {
		for j := range 16 {
			tolassert.EqualTol(t, ref.Models[i][j], fast.Models[i][j], 1.0e-6)
		}
	}
}

func TestCameraProjection(t *testing.T) {
	cf := testConfig()
	var cm Camera
	cm.Defaults(cf)

	// near and far planes map to the 0 and 1 depth limits
	near := math32.Vec4(0, 0, cf.Near, 1).MulMatrix4(&cm.Projection).PerspDiv()
	far := math32.Vec4(0, 0, cf.Far, 1).MulMatrix4(&cm.Projection).PerspDiv()
	tolassert.EqualTol(t, 0, near.Z, 1.0e-5)
	tolassert.EqualTol(t, 1, far.Z, 1.0e-5)

	// world origin lands in front of the camera, slightly above center
	vp := cm.ViewProjection()
	clip := math32.Vec4(0, 0, 0, 1).MulMatrix4(&vp)
	assert.Greater(t, clip.W, float32(0))
	ndc := clip.PerspDiv()
	tolassert.EqualTol(t, 0, ndc.X, 1.0e-5)
	assert.Greater(t, ndc.Y, float32(0))
	assert.Greater(t, ndc.Z, float32(0))
	assert.Less(t, ndc.Z, float32(1))
}

func TestConfig(t *testing.T) {
	cf, err := OpenConfig("")
	assert.NoError(t, err)
	assert.Equal(t, image.Point{1024, 768}, cf.Size)
	tolassert.Equal(t, float32(0.35), cf.ClearColor[0])

	// missing file: defaults, no error
	cf, err = OpenConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.NoError(t, err)
	assert.Equal(t, 4, cf.Samples)

	// round trip
	dir := t.TempDir()
	file := filepath.Join(dir, "cube.toml")
	cf.Size = image.Point{640, 480}
	cf.Speed = 0.5
	cf.Texture = "other.png"
	assert.NoError(t, SaveConfig(cf, file))
	got, err := OpenConfig(file)
	assert.NoError(t, err)
	assert.Equal(t, cf.Size, got.Size)
	tolassert.Equal(t, cf.Speed, got.Speed)
	assert.Equal(t, cf.Texture, got.Texture)

	// malformed file: error
	bad := filepath.Join(dir, "bad.toml")
	assert.NoError(t, os.WriteFile(bad, []byte("Size = {{{"), 0666))
	_, err = OpenConfig(bad)
	assert.Error(t, err)
}

func TestPipelineState(t *testing.T) {
	pl := gpu.NewGraphicsPipeline("cubes", nil)
	configPipeline(pl)
	assert.Equal(t, wgpu.FrontFaceCW, pl.Primitive.FrontFace)
	assert.Equal(t, wgpu.CullModeBack, pl.Primitive.CullMode)
	assert.False(t, pl.AlphaBlend)
}

func TestTextureFallback(t *testing.T) {
	logo := image.Rectangle{Max: image.Point{256, 256}}

	// undecodable override: embedded logo, with a logged error
	bad := filepath.Join(t.TempDir(), "bad.png")
	assert.NoError(t, os.WriteFile(bad, []byte("not a png"), 0666))
	cf := testConfig()
	cf.Texture = bad
	sc := &Scene{Config: cf}
	img := sc.openTexture()
	assert.Equal(t, logo, img.Bounds())

	// missing override file: same fallback
	cf.Texture = filepath.Join(t.TempDir(), "nope.png")
	img = sc.openTexture()
	assert.Equal(t, logo, img.Bounds())
}

func TestShaderValid(t *testing.T) {
	code, err := content.ReadFile("shader.wgsl")
	assert.NoError(t, err)
	spirv, err := naga.Compile(string(code))
	assert.NoError(t, err)
	assert.NotEmpty(t, spirv)
}

func TestRenderOffscreen(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := gpu.NoDisplayGPU()
	assert.NoError(t, err)
	cf := testConfig()
	rt := gpu.NewRenderTexture(gp, dev, cf.Size, cf.Samples, gpu.Depth32)
	sy := gpu.NewGraphicsSystem(gp, "cubes", rt)
	sc := NewScene(sy, cf)
	assert.NoError(t, sc.Init())
	rt.CurrentFrame().ConfigReadBuffer()

	sc.Update(0)
	rp, err := sc.Render()
	assert.NoError(t, err)
	sy.AssertImage(t, rp, "cubes.png")
	sc.Release()
}
