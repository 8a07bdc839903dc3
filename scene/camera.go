// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "cogentcore.org/cubemobile/math32"

// Camera has the camera view and projection matrices.
type Camera struct {
	// View is the world-to-camera transform: the world is shifted
	// up 1 and 30 in front of a camera at the origin looking along +Z.
	View math32.Matrix4

	// Projection is the left-handed perspective projection,
	// mapping depth to the 0 to 1 WebGPU clip range.
	Projection math32.Matrix4

	// PreTransform is the surface pre-rotation transform, applied
	// between the view and the projection. It is the identity on
	// desktop, and set per the surface orientation on platforms
	// with rotated surfaces.
	PreTransform math32.Matrix4
}

func (cm *Camera) Defaults(cfg *Config) {
	cm.View.SetTranslation(0, 1, 30)
	cm.PreTransform.SetIdentity()
	cm.SetAspect(cfg, float32(cfg.Size.X)/float32(cfg.Size.Y))
}

// SetAspect sets the projection matrix for the given
// width / height aspect ratio, using the config fov and planes.
func (cm *Camera) SetAspect(cfg *Config, aspect float32) {
	cm.Projection.SetPerspectiveLH(cfg.FOV, aspect, cfg.Near, cfg.Far)
}

// ViewProjection returns the combined Projection * PreTransform * View
// matrix, to be multiplied with each model matrix.
func (cm *Camera) ViewProjection() math32.Matrix4 {
	var pp, vp math32.Matrix4
	pp.MulMatrices(&cm.Projection, &cm.PreTransform)
	vp.MulMatrices(&pp, &cm.View)
	return vp
}
