// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"image"
	"os"

	"cogentcore.org/cubemobile/base/errors"
	"github.com/pelletier/go-toml/v2"
)

// Config has the scene configuration parameters,
// settable in a TOML config file.
type Config struct {
	// Size is the window or offscreen frame size in pixels.
	Size image.Point

	// Samples is the multisampling anti-aliasing parameter:
	// 1 = none, 4 = typical default for smooth edges.
	Samples int

	// FOV is the vertical field of view of the projection, in degrees.
	FOV float32

	// Near and Far are the z positions of the projection planes.
	Near, Far float32

	// ClearColor is the linear-space RGBA background color.
	ClearColor [4]float32

	// Texture is an optional path to an image file to texture the
	// cubes with, instead of the embedded logo.
	Texture string

	// Speed is a multiplier on animation time.
	Speed float32
}

func (cf *Config) Defaults() {
	cf.Size = image.Point{1024, 768}
	cf.Samples = 4
	cf.FOV = 45
	cf.Near = 0.1
	cf.Far = 100
	cf.ClearColor = [4]float32{0.35, 0.35, 0.35, 1}
	cf.Speed = 1
}

// OpenConfig sets defaults and then reads the given TOML config
// file over them, if the file name is non-empty. A missing file is
// not an error; a file that fails to parse is.
func OpenConfig(file string) (*Config, error) {
	cf := &Config{}
	cf.Defaults()
	if file == "" {
		return cf, nil
	}
	b, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return cf, nil
		}
		return cf, errors.Log(err)
	}
	if err := toml.Unmarshal(b, cf); err != nil {
		return cf, errors.Log(err)
	}
	return cf, nil
}

// SaveConfig writes the config to the given TOML file.
func SaveConfig(cf *Config, file string) error {
	b, err := toml.Marshal(cf)
	if errors.Log(err) != nil {
		return err
	}
	return errors.Log(os.WriteFile(file, b, 0666))
}
