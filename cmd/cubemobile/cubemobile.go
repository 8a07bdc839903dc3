// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command cubemobile renders twelve rotating textured cubes,
// in a window or offscreen to a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"cogentcore.org/cubemobile/base/errors"
	"cogentcore.org/cubemobile/base/iox/imagex"
	"cogentcore.org/cubemobile/gpu"
	"cogentcore.org/cubemobile/scene"
	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// must lock main thread for gpu!
	runtime.LockOSThread()
}

// shaderOverride is the on-disk shader path watched for
// hot-reloading in -debug mode.
const shaderOverride = "shader.wgsl"

func main() {
	cfgFile := flag.String("config", "", "TOML config file")
	offscreen := flag.Bool("offscreen", false, "render offscreen and save a PNG instead of opening a window")
	frames := flag.Int("frames", 1, "number of frames to render in -offscreen mode; the last one is saved")
	out := flag.String("out", "cubes.png", "output PNG file, for -offscreen and the S screenshot key")
	debug := flag.Bool("debug", false, "enable gpu debug logging, and hot-reload "+shaderOverride+" if present")
	flag.Parse()

	gpu.Debug = *debug
	cf, err := scene.OpenConfig(*cfgFile)
	if err != nil {
		os.Exit(1)
	}

	if *offscreen {
		if renderOffscreen(cf, *frames, *out) != nil {
			os.Exit(1)
		}
		return
	}
	runWindow(cf, *out, *debug)
}

// renderOffscreen renders the given number of frames headless
// and saves the last one to the out PNG file.
func renderOffscreen(cf *scene.Config, frames int, out string) error {
	frames = max(frames, 1)
	gp, dev, err := gpu.NoDisplayGPU()
	if errors.Log(err) != nil {
		return err
	}
	rt := gpu.NewRenderTexture(gp, dev, cf.Size, cf.Samples, gpu.Depth32)
	sy := gpu.NewGraphicsSystem(gp, "cubemobile", rt)
	sc := scene.NewScene(sy, cf)
	if err := sc.Init(); err != nil {
		return err
	}
	defer func() {
		sc.Release()
		rt.Release()
		gp.Release()
	}()
	rt.CurrentFrame().ConfigReadBuffer()

	var img *image.RGBA
	for i := range frames {
		sc.Update(float32(i) / 60)
		rp, err := sc.Render()
		if errors.Log(err) != nil {
			return err
		}
		if i == frames-1 {
			img, err = sy.ReadImage(rp)
		} else {
			err = sy.SubmitRender(rp)
		}
		if errors.Log(err) != nil {
			return err
		}
	}
	return errors.Log(imagex.Save(img, out))
}

// screenshot renders one frame at the given time into a fresh
// offscreen target on the window's device and saves it.
func screenshot(gp *gpu.GPU, dev *gpu.Device, cf *scene.Config, t float32, out string) error {
	rt := gpu.NewRenderTexture(gp, dev, cf.Size, cf.Samples, gpu.Depth32)
	sy := gpu.NewGraphicsSystem(gp, "screenshot", rt)
	sc := scene.NewScene(sy, cf)
	if err := sc.Init(); err != nil {
		return err
	}
	defer func() {
		sc.Release()
		rt.Release()
	}()
	rt.CurrentFrame().ConfigReadBuffer()
	sc.Update(t)
	rp, err := sc.Render()
	if errors.Log(err) != nil {
		return err
	}
	img, err := sy.ReadImage(rp)
	if errors.Log(err) != nil {
		return err
	}
	if err := errors.Log(imagex.Save(img, out)); err != nil {
		return err
	}
	fmt.Println("saved screenshot:", out)
	return nil
}

// watchShader watches the shader override file for write/create
// events and sends the new code on the returned channel.
// Editors typically replace files rather than writing in place,
// so the containing directory is watched and events are filtered
// by file name.
func watchShader(file string) (chan string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return nil, err
	}
	reload := make(chan string, 1)
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != filepath.Base(abs) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				code, err := os.ReadFile(abs)
				if errors.Log(err) != nil {
					continue
				}
				select {
				case reload <- string(code):
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return reload, nil
}

func runWindow(cf *scene.Config, out string, debug bool) {
	gp := gpu.NewGPU()
	gp.Config("cubemobile")

	var resize func(size image.Point)
	sp, window, terminate, pollEvents, size, err := gpu.GLFWCreateWindow(gp, cf.Size, "Textured Cubes", &resize)
	if err != nil {
		return
	}

	sf := gpu.NewSurface(gp, sp, size, cf.Samples, gpu.Depth32)
	sy := gpu.NewGraphicsSystem(gp, "cubemobile", sf)
	sc := scene.NewScene(sy, cf)
	if sc.Init() != nil {
		return
	}

	zeroSize := false
	resize = func(size image.Point) {
		if size.X <= 0 || size.Y <= 0 {
			zeroSize = true
			return
		}
		zeroSize = false
		sf.SetSize(size)
		sc.Camera.SetAspect(cf, float32(size.X)/float32(size.Y))
	}

	destroy := func() {
		sc.Release()
		sf.Release()
		gp.Release()
		terminate()
	}

	takeShot := false
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyS:
			takeShot = true
		}
	})

	var reload chan string
	if debug {
		if _, err := os.Stat(shaderOverride); err == nil {
			reload, err = watchShader(shaderOverride)
			errors.Log(err)
		}
	}

	frameCount := 0
	stTime := time.Now()
	startTime := stTime

	renderFrame := func() {
		if zeroSize {
			return
		}
		elapsed := float32(time.Since(startTime)) / float32(time.Second)
		sc.Update(elapsed)

		if takeShot {
			takeShot = false
			errors.Log(screenshot(gp, sf.Device(), cf, elapsed, out))
		}

		rp, err := sc.Render()
		if err != nil {
			return
		}
		sy.EndRenderPass(rp)

		frameCount++
		eTime := time.Now()
		dur := float64(eTime.Sub(stTime)) / float64(time.Second)
		if dur > 10 {
			if debug {
				fmt.Printf("fps: %.0f\n", float64(frameCount)/dur)
			}
			frameCount = 0
			stTime = eTime
		}
	}

	exitC := make(chan struct{}, 2)

	fpsDelay := time.Second / 60
	fpsTicker := time.NewTicker(fpsDelay)
	for {
		select {
		case <-exitC:
			fpsTicker.Stop()
			destroy()
			return
		case code := <-reload:
			if sc.SetShader(code) == nil {
				fmt.Println("reloaded", shaderOverride)
			}
		case <-fpsTicker.C:
			if !pollEvents() {
				exitC <- struct{}{}
				continue
			}
			renderFrame()
		}
	}
}
