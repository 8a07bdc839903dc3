// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/cubemobile/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is a logical device on the GPU adapter, and the
// Queue that submits commands to it.
// Each display surface owns its own device, and offscreen
// rendering uses the one from [NoDisplayGPU].
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command queue for this device.
	Queue *wgpu.Queue
}

// NewDevice returns a new device for given GPU,
// with its Queue initialized.
func NewDevice(gpu *GPU) (*Device, error) {
	wdev, err := gpu.GPU.RequestDevice(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	dev := &Device{Device: wdev}
	dev.Queue = wdev.GetQueue()
	return dev, nil
}

// WaitDone does a blocking wait until all work submitted
// to the queue so far has completed.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.Device.Release()
	dv.Device = nil
	dv.Queue = nil
}
