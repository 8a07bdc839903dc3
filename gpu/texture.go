// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"image/draw"

	"cogentcore.org/cubemobile/base/errors"
	"cogentcore.org/cubemobile/base/iox/imagex"
	"github.com/cogentcore/webgpu/wgpu"
	xdraw "golang.org/x/image/draw"
)

// Texture is a WebGPU device texture with an associated view and,
// for [SampledTexture] variables, a Sampler. It is also used for
// the depth, multisampling, and offscreen frame textures of the
// render targets.
type Texture struct {
	// Name of the texture, e.g., same as Value name if used in a Var.
	Name string

	// Format has the size, WebGPU format, number of samples,
	// and layers of the texture.
	Format TextureFormat

	// Sampler determines how the texture is sampled in the shader,
	// for SampledTexture use. Set the sampling parameters before
	// the texture image is set.
	Sampler Sampler

	// mipmapped texture images are uploaded with a full mip chain,
	// computed on the CPU. See [Texture.SetMipmapped].
	mipmapped bool

	// number of mip levels in the current device texture.
	numMips int

	texture *wgpu.Texture
	view    *wgpu.TextureView

	// readBuffer is for reading the texture back from the device,
	// e.g., for offscreen render targets. Configured by
	// [Texture.ConfigReadBuffer].
	readBuffer *wgpu.Buffer

	// readBufferDims are the row-padded buffer dimensions of readBuffer.
	readBufferDims TextureBufferDims

	device Device
}

// NewTexture returns a new Texture for given device.
func NewTexture(dev *Device) *Texture {
	tx := &Texture{}
	tx.device = *dev
	tx.Sampler.Defaults()
	tx.Format.Defaults()
	return tx
}

// SetMipmapped sets whether texture images are uploaded with a
// full mip chain, generated on the CPU, for minification quality.
// Must be set before the image is set. The Sampler MipFilter
// determines how the mips are sampled.
func (tx *Texture) SetMipmapped(on bool) *Texture {
	tx.mipmapped = on
	return tx
}

// NumMips returns the number of mip levels for given size,
// down to 1 pixel in the largest dimension.
func NumMips(size image.Point) int {
	n := 1
	sz := max(size.X, size.Y)
	for sz > 1 {
		sz /= 2
		n++
	}
	return n
}

// ImageToRGBA returns the given image as an [image.RGBA],
// converting if necessary.
func ImageToRGBA(img image.Image) *image.RGBA {
	return imagex.AsRGBA(img)
}

// SetFromGoImage sets the texture from the given Go image,
// at the given layer. The image is converted to RGBA if needed,
// and is uploaded to an sRGB format texture by default
// (set Format.Format before calling for a different format).
// The mip chain is generated and uploaded if SetMipmapped was set.
// The Sampler is configured at this point if not already.
func (tx *Texture) SetFromGoImage(img image.Image, layer int) error {
	rgba := ImageToRGBA(img)
	sz := rgba.Rect.Size()
	if sz != tx.Format.Size || tx.texture == nil {
		tx.Format.Size = sz
		if err := tx.createTexture(wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst); err != nil {
			return err
		}
	}
	if err := tx.writeImage(rgba, 0, layer); err != nil {
		return err
	}
	if tx.numMips > 1 {
		if err := tx.writeMips(rgba, layer); err != nil {
			return err
		}
	}
	if tx.Sampler.sampler == nil {
		if err := tx.Sampler.Config(&tx.device); err != nil {
			return err
		}
	}
	return nil
}

// writeImage writes the given RGBA image to the given mip level
// and layer of the device texture.
func (tx *Texture) writeImage(rgba *image.RGBA, mip, layer int) error {
	sz := rgba.Rect.Size()
	return tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tx.texture,
			MipLevel: uint32(mip),
			Origin:   wgpu.Origin3D{Z: uint32(layer)},
			Aspect:   wgpu.TextureAspectAll,
		},
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(rgba.Stride),
			RowsPerImage: uint32(sz.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(sz.X),
			Height:             uint32(sz.Y),
			DepthOrArrayLayers: 1,
		})
}

// writeMips generates the mip chain from the given top-level image
// by successive halvings, and writes each level to the device.
// WebGPU has no mip generation, so this is done on the CPU.
func (tx *Texture) writeMips(rgba *image.RGBA, layer int) error {
	cur := rgba
	for mip := 1; mip < tx.numMips; mip++ {
		sz := cur.Rect.Size()
		nsz := image.Point{max(sz.X/2, 1), max(sz.Y/2, 1)}
		ni := image.NewRGBA(image.Rectangle{Max: nsz})
		xdraw.CatmullRom.Scale(ni, ni.Rect, cur, cur.Rect, draw.Src, nil)
		if err := tx.writeImage(ni, mip, layer); err != nil {
			return err
		}
		cur = ni
	}
	return nil
}

// createTexture creates the device texture and view for the
// current Format, with given usages, releasing any existing.
func (tx *Texture) createTexture(usage wgpu.TextureUsage) error {
	tx.releaseTexture()
	tx.numMips = 1
	if tx.mipmapped && tx.Format.Samples == 1 {
		tx.numMips = NumMips(tx.Format.Size)
	}
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          tx.Format.Extent3D(),
		MipLevelCount: uint32(tx.numMips),
		SampleCount:   uint32(tx.Format.Samples),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	view, err := t.CreateView(&wgpu.TextureViewDescriptor{
		Format:          tx.Format.Format,
		Dimension:       wgpu.TextureViewDimension2D,
		MipLevelCount:   uint32(tx.numMips),
		ArrayLayerCount: uint32(tx.Format.Layers),
		Aspect:          wgpu.TextureAspectAll,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.view = view
	return nil
}

// ConfigDepth configures this texture as a depth buffer of given
// depth format, matching the size and samples of the render format.
func (tx *Texture) ConfigDepth(dev *Device, depthType Types, imgFmt *TextureFormat) error {
	tx.device = *dev
	tx.Format.Format = depthType.TextureFormat()
	tx.Format.Size = imgFmt.Size
	tx.Format.Samples = imgFmt.Samples
	tx.Format.Layers = 1
	tx.mipmapped = false
	return tx.createTexture(wgpu.TextureUsageRenderAttachment)
}

// ConfigMulti configures this texture as a multisampling render
// target of given format, which is resolved into the final
// single-sample target at the end of the render pass.
func (tx *Texture) ConfigMulti(dev *Device, imgFmt *TextureFormat) error {
	tx.device = *dev
	tx.Format = *imgFmt
	tx.Format.Layers = 1
	tx.mipmapped = false
	return tx.createTexture(wgpu.TextureUsageRenderAttachment)
}

// ConfigRenderTexture configures this texture as an offscreen
// render target frame of given format, always single-sampled:
// multisampling goes through the [Render] Multi texture.
func (tx *Texture) ConfigRenderTexture(dev *Device, imgFmt *TextureFormat) error {
	tx.device = *dev
	tx.Format = *imgFmt
	tx.Format.Samples = 1
	tx.Format.Layers = 1
	tx.mipmapped = false
	return tx.createTexture(wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc)
}

// ConfigReadBuffer configures a read buffer for this texture,
// for reading the rendered texture back to the CPU,
// e.g., for screenshots and render tests.
// Rows are padded to the 256 byte alignment required for
// texture-to-buffer copies.
func (tx *Texture) ConfigReadBuffer() error {
	tx.readBufferDims.Set(tx.Format.Size)
	sz := tx.readBufferDims.PaddedSize()
	if tx.readBuffer != nil && uint64(tx.readBuffer.GetSize()) == sz {
		return nil
	}
	tx.releaseReadBuffer()
	buf, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: tx.Name + ":read",
		Size:  sz,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.readBuffer = buf
	return nil
}

// CopyToReadBuffer adds a command to the given command encoder
// to copy this texture to its read buffer, which must have been
// configured with [Texture.ConfigReadBuffer].
func (tx *Texture) CopyToReadBuffer(cmd *wgpu.CommandEncoder) error {
	if tx.readBuffer == nil {
		return errors.Log(errors.New("gpu.Texture.CopyToReadBuffer: ConfigReadBuffer has not been called"))
	}
	ex := tx.Format.Extent3D()
	ex.DepthOrArrayLayers = 1
	return cmd.CopyTextureToBuffer(
		tx.texture.AsImageCopy(),
		&wgpu.ImageCopyBuffer{
			Buffer: tx.readBuffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(tx.readBufferDims.PaddedRowSize),
				RowsPerImage: uint32(tx.readBufferDims.Height),
			},
		},
		&ex)
}

// ReadGoImage reads the read buffer back into a Go image, after
// the copy command from [Texture.CopyToReadBuffer] has been
// submitted and completed. BGRA formats are swizzled to RGBA.
func (tx *Texture) ReadGoImage() (*image.RGBA, error) {
	td := &tx.readBufferDims
	err := BufferReadSync(&tx.device, int(td.PaddedSize()), tx.readBuffer)
	if err != nil {
		return nil, err
	}
	data := tx.readBuffer.GetMappedRange(0, uint(td.PaddedSize()))
	img := image.NewRGBA(image.Rectangle{Max: tx.Format.Size})
	for y := uint64(0); y < td.Height; y++ {
		copy(img.Pix[y*td.UnpaddedRowSize:(y+1)*td.UnpaddedRowSize],
			data[y*td.PaddedRowSize:y*td.PaddedRowSize+td.UnpaddedRowSize])
	}
	tx.readBuffer.Unmap()
	if tx.Format.Format == wgpu.TextureFormatBGRA8Unorm || tx.Format.Format == wgpu.TextureFormatBGRA8UnormSrgb {
		for i := 0; i < len(img.Pix); i += 4 {
			img.Pix[i], img.Pix[i+2] = img.Pix[i+2], img.Pix[i]
		}
	}
	return img, nil
}

func (tx *Texture) String() string {
	return fmt.Sprintf("Texture: %s %s", tx.Name, tx.Format.String())
}

func (tx *Texture) releaseTexture() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

func (tx *Texture) releaseReadBuffer() {
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
}

// Release releases the texture, view, sampler, and any read buffer.
func (tx *Texture) Release() {
	tx.releaseReadBuffer()
	tx.releaseTexture()
	tx.Sampler.Release()
}
