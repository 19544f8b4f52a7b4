// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package texture decodes images into RGBA textures.
// png, jpeg, gif, bmp, tiff and webp files are understood.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/source"
)

// Texture is a decoded image held in RGBA form
type Texture struct {
	Name   string
	Format string
	img    *image.RGBA
}

// Image returns the texture pixels, nil once released
func (t *Texture) Image() *image.RGBA {
	if t == nil {
		return nil
	}
	return t.img
}

// Bounds returns the size of the texture
func (t *Texture) Bounds() image.Rectangle {
	if t == nil || t.img == nil {
		return image.Rectangle{}
	}
	return t.img.Bounds()
}

// Pixels returns the pixels arranged for the given row pitch
func (t *Texture) Pixels(rowPitch int) []uint8 {
	if t == nil || t.img == nil {
		return nil
	}
	return GetPixels(t.img, rowPitch)
}

// Release drops the pixel data
func (t *Texture) Release() {
	if t == nil {
		return
	}
	t.img = nil
}

// Decode reads an image in any registered format
func Decode(name string, data []byte) (*Texture, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return &Texture{Name: name, Format: format, img: rgba}, nil
}

// Placeholder returns a 1x1 magenta texture, a stand-in for missing textures
func Placeholder() *Texture {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, B: 0xff, A: 0xff})
	return &Texture{Name: "placeholder", Format: "rgba", img: img}
}

// Loader reads textures by name from f
func Loader(f source.Finder, fail asset.FailResponse[string, *Texture]) *asset.Loader[string, *Texture] {
	return &asset.Loader[string, *Texture]{
		Name: "texture",
		TryLoad: func(name string) (*Texture, error) {
			data, err := f.Find(name)
			if err != nil {
				return nil, err
			}
			return Decode(name, data)
		},
		Fail: fail,
	}
}

// GetPixels transforms a given image into right arrangement of pixels
// by drawing the decoded image onto a controlled RGBA canvas
func GetPixels(img image.Image, rowPitch int) []uint8 {
	newImg := image.NewRGBA(img.Bounds())
	if rowPitch >= 4*img.Bounds().Dx() {
		// apply the proposed row pitch only if it fits a whole row
		newImg.Stride = rowPitch
		newImg.Pix = make([]uint8, rowPitch*img.Bounds().Dy())
	}
	draw.Draw(newImg, newImg.Bounds(), img, img.Bounds().Min, draw.Src)
	return newImg.Pix
}
