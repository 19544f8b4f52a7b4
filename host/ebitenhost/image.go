// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/source"
	"github.com/devblok/kengine/texture"
)

// Image is a texture uploaded to the GPU
type Image struct {
	*ebiten.Image
	Name string
}

// Release frees the GPU memory
func (i *Image) Release() {
	if i == nil || i.Image == nil {
		return
	}
	i.Image.Deallocate()
}

// ImageLoader decodes images from f and uploads them
func ImageLoader(f source.Finder, fail asset.FailResponse[string, *Image]) *asset.Loader[string, *Image] {
	return &asset.Loader[string, *Image]{
		Name: "image",
		TryLoad: func(name string) (*Image, error) {
			data, err := f.Find(name)
			if err != nil {
				return nil, err
			}
			tex, err := texture.Decode(name, data)
			if err != nil {
				return nil, err
			}
			defer tex.Release()
			return &Image{Image: ebiten.NewImageFromImage(tex.Image()), Name: name}, nil
		},
		Fail: fail,
	}
}

// Placeholder returns the texture placeholder as an image
func Placeholder() *Image {
	return &Image{Image: ebiten.NewImageFromImage(texture.Placeholder().Image()), Name: "placeholder"}
}
