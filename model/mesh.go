package model

import (
	"path"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/source"
)

// Mesh is a model loaded as an asset
type Mesh struct {
	Object
	Name string
}

// Release drops the vertex data of collada meshes
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	if co, ok := m.Object.(*ColladaObject); ok {
		co.mutex.Lock()
		co.vertices = nil
		co.mutex.Unlock()
	}
}

// Loader reads meshes by name from f. Only collada (.dae) files are
// supported, anything else fails with ErrUnsupported.
func Loader(f source.Finder, fail asset.FailResponse[string, *Mesh]) *asset.Loader[string, *Mesh] {
	return &asset.Loader[string, *Mesh]{
		Name: "mesh",
		TryLoad: func(name string) (*Mesh, error) {
			if path.Ext(name) != ".dae" {
				return nil, ErrUnsupported
			}
			data, err := f.Find(name)
			if err != nil {
				return nil, err
			}
			obj, err := ImportColladaObject(data)
			if err != nil {
				return nil, err
			}
			return &Mesh{Object: obj, Name: name}, nil
		},
		Fail: fail,
	}
}
