// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package shader loads compiled SPIR-V shaders
package shader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/source"
)

const (
	shaderSuffix = ".spv"
	spirvMagic   = 0x07230203
)

// ErrNotSpirv is returned for data that is not a SPIR-V module
var ErrNotSpirv = errors.New("not a SPIR-V module")

// Type represents the type of shader thats loaded
type Type int

// Identifies shader objects with their types
const (
	VertexType Type = iota
	FragmentType
	UnknownType
)

func (t Type) String() string {
	switch t {
	case VertexType:
		return "vertex"
	case FragmentType:
		return "fragment"
	}
	return "unknown"
}

// TypeOf derives the shader type from a file name such as "basic.vert.spv".
// The first dot separated part is the shader name, the second its type.
func TypeOf(name string) Type {
	base := strings.TrimSuffix(filepath.Base(name), shaderSuffix)
	nodes := strings.Split(base, ".")
	if len(nodes) != 2 {
		return UnknownType
	}
	switch nodes[1] {
	case "vert":
		return VertexType
	case "frag":
		return FragmentType
	}
	return UnknownType
}

// Shader is a compiled shader module
type Shader struct {
	Name string
	Type Type
	code []uint32
}

// Code returns the SPIR-V words
func (s *Shader) Code() []uint32 {
	if s == nil {
		return nil
	}
	return s.code
}

// Release drops the shader code
func (s *Shader) Release() {
	if s == nil {
		return
	}
	s.code = nil
}

// Parse validates and wraps compiled shader bytes
func Parse(name string, data []byte) (*Shader, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("%s: %w: size %d", name, ErrNotSpirv, len(data))
	}
	// copy, the finder may hand out shared memory
	code := append([]uint32(nil), SliceUint32(data)...)
	if code[0] != spirvMagic {
		return nil, fmt.Errorf("%s: %w: magic %#x", name, ErrNotSpirv, code[0])
	}
	return &Shader{Name: name, Type: TypeOf(name), code: code}, nil
}

// Loader reads compiled shaders by name from f
func Loader(f source.Finder, fail asset.FailResponse[string, *Shader]) *asset.Loader[string, *Shader] {
	return &asset.Loader[string, *Shader]{
		Name: "shader",
		TryLoad: func(name string) (*Shader, error) {
			data, err := f.Find(name)
			if err != nil {
				return nil, err
			}
			return Parse(name, data)
		},
		Fail: fail,
	}
}

// Discover lists the compiled shaders found under dir. It is important that
// the file name does not contain more than two dots, the first is always the
// name of the shader, second is type, and the third one ensures that the
// shader is compiled. Files not following the pattern are skipped.
func Discover(dir string) ([]string, []Type, error) {
	var (
		shaders     []string
		shaderTypes []Type
	)
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() || !strings.HasSuffix(f.Name(), shaderSuffix) {
			return nil
		}
		if t := TypeOf(f.Name()); t != UnknownType {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			shaders = append(shaders, filepath.ToSlash(rel))
			shaderTypes = append(shaderTypes, t)
		}
		return nil
	}); err != nil {
		return nil, nil, err
	}
	return shaders, shaderTypes, nil
}

// SliceUint32 reslices bytes into a uint32, that is used
// to sumbit vulkan shaders for processing. Trailing bytes
// that do not fill a whole word are dropped.
func SliceUint32(data []byte) []uint32 {
	if len(data) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}
