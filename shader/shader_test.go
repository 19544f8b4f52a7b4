// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package shader_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/shader"
	"github.com/devblok/kengine/source"
)

func spirv(words ...uint32) []byte {
	data := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(data[4*i:], w)
	}
	return data
}

func TestTypeOf(t *testing.T) {
	c := qt.New(t)
	c.Assert(shader.TypeOf("basic.vert.spv"), qt.Equals, shader.VertexType)
	c.Assert(shader.TypeOf("shaders/basic.frag.spv"), qt.Equals, shader.FragmentType)
	c.Assert(shader.TypeOf("basic.geom.spv"), qt.Equals, shader.UnknownType)
	c.Assert(shader.TypeOf("basic.spv"), qt.Equals, shader.UnknownType)
	c.Assert(shader.FragmentType.String(), qt.Equals, "fragment")
}

func TestLoader(t *testing.T) {
	c := qt.New(t)
	f := source.Memory(map[string][]byte{
		"basic.vert.spv": spirv(0x07230203, 0x00010000, 7),
		"bad.frag.spv":   spirv(0xdeadbeef, 1),
		"odd.frag.spv":   {1, 2, 3},
	})
	l := shader.Loader(f, nil)

	s := l.Load("basic.vert.spv")
	c.Assert(s.Type, qt.Equals, shader.VertexType)
	c.Assert(s.Code(), qt.DeepEquals, []uint32{0x07230203, 0x00010000, 7})

	for _, name := range []string{"bad.frag.spv", "odd.frag.spv"} {
		_, err := l.Try(name)
		c.Assert(errors.Is(err, shader.ErrNotSpirv), qt.IsTrue, qt.Commentf("%s: %v", name, err))
	}

	s.Release()
	c.Assert(s.Code(), qt.IsNil)
}

func TestDiscover(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.MkdirAll(filepath.Join(dir, "sub"), 0o755), qt.IsNil)
	for _, name := range []string{"a.vert.spv", "sub/b.frag.spv", "c.comp.spv", "readme.txt", "d.vert.glsl"} {
		c.Assert(os.WriteFile(filepath.Join(dir, name), spirv(0x07230203), 0o644), qt.IsNil)
	}

	names, types, err := shader.Discover(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(names, qt.DeepEquals, []string{"a.vert.spv", "sub/b.frag.spv"})
	c.Assert(types, qt.DeepEquals, []shader.Type{shader.VertexType, shader.FragmentType})

	boxed, err := source.Box(dir)
	c.Assert(err, qt.IsNil)
	assets := asset.New()
	defer assets.Close()
	h := asset.Get(assets, shader.Loader(boxed, nil), names[1])
	defer h.Release()
	c.Assert(h.Get().Type, qt.Equals, shader.FragmentType)
}

func BenchmarkSliceUint32Small(b *testing.B) {
	data := make([]byte, 100)
	for idx := 0; idx < b.N; idx++ {
		shader.SliceUint32(data)
	}
}

func BenchmarkSliceUint32Big(b *testing.B) {
	data := make([]byte, 100000)
	for idx := 0; idx < b.N; idx++ {
		shader.SliceUint32(data)
	}
}
