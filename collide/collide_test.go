// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package collide_test

import (
	"math/rand"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/kengine/collide"
)

func TestRectOverlap(t *testing.T) {
	c := qt.New(t)
	base := collide.Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name  string
		other collide.Rect
		want  bool
	}{
		{"inside", collide.Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", collide.Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", collide.Rect{X: 10, Y: 0, W: 5, H: 5}, true},
		{"touching corner", collide.Rect{X: 10, Y: 10, W: 5, H: 5}, true},
		{"apart", collide.Rect{X: 10.5, Y: 0, W: 5, H: 5}, false},
		{"below", collide.Rect{X: 0, Y: 11, W: 5, H: 5}, false},
	}

	for _, test := range tests {
		c.Run(test.name, func(c *qt.C) {
			c.Assert(collide.Collide(base, test.other), qt.Equals, test.want)
			c.Assert(collide.Collide(test.other, base), qt.Equals, test.want)
		})
	}
}

func TestRectPointBoundary(t *testing.T) {
	c := qt.New(t)
	r := collide.Rect{X: 0, Y: 0, W: 4, H: 2}

	c.Assert(collide.Collide(r, collide.Point{4, 2}), qt.IsTrue)
	c.Assert(collide.Collide(collide.Point{0, 0}, r), qt.IsTrue)
	c.Assert(collide.Collide(r, collide.Point{2, 1}), qt.IsTrue)
	c.Assert(collide.Collide(r, collide.Point{4.01, 1}), qt.IsFalse)

	// a degenerate rectangle touching r agrees with the point test
	touching := collide.Rect{X: 4, Y: 2, W: 0, H: 0}
	c.Assert(collide.Collide(r, touching), qt.Equals, collide.Collide(r, collide.Point{4, 2}))
}

func TestCircles(t *testing.T) {
	c := qt.New(t)
	a := collide.Circle{Center: collide.Point{0, 0}, Radius: 1}

	c.Assert(collide.Collide(a, collide.Circle{Center: collide.Point{2, 0}, Radius: 1}), qt.IsTrue)
	c.Assert(collide.Collide(a, collide.Circle{Center: collide.Point{2, 0}, Radius: 0.5}), qt.IsFalse)
	c.Assert(collide.Collide(a, collide.Circle{Center: collide.Point{1, 0}, Radius: 1}), qt.IsTrue)

	c.Assert(collide.Collide(a, collide.Point{1, 0}), qt.IsTrue)
	c.Assert(collide.Collide(collide.Point{0.5, 0.5}, a), qt.IsTrue)
	c.Assert(collide.Collide(a, collide.Point{1, 1}), qt.IsFalse)
}

func TestCircleRect(t *testing.T) {
	c := qt.New(t)
	r := collide.Rect{X: 0, Y: 0, W: 2, H: 2}

	c.Assert(collide.Collide(collide.Circle{Center: collide.Point{3, 1}, Radius: 1}, r), qt.IsTrue)
	c.Assert(collide.Collide(r, collide.Circle{Center: collide.Point{3, 3}, Radius: 1}), qt.IsFalse)
	c.Assert(collide.Collide(r, collide.Circle{Center: collide.Point{1, 1}, Radius: 0.1}), qt.IsTrue)
}

func TestTriangleContains(t *testing.T) {
	c := qt.New(t)
	tri := collide.Triangle{P: [3]collide.Point{{0, 0}, {4, 0}, {0, 4}}}
	reversed := collide.Triangle{P: [3]collide.Point{{0, 4}, {4, 0}, {0, 0}}}

	points := []struct {
		p    collide.Point
		want bool
	}{
		{collide.Point{1, 1}, true},
		{collide.Point{2, 2}, true},
		{collide.Point{0, 0}, true},
		{collide.Point{3, 3}, false},
		{collide.Point{-0.1, 1}, false},
	}
	for _, pt := range points {
		c.Assert(collide.Collide(tri, pt.p), qt.Equals, pt.want, qt.Commentf("point %v", pt.p))
		c.Assert(collide.Collide(pt.p, reversed), qt.Equals, pt.want, qt.Commentf("point %v", pt.p))
	}

	line := collide.Triangle{P: [3]collide.Point{{0, 0}, {2, 0}, {4, 0}}}
	c.Assert(collide.Collide(line, collide.Point{3, 0}), qt.IsTrue)
	c.Assert(collide.Collide(line, collide.Point{5, 0}), qt.IsFalse)
}

func TestUnsupportedPair(t *testing.T) {
	c := qt.New(t)
	tri := collide.Triangle{}

	_, ok := collide.Default.Check(tri, collide.Rect{})
	c.Assert(ok, qt.IsFalse)
	c.Assert(collide.Collide(tri, collide.Rect{}), qt.IsFalse)
	c.Assert(collide.Default.Supports(collide.Point{}, tri), qt.IsTrue)
}

func TestSymmetry(t *testing.T) {
	c := qt.New(t)
	rnd := rand.New(rand.NewSource(42))
	f := func() float32 { return rnd.Float32()*20 - 10 }
	pos := func() float32 { return rnd.Float32() * 8 }

	for i := 0; i < 500; i++ {
		shapes := []any{
			collide.Rect{X: f(), Y: f(), W: pos(), H: pos()},
			collide.Rect{X: f(), Y: f(), W: pos(), H: pos()},
			collide.Circle{Center: collide.Point{f(), f()}, Radius: pos()},
			collide.Circle{Center: collide.Point{f(), f()}, Radius: pos()},
			collide.Triangle{P: [3]collide.Point{{f(), f()}, {f(), f()}, {f(), f()}}},
			collide.Point{f(), f()},
		}
		for _, a := range shapes {
			for _, b := range shapes {
				ab, okAB := collide.Default.Check(a, b)
				ba, okBA := collide.Default.Check(b, a)
				c.Assert(okAB, qt.Equals, okBA)
				c.Assert(ab, qt.Equals, ba, qt.Commentf("%#v vs %#v", a, b))
			}
		}
	}
}

type contact struct {
	Hit   bool
	Depth float32
}

type segment struct {
	From, To float32
}

func TestCustomOutput(t *testing.T) {
	c := qt.New(t)
	reg := collide.NewRegistry[contact]()
	collide.Register(reg, func(s segment, x float32) contact {
		if x < s.From || x > s.To {
			return contact{}
		}
		return contact{Hit: true, Depth: min(x-s.From, s.To-x)}
	})

	got, ok := collide.Check(reg, float32(3), segment{0, 10})
	c.Assert(ok, qt.IsTrue)
	c.Assert(got, qt.Equals, contact{Hit: true, Depth: 3})

	got, ok = collide.Check(reg, segment{0, 10}, float32(3))
	c.Assert(ok, qt.IsTrue)
	c.Assert(got, qt.Equals, contact{Hit: true, Depth: 3})
}

func TestRegisterTwicePanics(t *testing.T) {
	c := qt.New(t)
	reg := collide.NewRegistry[bool]()
	collide.Register(reg, collide.Circle.Contains)

	c.Assert(func() {
		collide.Register(reg, collide.Swap(collide.Predicate[collide.Circle, collide.Point, bool](collide.Circle.Contains)))
	}, qt.PanicMatches, `collide: pair .* already registered as .*`)
	c.Assert(func() {
		collide.Register(reg, collide.Circle.Contains)
	}, qt.PanicMatches, `collide: pair .* already registered`)
}

func BenchmarkCollideRects(b *testing.B) {
	r1 := collide.Rect{X: 0, Y: 0, W: 10, H: 10}
	r2 := collide.Rect{X: 5, Y: 5, W: 10, H: 10}
	for idx := 0; idx < b.N; idx++ {
		collide.Collide(r1, r2)
	}
}
