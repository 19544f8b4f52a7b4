// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package collide

import (
	glm "github.com/go-gl/mathgl/mgl32"
)

// Point is a position in 2D space
type Point = glm.Vec2

// Rect is an axis aligned rectangle, X and Y being the top-left corner.
// Width and height are expected to be non-negative.
type Rect struct {
	X, Y float32
	W, H float32
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float32 {
	return r.X + r.W
}

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float32 {
	return r.Y + r.H
}

// Overlaps reports whether r and o share at least one point.
// Rectangles touching at an edge or a corner overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() &&
		r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// Contains reports whether p lies inside r or on its boundary
func (r Rect) Contains(p Point) bool {
	return p.X() >= r.X && p.X() <= r.Right() &&
		p.Y() >= r.Y && p.Y() <= r.Bottom()
}

// Circle is defined by its center and radius
type Circle struct {
	Center Point
	Radius float32
}

// Overlaps reports whether the two discs share at least one point,
// external tangency included
func (c Circle) Overlaps(o Circle) bool {
	reach := c.Radius + o.Radius
	d := o.Center.Sub(c.Center)
	return d.Dot(d) <= reach*reach
}

// Contains reports whether p lies inside c or on its circumference
func (c Circle) Contains(p Point) bool {
	d := p.Sub(c.Center)
	return d.Dot(d) <= c.Radius*c.Radius
}

// OverlapsRect tests the closest point of r to the circle's center.
func (c Circle) OverlapsRect(r Rect) bool {
	closest := Point{
		clamp(c.Center.X(), r.X, r.Right()),
		clamp(c.Center.Y(), r.Y, r.Bottom()),
	}
	return c.Contains(closest)
}

// Triangle is defined by three vertices in any winding order
type Triangle struct {
	P [3]Point
}

// Contains reports whether p lies inside t or on one of its edges.
// A degenerate triangle contains exactly the points of its segments.
func (t Triangle) Contains(p Point) bool {
	a, b, c := t.P[0], t.P[1], t.P[2]
	if cross(a, b, c) == 0 {
		return onSegment(p, a, b) || onSegment(p, b, c) || onSegment(p, a, c)
	}

	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// cross is the z component of (b-a)x(c-a)
func cross(a, b, c Point) float32 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

func onSegment(p, a, b Point) bool {
	if cross(a, b, p) != 0 {
		return false
	}
	return p.X() >= min(a.X(), b.X()) && p.X() <= max(a.X(), b.X()) &&
		p.Y() >= min(a.Y(), b.Y()) && p.Y() <= max(a.Y(), b.Y())
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
