package main

import (
	glm "github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/kengine/collide"
)

// world is a ball bouncing around an arena with a few obstacles
type world struct {
	arena     collide.Rect
	ball      collide.Circle
	velocity  glm.Vec2
	obstacles []collide.Rect
	hits      int
}

func newWorld(width, height int) *world {
	w, h := float32(width), float32(height)
	return &world{
		arena:    collide.Rect{W: w, H: h},
		ball:     collide.Circle{Center: collide.Point{w / 4, h / 2}, Radius: 12},
		velocity: glm.Vec2{3, 2},
		obstacles: []collide.Rect{
			{X: w / 2, Y: h / 4, W: 24, H: h / 2},
			{X: w / 8, Y: h / 8, W: w / 4, H: 16},
		},
	}
}

// Tick moves the ball, bouncing off obstacles and the arena edges
func (w *world) Tick() {
	next := w.ball
	next.Center = next.Center.Add(w.velocity)

	for i, o := range w.obstacles {
		if !collide.Collide(next, o) {
			continue
		}
		w.hits++
		// reflect along the axis the ball came in on
		was := w.ball
		was.Center[1] = next.Center[1]
		if collide.Collide(was, o) {
			w.velocity[1] = -w.velocity[1]
		} else {
			w.velocity[0] = -w.velocity[0]
		}
		log.WithFields(log.Fields{
			"obstacle": i,
			"hits":     w.hits,
		}).Debug("ball hit obstacle")
		return
	}

	r := next.Radius
	inner := collide.Rect{X: w.arena.X + r, Y: w.arena.Y + r, W: w.arena.W - 2*r, H: w.arena.H - 2*r}
	if !inner.Contains(next.Center) {
		if next.Center.X() < inner.X || next.Center.X() > inner.Right() {
			w.velocity[0] = -w.velocity[0]
		}
		if next.Center.Y() < inner.Y || next.Center.Y() > inner.Bottom() {
			w.velocity[1] = -w.velocity[1]
		}
		return
	}
	w.ball = next
}
