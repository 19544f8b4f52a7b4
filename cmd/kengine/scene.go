package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/collide"
	"github.com/devblok/kengine/host"
	"github.com/devblok/kengine/host/ebitenhost"
)

var (
	obstacleColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	ballColor     = color.RGBA{R: 0xff, G: 0xc0, B: 0x20, A: 0xff}
)

type headlessScene struct {
	*world
}

func (headlessScene) Draw(host.Nop) {}

type sdlScene struct {
	*world
}

func (s sdlScene) Draw(r *sdl.Renderer) {
	r.SetDrawColor(obstacleColor.R, obstacleColor.G, obstacleColor.B, obstacleColor.A)
	for _, o := range s.obstacles {
		r.FillRect(sdlRect(o))
	}

	b := s.ball
	r.SetDrawColor(ballColor.R, ballColor.G, ballColor.B, ballColor.A)
	r.FillRect(sdlRect(collide.Rect{
		X: b.Center.X() - b.Radius,
		Y: b.Center.Y() - b.Radius,
		W: 2 * b.Radius,
		H: 2 * b.Radius,
	}))
}

func sdlRect(r collide.Rect) *sdl.Rect {
	return &sdl.Rect{X: int32(r.X), Y: int32(r.Y), W: int32(r.W), H: int32(r.H)}
}

type ebitenScene struct {
	*world
	sprite *asset.Handle[*ebitenhost.Image]
}

func (s *ebitenScene) Draw(screen *ebiten.Image) {
	for _, o := range s.obstacles {
		vector.DrawFilledRect(screen, o.X, o.Y, o.W, o.H, obstacleColor, false)
	}

	b := s.ball
	img := s.sprite.Get()
	if img == nil || img.Image == nil {
		vector.DrawFilledCircle(screen, b.Center.X(), b.Center.Y(), b.Radius, ballColor, true)
		return
	}
	size := img.Bounds().Size()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(2*b.Radius)/float64(size.X), float64(2*b.Radius)/float64(size.Y))
	op.GeoM.Translate(float64(b.Center.X()-b.Radius), float64(b.Center.Y()-b.Radius))
	screen.DrawImage(img.Image, op)
}
