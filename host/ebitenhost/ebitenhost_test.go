// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package ebitenhost_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/devblok/kengine/host/ebitenhost"
)

type recorder struct {
	calls []string
}

func (r *recorder) Tick() {
	r.calls = append(r.calls, "tick")
}

func (r *recorder) Draw(*ebiten.Image) {
	r.calls = append(r.calls, "draw")
}

func TestGame(t *testing.T) {
	c := qt.New(t)
	scene := &recorder{}
	g := ebitenhost.NewGame(scene, ebitenhost.Config{Width: 320, Height: 240})

	c.Assert(g.Update(), qt.IsNil)
	g.Draw(nil)
	c.Assert(scene.calls, qt.DeepEquals, []string{"tick", "draw"})

	// extra updates between frames do not tick
	c.Assert(g.Update(), qt.IsNil)
	c.Assert(g.Update(), qt.IsNil)
	g.Draw(nil)
	// a frame without an update still ticks first
	g.Draw(nil)
	c.Assert(scene.calls, qt.DeepEquals, []string{"tick", "draw", "tick", "draw", "tick", "draw"})

	w, h := g.Layout(1920, 1080)
	c.Assert(w, qt.Equals, 320)
	c.Assert(h, qt.Equals, 240)
}

func TestImageReleaseNil(t *testing.T) {
	var img *ebitenhost.Image
	img.Release()
	(&ebitenhost.Image{}).Release()
}

var _ ebiten.Game = (*ebitenhost.Game)(nil)
