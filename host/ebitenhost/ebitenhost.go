// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package ebitenhost runs a game in an ebiten window
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/devblok/kengine/host"
)

// Config describes the window
type Config struct {
	Title  string
	Width  int
	Height int

	// TPS is the tick rate, ebiten's default when not set
	TPS int
}

// Run opens the window and drives g until the window is closed.
// ebiten calls Update at the tick rate and Draw at the display rate, so
// the two can run a different number of times per frame. The game is
// ticked and drawn together from Draw instead, once per drawn frame.
func Run(g host.Game[*ebiten.Image], cfg Config) error {
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	return ebiten.RunGame(NewGame(g, cfg))
}

// Game adapts a host.Game to ebiten.Game
type Game struct {
	game          host.Game[*ebiten.Image]
	width, height int
}

// NewGame wraps g; the logical screen is cfg.Width by cfg.Height
func NewGame(g host.Game[*ebiten.Image], cfg Config) *Game {
	return &Game{game: g, width: cfg.Width, height: cfg.Height}
}

// Update implements ebiten.Game. The game ticks in Draw.
func (g *Game) Update() error {
	return nil
}

// Draw implements ebiten.Game: one tick, then one draw
func (g *Game) Draw(screen *ebiten.Image) {
	host.Frame(g.game, screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
