// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package host describes what a windowing layer drives each frame.
// The runners live in the subpackages: headless, ebitenhost and sdlhost.
package host

// Drawable is anything that renders itself using a drawing context
// supplied by the host, e.g. an *ebiten.Image or an *sdl.Renderer.
type Drawable[C any] interface {
	Draw(ctx C)
}

// Game is the top-level game state handle. The host calls Tick and then
// Draw once per frame, until the window is closed.
type Game[C any] interface {
	Tick()
	Drawable[C]
}

// Frame runs one frame of g: Tick followed by Draw
func Frame[C any](g Game[C], ctx C) {
	g.Tick()
	g.Draw(ctx)
}

// Nop is the drawing context of hosts that do not render anything
type Nop struct{}
