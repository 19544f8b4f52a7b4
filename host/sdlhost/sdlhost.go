// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package sdlhost runs a game in an SDL2 window. SDL must be driven from
// the main thread, so callers lock it in their main package's init.
package sdlhost

import (
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/kengine/core"
	"github.com/devblok/kengine/host"
)

// Config describes the window and its frame timing
type Config struct {
	Title  string
	Width  int
	Height int
	Time   core.TimeConfiguration
}

// Run opens the window and drives g until Escape is pressed or the window
// is closed. Events are polled on the event ticker, frames are drawn on
// the fps ticker.
func Run(g host.Game[*sdl.Renderer], cfg Config) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return err
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	time := core.NewTime(cfg.Time)
	defer time.Stop()

	for {
		select {
		case <-time.EventTicker().C:
			if quit := pollEvents(); quit {
				log.Debug("event loop exited")
				return nil
			}
		case <-time.FpsTicker().C:
			g.Tick()
			if err := renderer.SetDrawColor(0, 0, 0, 0xff); err != nil {
				return err
			}
			if err := renderer.Clear(); err != nil {
				return err
			}
			g.Draw(renderer)
			renderer.Present()
		}
	}
}

func pollEvents() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				return true
			}
		case *sdl.QuitEvent:
			return true
		}
	}
	return false
}
