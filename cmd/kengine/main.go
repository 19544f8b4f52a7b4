package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/core"
	"github.com/devblok/kengine/host"
	"github.com/devblok/kengine/host/ebitenhost"
	"github.com/devblok/kengine/host/headless"
	"github.com/devblok/kengine/host/sdlhost"
	"github.com/devblok/kengine/manifest"
)

func init() {
	runtime.LockOSThread()
}

var (
	hostName = flag.String("host", "", "Window backend: sdl, ebiten or headless (default from KENGINE_HOST)")
	envFile  = flag.String("env", ".env", "Dotenv file to load")
)

func main() {
	flag.Parse()

	cfg, err := core.LoadConfiguration(*envFile)
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if err := core.SetupLogging(cfg.Log); err != nil {
		log.WithError(err).Fatal("failed to set up logging")
	}
	if *hostName != "" {
		cfg.Window.Host = *hostName
	}

	log.WithFields(log.Fields{
		"host":        cfg.Window.Host,
		"environment": core.Environment(),
		"assets":      cfg.Assets.Dir,
	}).Info("starting")

	if err := run(cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("game exited")
	}
	log.Info("game exited")
}

func run(cfg core.Configuration) error {
	w := newWorld(cfg.Window.Width, cfg.Window.Height)

	switch cfg.Window.Host {
	case "headless":
		g, err := setup[host.Nop](cfg, headlessScene{w})
		if err != nil {
			return err
		}
		defer g.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return headless.Run(ctx, g, headless.Config{
			Hz:    cfg.Time.FramesPerSecond,
			Ticks: cfg.Window.Ticks,
		})

	case "ebiten":
		scene := &ebitenScene{world: w}
		g, err := setup[*ebiten.Image](cfg, scene)
		if err != nil {
			return err
		}
		defer g.Close()

		scene.sprite = asset.Get(g.Assets(), ebitenhost.ImageLoader(g.Files(), asset.Defaulting[string, *ebitenhost.Image]{
			Default: ebitenhost.Placeholder,
		}), "player.png")
		defer scene.sprite.Release()

		return ebitenhost.Run(g, ebitenhost.Config{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			TPS:    cfg.Time.FramesPerSecond,
		})

	case "sdl":
		g, err := setup[*sdl.Renderer](cfg, sdlScene{w})
		if err != nil {
			return err
		}
		defer g.Close()

		return sdlhost.Run(g, sdlhost.Config{
			Title:  cfg.Window.Title,
			Width:  cfg.Window.Width,
			Height: cfg.Window.Height,
			Time:   cfg.Time,
		})
	}
	return errors.New("unknown host: " + cfg.Window.Host)
}

// setup creates the game and preloads the manifest when there is one
func setup[C any](cfg core.Configuration, scene host.Game[C]) (*core.Game[C], error) {
	g, err := core.NewGame(cfg, scene, nil)
	if err != nil {
		return nil, err
	}

	path := cfg.Assets.Manifest
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.Assets.Dir, path)
	}
	m, err := manifest.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("manifest", path).Warn("no asset manifest, nothing preloaded")
		return g, nil
	}
	if err != nil {
		g.Close()
		return nil, err
	}
	if err := g.LoadManifest(m); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}
