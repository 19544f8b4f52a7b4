package core

import (
	"fmt"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/host"
	"github.com/devblok/kengine/manifest"
	"github.com/devblok/kengine/model"
	"github.com/devblok/kengine/shader"
	"github.com/devblok/kengine/source"
	"github.com/devblok/kengine/texture"
)

// Game is the top-level game state handle handed to a host.
// It owns the asset registry and the assets preloaded from the manifest,
// and forwards Tick and Draw to the scene.
type Game[C any] struct {
	cfg    Configuration
	scene  host.Game[C]
	assets *asset.Assets
	log    log.FieldLogger

	mutex   sync.RWMutex
	files   source.Chain
	items   map[string]asset.Asset
	handles []asset.Asset
	frames  uint64
}

// NewGame creates a game running scene, reading loose asset files from
// cfg.Assets.Dir. A nil logger uses the standard logrus logger.
func NewGame[C any](cfg Configuration, scene host.Game[C], logger log.FieldLogger) (*Game[C], error) {
	if logger == nil {
		logger = log.StandardLogger()
	}

	box, err := source.Box(cfg.Assets.Dir)
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}

	return &Game[C]{
		cfg:    cfg,
		scene:  scene,
		assets: asset.New(asset.WithLogger(logger)),
		log:    logger,
		files:  source.Chain{box},
		items:  make(map[string]asset.Asset),
	}, nil
}

// Assets returns the game's asset registry
func (g *Game[C]) Assets() *asset.Assets {
	return g.assets
}

// Files returns the finder over mounted archives and the asset dir.
// Archives take precedence in declaration order.
func (g *Game[C]) Files() source.Finder {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.files
}

// Frames returns the number of ticks so far
func (g *Game[C]) Frames() uint64 {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.frames
}

// Tick advances the scene by one frame
func (g *Game[C]) Tick() {
	g.mutex.Lock()
	g.frames++
	g.mutex.Unlock()
	g.scene.Tick()
}

// Draw draws the scene
func (g *Game[C]) Draw(ctx C) {
	g.scene.Draw(ctx)
}

// LoadManifest mounts the manifest's archives and preloads its assets.
// Unknown asset kinds are reported before anything is mounted or loaded.
// Static entries stay resident until Close, the others are held through
// a handle until Close. A mandatory asset that fails to load panics with
// an *asset.FatalError, like any other mandatory load.
func (g *Game[C]) LoadManifest(m *manifest.Manifest) error {
	for _, e := range m.Assets {
		if !kinds[e.Kind] {
			return fmt.Errorf("asset %q: unknown kind %q", e.Name, e.Kind)
		}
	}

	mounted := asset.Mandatory[string, *source.Archive]{Logger: g.log}
	for _, a := range m.Archives {
		path := a.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(g.cfg.Assets.Dir, path)
		}
		ar := asset.GetStatic(g.assets, source.ArchiveLoader(mounted), path)

		g.mutex.Lock()
		// the asset dir stays last
		last := len(g.files) - 1
		files := make(source.Chain, 0, len(g.files)+1)
		files = append(files, g.files[:last]...)
		g.files = append(files, ar, g.files[last])
		g.mutex.Unlock()

		g.log.WithFields(log.Fields{
			"archive": a.Name,
			"path":    path,
			"files":   len(ar.Names()),
		}).Info("mounted archive")
	}

	for _, e := range m.Assets {
		switch e.Kind {
		case "texture":
			preload(g, e, texture.Loader, texture.Placeholder)
		case "mesh":
			preload(g, e, model.Loader, nil)
		case "shader":
			preload(g, e, shader.Loader, nil)
		}
	}
	return nil
}

// kinds are the asset kinds a manifest may preload
var kinds = map[string]bool{
	"texture": true,
	"mesh":    true,
	"shader":  true,
}

func preload[C any, T asset.Asset](
	g *Game[C],
	e manifest.Entry,
	newLoader func(source.Finder, asset.FailResponse[string, T]) *asset.Loader[string, T],
	def func() T,
) {
	var fail asset.FailResponse[string, T] = asset.Mandatory[string, T]{Logger: g.log}
	if e.Policy == manifest.PolicyDefault {
		fail = asset.Defaulting[string, T]{Default: def, Logger: g.log}
	}
	l := newLoader(g.Files(), fail)

	var item T
	var held asset.Asset
	if e.Static {
		item = asset.GetStatic(g.assets, asset.Pin(l), e.Source).Item
	} else {
		h := asset.Get(g.assets, l, e.Source)
		item, held = h.Get(), h
	}

	g.mutex.Lock()
	g.items[e.Name] = item
	if held != nil {
		g.handles = append(g.handles, held)
	}
	g.mutex.Unlock()

	g.log.WithFields(log.Fields{
		"asset":  e.Name,
		"kind":   e.Kind,
		"source": e.Source,
		"static": e.Static,
	}).Debug("preloaded asset")
}

// Lookup returns the preloaded asset named in the manifest.
// Defaulted entries hold whatever their kind's default is, possibly nil.
func Lookup[T asset.Asset, C any](g *Game[C], name string) (T, bool) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	item, ok := g.items[name].(T)
	return item, ok
}

// Close drops the preloaded handles and closes the asset registry
func (g *Game[C]) Close() {
	g.mutex.Lock()
	handles := g.handles
	g.handles = nil
	g.items = make(map[string]asset.Asset)
	g.files = g.files[len(g.files)-1:]
	g.mutex.Unlock()

	for _, h := range handles {
		h.Release()
	}
	g.assets.Close()
}
