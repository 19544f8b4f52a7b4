package core

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/gobuffalo/envy"
	"github.com/joho/godotenv"
)

// Configuration defines a global engine configuration setting
type Configuration struct {
	Time   TimeConfiguration
	Window WindowConfiguration
	Assets AssetConfiguration
	Log    LogConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int `env:"KENGINE_FPS" envDefault:"60"`

	// EventPollDelay is the delay between window event polls in milliseconds
	EventPollDelay int `env:"KENGINE_EVENT_POLL_DELAY" envDefault:"10"`
}

// WindowConfiguration is used to configure the game window
type WindowConfiguration struct {
	Title  string `env:"KENGINE_TITLE" envDefault:"Kengine"`
	Width  int    `env:"KENGINE_WIDTH" envDefault:"800"`
	Height int    `env:"KENGINE_HEIGHT" envDefault:"600"`

	// Host selects the window backend: sdl, ebiten or headless
	Host string `env:"KENGINE_HOST" envDefault:"sdl"`

	// Ticks stops a headless host after that many frames, 0 runs forever
	Ticks uint64 `env:"KENGINE_TICKS"`
}

// AssetConfiguration tells where assets are read from
type AssetConfiguration struct {
	Dir      string `env:"KENGINE_ASSET_DIR" envDefault:"./assets"`
	Manifest string `env:"KENGINE_MANIFEST" envDefault:"assets.hcl"`
}

// LogConfiguration is used to configure logging
type LogConfiguration struct {
	// Level is a logrus level name, empty picks one by environment
	Level string `env:"KENGINE_LOG_LEVEL"`
	JSON  bool   `env:"KENGINE_LOG_JSON"`
}

// Environment returns GO_ENV, defaulting to development
func Environment() string {
	return envy.Get("GO_ENV", "development")
}

// LoadConfiguration reads the configuration from the environment.
// The given dotenv files, or .env when none are given, are loaded first;
// missing files are not an error. Variables already set take precedence.
func LoadConfiguration(files ...string) (Configuration, error) {
	var cfg Configuration
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load dotenv: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Log.Level == "" {
		if Environment() == "production" {
			cfg.Log.Level = "info"
		} else {
			cfg.Log.Level = "debug"
		}
	}
	return cfg, nil
}
