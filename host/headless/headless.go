// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package headless runs a game at a fixed tick rate without a window
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/devblok/kengine/host"
)

// Config controls the headless runner
type Config struct {
	// Hz is the tick rate, 60 when not set
	Hz int

	// Ticks stops the runner after that many frames, 0 runs until ctx is done
	Ticks uint64
}

// Run ticks and draws g until ctx is done or cfg.Ticks frames have run.
// It returns ctx.Err() when stopped by the context.
func Run(ctx context.Context, g host.Game[host.Nop], cfg Config) error {
	if cfg.Hz == 0 {
		cfg.Hz = 60
	}
	interval := time.Second / time.Duration(cfg.Hz)
	if cfg.Hz < 0 || interval <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			host.Frame(g, host.Nop{})
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
