// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package headless_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/kengine/host"
	"github.com/devblok/kengine/host/headless"
)

type counter struct {
	ticks, draws atomic.Int64
	order        atomic.Bool
}

func (c *counter) Tick() {
	c.ticks.Add(1)
}

func (c *counter) Draw(host.Nop) {
	if c.draws.Add(1) != c.ticks.Load() {
		c.order.Store(true)
	}
}

func TestRunTicks(t *testing.T) {
	c := qt.New(t)
	g := &counter{}
	err := headless.Run(context.Background(), g, headless.Config{Hz: 1000, Ticks: 5})
	c.Assert(err, qt.IsNil)
	c.Assert(g.ticks.Load(), qt.Equals, int64(5))
	c.Assert(g.draws.Load(), qt.Equals, int64(5))
	c.Assert(g.order.Load(), qt.IsFalse, qt.Commentf("draw ran before its tick"))
}

func TestRunCancel(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	g := &counter{}
	err := headless.Run(ctx, g, headless.Config{Hz: 1000})
	c.Assert(err, qt.ErrorIs, context.DeadlineExceeded)
	c.Assert(g.ticks.Load() > 0, qt.IsTrue)
}

func TestRunInvalidHz(t *testing.T) {
	c := qt.New(t)
	for _, hz := range []int{-1, 1e9 + 1, 4e9} {
		err := headless.Run(context.Background(), &counter{}, headless.Config{Hz: hz})
		c.Assert(err, qt.ErrorMatches, fmt.Sprintf(`invalid headless hz: %d`, hz))
	}
}
