// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handle is one owning reference to a shared asset.
// Handles are created by Get and Clone and must be released with Release.
// A handle that is garbage collected without being released is released
// by its finalizer and reported as a leak.
type Handle[T Asset] struct {
	assets *Assets
	key    key
	entry  *entry
	item   T

	once     sync.Once
	released bool
}

func newHandle[T Asset](a *Assets, k key, e *entry, item T) *Handle[T] {
	h := &Handle[T]{
		assets: a,
		key:    k,
		entry:  e,
		item:   item,
	}
	runtime.SetFinalizer(h, func(h *Handle[T]) {
		h.assets.log.WithFields(log.Fields{
			"loader": h.key.loader,
			"source": h.key.source,
		}).Warn("asset handle was never released")
		h.Release()
	})
	return h
}

// Get returns the asset. It must not be used after the handle is released.
func (h *Handle[T]) Get() T {
	return h.item
}

// Clone returns a new handle sharing the same asset.
// Cloning a released handle panics.
func (h *Handle[T]) Clone() *Handle[T] {
	a := h.assets
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if h.released {
		panic("asset: clone of a released handle")
	}
	if !h.entry.released {
		h.entry.refs++
	}
	return newHandle(a, h.key, h.entry, h.item)
}

// Release gives up this reference. Releasing the same handle twice does nothing.
func (h *Handle[T]) Release() {
	h.once.Do(func() {
		runtime.SetFinalizer(h, nil)
		h.assets.mutex.Lock()
		h.released = true
		h.assets.mutex.Unlock()
		h.assets.release(h.key, h.entry)
	})
}
