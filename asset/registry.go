// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const tracerName = "github.com/devblok/kengine/asset"

// Option configures an Assets registry
type Option func(*Assets)

// WithLogger sets the logger used for registry diagnostics
func WithLogger(l log.FieldLogger) Option {
	return func(a *Assets) {
		a.log = l
	}
}

// WithTracer sets the tracer used to record load spans
func WithTracer(t trace.Tracer) Option {
	return func(a *Assets) {
		a.tracer = t
	}
}

type key struct {
	loader string
	source any
}

// String is the in-flight key; %#v keeps distinct sources apart
func (k key) String() string {
	return fmt.Sprintf("%s\x00%#v", k.loader, k.source)
}

type entry struct {
	asset    Asset
	refs     int
	released bool
}

// Stats is a snapshot of the registry's bookkeeping
type Stats struct {
	Static  int
	Dynamic int
	Loads   int
}

// Assets is the collection of all resident game assets.
// Loading the same source through the same loader more than once, even
// from several goroutines at the same time, results in a single load.
type Assets struct {
	log    log.FieldLogger
	tracer trace.Tracer

	static   singleflight.Group
	dynamic  singleflight.Group
	mutex    sync.Mutex
	statics  map[key]StaticAsset
	order    []key
	resident map[key]*entry
	loads    int
}

// New creates an empty registry
func New(opts ...Option) *Assets {
	a := &Assets{
		log:      log.StandardLogger(),
		tracer:   otel.Tracer(tracerName),
		statics:  make(map[key]StaticAsset),
		resident: make(map[key]*entry),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// GetStatic returns the static asset loaded from src, loading it first if it
// is not resident yet. The asset stays resident until Close.
func GetStatic[S comparable, T StaticAsset](a *Assets, l *Loader[S, T], src S) T {
	k := key{loader: l.Name, source: src}

	a.mutex.Lock()
	res, ok := a.statics[k]
	a.mutex.Unlock()
	if ok {
		return staticAs[T](k, res)
	}

	v, err, _ := a.static.Do(k.String(), func() (v any, err error) {
		defer recoverLoad(&err)

		a.mutex.Lock()
		res, ok := a.statics[k]
		a.mutex.Unlock()
		if ok {
			return res, nil
		}

		item := load(a, l, src, "static")
		a.mutex.Lock()
		a.statics[k] = item
		a.order = append(a.order, k)
		a.mutex.Unlock()
		return StaticAsset(item), nil
	})
	repanic(err)
	res, _ = v.(StaticAsset)
	return staticAs[T](k, res)
}

// Get returns a handle to the shared asset loaded from src, loading it first
// if it is not resident. Each handle must be released; the asset is released
// together with its last handle.
func Get[S comparable, T Asset](a *Assets, l *Loader[S, T], src S) *Handle[T] {
	k := key{loader: l.Name, source: src}

	for {
		if h, ok := acquire[T](a, k, nil); ok {
			return h
		}

		v, err, _ := a.dynamic.Do(k.String(), func() (v any, err error) {
			defer recoverLoad(&err)

			a.mutex.Lock()
			e, ok := a.resident[k]
			a.mutex.Unlock()
			if ok {
				return e, nil
			}

			e = &entry{asset: load(a, l, src, "dynamic")}
			a.mutex.Lock()
			a.resident[k] = e
			a.mutex.Unlock()
			return e, nil
		})
		repanic(err)

		// the entry may have been loaded, shared and fully released again
		// before this caller got to it; start over in that case
		if h, ok := acquire[T](a, k, v.(*entry)); ok {
			return h
		}
	}
}

// acquire takes a reference on the resident entry for k. When want is set
// the resident entry must be exactly want.
func acquire[T Asset](a *Assets, k key, want *entry) (*Handle[T], bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	e, ok := a.resident[k]
	if !ok || e.released || (want != nil && e != want) {
		return nil, false
	}
	item, ok := e.asset.(T)
	if !ok && e.asset != nil {
		panic(fmt.Sprintf("asset: loader %q holds %T for %v, want %T", k.loader, e.asset, k.source, item))
	}
	e.refs++
	return newHandle(a, k, e, item), true
}

// release drops one reference, releasing the asset if it was the last one
func (a *Assets) release(k key, e *entry) {
	a.mutex.Lock()
	if e.released {
		a.mutex.Unlock()
		return
	}
	e.refs--
	if e.refs > 0 {
		a.mutex.Unlock()
		return
	}
	e.released = true
	if a.resident[k] == e {
		delete(a.resident, k)
	}
	a.mutex.Unlock()

	a.log.WithFields(log.Fields{
		"loader": k.loader,
		"source": k.source,
	}).Debug("releasing asset")
	releaseAsset(e.asset)
}

// Close releases every resident asset. Static assets are released in the
// reverse order of loading. Dynamic assets still referenced by handles are
// released as well and reported; releasing those handles afterwards is a no-op.
// The registry is empty and usable again once Close returns.
func (a *Assets) Close() {
	a.mutex.Lock()
	order, statics := a.order, a.statics
	var leaked []key
	var entries []*entry
	for k, e := range a.resident {
		e.released = true
		leaked = append(leaked, k)
		entries = append(entries, e)
	}
	a.order = nil
	a.statics = make(map[key]StaticAsset)
	a.resident = make(map[key]*entry)
	a.mutex.Unlock()

	for i, k := range leaked {
		a.log.WithFields(log.Fields{
			"loader": k.loader,
			"source": k.source,
			"refs":   entries[i].refs,
		}).Warn("releasing asset with live handles")
		releaseAsset(entries[i].asset)
	}

	for i := len(order) - 1; i >= 0; i-- {
		releaseAsset(statics[order[i]])
	}
}

// Stats returns the number of resident assets and loads performed so far
func (a *Assets) Stats() Stats {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return Stats{
		Static:  len(a.statics),
		Dynamic: len(a.resident),
		Loads:   a.loads,
	}
}

func load[S comparable, T Asset](a *Assets, l *Loader[S, T], src S, kind string) T {
	_, span := a.tracer.Start(context.Background(), "asset.load", trace.WithAttributes(
		attribute.String("asset.loader", l.Name),
		attribute.String("asset.source", fmt.Sprint(src)),
		attribute.String("asset.kind", kind),
	))
	defer span.End()

	a.mutex.Lock()
	a.loads++
	a.mutex.Unlock()

	item, err := l.Try(src)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		a.log.WithFields(log.Fields{
			"loader": l.Name,
			"source": src,
			"kind":   kind,
		}).Debug("asset loaded")
	}
	return l.ensure(src, item, err)
}

// releaseAsset skips nil assets, such as the zero value a Defaulting
// policy without a Default resolves to
func releaseAsset(as Asset) {
	if !isNil(as) {
		as.Release()
	}
}

func isNil(as Asset) bool {
	if as == nil {
		return true
	}
	switch v := reflect.ValueOf(as); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func staticAs[T StaticAsset](k key, res StaticAsset) T {
	item, ok := res.(T)
	if !ok && res != nil {
		panic(fmt.Sprintf("asset: loader %q holds %T for %v, want %T", k.loader, res, k.source, item))
	}
	return item
}

// loadPanic carries a panic raised by a fail response out of the
// in-flight group, so every waiting caller panics with the original value.
type loadPanic struct {
	value any
}

func (p *loadPanic) Error() string {
	return fmt.Sprint(p.value)
}

func recoverLoad(err *error) {
	if r := recover(); r != nil {
		*err = &loadPanic{value: r}
	}
}

func repanic(err error) {
	if p, ok := err.(*loadPanic); ok {
		panic(p.value)
	}
}
