// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"errors"
)

// Loader binds a source type, an asset type and a failure policy together.
// A Loader is a descriptor: declare one per asset kind and pass it to Load,
// Get or GetStatic.
//
// TryLoad must either return a fully constructed asset and a nil error, or
// release whatever it acquired and return an error.
type Loader[S comparable, T Asset] struct {
	// Name identifies the loader in the registry and in logs.
	// Loaders sharing a name share cached assets.
	Name string

	// TryLoad reads the asset from src
	TryLoad func(src S) (T, error)

	// Fail decides what to do when TryLoad fails, defaults to Mandatory
	Fail FailResponse[S, T]
}

// Try calls TryLoad, wrapping any failure into a *LoadError
func (l *Loader[S, T]) Try(src S) (T, error) {
	item, err := l.TryLoad(src)
	if err != nil {
		var zero T
		var le *LoadError
		if errors.As(err, &le) {
			return zero, err
		}
		return zero, &LoadError{Loader: l.Name, Source: src, Err: err}
	}
	return item, nil
}

// Load reads the asset from src and never fails: load errors are resolved
// by the loader's FailResponse.
func (l *Loader[S, T]) Load(src S) T {
	item, err := l.Try(src)
	return l.ensure(src, item, err)
}

func (l *Loader[S, T]) ensure(src S, item T, err error) T {
	fail := l.Fail
	if fail == nil {
		fail = Mandatory[S, T]{}
	}
	return fail.Ensure(l, src, item, err)
}
