// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

// Pinned keeps an asset of any kind resident for the registry's lifetime
type Pinned[T Asset] struct {
	Item T
}

// Release releases the pinned asset
func (p *Pinned[T]) Release() {
	releaseAsset(p.Item)
}

// Static implements StaticAsset
func (*Pinned[T]) Static() {}

// Pin derives a loader for static use from l. Failures are resolved by
// l's own FailResponse. The pinned loader uses its own cache keys, so an
// asset pinned and also shared through Get is loaded twice.
func Pin[S comparable, T Asset](l *Loader[S, T]) *Loader[S, *Pinned[T]] {
	return &Loader[S, *Pinned[T]]{
		Name: l.Name + ":static",
		TryLoad: func(src S) (*Pinned[T], error) {
			return &Pinned[T]{Item: l.Load(src)}, nil
		},
	}
}
