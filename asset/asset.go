// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset manages the lifetime of externally sourced resources.
//
// A Loader describes how one kind of asset is read from its source and what
// happens when reading fails. The Assets registry keeps loaded assets
// resident, deduplicated by source: static assets stay until the registry is
// closed, dynamic assets are shared through reference counted handles and
// released when the last handle goes away.
package asset

import (
	"fmt"
)

// Asset is a loaded resource that owns native or external handles.
// Release frees all of them; the registry calls it exactly once.
type Asset interface {
	Release()
}

// StaticAsset marks an asset type that is loaded once and stays resident
// for as long as the registry that loaded it. Static has no behaviour,
// it only makes the type eligible for GetStatic.
type StaticAsset interface {
	Asset
	Static()
}

// LoadError describes why a loader failed to produce an asset
type LoadError struct {
	Loader string
	Source any
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: loading %v: %v", e.Loader, e.Source, e.Err)
}

// Unwrap returns the loader specific cause
func (e *LoadError) Unwrap() error {
	return e.Err
}

// FatalError is the panic value raised for a mandatory asset that
// failed to load.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("mandatory asset failed to load: %v", e.Err)
}

// Unwrap returns the load error
func (e *FatalError) Unwrap() error {
	return e.Err
}
