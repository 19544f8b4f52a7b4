// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package source provides the places assets are read from
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobuffalo/packd"
	"github.com/gobuffalo/packr"
)

// ErrNotFound is returned when no finder has the requested file
var ErrNotFound = errors.New("asset source not found")

// Finder returns the contents of a named file.
// packr boxes, packd boxes and kar archives are all finders.
type Finder interface {
	Find(name string) ([]byte, error)
}

// Box returns a finder over a packr box rooted at dir.
// Relative dirs are resolved against the working directory.
func Box(dir string) (Finder, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	box := packr.NewBox(abs)
	return &box, nil
}

// Memory returns a finder holding the given files in memory
func Memory(files map[string][]byte) Finder {
	box := packd.NewMemoryBox()
	for name, data := range files {
		box.AddBytes(name, data)
	}
	return box
}

// Chain looks a file up in each finder in order and returns the first hit
type Chain []Finder

// Find implements Finder
func (c Chain) Find(name string) ([]byte, error) {
	var errs []string
	for _, f := range c {
		data, err := f.Find(name)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err.Error())
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return nil, fmt.Errorf("%w: %s (%s)", ErrNotFound, name, strings.Join(errs, "; "))
}
