// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package source

import (
	"github.com/devblok/kengine/asset"
	"github.com/devblok/kengine/utility/kar"
)

// Archive is a mounted kar archive. It is a static asset: archives are
// mapped once and stay mapped until the registry is closed.
type Archive struct {
	*kar.Archive
	path string
}

// Path returns the file the archive was mapped from
func (a *Archive) Path() string {
	return a.path
}

// Release unmaps the archive
func (a *Archive) Release() {
	if a == nil || a.Archive == nil {
		return
	}
	a.Archive.Close()
}

// Static implements asset.StaticAsset
func (*Archive) Static() {}

// ArchiveLoader mounts kar archives by file path
func ArchiveLoader(fail asset.FailResponse[string, *Archive]) *asset.Loader[string, *Archive] {
	return &asset.Loader[string, *Archive]{
		Name: "archive",
		TryLoad: func(path string) (*Archive, error) {
			ar, err := kar.OpenFile(path)
			if err != nil {
				return nil, err
			}
			return &Archive{Archive: ar, path: path}, nil
		},
		Fail: fail,
	}
}
