// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package manifest decodes the HCL files listing the assets a game
// preloads at startup:
//
//	archive "base" {
//	  path = "base.kar"
//	}
//
//	asset "texture" "player" {
//	  source = "sprites/player.png"
//	  static = true
//	  policy = "mandatory"
//	}
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Policies understood in asset blocks
const (
	PolicyMandatory = "mandatory"
	PolicyDefault   = "default"
)

// ErrInvalid is returned for manifests that decode but make no sense
var ErrInvalid = errors.New("invalid manifest")

// Manifest is a decoded manifest file
type Manifest struct {
	Archives []Archive `hcl:"archive,block"`
	Assets   []Entry   `hcl:"asset,block"`
}

// Archive is a kar archive mounted as an asset source.
// Archives are searched in the order they are declared.
type Archive struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

// Entry is one asset to preload
type Entry struct {
	Kind   string `hcl:"kind,label"`
	Name   string `hcl:"name,label"`
	Source string `hcl:"source"`
	Static bool   `hcl:"static,optional"`
	Policy string `hcl:"policy,optional"`
}

// Parse decodes manifest source; filename is only used in diagnostics
func Parse(src []byte, filename string) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var m Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &m); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &m, nil
}

// Load reads and decodes the manifest file at path
func Load(path string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(src, path)
}

// Validate checks names are unique and policies are known
func (m *Manifest) Validate() error {
	archives := make(map[string]bool, len(m.Archives))
	for _, a := range m.Archives {
		if archives[a.Name] {
			return fmt.Errorf("%w: archive %q declared twice", ErrInvalid, a.Name)
		}
		archives[a.Name] = true
	}

	names := make(map[string]bool, len(m.Assets))
	for _, e := range m.Assets {
		if names[e.Name] {
			return fmt.Errorf("%w: asset %q declared twice", ErrInvalid, e.Name)
		}
		names[e.Name] = true

		switch e.Policy {
		case "", PolicyMandatory, PolicyDefault:
		default:
			return fmt.Errorf("%w: asset %q has unknown policy %q", ErrInvalid, e.Name, e.Policy)
		}
	}
	return nil
}
