// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"log/slog"
)

// DefaultMaterialName is the material path that always resolves to
// [DefaultMaterial] without asking the backend.
const DefaultMaterialName = "empty"

// Empty is the fallback drawable used when a mesh cannot be resolved.
// It draws nothing and disposing it does nothing.
var Empty Drawable = emptyDrawable{}

type emptyDrawable struct{}

func (emptyDrawable) Render(p *DrawParams) {}
func (emptyDrawable) Dispose()             {}

// DefaultMaterial is the fallback material.
var DefaultMaterial Material = defaultMaterial{}

type defaultMaterial struct{}

func (defaultMaterial) Name() string { return DefaultMaterialName }
func (defaultMaterial) Dispose()     {}

// ResolveMesh resolves the mesh at path with the backend, logging
// failures and returning [Empty] instead. A nil backend yields [Empty].
func ResolveMesh(b Backend, path string) Drawable {
	if b == nil || path == "" {
		return Empty
	}
	d, err := b.ResolveMesh(path)
	if err != nil || d == nil {
		slog.Warn("render.ResolveMesh: using empty mesh", "path", path, "err", err)
		return Empty
	}
	return d
}

// ResolveMaterial resolves the material at path with the backend,
// logging failures and returning [DefaultMaterial] instead.
func ResolveMaterial(b Backend, path string) Material {
	if b == nil || path == "" || path == DefaultMaterialName {
		return DefaultMaterial
	}
	m, err := b.ResolveMaterial(path)
	if err != nil || m == nil {
		slog.Warn("render.ResolveMaterial: using default material", "path", path, "err", err)
		return DefaultMaterial
	}
	return m
}
