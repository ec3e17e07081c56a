// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package headless provides a render backend that draws nothing and
// records what it was asked to do. It is used for tests and for
// running scenes without a window.
package headless

import (
	"fmt"
	"io/fs"
	"log/slog"

	"veroengine.org/core/render"
)

// Draw is one recorded draw call.
type Draw struct {
	Path   string
	Params render.DrawParams
}

// Backend is a [render.Backend] that records resolutions and draws.
type Backend struct {

	// Content is where paths are looked up. If it is nil, every path
	// resolves.
	Content fs.FS

	// Record enables recording of draw calls in Draws.
	Record bool

	// Draws are the recorded draw calls since the last [Backend.Clear].
	Draws []Draw

	// Resolved counts mesh and material resolutions by path.
	Resolved map[string]int

	// Live is the number of meshes, materials and shadow maps
	// resolved but not yet disposed.
	Live int

	// Misuses counts disposals of already disposed resources and
	// draws with disposed meshes. It must stay zero.
	Misuses int

	// CacheResets counts calls to ResetCache.
	CacheResets int

	// ShadowFaces counts shadow map faces drawn.
	ShadowFaces int
}

// New returns a new recording backend resolving paths in content,
// which can be nil.
func New(content fs.FS) *Backend {
	return &Backend{Content: content, Record: true, Resolved: map[string]int{}}
}

// Clear clears the recorded draws.
func (b *Backend) Clear() {
	b.Draws = b.Draws[:0]
}

// DrawsOf returns the recorded draws of the mesh with the given path.
func (b *Backend) DrawsOf(path string) []Draw {
	var ds []Draw
	for _, d := range b.Draws {
		if d.Path == path {
			ds = append(ds, d)
		}
	}
	return ds
}

func (b *Backend) check(path string) error {
	if b.Content == nil {
		return nil
	}
	if _, err := fs.Stat(b.Content, path); err != nil {
		return fmt.Errorf("%w: %s: %w", render.ErrNotFound, path, err)
	}
	return nil
}

func (b *Backend) ResolveMesh(path string) (render.Drawable, error) {
	if err := b.check(path); err != nil {
		return nil, err
	}
	if b.Resolved == nil {
		b.Resolved = map[string]int{}
	}
	b.Resolved[path]++
	b.Live++
	slog.Debug("headless.ResolveMesh", "path", path)
	return &mesh{backend: b, path: path}, nil
}

func (b *Backend) ResolveMaterial(path string) (render.Material, error) {
	if err := b.check(path); err != nil {
		return nil, err
	}
	if b.Resolved == nil {
		b.Resolved = map[string]int{}
	}
	b.Resolved[path]++
	b.Live++
	return &material{backend: b, path: path}, nil
}

func (b *Backend) NewShadowMap(size int) (render.ShadowMap, error) {
	if size <= 0 {
		return nil, fmt.Errorf("headless: bad shadow map size %d", size)
	}
	b.Live++
	return &shadowMap{backend: b, size: size}, nil
}

func (b *Backend) ResetCache() {
	b.CacheResets++
}

type mesh struct {
	backend  *Backend
	path     string
	disposed bool
}

func (m *mesh) Render(p *render.DrawParams) {
	if m.disposed {
		m.backend.Misuses++
		return
	}
	if m.backend.Record {
		m.backend.Draws = append(m.backend.Draws, Draw{Path: m.path, Params: *p})
	}
}

func (m *mesh) Dispose() {
	if m.disposed {
		m.backend.Misuses++
		return
	}
	m.disposed = true
	m.backend.Live--
}

type material struct {
	backend  *Backend
	path     string
	disposed bool
}

func (m *material) Name() string { return m.path }

func (m *material) Dispose() {
	if m.disposed {
		m.backend.Misuses++
		return
	}
	m.disposed = true
	m.backend.Live--
}

type shadowMap struct {
	backend  *Backend
	size     int
	disposed bool
}

func (s *shadowMap) Size() int { return s.size }

func (s *shadowMap) BeginFace(face int) {
	if s.disposed {
		s.backend.Misuses++
		return
	}
	s.backend.ShadowFaces++
}

func (s *shadowMap) End() {}

func (s *shadowMap) Dispose() {
	if s.disposed {
		s.backend.Misuses++
		return
	}
	s.disposed = true
	s.backend.Live--
}
