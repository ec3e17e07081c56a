// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rlrender provides a render backend that draws with raylib.
// All of its functions must be called on the goroutine that opened the
// window, between [BeginScene] and [EndScene].
package rlrender

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
	"veroengine.org/core/render"
	"veroengine.org/core/xyz"
)

// Backend is a [render.Backend] that loads models and textures from a
// content directory. Models are cached by path and shared between the
// nodes that draw them.
type Backend struct {

	// ContentDir is the directory paths are relative to.
	ContentDir string

	// Brightness multiplies all tints.
	Brightness float32

	models map[string]*model
}

// model is a cached raylib model.
type model struct {
	path  string
	model rl.Model
	refs  int
}

// New returns a new backend loading content from the given directory.
func New(contentDir string) *Backend {
	return &Backend{ContentDir: contentDir, Brightness: 1, models: map[string]*model{}}
}

func (b *Backend) file(path string) (string, error) {
	fn := filepath.Join(b.ContentDir, filepath.FromSlash(path))
	if _, err := os.Stat(fn); err != nil {
		return "", fmt.Errorf("%w: %s: %w", render.ErrNotFound, path, err)
	}
	return fn, nil
}

func (b *Backend) ResolveMesh(path string) (render.Drawable, error) {
	if m, ok := b.models[path]; ok {
		m.refs++
		return &drawable{backend: b, model: m}, nil
	}
	fn, err := b.file(path)
	if err != nil {
		return nil, err
	}
	rm := rl.LoadModel(fn)
	if rm.MeshCount == 0 {
		rl.UnloadModel(rm)
		return nil, fmt.Errorf("rlrender: no meshes in %s", path)
	}
	m := &model{path: path, model: rm, refs: 1}
	b.models[path] = m
	slog.Debug("rlrender.ResolveMesh", "path", path, "meshes", rm.MeshCount)
	return &drawable{backend: b, model: m}, nil
}

// ResolveMaterial loads the texture at the given path; a path without
// an extension names a PNG file.
func (b *Backend) ResolveMaterial(path string) (render.Material, error) {
	fp := path
	if filepath.Ext(fp) == "" {
		fp += ".png"
	}
	fn, err := b.file(fp)
	if err != nil {
		return nil, err
	}
	tex := rl.LoadTexture(fn)
	if tex.ID == 0 {
		return nil, fmt.Errorf("rlrender: cannot load texture %s", fp)
	}
	mat := rl.LoadMaterialDefault()
	rl.SetMaterialTexture(&mat, rl.MapDiffuse, tex)
	return &material{name: path, mat: mat}, nil
}

// NewShadowMap returns [render.ErrUnsupported]: raylib has no cube
// depth targets.
func (b *Backend) NewShadowMap(size int) (render.ShadowMap, error) {
	return nil, render.ErrUnsupported
}

// ResetCache unloads the cached models that no node draws.
func (b *Backend) ResetCache() {
	for path, m := range b.models {
		if m.refs <= 0 {
			rl.UnloadModel(m.model)
			delete(b.models, path)
		}
	}
}

// Close unloads all cached models.
func (b *Backend) Close() {
	for path, m := range b.models {
		rl.UnloadModel(m.model)
		delete(b.models, path)
	}
}

// Tint returns the raylib color of the given RGB tint.
func (b *Backend) Tint(c math32.Vector3) color.RGBA {
	ch := func(v float32) uint8 {
		return uint8(math32.Clamp(v*b.Brightness, 0, 1) * 255)
	}
	return rl.NewColor(ch(c.X), ch(c.Y), ch(c.Z), 255)
}

type drawable struct {
	backend  *Backend
	model    *model
	disposed bool
}

func (d *drawable) Render(p *render.DrawParams) {
	if d.disposed || p.ShadowPass {
		return
	}
	rl.SetMatrixProjection(Matrix(p.Projection))
	rl.SetMatrixModelview(Matrix(p.View))
	if !p.DepthTest {
		rl.DisableDepthTest()
		defer rl.EnableDepthTest()
	}
	tint := d.backend.Tint(p.Tint)
	rm := &d.model.model
	rm.Transform = Matrix(p.Model)
	mt, _ := p.Material.(*material)
	switch {
	case p.Wireframe:
		rl.DrawModelWires(*rm, rl.Vector3{}, 1, tint)
	case mt != nil:
		mt.mat.Maps.Color = tint
		for _, mesh := range unsafe.Slice(rm.Meshes, rm.MeshCount) {
			rl.DrawMesh(mesh, mt.mat, rm.Transform)
		}
	default:
		rl.DrawModel(*rm, rl.Vector3{}, 1, tint)
	}
}

func (d *drawable) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.model.refs--
}

type material struct {
	name     string
	mat      rl.Material
	disposed bool
}

func (m *material) Name() string { return m.name }

func (m *material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	rl.UnloadMaterial(m.mat)
}

// Matrix converts a column-major matrix to raylib.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Camera returns the raylib camera of the given scene camera.
func Camera(cam xyz.Camera) rl.Camera3D {
	vec := func(v math32.Vector3) rl.Vector3 { return rl.NewVector3(v.X, v.Y, v.Z) }
	c := rl.Camera3D{
		Position:   vec(cam.Position),
		Target:     vec(cam.Target()),
		Up:         vec(cam.Up()),
		Fovy:       math32.RadToDeg(cam.FOV),
		Projection: rl.CameraPerspective,
	}
	if cam.Orthographic {
		c.Fovy = cam.OrthoSize
		c.Projection = rl.CameraOrthographic
	}
	return c
}

// BeginScene starts drawing the 3D scene seen by the given camera.
func BeginScene(cam xyz.Camera, background math32.Vector3) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(uint8(background.X*255), uint8(background.Y*255), uint8(background.Z*255), 255))
	rl.BeginMode3D(Camera(cam))
}

// EndScene finishes drawing the scene and presents the frame.
func EndScene() {
	rl.EndMode3D()
	rl.DrawFPS(10, 10)
	rl.EndDrawing()
}
