// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
	"veroengine.org/core/render"
)

// RenderContext holds everything a node needs to draw itself during
// one pass of [Scene.Draw]. It replaces any global render state.
type RenderContext struct {

	// Scene is the scene being drawn.
	Scene *Scene

	// Backend resolves and draws resources.
	Backend render.Backend

	View       mgl32.Mat4
	Projection mgl32.Mat4

	// Lighting has the lights of the frame.
	Lighting *render.Lighting

	// ShadowPass is set while drawing into a shadow map.
	ShadowPass bool

	// EditMode is set while the scene is being authored.
	EditMode bool

	// Editor is set when the scene is shown inside the editor.
	Editor bool
}

// Params returns draw parameters for the given model matrix and tint,
// with the view, projection and lighting of the context.
func (rc *RenderContext) Params(model mgl32.Mat4, tint math32.Vector3) *render.DrawParams {
	return &render.DrawParams{
		Model:      model,
		View:       rc.View,
		Projection: rc.Projection,
		Tint:       tint,
		Shaded:     true,
		DepthTest:  true,
		ShadowPass: rc.ShadowPass,
		Lighting:   rc.Lighting,
	}
}

// resolveMesh resolves path into *d unless already resolved.
func (rc *RenderContext) resolveMesh(d *render.Drawable, path string) render.Drawable {
	if *d == nil {
		*d = render.ResolveMesh(rc.Backend, path)
	}
	return *d
}

// dispose disposes *d if set and clears it.
func dispose(d *render.Drawable) {
	if *d != nil {
		(*d).Dispose()
		*d = nil
	}
}
