// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render defines the boundary between the scene graph and a
// graphics backend: resolving meshes and materials by path, drawing
// them with a model/view/projection and flags, and disposing them.
// Backends live in sub-packages.
package render

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
)

var (
	// ErrNotFound is returned by backends for paths that do not exist.
	ErrNotFound = errors.New("render: resource not found")

	// ErrUnsupported is returned for features a backend does not have.
	ErrUnsupported = errors.New("render: not supported by backend")
)

// Backend creates drawable resources from content paths.
type Backend interface {

	// ResolveMesh loads the mesh at the given content path.
	ResolveMesh(path string) (Drawable, error)

	// ResolveMaterial loads the material at the given content path.
	ResolveMaterial(path string) (Material, error)

	// NewShadowMap allocates a cube shadow map of the given face size.
	NewShadowMap(size int) (ShadowMap, error)

	// ResetCache drops cached pipeline resources such as compiled
	// shaders. Resources already handed out stay valid.
	ResetCache()
}

// Drawable is a mesh that can be drawn. It is owned by exactly one
// node, which must call Dispose exactly once.
type Drawable interface {
	Render(p *DrawParams)
	Dispose()
}

// Material is a surface material. It is owned by exactly one node.
type Material interface {
	Name() string
	Dispose()
}

// ShadowMap is a depth cubemap that point lights render into.
type ShadowMap interface {

	// Size returns the size in pixels of each face.
	Size() int

	// BeginFace directs drawing to the given face, 0 to 5 in the
	// order +X, -X, +Y, -Y, +Z, -Z.
	BeginFace(face int)

	// End finishes drawing into the map.
	End()

	Dispose()
}

// DrawParams are the parameters of one draw call.
type DrawParams struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	// Tint is the RGB color multiplied into the surface, in 0-1.
	Tint math32.Vector3

	// Material is nil for the default material.
	Material Material

	Wireframe bool

	// Shaded enables lighting; otherwise the surface is drawn flat.
	Shaded bool

	DepthTest bool

	// ShadowPass is set when drawing into a shadow map.
	ShadowPass bool

	// Lighting is the lighting of the frame.
	Lighting *Lighting
}

// LightKind is the kind of a [Light].
type LightKind int32

const (
	PointLight LightKind = iota
	DirectionalLight
)

// Light is one light of a frame, in world space.
type Light struct {
	Kind LightKind

	// Position of a point light.
	Position math32.Vector3

	// Rotation is the Euler rotation of a directional light.
	Rotation math32.Vector3

	// Color is the light color already multiplied by its intensity.
	Color math32.Vector3

	// Shadow is the shadow map of the light, if it casts shadows.
	Shadow ShadowMap
}

// Lighting holds all lights that are on for a frame.
type Lighting struct {
	Lights []Light
}

// Add adds a light.
func (lt *Lighting) Add(l Light) {
	lt.Lights = append(lt.Lights, l)
}

// Directional returns the first directional light, if any.
func (lt *Lighting) Directional() (Light, bool) {
	if lt == nil {
		return Light{}, false
	}
	for _, l := range lt.Lights {
		if l.Kind == DirectionalLight {
			return l, true
		}
	}
	return Light{}, false
}

// Points returns the point lights.
func (lt *Lighting) Points() []Light {
	if lt == nil {
		return nil
	}
	var pts []Light
	for _, l := range lt.Lights {
		if l.Kind == PointLight {
			pts = append(pts, l)
		}
	}
	return pts
}
