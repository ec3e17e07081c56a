// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"veroengine.org/core/math32"
	"veroengine.org/core/render"
	"veroengine.org/core/xyz/physics"
)

// Debug models of colliders.
const (
	DebugSphere = "Editor/debug_sphere.obj"
	DebugCube   = "Editor/debug_cube.obj"
)

// ColliderTint is the color of collider wireframes.
var ColliderTint = math32.Vec3(0, 0, 1)

// Collider gives the collision shape of its parent [RigidBody] or
// [StaticBody]. At unit scale it fills a unit cube; the size of the
// shape follows its world scale.
type Collider struct {
	NodeBase

	// Shape is the kind of shape.
	Shape physics.ShapeKind

	// MeshPath is the model of a [physics.Mesh] shape.
	MeshPath string

	debug render.Drawable
}

func (cl *Collider) Init() {
	cl.NodeBase.Init()
	cl.Shape = physics.Box
}

// SetShape sets the kind of shape and drops the debug model.
func (cl *Collider) SetShape(kind physics.ShapeKind) *Collider {
	cl.Shape = kind
	cl.shapeChanged()
	return cl
}

// SetMeshPath sets the mesh path, dropping the debug model if the
// shape is a mesh.
func (cl *Collider) SetMeshPath(path string) *Collider {
	cl.MeshPath = path
	cl.meshPathChanged()
	return cl
}

func (cl *Collider) shapeChanged() {
	dispose(&cl.debug)
}

func (cl *Collider) meshPathChanged() {
	if cl.Shape == physics.Mesh {
		dispose(&cl.debug)
	}
}

// DebugModel returns the path of the debug model for the shape.
func (cl *Collider) DebugModel() string {
	switch cl.Shape {
	case physics.Mesh:
		return cl.MeshPath
	case physics.Sphere:
		return DebugSphere
	case physics.Box:
		return DebugCube
	}
	return ""
}

// PhysicsShape returns the shape for a body with the given world
// rotation, from the last computed world transform of the collider.
func (cl *Collider) PhysicsShape(bodyRotation math32.Vector3) physics.Shape {
	size := cl.GlobalScale
	if cl.Shape == physics.Sphere {
		size = size.MulScalar(0.5)
	}
	return physics.Shape{
		Kind:     cl.Shape,
		Size:     size,
		Rotation: math32.QuatFromEuler(cl.GlobalRotation.Sub(bodyRotation)),
	}
}

// Tick keeps the scale of a sphere uniform.
func (cl *Collider) Tick(delta float32, editMode bool) {
	if cl.Shape == physics.Sphere {
		cl.Scale = math32.Vector3Scalar(cl.Scale.Average())
	}
}

func (cl *Collider) Render(rc *RenderContext) {
	if rc.ShadowPass {
		return
	}
	d := rc.resolveMesh(&cl.debug, cl.DebugModel())
	p := rc.Params(cl.ModelMatrix(), ColliderTint)
	p.Wireframe = true
	p.Shaded = false
	d.Render(p)
}

func (cl *Collider) Destroy() {
	if cl.IsDestroyed() {
		return
	}
	cl.NodeBase.Destroy()
	dispose(&cl.debug)
}

func (cl *Collider) Properties() []Property {
	return append(cl.NodeBase.Properties(),
		Property{Name: "Shape", Kind: KindEnum, Value: &cl.Shape, OnSet: cl.shapeChanged},
		Property{Name: "MeshPath", Kind: KindString, Value: &cl.MeshPath, OnSet: cl.meshPathChanged},
	)
}
