// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"

	"veroengine.org/core/base/errors"
	"veroengine.org/core/math32"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz/physics"
)

// bodyBinding is the link between a body node and its body in the
// physics world. It goes from unbound to bound once, when a [Collider]
// child is found, and never back.
type bodyBinding struct {
	world  physics.World
	handle physics.Handle
}

func (bb *bodyBinding) isBound() bool {
	return bb.world != nil
}

// bind registers the body of nb with the physics world of its scene
// if it has a direct [Collider] child.
func (bb *bodyBinding) bind(nb *NodeBase, mass float32, static bool) {
	if bb.isBound() || nb.Scene == nil || nb.Scene.Physics == nil || nb.Scene.EditMode {
		return
	}
	col := tree.ChildByType[*Collider](nb.This)
	if col == nil {
		return
	}
	col.UpdateGlobal()
	shape := col.PhysicsShape(nb.GlobalRotation)
	pose := physics.Pose{Position: nb.GlobalPosition, Orientation: math32.QuatFromEuler(nb.GlobalRotation)}
	world := nb.Scene.Physics
	var h physics.Handle
	var err error
	if static {
		h, err = world.AddStaticBody(shape, pose)
	} else {
		h, err = world.AddDynamicBody(shape, mass, pose)
	}
	if errors.Log(err) != nil {
		return
	}
	bb.world = world
	bb.handle = h
	slog.Debug("xyz.bind", "node", nb.Path(), "body", h)
}

// pull copies the simulated pose into the local transform of nb.
// A stale handle leaves the transform as it is.
func (bb *bodyBinding) pull(nb *NodeBase) {
	if !bb.isBound() {
		return
	}
	pose, ok := bb.world.Pose(bb.handle)
	if !ok {
		return
	}
	nb.Position = pose.Position
	nb.Rotation = pose.Orientation.ToEuler()
}

// unbind removes the body from the world that issued it. The world
// having been reset since is not an error.
func (bb *bodyBinding) unbind(nb *NodeBase) {
	if !bb.isBound() || nb.editMode() {
		return
	}
	if err := bb.world.RemoveBody(bb.handle); err != nil && !errors.Is(err, physics.ErrInvalidHandle) {
		errors.Log(err)
	}
}

// RigidBody is a node moved by the physics simulation. It binds to a
// dynamic body when a [Collider] is added to it as a direct child, and
// from then on its position and rotation follow the body.
type RigidBody struct {
	NodeBase

	// Mass of the body; it must be positive.
	Mass float32

	binding bodyBinding
}

func (rb *RigidBody) Init() {
	rb.NodeBase.Init()
	rb.Mass = 1
}

func (rb *RigidBody) OnChildAdded(child tree.Node) {
	rb.binding.bind(&rb.NodeBase, rb.Mass, false)
}

func (rb *RigidBody) joinScene(sc *Scene) {
	rb.binding.bind(&rb.NodeBase, rb.Mass, false)
}

// IsBound returns whether the node has a body in the physics world.
func (rb *RigidBody) IsBound() bool {
	return rb.binding.isBound()
}

// Handle returns the handle of the body; it is the zero handle if
// the node is not bound.
func (rb *RigidBody) Handle() physics.Handle {
	return rb.binding.handle
}

func (rb *RigidBody) Tick(delta float32, editMode bool) {
	if !editMode {
		rb.binding.pull(&rb.NodeBase)
	}
}

func (rb *RigidBody) Destroy() {
	if rb.IsDestroyed() {
		return
	}
	rb.binding.unbind(&rb.NodeBase)
	rb.NodeBase.Destroy()
}

func (rb *RigidBody) Properties() []Property {
	return append(rb.NodeBase.Properties(),
		Property{Name: "Mass", Kind: KindFloat, Value: &rb.Mass})
}

// StaticBody is an immovable body. It binds like [RigidBody], and
// follows its body as well, which does not move.
type StaticBody struct {
	NodeBase

	binding bodyBinding
}

func (sb *StaticBody) OnChildAdded(child tree.Node) {
	sb.binding.bind(&sb.NodeBase, 0, true)
}

func (sb *StaticBody) joinScene(sc *Scene) {
	sb.binding.bind(&sb.NodeBase, 0, true)
}

// IsBound returns whether the node has a body in the physics world.
func (sb *StaticBody) IsBound() bool {
	return sb.binding.isBound()
}

// Handle returns the handle of the body.
func (sb *StaticBody) Handle() physics.Handle {
	return sb.binding.handle
}

func (sb *StaticBody) Tick(delta float32, editMode bool) {
	if !editMode {
		sb.binding.pull(&sb.NodeBase)
	}
}

func (sb *StaticBody) Destroy() {
	if sb.IsDestroyed() {
		return
	}
	sb.binding.unbind(&sb.NodeBase)
	sb.NodeBase.Destroy()
}
