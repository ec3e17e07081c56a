// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package xyz is the 3D scene graph: a tree of nodes carrying local
// transforms that are composed into world transforms every frame,
// variants that own render and physics resources, and the [Scene]
// that drives the per-frame update and draw passes.
package xyz

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
	"veroengine.org/core/tree"
)

// Node is the interface for all nodes of the 3D scene graph.
// All of them embed [NodeBase], which implements the traversals;
// variants only provide the per-node behavior.
type Node interface {
	tree.Node

	// AsNode returns the [NodeBase] of the node.
	AsNode() *NodeBase

	// Tick runs the per-frame behavior of the node itself. It is
	// called by [NodeBase.Update] before the children are updated.
	Tick(delta float32, editMode bool)

	// Draw draws the node and its descendants. [NodeBase.Draw] skips
	// invisible nodes and calls Render and then Draw on the children.
	Draw(rc *RenderContext)

	// Render draws the node itself.
	Render(rc *RenderContext)

	// Properties returns the serialized properties of the node.
	Properties() []Property
}

// NodeBase is the base type of all scene nodes.
type NodeBase struct {
	tree.NodeBase

	// Visible nodes are drawn, along with their visible descendants.
	Visible bool

	// Position relative to the parent.
	Position math32.Vector3

	// Rotation relative to the parent, as Euler angles in radians.
	Rotation math32.Vector3

	// Scale relative to the parent.
	Scale math32.Vector3

	// Color is the RGB tint of the node, in 0-1.
	Color math32.Vector3

	// GlobalPosition is the world position computed by [NodeBase.Update].
	GlobalPosition math32.Vector3

	// GlobalRotation is the world rotation computed by [NodeBase.Update].
	GlobalRotation math32.Vector3

	// GlobalScale is the world scale computed by [NodeBase.Update].
	GlobalScale math32.Vector3

	// Scene is the scene the node belongs to, set when the node is
	// added to a scene tree. It is nil for detached trees.
	Scene *Scene `json:"-"`

	// globalPass is the update pass in which the globals were computed.
	globalPass uint64
}

// updatePasses issues update pass stamps.
var updatePasses atomic.Uint64

func (nb *NodeBase) AsNode() *NodeBase {
	return nb
}

func (nb *NodeBase) Init() {
	nb.Visible = true
	nb.Scale = math32.Vector3Scalar(1)
	nb.Color = math32.Vector3Scalar(1)
	nb.GlobalScale = nb.Scale
}

// OnAdd gives the node and its descendants the scene of the new parent.
func (nb *NodeBase) OnAdd() {
	if p := nb.ParentNode(); p != nil {
		setScene(nb.This.(Node), p.Scene)
	}
}

// ParentNode returns the parent as a [NodeBase], or nil for the root.
func (nb *NodeBase) ParentNode() *NodeBase {
	if p, ok := nb.Parent.(Node); ok {
		return p.AsNode()
	}
	return nil
}

// LocalTransform returns the local position, rotation and scale.
func (nb *NodeBase) LocalTransform() math32.Transform {
	return math32.Transform{Position: nb.Position, Rotation: nb.Rotation, Scale: nb.Scale}
}

// GlobalTransform returns the last computed world transform.
func (nb *NodeBase) GlobalTransform() math32.Transform {
	return math32.Transform{Position: nb.GlobalPosition, Rotation: nb.GlobalRotation, Scale: nb.GlobalScale}
}

// ModelMatrix returns the model matrix T * R * S of the world transform.
func (nb *NodeBase) ModelMatrix() mgl32.Mat4 {
	return nb.GlobalTransform().Matrix()
}

// Update updates the subtree rooted at this node: each node runs its
// [Node.Tick], then its children are updated, then its world transform
// is computed from the world transform of its parent.
func (nb *NodeBase) Update(delta float32, editMode bool) {
	updateNode(nb.This.(Node), delta, editMode, updatePasses.Add(1))
}

func updateNode(n Node, delta float32, editMode bool, pass uint64) {
	n.Tick(delta, editMode)
	nb := n.AsNode()
	for i := 0; i < len(nb.Children); i++ {
		if k, ok := nb.Children[i].(Node); ok {
			updateNode(k, delta, editMode, pass)
		}
	}
	nb.updateGlobal(pass)
}

// updateGlobal computes the world transform once per pass. The parent
// is brought up to date first, so a child never composes with a value
// from an earlier pass.
func (nb *NodeBase) updateGlobal(pass uint64) {
	if nb.globalPass == pass {
		return
	}
	g := nb.LocalTransform()
	if p := nb.ParentNode(); p != nil {
		p.updateGlobal(pass)
		g = p.GlobalTransform().Compose(g)
	}
	nb.GlobalPosition = g.Position
	nb.GlobalRotation = g.Rotation
	nb.GlobalScale = g.Scale
	nb.globalPass = pass
}

// UpdateGlobal recomputes the world transform of this node and its
// ancestors from their current local transforms, without running
// any Tick.
func (nb *NodeBase) UpdateGlobal() {
	nb.updateGlobal(updatePasses.Add(1))
}

// Tick does nothing by default.
func (nb *NodeBase) Tick(delta float32, editMode bool) {}

// Draw draws the node and its children if the node is visible.
func (nb *NodeBase) Draw(rc *RenderContext) {
	if !nb.Visible {
		return
	}
	nb.This.(Node).Render(rc)
	nb.DrawChildren(rc)
}

// DrawChildren calls [Node.Draw] on each child.
func (nb *NodeBase) DrawChildren(rc *RenderContext) {
	for i := 0; i < len(nb.Children); i++ {
		if k, ok := nb.Children[i].(Node); ok {
			k.Draw(rc)
		}
	}
}

// Render does nothing by default.
func (nb *NodeBase) Render(rc *RenderContext) {}

// Duplicate clones the subtree rooted at this node. If the node has a
// parent, the clone is added to it as a sibling with a unique name.
func (nb *NodeBase) Duplicate() Node {
	return nb.NodeBase.Duplicate().(Node)
}

// setScene sets the scene of n and its descendants, letting nodes
// that register with their scene do so.
func setScene(n Node, sc *Scene) {
	n.AsTree().WalkDown(func(k tree.Node) bool {
		kn, ok := k.(Node)
		if !ok {
			return tree.Continue
		}
		kb := kn.AsNode()
		if kb.Scene == sc {
			return tree.Continue
		}
		kb.Scene = sc
		if j, ok := kn.(sceneJoiner); ok && sc != nil {
			j.joinScene(sc)
		}
		return tree.Continue
	})
}

// sceneJoiner is implemented by nodes that register with their scene.
type sceneJoiner interface {
	joinScene(sc *Scene)
}

// editMode returns whether the scene of the node is in edit mode.
func (nb *NodeBase) editMode() bool {
	return nb.Scene != nil && nb.Scene.EditMode
}
