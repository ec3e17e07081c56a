// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the ownership tree underlying the scene graph,
// centered on the core [Node] interface. A parent exclusively owns its
// children; the parent back-reference is only used for lookup and for
// detaching a node before it moves.
package tree

// Node is an interface that all tree nodes satisfy. The core functionality
// of a tree node is defined on [NodeBase], and all higher-level tree types
// must embed it. This interface only contains the tree functionality that
// higher-level tree types may need to override. You can call [Node.AsTree]
// to get the [NodeBase] of a Node and access the core tree functionality.
// All values that implement [Node] are pointer values.
type Node interface {

	// AsTree returns the [NodeBase] of this Node. Most core
	// tree functionality is implemented on [NodeBase].
	AsTree() *NodeBase

	// Init is called when the node is first initialized.
	// It is called before the node is added to the tree,
	// so it will not have any parents or siblings.
	// It will be called only once in the lifetime of the node.
	// Higher-level types set their default field values here.
	Init()

	// OnAdd is called when the node is added to a parent,
	// after its parent back-reference has been set.
	// It is called again each time the node is moved.
	OnAdd()

	// OnChildAdded is called on the parent after the given
	// child has been appended to its children.
	OnChildAdded(child Node)

	// Destroy detaches the node from its parent and recursively
	// destroys all of its children. Node types that own native
	// resources implement this to release them after calling
	// [NodeBase.Destroy]; they must check [NodeBase.IsDestroyed]
	// first so that a second call releases nothing.
	Destroy()

	// CopyFieldsFrom copies the fields of the node from the given node.
	// By default, it is [NodeBase.CopyFieldsFrom], which automatically does
	// a deep copy of all of the fields of the node that do not a have a
	// `copier:"-"` struct tag.
	CopyFieldsFrom(from Node)
}

// NodeValue is an interface that all non-pointer tree nodes satisfy.
// It lets [New] accept the struct type of a node as its type parameter.
type NodeValue interface {

	// NodeValue should only be implemented by [NodeBase],
	// and it should not be called.
	NodeValue()
}

// NodeValue implements [NodeValue]. It should not be called.
func (nb NodeBase) NodeValue() {}
