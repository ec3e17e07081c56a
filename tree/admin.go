// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"reflect"
	"strconv"
)

// admin.go has infrastructure code outside of the Node interface.

// InitNode initializes the node: it sets [NodeBase.This], gives the node
// its type name if it has no name, and calls [Node.Init]. It does
// nothing for a node that has already been initialized.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.This == n {
		return
	}
	nb.This = n
	if nb.Name == "" {
		nb.Name = TypeName(n)
	}
	n.Init()
}

// New returns a new initialized node of the given type. If a parent is
// given, the node is added to it as a child.
func New[T NodeValue](parent ...Node) *T {
	n := new(T)
	ni := any(n).(Node)
	InitNode(ni)
	if len(parent) > 0 && parent[0] != nil {
		parent[0].AsTree().AddChild(ni)
	}
	return n
}

// NewNamed is like [New] with a parent, but gives the node the given
// name before it is added, so that a name taken by a sibling is made
// unique. The parent can be nil.
func NewNamed[T NodeValue](parent Node, name string) *T {
	n := new(T)
	ni := any(n).(Node)
	ni.AsTree().Name = name
	InitNode(ni)
	if parent != nil {
		parent.AsTree().AddChild(ni)
	}
	return n
}

// NewRoot returns a new initialized root node of the given type
// with the given name.
func NewRoot[T NodeValue](name string) *T {
	n := new(T)
	ni := any(n).(Node)
	ni.AsTree().Name = name
	InitNode(ni)
	return n
}

// TypeName returns the name of the underlying type of the node,
// without the package path, such as "Mesh".
func TypeName(n Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// UniqueName returns name if no node in kids has it, and otherwise the
// first of name_1, name_2, ... that is free. The suffix is always
// applied to name itself, so adding "Light" three times yields
// "Light", "Light_1" and "Light_2".
func UniqueName(kids []Node, name string) string {
	if IndexByName(kids, name) < 0 {
		return name
	}
	for i := 1; ; i++ {
		nm := name + "_" + strconv.Itoa(i)
		if IndexByName(kids, nm) < 0 {
			return nm
		}
	}
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	return n.AsTree().Parent == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	for !IsRoot(n) {
		n = n.AsTree().Parent
	}
	return n.AsTree().This
}
