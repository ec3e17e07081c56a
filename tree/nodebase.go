// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
)

// NodeBase implements the [Node] interface and provides the core functionality
// for the tree system. You must use NodeBase as an embedded struct
// in all higher-level tree types.
type NodeBase struct {

	// Name is the name of this node, which is typically unique relative to other children of
	// the same parent. It can be used for finding and serializing nodes. If not otherwise set,
	// it defaults to the name of the node type.
	Name string `copier:"-"`

	// This is the value of this Node as its true underlying type. This allows methods
	// defined on base types to call methods defined on higher-level types, which
	// is necessary for various parts of tree functionality.
	This Node `copier:"-" json:"-"`

	// Parent is the parent of this node, which is set automatically when this node is
	// added as a child of a parent. It does not own the node.
	Parent Node `copier:"-" json:"-"`

	// Children is the list of children of this node, which it owns.
	// All of them are set to have this node as their parent.
	// Use [NodeBase.AddChild] and [NodeBase.RemoveChild] to change it.
	Children []Node `copier:"-" json:",omitempty"`

	// index is the last value of our index, which is used as a starting point for
	// finding us in our parent next time. It is not guaranteed to be accurate;
	// use the [NodeBase.IndexInParent] method.
	index int

	// destroyed is set once [NodeBase.Destroy] has run.
	destroyed bool
}

// String implements the [fmt.Stringer] interface by returning the path of the node.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// AsTree returns the [NodeBase] for this Node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// Init does nothing by default.
func (n *NodeBase) Init() {}

// OnAdd does nothing by default.
func (n *NodeBase) OnAdd() {}

// OnChildAdded does nothing by default.
func (n *NodeBase) OnChildAdded(child Node) {}

// NewInstance returns a new instance of this node type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}

// IndexInParent returns our index within our parent node. It caches the
// last value and uses that for an optimized search so subsequent calls
// are typically quite fast. Returns -1 if we don't have a parent.
func (n *NodeBase) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	idx := IndexOf(n.Parent.AsTree().Children, n.This, n.index) // very fast if index is close
	n.index = idx
	return idx
}

// IsDestroyed returns whether [NodeBase.Destroy] has been called.
func (n *NodeBase) IsDestroyed() bool {
	return n.destroyed
}

//////// Children

// HasChildren returns whether this node has any children.
func (n *NodeBase) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children this node has.
func (n *NodeBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child of this node at the given index and returns nil if
// the index is out of range.
func (n *NodeBase) Child(i int) Node {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child that has the given name, and nil
// if no such element is found. startIndex arg allows for optimized
// bidirectional find if you have an idea where it might be, which
// can be a key speedup for large lists. If no value is specified for
// startIndex, it starts in the middle, which is a good default.
func (n *NodeBase) ChildByName(name string, startIndex ...int) Node {
	return n.Child(IndexByName(n.Children, name, startIndex...))
}

// ChildByType returns the first child of n whose type is T, and nil
// if there is none. T is a concrete pointer type such as *xyz.Mesh, so
// only children of exactly that type match.
func ChildByType[T Node](n Node) T {
	for _, kid := range n.AsTree().Children {
		if t, ok := kid.(T); ok {
			return t
		}
	}
	var zero T
	return zero
}

//////// Paths

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this node from the tree root,
// using [Node.Name]s separated by / delimeters. Any
// existing / characters in names are escaped to \\
func (n *NodeBase) Path() string {
	if n.Parent != nil {
		return n.Parent.AsTree().Path() + "/" + EscapePathName(n.Name)
	}
	return "/" + EscapePathName(n.Name)
}

// FindPath returns the node at the given path relative to this node,
// where path elements are child names separated by / and "[i]" selects
// the child at index i (negative indexes count from the end).
// It returns nil if the path does not exist.
func (n *NodeBase) FindPath(path string) Node {
	curn := n.This
	pels := strings.Split(strings.Trim(strings.TrimSpace(path), "\""), "/")
	for _, pe := range pels {
		if len(pe) == 0 {
			continue
		}
		idx := findPathChild(curn, UnescapePathName(pe))
		if idx < 0 || idx >= curn.AsTree().NumChildren() {
			return nil
		}
		curn = curn.AsTree().Children[idx]
	}
	return curn
}

func findPathChild(n Node, child string) int {
	if child[0] == '[' && child[len(child)-1] == ']' {
		idx, err := strconv.Atoi(child[1 : len(child)-1])
		if err != nil {
			return -1
		}
		if idx < 0 { // from end
			idx = len(n.AsTree().Children) + idx
		}
		return idx
	}
	return IndexByName(n.AsTree().Children, child)
}

//////// Adding and removing

// AddChild adds the given child at the end of the list of children.
// A child that already has a parent is first removed from it. If the
// name of the child collides with an existing sibling, it is made
// unique with a "_N" suffix (see [UniqueName]). [Node.OnAdd] is then
// called on the child and [Node.OnChildAdded] on this node.
// Adding this node or one of its ancestors is logged and ignored.
func (n *NodeBase) AddChild(kid Node) {
	if kid == nil {
		return
	}
	kb := kid.AsTree()
	for p := Node(n); p != nil; p = p.AsTree().Parent {
		if p.AsTree() == kb {
			slog.Error("tree.NodeBase.AddChild: cannot add a node under itself", "parent", n.Path(), "child", kb.Name)
			return
		}
	}
	InitNode(kid)
	if kb.Parent != nil {
		kb.Parent.AsTree().RemoveChild(kid)
	}
	kb.Name = UniqueName(n.Children, kb.Name)
	n.Children = append(n.Children, kid)
	kb.Parent = n.This
	kb.index = len(n.Children) - 1
	kid.OnAdd()
	n.This.OnChildAdded(kid)
}

// RemoveChild removes the given child from the children of this node
// and clears its parent. It does not destroy the child. It returns
// false if the node is not a child of this node.
func (n *NodeBase) RemoveChild(kid Node) bool {
	if kid == nil {
		return false
	}
	kb := kid.AsTree()
	idx := IndexOf(n.Children, kid, kb.index)
	if idx < 0 {
		return false
	}
	n.Children = slices.Delete(n.Children, idx, idx+1)
	kb.Parent = nil
	kb.index = 0
	return true
}

// DeleteChild removes the given child and destroys it.
// It returns false if the node is not a child of this node.
func (n *NodeBase) DeleteChild(kid Node) bool {
	if !n.RemoveChild(kid) {
		return false
	}
	kid.Destroy()
	return true
}

// DeleteChildren destroys all children of this node.
func (n *NodeBase) DeleteChildren() {
	kids := slices.Clone(n.Children)
	for _, kid := range kids {
		if kid == nil {
			continue
		}
		kid.Destroy()
	}
	n.Children = nil
}

// Destroy removes this node from its parent, destroys all of its
// children, and marks it as destroyed. Calling it again does nothing.
func (n *NodeBase) Destroy() {
	if n.destroyed {
		return
	}
	if n.Parent != nil {
		n.Parent.AsTree().RemoveChild(n.This)
	}
	n.DeleteChildren()
	n.destroyed = true
}

//////// Copying

// CopyFieldsFrom copies the fields of the node from the given node.
// By default, it is [NodeBase.CopyFieldsFrom], which automatically does
// a deep copy of all of the fields of the node that do not a have a
// `copier:"-"` struct tag.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	err := copier.CopyWithOption(n.This, from.AsTree().This, copier.Option{CaseSensitive: true, DeepCopy: true})
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// cloneSelf returns a new initialized node of the same type with the
// name and fields of this node, and no children.
func (n *NodeBase) cloneSelf() Node {
	nc := n.NewInstance()
	InitNode(nc)
	nc.AsTree().Name = n.Name
	nc.CopyFieldsFrom(n.This)
	return nc
}

// cloneChildrenInto adds clones of the children of this node,
// recursively, to the given node.
func (n *NodeBase) cloneChildrenInto(to Node) {
	for _, kid := range slices.Clone(n.Children) {
		kb := kid.AsTree()
		kc := kb.cloneSelf()
		to.AsTree().AddChild(kc)
		kb.cloneChildrenInto(kc)
	}
}

// Clone creates and returns a deep copy of the tree from this node down.
// The clone has no parent.
func (n *NodeBase) Clone() Node {
	nc := n.cloneSelf()
	n.cloneChildrenInto(nc)
	return nc
}

// Duplicate creates a deep copy of the tree from this node down and,
// if this node has a parent, adds it as a sibling of this node (with
// a unique name). The copy is attached before its children are cloned
// into it, so that each clone is added to a parent that is already in
// place, just as when the tree was first built.
func (n *NodeBase) Duplicate() Node {
	nc := n.cloneSelf()
	if n.Parent != nil {
		n.Parent.AsTree().AddChild(nc)
	}
	n.cloneChildrenInto(nc)
	return nc
}
