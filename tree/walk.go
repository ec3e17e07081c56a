// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "slices"

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents,
// sequentially in the current goroutine (generally necessary for going up,
// which is typically quite fast anyway). It stops walking if the function
// returns [Break] and keeps walking if it returns [Continue]. It returns
// whether walking was finished (false if it was aborted with [Break]).
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	cur := n.This
	for {
		if !fun(cur) { // false return means stop
			return false
		}
		parent := cur.AsTree().Parent
		if parent == nil || parent == cur { // prevent loops
			return true
		}
		cur = parent
	}
}

// WalkDown calls the given function on the node and all of its children
// in a depth-first manner over all of the children, sequentially in the
// current goroutine. It stops walking the current branch of the tree if
// the function returns [Break] and keeps walking if it returns [Continue].
// The children are snapshotted before they are visited, so the function
// may add or remove children of the node it is called on.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if n.This == nil || !fun(n.This) {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		kid.AsTree().WalkDown(fun)
	}
}

// WalkDownPost iterates in a depth-first manner over the children, calling
// shouldContinue on each node to test if processing should proceed (if it returns
// [Break] then that branch of the tree is not further processed),
// and then calls the given function after all of a node's children
// have been iterated over. In effect, this means that the given function
// is called for deeper nodes first. This uses node state information to manage
// the traversal and is very fast, but can only be called by one goroutine at a
// time, so you should use a Mutex if there is a chance of multiple threads
// running at the same time. The nodes are processed in the current goroutine.
func (n *NodeBase) WalkDownPost(shouldContinue func(n Node) bool, fun func(n Node) bool) {
	if n.This == nil || !shouldContinue(n.This) {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		kid.AsTree().WalkDownPost(shouldContinue, fun)
	}
	fun(n.This)
}

// Last returns the last node in the tree.
func Last(n Node) Node {
	last := n
	n.AsTree().WalkDown(func(k Node) bool {
		last = k
		return Continue
	})
	return last
}

// NextSibling returns the next sibling of this node,
// or nil if it has none.
func NextSibling(n Node) Node {
	nb := n.AsTree()
	if nb.Parent == nil {
		return nil
	}
	myidx := nb.IndexInParent()
	if myidx >= 0 && myidx < nb.Parent.AsTree().NumChildren()-1 {
		return nb.Parent.AsTree().Child(myidx + 1)
	}
	return nil
}
