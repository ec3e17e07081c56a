// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "veroengine.org/core/tree"
)

// testNode records its lifecycle calls.
type testNode struct {
	NodeBase
	Value    float32
	Tags     []string
	Handle   *int `copier:"-"`
	inits    int
	adds     int
	added    []string
	releases int
}

func (tn *testNode) Init() { tn.inits++ }

func (tn *testNode) OnAdd() { tn.adds++ }

func (tn *testNode) OnChildAdded(child Node) {
	tn.added = append(tn.added, child.AsTree().Name)
}

func (tn *testNode) Destroy() {
	if tn.IsDestroyed() {
		return
	}
	tn.NodeBase.Destroy()
	tn.releases++
}

type otherNode struct {
	NodeBase
}

func newNamed(name string, parent ...Node) *testNode {
	n := NewRoot[testNode](name)
	if len(parent) > 0 {
		parent[0].AsTree().AddChild(n)
	}
	return n
}

func TestNodeAddChild(t *testing.T) {
	parent := NewRoot[testNode]("Workspace")
	child := &testNode{}
	parent.AddChild(child)
	assert.Equal(t, 1, parent.NumChildren())
	assert.Equal(t, Node(parent), child.Parent)
	assert.Equal(t, "testNode", child.Name)
	assert.Equal(t, "/Workspace/testNode", child.Path())
	assert.Equal(t, 1, child.inits)
	assert.Equal(t, 1, child.adds)
	assert.Equal(t, []string{"testNode"}, parent.added)
}

func TestNodeAddChildCycle(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	b := newNamed("B", a)

	a.AddChild(root)
	assert.Nil(t, root.Parent)
	assert.Equal(t, 1, root.NumChildren())
	b.AddChild(a)
	assert.Equal(t, Node(root), a.Parent)
	assert.Equal(t, 0, b.NumChildren())
	b.AddChild(b)
	assert.Equal(t, Node(a), b.Parent)
	assert.Equal(t, 0, b.NumChildren())
	assert.Equal(t, "/Workspace/A/B", b.Path())
	assert.Equal(t, Node(root), Root(b))
	assert.Equal(t, 1, a.adds)
}

func TestNodeUniqueNames(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("Light", root)
	b := newNamed("Light", root)
	c := newNamed("Light", root)
	assert.Equal(t, "Light", a.Name)
	assert.Equal(t, "Light_1", b.Name)
	assert.Equal(t, "Light_2", c.Name)

	root.RemoveChild(b)
	d := newNamed("Light", root)
	assert.Equal(t, "Light_1", d.Name)

	names := map[string]bool{}
	for _, k := range root.Children {
		assert.False(t, names[k.AsTree().Name], "duplicate name %s", k.AsTree().Name)
		names[k.AsTree().Name] = true
	}
}

func TestNodeReparent(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	oldParent := newNamed("Old", root)
	newParent := newNamed("New", root)
	node := newNamed("Node", oldParent)
	newNamed("Node", newParent)

	newParent.AddChild(node)
	assert.Equal(t, 0, oldParent.NumChildren())
	assert.Equal(t, Node(newParent), node.Parent)
	assert.Equal(t, "Node_1", node.Name)

	count := 0
	root.WalkDown(func(n Node) bool {
		if n == Node(node) {
			count++
		}
		return Continue
	})
	assert.Equal(t, 1, count)
	assert.Equal(t, 2, node.adds)
	assert.Equal(t, 1, node.inits)
}

func TestNodeRemoveChild(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	other := newNamed("Other")

	assert.False(t, root.RemoveChild(other))
	assert.True(t, root.RemoveChild(a))
	assert.Nil(t, a.Parent)
	assert.False(t, a.IsDestroyed())
	assert.False(t, root.RemoveChild(a))
	assert.Equal(t, 0, root.NumChildren())
}

func TestNodeGetChild(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	o := New[otherNode](root)
	b := newNamed("B", root)

	assert.Equal(t, Node(a), root.ChildByName("A"))
	assert.Equal(t, Node(b), root.ChildByName("B", 2))
	assert.Nil(t, root.ChildByName("missing"))
	assert.Equal(t, Node(o), root.Child(1))
	assert.Nil(t, root.Child(3))
	assert.Nil(t, root.Child(-1))
	assert.Equal(t, o, ChildByType[*otherNode](root))
	assert.Equal(t, a, ChildByType[*testNode](root))
	assert.Nil(t, ChildByType[*otherNode](a))
	assert.Equal(t, "otherNode", o.Name)
}

func TestNodeFindPath(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	b := newNamed("B/C", a)
	assert.Equal(t, `/Workspace/A/B\\C`, b.Path())
	assert.Equal(t, Node(b), root.FindPath(`A/B\\C`))
	assert.Equal(t, Node(b), root.FindPath("A/[0]"))
	assert.Equal(t, Node(a), root.FindPath("[-1]"))
	assert.Nil(t, root.FindPath("A/[4]"))
	assert.Nil(t, root.FindPath("Z"))
	assert.Equal(t, Node(root), Root(b))
	assert.True(t, IsRoot(root))
	assert.False(t, IsRoot(b))
}

func TestNodeDestroy(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	b := newNamed("B", a)
	c := newNamed("C", a)

	a.Destroy()
	assert.True(t, a.IsDestroyed())
	assert.True(t, b.IsDestroyed())
	assert.True(t, c.IsDestroyed())
	assert.Equal(t, 0, root.NumChildren())
	assert.Nil(t, a.Parent)
	assert.Nil(t, b.Parent)
	assert.Equal(t, 1, a.releases)

	assert.NotPanics(t, a.Destroy)
	assert.Equal(t, 1, a.releases)
	assert.Equal(t, 1, b.releases)
}

func TestNodeDeleteChild(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	assert.True(t, root.DeleteChild(a))
	assert.True(t, a.IsDestroyed())
	assert.False(t, root.DeleteChild(a))
}

func TestNodeClone(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	a.Value = 3
	a.Tags = []string{"x"}
	h := 7
	a.Handle = &h
	newNamed("B", a)

	c := a.Clone().(*testNode)
	require.NotNil(t, c)
	assert.Nil(t, c.Parent)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, float32(3), c.Value)
	assert.Equal(t, []string{"x"}, c.Tags)
	assert.Nil(t, c.Handle)
	c.Tags[0] = "y"
	assert.Equal(t, "x", a.Tags[0])
	require.Equal(t, 1, c.NumChildren())
	assert.NotEqual(t, a.Child(0), c.Child(0))
	assert.Equal(t, "B", c.Child(0).AsTree().Name)
}

func TestNodeDuplicate(t *testing.T) {
	root := NewRoot[testNode]("Workspace")
	a := newNamed("A", root)
	b := newNamed("B", a)

	d := a.Duplicate().(*testNode)
	require.Equal(t, 2, root.NumChildren())
	assert.Equal(t, Node(root), d.Parent)
	assert.Equal(t, "A_1", d.Name)
	require.Equal(t, 1, d.NumChildren())
	b2 := d.Child(0).(*testNode)
	assert.NotSame(t, b, b2)
	assert.Equal(t, "B", b2.Name)
	assert.Equal(t, Node(d), b2.Parent)
	assert.Equal(t, 1, a.NumChildren())
	assert.Equal(t, Node(b), a.Child(0))

	orphan := newNamed("Orphan")
	od := orphan.Duplicate()
	assert.Nil(t, od.AsTree().Parent)
}
