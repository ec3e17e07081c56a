// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veroengine.org/core/math32"
	"veroengine.org/core/render/headless"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz/physics"
)

// newContentBackend returns a backend that only resolves the given paths.
func newContentBackend(t *testing.T, paths ...string) *headless.Backend {
	t.Helper()
	fsys := fstest.MapFS{}
	for _, p := range paths {
		fsys[p] = &fstest.MapFile{Data: []byte("o mesh\n")}
	}
	return headless.New(fsys)
}

// stepWorld records the steps it is asked to take.
type stepWorld struct {
	physics.SimWorld
	steps []float32
}

func (w *stepWorld) Step(dt float32) {
	w.steps = append(w.steps, dt)
	w.SimWorld.Step(dt)
}

func TestNewScene(t *testing.T) {
	sc, be := newTestScene()
	require.NotNil(t, sc.Root())
	assert.Equal(t, WorkspaceName, sc.Root().AsTree().Name)
	assert.Same(t, sc, sc.Root().AsNode().Scene)
	assert.Equal(t, 1, be.CacheResets)
	assert.InDelta(t, math32.Pi/2, sc.Camera.FOV, 1e-6)
	assert.Equal(t, float32(0.1), sc.Camera.Near)
	assert.Equal(t, float32(1000), sc.Camera.Far)
	assert.Equal(t, float32(16.0/9), sc.Camera.Aspect)
	assert.NotNil(t, sc.Physics)
}

func TestSceneRemoveAll(t *testing.T) {
	sc, be := newTestScene()
	old := sc.Root()
	a := tree.NewNamed[MeshNode](old, "A")
	b := tree.NewNamed[RigidBody](a, "B")
	tree.New[Collider](b)
	pl := tree.New[PointLight](old)
	sc.Camera.Position = math32.Vec3(1, 1, 1)
	oldWorld := sc.Physics
	sc.Frame(0, false)

	sc.RemoveAll()
	assert.Equal(t, WorkspaceName, sc.Root().AsTree().Name)
	assert.NotSame(t, old, sc.Root())
	assert.Equal(t, 0, sc.Root().AsTree().NumChildren())
	for _, n := range []tree.Node{old, a, b, pl} {
		assert.True(t, n.AsTree().IsDestroyed(), n.AsTree().Name)
	}
	assert.Equal(t, math32.Vector3{}, sc.Camera.Position)
	assert.NotSame(t, oldWorld, sc.Physics)
	assert.Empty(t, sc.Lights())
	assert.Equal(t, 2, be.CacheResets)
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestSceneSetRoot(t *testing.T) {
	sc, _ := newTestScene()
	old := sc.Root()
	keep := tree.NewNamed[NodeBase](old, "Level")
	drop := tree.NewNamed[NodeBase](old, "Other")
	tree.NewNamed[NodeBase](keep, "Player")

	sc.SetRoot(keep)
	assert.True(t, old.AsTree().IsDestroyed())
	assert.True(t, drop.IsDestroyed())
	assert.False(t, keep.IsDestroyed())
	assert.Nil(t, keep.Parent)
	assert.Same(t, keep, sc.Root())
	assert.NotNil(t, sc.FindPath("Level/Player"))
	assert.NotNil(t, sc.FindPath("/Level/Player"))
	assert.NotNil(t, sc.FindPath("Player"))
	assert.Nil(t, sc.FindPath("Level/Nobody"))

	nr := sc.NewRoot("Fresh")
	assert.True(t, keep.IsDestroyed())
	assert.Same(t, nr, sc.Root())
}

func TestSceneFixedStep(t *testing.T) {
	sc, _ := newTestScene()
	w := &stepWorld{SimWorld: *physics.NewSimWorld()}
	sc.NewWorld = func() physics.World { return w }
	sc.ResetPhysics()
	sc.Update(0.5, false)
	sc.Update(0.001, false)
	assert.Equal(t, []float32{DefaultFixedStep, DefaultFixedStep}, w.steps)
}

func TestSceneCameras(t *testing.T) {
	sc, _ := newTestScene()
	sc.Camera.Position = math32.Vec3(0, 2, 0)
	sc.SaveCamera("top")
	sc.Camera.Position = math32.Vec3(0, 0, 0)
	sc.SetAspect(2)
	require.True(t, sc.SetCamera("top"))
	assert.Equal(t, math32.Vec3(0, 2, 0), sc.Camera.Position)
	assert.Equal(t, float32(2), sc.Camera.Aspect)
	assert.False(t, sc.SetCamera("side"))
}

func TestSceneDrawCounts(t *testing.T) {
	sc := NewScene(nil, 1)
	tree.New[MeshNode](sc.Root())
	sc.Frame(1.0/60, false)
	sc.Frame(1.0/60, false)
	assert.Equal(t, uint64(2), sc.Frames)
	sc.Destroy()
	assert.True(t, sc.Root().AsTree().IsDestroyed())
}

func TestSceneWalk(t *testing.T) {
	sc, _ := newTestScene()
	a := tree.NewNamed[NodeBase](sc.Root(), "A")
	tree.NewNamed[NodeBase](a, "A1")
	tree.NewNamed[NodeBase](sc.Root(), "B")
	var names []string
	sc.Walk(func(n Node) bool {
		names = append(names, n.AsTree().Name)
		return n.AsTree().Name != "A"
	})
	assert.Equal(t, []string{WorkspaceName, "A", "B"}, names)
}
