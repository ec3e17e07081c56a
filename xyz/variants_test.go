// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veroengine.org/core/math32"
	"veroengine.org/core/render"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz/physics"
)

func TestMeshNodeResolve(t *testing.T) {
	sc, be := newTestScene()
	mn := tree.New[MeshNode](sc.Root())
	mn.Position = math32.Vec3(1, 2, 3)
	mn.Color = math32.Vec3(0.5, 0.5, 0.5)
	assert.False(t, mn.IsResolved())

	sc.Frame(0, false)
	sc.Frame(0, false)
	assert.True(t, mn.IsResolved())
	assert.Equal(t, 1, be.Resolved[DefaultModel])
	ds := be.DrawsOf(DefaultModel)
	require.Len(t, ds, 2)
	p := ds[0].Params
	assert.Equal(t, mn.Color, p.Tint)
	assert.True(t, p.Shaded)
	assert.True(t, p.DepthTest)
	assert.False(t, p.Wireframe)
	assert.Equal(t, render.DefaultMaterial, p.Material)
	assert.Equal(t, float32(1), p.Model.At(0, 3))
	assert.Equal(t, float32(3), p.Model.At(2, 3))

	mn.SetModel("Models/sphere.obj")
	assert.Equal(t, 0, be.Live)
	sc.Frame(0, false)
	assert.Equal(t, 1, be.Resolved["Models/sphere.obj"])
	assert.Equal(t, 1, be.Live)

	mn.SetMaterial("Materials/brick")
	sc.Frame(0, false)
	assert.Equal(t, 1, be.Resolved["Materials/brick"])
	assert.Equal(t, 2, be.Live)

	mn.Destroy()
	mn.Destroy()
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestMeshNodeMissingModel(t *testing.T) {
	be := newContentBackend(t, "Models/cube.obj")
	sc := NewScene(be, 1)
	mn := tree.New[MeshNode](sc.Root())
	mn.SetModel("Models/missing.obj")
	sc.Frame(0, false)
	assert.True(t, mn.IsResolved())
	assert.Empty(t, be.Draws)
	mn.Destroy()
	assert.Equal(t, 0, be.Misuses)
}

func TestCameraNodeMovesCamera(t *testing.T) {
	sc, be := newTestScene()
	cn := tree.New[CameraNode](sc.Root())
	cn.Position = math32.Vec3(0, 5, -2)
	cn.Rotation = math32.Vec3(0.5, 0.25, 0)
	cn.FOV = 1
	sc.Frame(0, false)
	assert.Equal(t, math32.Vec3(0, 5, -2), sc.Camera.Position)
	assert.InDelta(t, 0.5, sc.Camera.Yaw, 1e-6)
	assert.InDelta(t, 0.25, sc.Camera.Pitch, 1e-6)
	assert.Equal(t, float32(1), sc.Camera.FOV)
	assert.Empty(t, be.DrawsOf(CameraGizmo))

	cn.Position = math32.Vec3(9, 9, 9)
	sc.Frame(0, true)
	assert.Equal(t, math32.Vec3(0, 5, -2), sc.Camera.Position)
	assert.Len(t, be.DrawsOf(CameraGizmo), 1)

	cn.Visible = false
	sc.Frame(0, false)
	assert.Equal(t, math32.Vec3(0, 5, -2), sc.Camera.Position)
	assert.Len(t, be.DrawsOf(CameraGizmo), 2)
}

func TestPointLight(t *testing.T) {
	sc, be := newTestScene()
	pl := tree.New[PointLight](sc.Root())
	pl.Position = math32.Vec3(0, 3, 0)
	pl.Intensity = 2
	dl := tree.New[DirectionalLight](sc.Root())
	dl.Rotation = math32.Vec3(-1, 0, 0)
	sc.Update(0, false)

	require.Len(t, sc.Lights(), 2)
	lt := sc.Lighting()
	pts := lt.Points()
	require.Len(t, pts, 1)
	assert.Equal(t, math32.Vec3(0, 3, 0), pts[0].Position)
	assert.Equal(t, math32.Vec3(2, 2, 2), pts[0].Color)
	d, ok := lt.Directional()
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(-1, 0, 0), d.Rotation)

	pl.Visible = false
	assert.Len(t, sc.Lights(), 1)
	pl.Visible = true

	sc.Draw()
	assert.Empty(t, be.DrawsOf(LightGizmo))
	sc.Editor = true
	sc.Draw()
	gz := be.DrawsOf(LightGizmo)
	require.Len(t, gz, 2)
	assert.Equal(t, math32.Vec3(2, 2, 2), gz[0].Params.Tint)

	pl.Destroy()
	dl.Destroy()
	assert.Empty(t, sc.lights)
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestPointLightShadows(t *testing.T) {
	sc, be := newTestScene()
	pl := tree.New[PointLight](sc.Root())
	tree.New[MeshNode](sc.Root())
	sc.Frame(0, false)
	assert.Equal(t, 0, be.ShadowFaces)

	prop, ok := PropertyByName(pl, "CastShadows")
	require.True(t, ok)
	require.NoError(t, prop.Set(true))
	be.Clear()
	sc.Frame(0, false)
	assert.Equal(t, 6, be.ShadowFaces)
	ds := be.DrawsOf(DefaultModel)
	require.Len(t, ds, 7)
	assert.True(t, ds[0].Params.ShadowPass)
	assert.False(t, ds[6].Params.ShadowPass)
	require.Len(t, ds[6].Params.Lighting.Points(), 1)
	assert.NotNil(t, ds[6].Params.Lighting.Points()[0].Shadow)

	live := be.Live
	require.NoError(t, prop.Set(false))
	assert.Equal(t, live-1, be.Live)
	pl.Destroy()
	assert.Equal(t, 0, be.Misuses)
}

func TestLightLeavesOldScene(t *testing.T) {
	sc1, _ := newTestScene()
	sc2, _ := newTestScene()
	pl := tree.New[PointLight](sc1.Root())
	sc2.AddChild(pl)
	assert.Empty(t, sc1.lights)
	assert.Len(t, sc2.Lights(), 1)
}

func TestColliderShape(t *testing.T) {
	sc, be := newTestScene()
	cl := tree.New[Collider](sc.Root())
	assert.Equal(t, physics.Box, cl.Shape)
	assert.Equal(t, DebugCube, cl.DebugModel())
	sc.Frame(0, false)
	ds := be.DrawsOf(DebugCube)
	require.Len(t, ds, 1)
	assert.True(t, ds[0].Params.Wireframe)
	assert.Equal(t, ColliderTint, ds[0].Params.Tint)

	cl.SetShape(physics.Sphere)
	assert.Equal(t, 0, be.Live)
	cl.Scale = math32.Vec3(1, 2, 3)
	sc.Frame(0, false)
	assert.Equal(t, math32.Vec3(2, 2, 2), cl.Scale)
	assert.Len(t, be.DrawsOf(DebugSphere), 1)

	cl.SetMeshPath("Models/rock.obj")
	assert.Equal(t, 1, be.Live)
	cl.SetShape(physics.Mesh)
	sc.Frame(0, false)
	assert.Len(t, be.DrawsOf("Models/rock.obj"), 1)

	shape := cl.PhysicsShape(math32.Vector3{})
	assert.Equal(t, physics.Mesh, shape.Kind)
	assert.Equal(t, cl.GlobalScale, shape.Size)
	cl.Destroy()
	assert.Equal(t, 0, be.Live)
}

func TestRigidBodyBinding(t *testing.T) {
	sc, _ := newTestScene()
	world := sc.Physics.(*physics.SimWorld)
	rb := tree.New[RigidBody](sc.Root())
	rb.Position = math32.Vec3(0, 10, 0)
	for i := 0; i < 3; i++ {
		sc.Update(1.0/60, false)
	}
	assert.False(t, rb.IsBound())
	assert.Equal(t, 0, world.Len())

	tree.New[Collider](rb)
	require.True(t, rb.IsBound())
	h := rb.Handle()
	assert.True(t, h.IsValid())
	assert.Equal(t, 1, world.Len())

	tree.New[Collider](rb)
	assert.Equal(t, h, rb.Handle())
	assert.Equal(t, 1, world.Len())

	for i := 0; i < 10; i++ {
		sc.Update(1.0/60, false)
	}
	assert.Less(t, rb.Position.Y, float32(10))
	pose, ok := world.Pose(h)
	require.True(t, ok)
	assert.Equal(t, pose.Position, rb.Position)

	rb.Destroy()
	assert.Equal(t, 0, world.Len())
	rb.Destroy()
}

func TestRigidBodyEditMode(t *testing.T) {
	sc, _ := newTestScene()
	sc.EditMode = true
	rb := tree.New[RigidBody](sc.Root())
	tree.New[Collider](rb)
	assert.False(t, rb.IsBound())

	sc.EditMode = false
	rb2 := tree.New[RigidBody](sc.Root())
	rb2.Position = math32.Vec3(0, 1, 0)
	tree.New[Collider](rb2)
	require.True(t, rb2.IsBound())
	sc.Update(1.0/60, true)
	sc.Update(1.0/60, true)
	assert.Equal(t, math32.Vec3(0, 1, 0), rb2.Position)
}

func TestRigidBodyStaleHandle(t *testing.T) {
	sc, _ := newTestScene()
	rb := tree.New[RigidBody](sc.Root())
	tree.New[Collider](rb)
	require.True(t, rb.IsBound())
	sc.Update(1.0/60, false)
	pos := rb.Position

	sc.ResetPhysics()
	_, ok := sc.Physics.Pose(rb.Handle())
	assert.False(t, ok)
	sc.Update(1.0/60, false)
	assert.Equal(t, pos, rb.Position)
	rb.Destroy()
	assert.True(t, rb.IsDestroyed())
}

func TestStaticBody(t *testing.T) {
	sc, _ := newTestScene()
	world := sc.Physics.(*physics.SimWorld)
	sb := tree.New[StaticBody](sc.Root())
	sb.Position = math32.Vec3(0, -1, 0)
	tree.New[Collider](sb)
	require.True(t, sb.IsBound())
	assert.Equal(t, 1, world.Len())
	for i := 0; i < 5; i++ {
		sc.Update(1.0/60, false)
	}
	assert.Equal(t, math32.Vec3(0, -1, 0), sb.Position)
	sb.Destroy()
	assert.Equal(t, 0, world.Len())
}

func TestBodyBindsWhenJoiningScene(t *testing.T) {
	sc, _ := newTestScene()
	rb := tree.NewRoot[RigidBody]("Ball")
	tree.New[Collider](rb)
	assert.False(t, rb.IsBound())
	sc.AddChild(rb)
	assert.True(t, rb.IsBound())
}

func TestRigidBodyDuplicate(t *testing.T) {
	sc, _ := newTestScene()
	world := sc.Physics.(*physics.SimWorld)
	rb := tree.New[RigidBody](sc.Root())
	rb.Mass = 3
	tree.New[Collider](rb).SetShape(physics.Sphere)
	d := rb.Duplicate().(*RigidBody)
	assert.True(t, d.IsBound())
	assert.NotEqual(t, rb.Handle(), d.Handle())
	assert.Equal(t, float32(3), d.Mass)
	assert.Equal(t, 2, world.Len())
	assert.Equal(t, physics.Sphere, tree.ChildByType[*Collider](d).Shape)

	rb.Destroy()
	assert.Equal(t, 1, world.Len())
	sc.Update(1.0/60, false)
	assert.True(t, d.IsBound())
	_, ok := world.Pose(d.Handle())
	assert.True(t, ok)
}

func TestMeshNodeDuplicateResolved(t *testing.T) {
	sc, be := newTestScene()
	mn := tree.NewNamed[MeshNode](sc.Root(), "Crate")
	mn.SetMaterial("Materials/wood")
	sc.Frame(0, false)
	require.True(t, mn.IsResolved())
	require.Equal(t, 2, be.Live)

	d := mn.Duplicate().(*MeshNode)
	assert.False(t, d.IsResolved())
	assert.Equal(t, "Materials/wood", d.Material)
	sc.Frame(0, false)
	assert.True(t, d.IsResolved())
	assert.Equal(t, 4, be.Live)

	mn.Destroy()
	assert.Equal(t, 2, be.Live)
	be.Clear()
	sc.Frame(0, false)
	assert.Len(t, be.DrawsOf(DefaultModel), 1)
	d.Destroy()
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestColliderDuplicate(t *testing.T) {
	sc, be := newTestScene()
	cl := tree.New[Collider](sc.Root())
	sc.Frame(0, false)
	require.Equal(t, 1, be.Live)
	d := cl.Duplicate().(*Collider)
	sc.Frame(0, false)
	assert.Equal(t, 2, be.Live)
	cl.Destroy()
	sc.Frame(0, false)
	d.Destroy()
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestPointLightDuplicate(t *testing.T) {
	sc, be := newTestScene()
	pl := tree.NewNamed[PointLight](sc.Root(), "Lamp")
	pl.CastShadows = true
	sc.Frame(0, false)

	d := pl.Duplicate().(*PointLight)
	assert.Equal(t, "Lamp_1", d.Name)
	assert.True(t, d.CastShadows)
	assert.Len(t, sc.Lights(), 2)
	sc.Frame(0, false)

	pl.Destroy()
	require.Len(t, sc.Lights(), 1)
	assert.Same(t, d, sc.Lights()[0])
	sc.Frame(0, false)
	d.Destroy()
	assert.Empty(t, sc.Lights())
	assert.Equal(t, 0, be.Live)
	assert.Equal(t, 0, be.Misuses)
}

func TestRotateNode(t *testing.T) {
	sc, _ := newTestScene()
	rn := tree.New[RotateNode](sc.Root())
	rn.Spin = math32.Vec3(0, 1, 2)
	sc.Update(0.5, false)
	assert.Equal(t, math32.Vec3(0, 0.5, 1), rn.Rotation)
	sc.Update(0.5, true)
	assert.Equal(t, math32.Vec3(0, 0.5, 1), rn.Rotation)
	p, ok := PropertyByName(rn, "SpinVector")
	require.True(t, ok)
	assert.Equal(t, math32.Vec3(0, 1, 2), p.Get())
}
