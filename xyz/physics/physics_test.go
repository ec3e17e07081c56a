// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veroengine.org/core/math32"
)

func box(x, y, z float32) Shape {
	return Shape{Kind: Box, Size: math32.Vec3(x, y, z), Rotation: math32.QuatIdentity()}
}

func TestSimWorldFalls(t *testing.T) {
	w := NewSimWorld()
	h, err := w.AddDynamicBody(box(1, 1, 1), 1, Pose{Position: math32.Vec3(0, 10, 0), Orientation: math32.QuatIdentity()})
	require.NoError(t, err)
	assert.True(t, h.IsValid())

	for i := 0; i < 60; i++ {
		w.Step(1.0 / 60)
	}
	p, ok := w.Pose(h)
	require.True(t, ok)
	// about 0.5 * g * t^2 with semi-implicit Euler
	assert.InDelta(t, 10-5, p.Position.Y, 0.2)
	assert.Equal(t, 60, w.Steps)
	assert.InDelta(t, 1, w.Time, 1e-4)
}

func TestSimWorldRestsOnStatic(t *testing.T) {
	w := NewSimWorld()
	_, err := w.AddStaticBody(box(20, 1, 20), Pose{Orientation: math32.QuatIdentity()})
	require.NoError(t, err)
	h, err := w.AddDynamicBody(Shape{Kind: Sphere, Size: math32.Vec3(0.5, 0.5, 0.5)}, 2, Pose{Position: math32.Vec3(0, 3, 0), Orientation: math32.QuatIdentity()})
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		w.Step(1.0 / 60)
	}
	p, ok := w.Pose(h)
	require.True(t, ok)
	assert.InDelta(t, 1.0, p.Position.Y, 0.05)
}

func TestSimWorldStaleHandles(t *testing.T) {
	w := NewSimWorld()
	pose := Pose{Orientation: math32.QuatIdentity()}
	h1, err := w.AddStaticBody(box(1, 1, 1), pose)
	require.NoError(t, err)
	require.NoError(t, w.RemoveBody(h1))
	assert.ErrorIs(t, w.RemoveBody(h1), ErrInvalidHandle)
	_, ok := w.Pose(h1)
	assert.False(t, ok)

	h2, err := w.AddStaticBody(box(1, 1, 1), pose)
	require.NoError(t, err)
	_, ok = w.Pose(h1)
	assert.False(t, ok, "reused slot must not revive the old handle")
	_, ok = w.Pose(h2)
	assert.True(t, ok)
	assert.Equal(t, 1, w.Len())

	other := NewSimWorld()
	_, ok = other.Pose(h2)
	assert.False(t, ok)
	assert.ErrorIs(t, other.RemoveBody(h2), ErrInvalidHandle)

	w.Destroy()
	_, ok = w.Pose(h2)
	assert.False(t, ok)
	_, err = w.AddStaticBody(box(1, 1, 1), pose)
	assert.ErrorIs(t, err, ErrDestroyed)

	_, ok = w.Pose(Handle{})
	assert.False(t, ok)
}

func TestSimWorldErrors(t *testing.T) {
	w := NewSimWorld()
	_, err := w.AddDynamicBody(box(1, 1, 1), 0, Pose{})
	assert.ErrorIs(t, err, ErrBadMass)
	_, err = w.AddStaticBody(box(0, 1, 1), Pose{})
	assert.ErrorIs(t, err, ErrBadShape)
	assert.Equal(t, 0, w.Len())
}

func TestSimWorldStaticDoesNotMove(t *testing.T) {
	w := NewSimWorld()
	pose := Pose{Position: math32.Vec3(1, 2, 3), Orientation: math32.QuatFromEuler(math32.Vec3(0, 0.5, 0))}
	h, err := w.AddStaticBody(box(1, 1, 1), pose)
	require.NoError(t, err)
	w.Step(1.0 / 60)
	p, ok := w.Pose(h)
	require.True(t, ok)
	assert.Equal(t, pose.Position, p.Position)
	assert.True(t, p.Orientation.ToEuler().IsEqualRound(math32.Vec3(0, 0.5, 0), 1e-5))
}

func TestShapeKindString(t *testing.T) {
	assert.Equal(t, "box", Box.String())
	var k ShapeKind
	require.NoError(t, k.SetString("Sphere"))
	assert.Equal(t, Sphere, k)
	assert.Error(t, k.SetString("cone"))
	assert.Equal(t, "ShapeKind(7)", ShapeKind(7).String())
}

func TestShapeInertia(t *testing.T) {
	s := Shape{Kind: Sphere, Size: math32.Vec3(2, 0, 0)}
	assert.InDelta(t, 0.4*3*4, s.Inertia(3).X, 1e-5)
	b := box(1, 2, 3)
	in := b.Inertia(12)
	assert.InDelta(t, 13, in.X, 1e-5)
	assert.InDelta(t, 10, in.Y, 1e-5)
	assert.InDelta(t, 5, in.Z, 1e-5)
}

func TestStepByAngVel(t *testing.T) {
	ps := State{Quat: math32.QuatIdentity(), AngVel: math32.Vec3(0, 1, 0)}
	ps.StepByAngVel(0.5)
	assert.True(t, ps.Quat.ToEuler().IsEqualRound(math32.Vec3(0, 0.5, 0), 1e-5))
}
