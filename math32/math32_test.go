// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func TestQuatEulerRoundTrip(t *testing.T) {
	angles := []Vector3{
		{},
		{0.3, 0, 0},
		{0, 1.2, 0},
		{0, 0, -2.5},
		{0.4, -0.7, 1.1},
		{-2.9, 1.4, 0.2},
	}
	for _, e := range angles {
		got := QuatFromEuler(e).ToEuler()
		assert.True(t, got.IsEqualRound(e, 1e-4), "euler %v came back as %v", e, got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromEuler(Vec3(0, 0, Pi/2))
	assert.True(t, q.Rotate(Vec3(1, 0, 0)).IsEqualRound(Vec3(0, 1, 0), tol))

	q = QuatFromEuler(Vec3(0, Pi/2, 0))
	assert.True(t, q.Rotate(Vec3(1, 0, 0)).IsEqualRound(Vec3(0, 0, -1), tol))

	assert.Equal(t, Vec3(1, 2, 3), QuatIdentity().Rotate(Vec3(1, 2, 3)))
}

func TestQuatMat4MatchesRotate(t *testing.T) {
	e := Vec3(0.5, -0.25, 1)
	v := Vec3(1, -2, 0.5)
	m := RotationMatrix(e)
	got := FromVec(m.Mul4x1(mgl32.Vec4{v.X, v.Y, v.Z, 1}).Vec3())
	assert.True(t, got.IsEqualRound(QuatFromEuler(e).Rotate(v), tol))
}

func TestTransformCompose(t *testing.T) {
	parent := Transform{
		Position: Vec3(10, 0, 0),
		Rotation: Vec3(0, 0, Pi/2),
		Scale:    Vec3(2, 2, 2),
	}
	local := Transform{
		Position: Vec3(1, 0, 0),
		Rotation: Vec3(0.1, 0, 0),
		Scale:    Vec3(1, 3, 0.5),
	}
	g := parent.Compose(local)
	assert.Equal(t, Vec3(2, 6, 1), g.Scale)
	assert.Equal(t, Vec3(0.1, 0, Pi/2), g.Rotation)
	assert.True(t, g.Position.IsEqualRound(Vec3(10, 2, 0), tol), "got %v", g.Position)

	id := IdentityTransform().Compose(local)
	assert.Equal(t, local.Scale, id.Scale)
	assert.Equal(t, local.Rotation, id.Rotation)
	assert.True(t, id.Position.IsEqualRound(local.Position, tol))
}

func TestModelMatrix(t *testing.T) {
	m := ModelMatrix(Vec3(1, 2, 3), Vector3{}, Vec3(2, 2, 2))
	p := m.Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.InDelta(t, 3, p[0], tol)
	assert.InDelta(t, 4, p[1], tol)
	assert.InDelta(t, 5, p[2], tol)
}

func TestVector3(t *testing.T) {
	v := Vec3(3, 0, 4)
	assert.Equal(t, float32(5), v.Length())
	assert.Equal(t, float32(7)/3, v.Average())
	assert.Equal(t, Vec3(1, 2, 0), Vector3FromSlice([]float32{1, 2}))
	assert.Equal(t, []float32{3, 0, 4}, v.Slice())
	assert.True(t, Vector3{}.IsNil())
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
}
