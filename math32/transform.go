// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position, Euler rotation (radians) and scale triple,
// used for both the local and the world-space transform of a node.
type Transform struct {
	Position Vector3
	Rotation Vector3
	Scale    Vector3
}

// IdentityTransform returns the transform with zero position and
// rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Vector3Scalar(1)}
}

// Compose returns the world transform of a child whose local transform
// is local, given that t is the world transform of its parent:
//
//	scale    = t.Scale * local.Scale
//	position = t.Position + rotate(t.Rotation, local.Position * t.Scale)
//	rotation = t.Rotation + local.Rotation
//
// Rotations are combined by adding Euler angles, which is exact only
// when parent and child rotate about a single shared axis.
func (t Transform) Compose(local Transform) Transform {
	offset := QuatFromEuler(t.Rotation).Rotate(local.Position.Mul(t.Scale))
	return Transform{
		Position: t.Position.Add(offset),
		Rotation: t.Rotation.Add(local.Rotation),
		Scale:    t.Scale.Mul(local.Scale),
	}
}

// Matrix returns the model matrix T * R * S of the transform.
func (t Transform) Matrix() mgl32.Mat4 {
	return ModelMatrix(t.Position, t.Rotation, t.Scale)
}

// ModelMatrix returns translation * rotation * scale for the given
// position, XYZ Euler rotation and scale.
func ModelMatrix(pos, rot, scale Vector3) mgl32.Mat4 {
	tr := mgl32.Translate3D(pos.X, pos.Y, pos.Z)
	sc := mgl32.Scale3D(scale.X, scale.Y, scale.Z)
	return tr.Mul4(RotationMatrix(rot)).Mul4(sc)
}

// RotationMatrix returns the rotation matrix for XYZ Euler angles.
func RotationMatrix(rot Vector3) mgl32.Mat4 {
	return QuatFromEuler(rot).Mat4()
}
