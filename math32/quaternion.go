// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "github.com/go-gl/mathgl/mgl32"

// Quat is quaternion with X,Y,Z and W components.
type Quat struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuat returns a new quaternion from the specified components.
func NewQuat(x, y, z, w float32) Quat {
	return Quat{X: x, Y: y, Z: z, W: w}
}

// QuatIdentity returns the identity quaternion.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromEuler returns the quaternion for the given Euler angles in
// radians, applied in XYZ order: the resulting rotation is
// Rx(v.X) * Ry(v.Y) * Rz(v.Z).
func QuatFromEuler(v Vector3) Quat {
	c1 := Cos(v.X / 2)
	c2 := Cos(v.Y / 2)
	c3 := Cos(v.Z / 2)
	s1 := Sin(v.X / 2)
	s2 := Sin(v.Y / 2)
	s3 := Sin(v.Z / 2)
	return Quat{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// ToEuler returns the XYZ-order Euler angles in radians of this
// quaternion, the inverse of [QuatFromEuler] for Y in (-Pi/2, Pi/2).
func (q Quat) ToEuler() Vector3 {
	q = q.Normal()
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	m11 := 1 - (yy + zz)
	m12 := xy - wz
	m13 := xz + wy
	m22 := 1 - (xx + zz)
	m23 := yz - wx
	m32 := yz + wx
	m33 := 1 - (xx + yy)

	var e Vector3
	e.Y = Asin(Clamp(m13, -1, 1))
	if Abs(m13) < 0.9999999 {
		e.X = Atan2(-m23, m33)
		e.Z = Atan2(-m12, m11)
	} else {
		e.X = Atan2(m32, m22)
		e.Z = 0
	}
	return e
}

// Length returns the length of this quaternion
func (q Quat) Length() float32 {
	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normal returns the normalized version of this quaternion.
// A zero quaternion normalizes to the identity.
func (q Quat) Normal() Quat {
	l := q.Length()
	if l == 0 {
		return QuatIdentity()
	}
	l = 1 / l
	return Quat{q.X * l, q.Y * l, q.Z * l, q.W * l}
}

// Conjugate returns the conjugate of this quaternion.
func (q Quat) Conjugate() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Mul returns q * other, which applies other first and then q.
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.X*other.W + q.W*other.X + q.Y*other.Z - q.Z*other.Y,
		Y: q.Y*other.W + q.W*other.Y + q.Z*other.X - q.X*other.Z,
		Z: q.Z*other.W + q.W*other.Z + q.X*other.Y - q.Y*other.X,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate returns v rotated by this quaternion.
func (q Quat) Rotate(v Vector3) Vector3 {
	u := Vec3(q.X, q.Y, q.Z)
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}

// IsIdentity returns if this is an identity quaternion.
func (q Quat) IsIdentity() bool {
	return q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 1
}

// Quat returns this quaternion as an [mgl32.Quat].
func (q Quat) Quat() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// Mat4 returns the rotation matrix of this quaternion.
func (q Quat) Mat4() mgl32.Mat4 {
	return q.Normal().Quat().Mat4()
}

// QuatFromAxisAngle returns the quaternion rotating by angle radians
// about the given axis, which is normalized first.
func QuatFromAxisAngle(axis Vector3, angle float32) Quat {
	a := axis.Normal()
	s := Sin(angle / 2)
	return Quat{a.X * s, a.Y * s, a.Z * s, Cos(angle / 2)}
}
