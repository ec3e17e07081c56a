// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
)

// Camera defines the view and projection of a [Scene].
type Camera struct {

	// Position is the world position of the eye.
	Position math32.Vector3

	// Yaw is the rotation around the Y axis, in radians.
	// At zero yaw and pitch the camera looks down +X.
	Yaw float32

	// Pitch is the rotation around the X axis, in radians.
	Pitch float32

	// Roll is the rotation around the view axis, in radians.
	Roll float32

	// FOV is the vertical field of view in radians.
	FOV float32

	// Aspect is the width / height ratio of the viewport.
	Aspect float32

	// Near and Far are the clip planes.
	Near float32
	Far  float32

	// Orthographic uses an orthographic projection of height OrthoSize.
	Orthographic bool
	OrthoSize    float32
}

// DefaultCamera returns the camera of a new scene: at the origin,
// with a 90 degree field of view and clip planes at 0.1 and 1000.
func DefaultCamera(aspect float32) Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return Camera{
		FOV:       math32.DegToRad(90),
		Aspect:    aspect,
		Near:      0.1,
		Far:       1000,
		OrthoSize: 10,
	}
}

// SetRotation sets the yaw, pitch and roll from the X, Y and Z of the
// given Euler angles. Yaw and roll are wrapped to one turn.
func (cm *Camera) SetRotation(e math32.Vector3) {
	cm.Yaw = wrapAngle(e.X)
	cm.Pitch = e.Y
	cm.Roll = wrapAngle(e.Z)
}

// Rotate adds to the yaw, pitch and roll, keeping the pitch short of
// straight up or down.
func (cm *Camera) Rotate(dYaw, dPitch, dRoll float32) {
	cm.Yaw = wrapAngle(cm.Yaw + dYaw)
	cm.Roll = wrapAngle(cm.Roll + dRoll)
	lim := float32(math32.Pi/2 - 0.01)
	cm.Pitch = math32.Clamp(cm.Pitch+dPitch, -lim, lim)
}

func wrapAngle(a float32) float32 {
	const turn = 2 * math32.Pi
	for a >= turn {
		a -= turn
	}
	for a <= -turn {
		a += turn
	}
	return a
}

// Front returns the unit view direction.
func (cm *Camera) Front() math32.Vector3 {
	cp := math32.Cos(cm.Pitch)
	return math32.Vec3(math32.Cos(cm.Yaw)*cp, math32.Sin(cm.Pitch), math32.Sin(cm.Yaw)*cp).Normal()
}

// Up returns the up direction, rolled around the view axis.
func (cm *Camera) Up() math32.Vector3 {
	up := math32.Vec3(0, 1, 0)
	if cm.Roll == 0 {
		return up
	}
	return math32.QuatFromAxisAngle(cm.Front(), cm.Roll).Rotate(up)
}

// Target returns the point one unit in front of the camera.
func (cm *Camera) Target() math32.Vector3 {
	return cm.Position.Add(cm.Front())
}

// View returns the view matrix.
func (cm *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(cm.Position.Vec(), cm.Target().Vec(), cm.Up().Vec())
}

// Projection returns the projection matrix. The field of view is
// clamped to [0.01, Pi].
func (cm *Camera) Projection() mgl32.Mat4 {
	if cm.Orthographic {
		h := cm.OrthoSize / 2
		w := h * cm.Aspect
		return mgl32.Ortho(-w, w, -h, h, cm.Near, cm.Far)
	}
	fov := math32.Clamp(cm.FOV, 0.01, math32.Pi)
	return mgl32.Perspective(fov, cm.Aspect, cm.Near, cm.Far)
}
