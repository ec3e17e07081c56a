// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"veroengine.org/core/math32"
)

// State contains the basic physical state including position, orientation, velocity.
type State struct {

	// position of center of mass of object
	Pos math32.Vector3

	// rotation specified as a Quat
	Quat math32.Quat

	// linear velocity
	LinVel math32.Vector3

	// angular velocity
	AngVel math32.Vector3
}

// AngMotionMax is maximum angular motion that can be taken per update
const AngMotionMax = math.Pi / 4

// StepByAngVel steps the Quat rotation from angular velocity
func (ps *State) StepByAngVel(step float32) {
	ang := ps.AngVel.Length()
	if ang < 1e-6 {
		return
	}
	// limit the angular motion
	if ang*step > AngMotionMax {
		ang = AngMotionMax / step
	}
	dq := math32.QuatFromAxisAngle(ps.AngVel, ang*step)
	ps.Quat = dq.Mul(ps.Quat).Normal()
}

// StepByLinVel steps the Pos from the linear velocity
func (ps *State) StepByLinVel(step float32) {
	ps.Pos = ps.Pos.Add(ps.LinVel.MulScalar(step))
}

// Pose returns the position and orientation of the state.
func (ps *State) Pose() Pose {
	return Pose{Position: ps.Pos, Orientation: ps.Quat}
}
