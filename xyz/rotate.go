// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import "veroengine.org/core/math32"

// RotateNode spins at a constant angular velocity outside of edit mode.
type RotateNode struct {
	NodeBase

	// Spin is the angular velocity, in radians per second around each
	// axis. It is saved as SpinVector.
	Spin math32.Vector3
}

func (rn *RotateNode) Tick(delta float32, editMode bool) {
	if editMode {
		return
	}
	rn.Rotation = rn.Rotation.Add(rn.Spin.MulScalar(delta))
}

func (rn *RotateNode) Properties() []Property {
	return append(rn.NodeBase.Properties(),
		Property{Name: "SpinVector", Kind: KindVector3, Value: &rn.Spin})
}
