// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stream broadcasts the world transforms of the nodes of a
// scene to websocket clients, once per published frame.
package stream

import (
	"veroengine.org/core/math32"
	"veroengine.org/core/xyz"
)

// Pose is the world transform of one node.
type Pose struct {
	Path     string         `json:"path"`
	Class    string         `json:"class"`
	Visible  bool           `json:"visible"`
	Position math32.Vector3 `json:"position"`
	Rotation math32.Vector3 `json:"rotation"`
	Scale    math32.Vector3 `json:"scale"`
}

// Snapshot is the state of a scene at one frame.
type Snapshot struct {
	Frame uint64 `json:"frame"`
	Nodes []Pose `json:"nodes"`
}

// Capture returns the snapshot of the scene, from the globals of its
// last update pass. It must be called on the frame goroutine.
func Capture(sc *xyz.Scene) *Snapshot {
	s := &Snapshot{Frame: sc.Frames}
	sc.Walk(func(n xyz.Node) bool {
		nb := n.AsNode()
		s.Nodes = append(s.Nodes, Pose{
			Path:     nb.Path(),
			Class:    xyz.ClassName(n),
			Visible:  nb.Visible,
			Position: nb.GlobalPosition,
			Rotation: nb.GlobalRotation,
			Scale:    nb.GlobalScale,
		})
		return true
	})
	return s
}
