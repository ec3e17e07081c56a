// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics is the physics-world boundary of the scene graph.
// Scene nodes register bodies by shape and pose and hold the returned
// opaque [Handle]; each frame the world is stepped by a fixed timestep
// and the nodes read the simulated pose back. [SimWorld] is the
// built-in implementation.
package physics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"veroengine.org/core/math32"
)

var (
	// ErrInvalidHandle is returned for a handle that was never issued,
	// was removed, or was issued by another (or a destroyed) world.
	ErrInvalidHandle = errors.New("physics: invalid body handle")

	// ErrBadShape is returned for shapes with non-positive size.
	ErrBadShape = errors.New("physics: degenerate shape")

	// ErrBadMass is returned for dynamic bodies with non-positive mass.
	ErrBadMass = errors.New("physics: mass must be positive")

	// ErrDestroyed is returned when adding bodies to a destroyed world.
	ErrDestroyed = errors.New("physics: world destroyed")
)

// World is a physics world that owns bodies and advances them in time.
// It is exclusively owned by a scene; the handles it returns are only
// valid for it, and all become invalid when it is destroyed.
type World interface {

	// AddDynamicBody adds a body that moves under gravity and contacts.
	AddDynamicBody(shape Shape, mass float32, pose Pose) (Handle, error)

	// AddStaticBody adds an immovable body.
	AddStaticBody(shape Shape, pose Pose) (Handle, error)

	// RemoveBody removes the body with the given handle.
	// It returns [ErrInvalidHandle] if the handle is stale.
	RemoveBody(h Handle) error

	// Pose returns the current pose of the body with the given
	// handle, and false if the handle is stale.
	Pose(h Handle) (Pose, bool)

	// Step advances the simulation by dt seconds.
	Step(dt float32)

	// Destroy releases all bodies; the world must not be used afterwards.
	Destroy()
}

// ShapeKind is the kind of collision shape.
type ShapeKind int32

const (
	// Mesh is an arbitrary mesh, simulated by its bounding box.
	Mesh ShapeKind = iota

	// Sphere is a sphere of radius Size.X.
	Sphere

	// Box is an axis-aligned (in body space) box of extents Size.
	Box

	// ShapeKindN is the number of shape kinds.
	ShapeKindN
)

var shapeKindNames = [...]string{"mesh", "sphere", "box"}

// String returns the lower-case name of the shape kind.
func (k ShapeKind) String() string {
	if k < 0 || k >= ShapeKindN {
		return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
	}
	return shapeKindNames[k]
}

// SetString sets the shape kind from its name, ignoring case.
func (k *ShapeKind) SetString(s string) error {
	for i, nm := range shapeKindNames {
		if strings.EqualFold(nm, s) {
			*k = ShapeKind(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid ShapeKind", s)
}

// Shape describes the collision shape of a body.
type Shape struct {
	Kind ShapeKind

	// Size is the full extents of a box or mesh, and the radius
	// (in X) of a sphere.
	Size math32.Vector3

	// Rotation is the orientation of the shape relative to its body.
	Rotation math32.Quat
}

// HalfExtents returns the half size of the bounding box of the shape.
func (s Shape) HalfExtents() math32.Vector3 {
	if s.Kind == Sphere {
		return math32.Vector3Scalar(s.Size.X)
	}
	return s.Size.MulScalar(0.5)
}

// Validate returns [ErrBadShape] if the shape has no volume.
func (s Shape) Validate() error {
	h := s.HalfExtents()
	if h.X <= 0 || h.Y <= 0 || h.Z <= 0 {
		return fmt.Errorf("%w: %v %v", ErrBadShape, s.Kind, s.Size)
	}
	return nil
}

// Inertia returns the diagonal of the inertia tensor of the shape
// for the given mass.
func (s Shape) Inertia(mass float32) math32.Vector3 {
	if s.Kind == Sphere {
		r := s.Size.X
		return math32.Vector3Scalar(0.4 * mass * r * r)
	}
	x, y, z := s.Size.X, s.Size.Y, s.Size.Z
	f := mass / 12
	return math32.Vec3(f*(y*y+z*z), f*(x*x+z*z), f*(x*x+y*y))
}

// Pose is a position and orientation in world space.
type Pose struct {
	Position    math32.Vector3
	Orientation math32.Quat
}

// Handle is an opaque reference to a body in a [World].
// The zero Handle is never valid.
type Handle struct {
	world uint64
	index uint32
	gen   uint32
}

// IsValid returns whether the handle was issued by some world.
// It does not tell whether the body still exists.
func (h Handle) IsValid() bool {
	return h.gen != 0
}

// String returns a debugging representation of the handle.
func (h Handle) String() string {
	return fmt.Sprintf("body(%d:%d.%d)", h.world, h.index, h.gen)
}

// Int64 returns the shape kind as an integer.
func (k ShapeKind) Int64() int64 { return int64(k) }

// SetInt64 sets the shape kind from an integer.
func (k *ShapeKind) SetInt64(i int64) { *k = ShapeKind(i) }
