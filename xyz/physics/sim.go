// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"log/slog"
	"sync/atomic"

	"veroengine.org/core/math32"
)

// DefaultGravity is the gravity of a new [SimWorld].
var DefaultGravity = math32.Vec3(0, -10, 0)

// worldIDs issues a distinct id to every world, so that handles from
// one world are never valid in another.
var worldIDs atomic.Uint64

// SimWorld is a simple rigid body simulator: dynamic bodies are
// integrated under gravity and pushed out of static bodies along the
// axis of least penetration of their bounding boxes. Dynamic bodies
// do not collide with each other.
type SimWorld struct {

	// Gravity is the acceleration applied to dynamic bodies.
	Gravity math32.Vector3

	// Steps is the number of steps taken so far.
	Steps int

	// Time is the total simulated time.
	Time float32

	id        uint64
	bodies    []body
	free      []uint32
	destroyed bool
}

// body is one slot of the world. Slots are reused after removal with
// an incremented generation, which invalidates old handles.
type body struct {
	State
	gen     uint32
	alive   bool
	static  bool
	shape   Shape
	invMass float32
	inertia math32.Vector3
}

// NewSimWorld returns a new empty world with [DefaultGravity].
func NewSimWorld() *SimWorld {
	return &SimWorld{Gravity: DefaultGravity, id: worldIDs.Add(1)}
}

// Len returns the number of bodies in the world.
func (w *SimWorld) Len() int {
	n := 0
	for i := range w.bodies {
		if w.bodies[i].alive {
			n++
		}
	}
	return n
}

func (w *SimWorld) AddDynamicBody(shape Shape, mass float32, pose Pose) (Handle, error) {
	if mass <= 0 {
		return Handle{}, ErrBadMass
	}
	return w.add(shape, mass, pose, false)
}

func (w *SimWorld) AddStaticBody(shape Shape, pose Pose) (Handle, error) {
	return w.add(shape, 0, pose, true)
}

func (w *SimWorld) add(shape Shape, mass float32, pose Pose, static bool) (Handle, error) {
	if w.destroyed {
		return Handle{}, ErrDestroyed
	}
	if err := shape.Validate(); err != nil {
		return Handle{}, err
	}
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		w.bodies = append(w.bodies, body{})
		idx = uint32(len(w.bodies) - 1)
	}
	b := &w.bodies[idx]
	b.gen++
	b.alive = true
	b.static = static
	b.shape = shape
	b.State = State{Pos: pose.Position, Quat: pose.Orientation.Normal()}
	b.invMass = 0
	b.inertia = math32.Vector3{}
	if !static {
		b.invMass = 1 / mass
		b.inertia = shape.Inertia(mass)
	}
	h := Handle{world: w.id, index: idx, gen: b.gen}
	slog.Debug("physics.SimWorld.add", "body", h, "shape", shape.Kind, "static", static)
	return h, nil
}

// lookup returns the live body for the handle, or nil.
func (w *SimWorld) lookup(h Handle) *body {
	if w.destroyed || h.world != w.id || int(h.index) >= len(w.bodies) {
		return nil
	}
	b := &w.bodies[h.index]
	if !b.alive || b.gen != h.gen {
		return nil
	}
	return b
}

func (w *SimWorld) RemoveBody(h Handle) error {
	b := w.lookup(h)
	if b == nil {
		return ErrInvalidHandle
	}
	b.alive = false
	w.free = append(w.free, h.index)
	return nil
}

func (w *SimWorld) Pose(h Handle) (Pose, bool) {
	b := w.lookup(h)
	if b == nil {
		return Pose{}, false
	}
	return b.Pose(), true
}

// SetVelocity sets the linear and angular velocity of a dynamic body.
func (w *SimWorld) SetVelocity(h Handle, lin, ang math32.Vector3) error {
	b := w.lookup(h)
	if b == nil {
		return ErrInvalidHandle
	}
	if !b.static {
		b.LinVel = lin
		b.AngVel = ang
	}
	return nil
}

func (w *SimWorld) Step(dt float32) {
	if w.destroyed || dt <= 0 {
		return
	}
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.alive || b.static {
			continue
		}
		b.LinVel = b.LinVel.Add(w.Gravity.MulScalar(dt))
		b.StepByLinVel(dt)
		b.StepByAngVel(dt)
		w.collide(b)
	}
	w.Steps++
	w.Time += dt
}

// collide pushes the dynamic body b out of every static body it
// overlaps and removes its velocity into the contact.
func (w *SimWorld) collide(b *body) {
	bh := b.shape.HalfExtents()
	for i := range w.bodies {
		s := &w.bodies[i]
		if !s.alive || !s.static {
			continue
		}
		sh := s.shape.HalfExtents()
		d := b.Pos.Sub(s.Pos)
		px := bh.X + sh.X - math32.Abs(d.X)
		py := bh.Y + sh.Y - math32.Abs(d.Y)
		pz := bh.Z + sh.Z - math32.Abs(d.Z)
		if px <= 0 || py <= 0 || pz <= 0 {
			continue
		}
		switch {
		case py <= px && py <= pz:
			b.Pos.Y += math32.Sign(d.Y) * py
			if b.LinVel.Y*d.Y < 0 {
				b.LinVel.Y = 0
			}
		case px <= pz:
			b.Pos.X += math32.Sign(d.X) * px
			if b.LinVel.X*d.X < 0 {
				b.LinVel.X = 0
			}
		default:
			b.Pos.Z += math32.Sign(d.Z) * pz
			if b.LinVel.Z*d.Z < 0 {
				b.LinVel.Z = 0
			}
		}
	}
}

func (w *SimWorld) Destroy() {
	w.destroyed = true
	w.bodies = nil
	w.free = nil
}
