// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"veroengine.org/core/math32"
	"veroengine.org/core/render"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz/physics"
)

// WorkspaceName is the name of the root of a new scene.
const WorkspaceName = "Workspace"

// DefaultFixedStep is the physics timestep, in seconds.
const DefaultFixedStep = float32(1) / 60

// DefaultShadowSize is the face size of point light shadow maps.
const DefaultShadowSize = 1024

// Scene is the scene tree: it owns the root node, the camera the scene
// is viewed through, and the physics world, and runs the per-frame
// update and draw passes. All of its methods must be called from the
// goroutine that runs the frame loop.
type Scene struct {

	// Camera is the camera the scene is drawn with.
	Camera Camera

	// Physics is the physics world of the scene.
	Physics physics.World

	// Backend resolves and draws render resources. It can be nil,
	// in which case nothing is drawn.
	Backend render.Backend

	// NewWorld makes the physics world; by default it makes a
	// [physics.SimWorld].
	NewWorld func() physics.World

	// FixedStep is the time by which physics advances every frame,
	// independent of the frame time.
	FixedStep float32

	// EditMode is set while the scene is being authored; bodies do not
	// bind or move and rotators do not spin.
	EditMode bool

	// Editor is set when the scene is shown in the editor, which
	// makes gizmos visible.
	Editor bool

	// ShadowSize is the face size of shadow maps.
	ShadowSize int

	// SavedCameras are named camera settings.
	SavedCameras map[string]Camera

	// Frames is the number of frames drawn.
	Frames uint64

	root   Node
	lights []Light
}

// NewScene returns a new empty scene drawn with the given backend at
// the given aspect ratio.
func NewScene(backend render.Backend, aspect float32) *Scene {
	sc := &Scene{
		Backend:    backend,
		FixedStep:  DefaultFixedStep,
		ShadowSize: DefaultShadowSize,
	}
	sc.Camera.Aspect = aspect
	sc.RemoveAll()
	return sc
}

// Root returns the root node; it is never nil.
func (sc *Scene) Root() Node {
	return sc.root
}

// RemoveAll destroys everything in the scene and resets it to a new
// empty root named [WorkspaceName], the default camera, a new physics
// world, and empty backend caches.
func (sc *Scene) RemoveAll() {
	if sc.root != nil {
		sc.root.Destroy()
	}
	sc.lights = nil
	sc.install(tree.NewRoot[NodeBase](WorkspaceName))
	sc.Camera = DefaultCamera(sc.Camera.Aspect)
	sc.ResetPhysics()
	if sc.Backend != nil {
		sc.Backend.ResetCache()
	}
	slog.Debug("xyz.Scene.RemoveAll")
}

// ResetPhysics destroys the physics world and makes a new one. All
// body handles issued before become invalid.
func (sc *Scene) ResetPhysics() {
	if sc.Physics != nil {
		sc.Physics.Destroy()
	}
	if sc.NewWorld != nil {
		sc.Physics = sc.NewWorld()
	} else {
		sc.Physics = physics.NewSimWorld()
	}
}

// SetRoot destroys the current root with all its descendants and
// makes n the root. A parent of n loses it as a child first.
func (sc *Scene) SetRoot(n Node) {
	if n == sc.root {
		return
	}
	if p := n.AsTree().Parent; p != nil {
		p.AsTree().RemoveChild(n)
	}
	if sc.root != nil {
		sc.root.Destroy()
	}
	sc.install(n)
}

// NewRoot replaces the root with a new empty node of the given name,
// and returns it.
func (sc *Scene) NewRoot(name string) *NodeBase {
	root := tree.NewRoot[NodeBase](name)
	sc.SetRoot(root)
	return root
}

func (sc *Scene) install(n Node) {
	sc.root = n
	setScene(n, sc)
}

// AddChild adds a node to the root.
func (sc *Scene) AddChild(n Node) {
	sc.root.AsTree().AddChild(n)
}

// Walk calls fn on every node of the tree, parents before children.
// Returning [tree.Break] from fn skips the children of the node.
func (sc *Scene) Walk(fn func(n Node) bool) {
	sc.root.AsTree().WalkDown(func(k tree.Node) bool {
		n, ok := k.(Node)
		if !ok {
			return tree.Break
		}
		return fn(n)
	})
}

// FindPath returns the node at the given path, which starts either
// with the name of the root or with its first child, as in
// "Workspace/Player/Camera" and "Player/Camera". It returns nil if
// there is no such node.
func (sc *Scene) FindPath(path string) Node {
	path = strings.TrimPrefix(path, "/")
	first, rest, _ := strings.Cut(path, "/")
	if tree.UnescapePathName(first) == sc.root.AsTree().Name {
		path = rest
	}
	n, _ := sc.root.AsTree().FindPath(path).(Node)
	return n
}

// SetAspect sets the aspect ratio of the camera and saved cameras.
func (sc *Scene) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	sc.Camera.Aspect = aspect
	for nm, cam := range sc.SavedCameras {
		cam.Aspect = aspect
		sc.SavedCameras[nm] = cam
	}
}

// SaveCamera saves the current camera under the given name.
func (sc *Scene) SaveCamera(name string) {
	if sc.SavedCameras == nil {
		sc.SavedCameras = map[string]Camera{}
	}
	sc.SavedCameras[name] = sc.Camera
}

// SetCamera restores the camera saved under the given name, and
// returns false if there is none.
func (sc *Scene) SetCamera(name string) bool {
	cam, ok := sc.SavedCameras[name]
	if ok {
		sc.Camera = cam
	}
	return ok
}

// Update steps physics by [Scene.FixedStep] and then updates the
// tree, with the given frame time in seconds.
func (sc *Scene) Update(delta float32, editMode bool) {
	sc.EditMode = editMode
	if sc.Physics != nil {
		sc.Physics.Step(sc.FixedStep)
	}
	sc.root.AsNode().Update(delta, editMode)
}

// Frame runs one frame: [Scene.Update] and then [Scene.Draw].
func (sc *Scene) Frame(delta float32, editMode bool) {
	sc.Update(delta, editMode)
	sc.Draw()
}

// Draw draws the tree: first the shadow maps of the point lights that
// cast shadows, and then the scene through the camera.
func (sc *Scene) Draw() {
	sc.Frames++
	if sc.Backend == nil {
		return
	}
	rc := sc.RenderContext()
	sc.drawShadows(rc)
	sc.root.Draw(rc)
}

// RenderContext returns the context for drawing the scene through
// the camera, with the lighting of the active lights.
func (sc *Scene) RenderContext() *RenderContext {
	rc := &RenderContext{
		Scene:      sc,
		Backend:    sc.Backend,
		View:       sc.Camera.View(),
		Projection: sc.Camera.Projection(),
		EditMode:   sc.EditMode,
		Editor:     sc.Editor,
	}
	for _, l := range sc.Lights() {
		if pl, ok := l.(*PointLight); ok {
			pl.ShadowMap(rc, sc.ShadowSize)
		}
	}
	rc.Lighting = sc.Lighting()
	return rc
}

// cubeFaces are the view directions and up vectors of the faces of a
// cube shadow map.
var cubeFaces = [6][2]mgl32.Vec3{
	{{1, 0, 0}, {0, -1, 0}},
	{{-1, 0, 0}, {0, -1, 0}},
	{{0, 1, 0}, {0, 0, 1}},
	{{0, -1, 0}, {0, 0, -1}},
	{{0, 0, 1}, {0, -1, 0}},
	{{0, 0, -1}, {0, -1, 0}},
}

func (sc *Scene) drawShadows(rc *RenderContext) {
	for _, l := range rc.Lighting.Points() {
		if l.Shadow == nil {
			continue
		}
		src := *rc
		src.ShadowPass = true
		src.Projection = mgl32.Perspective(math32.Pi/2, 1, sc.Camera.Near, sc.Camera.Far)
		eye := l.Position.Vec()
		for face, dir := range cubeFaces {
			src.View = mgl32.LookAtV(eye, eye.Add(dir[0]), dir[1])
			l.Shadow.BeginFace(face)
			sc.root.Draw(&src)
		}
		l.Shadow.End()
	}
}

// Lights returns the lights that are on: visible, in the tree of the
// scene, and not destroyed.
func (sc *Scene) Lights() []Light {
	var on []Light
	for _, l := range sc.lights {
		nb := l.AsNode()
		if !nb.Visible || nb.IsDestroyed() || tree.Root(l) != sc.root.AsTree().This {
			continue
		}
		on = append(on, l)
	}
	return on
}

// Lighting returns the lighting of the lights that are on.
func (sc *Scene) Lighting() *render.Lighting {
	lt := &render.Lighting{}
	for _, l := range sc.Lights() {
		lt.Add(l.Light())
	}
	return lt
}

func (sc *Scene) addLight(l Light) {
	if !slices.Contains(sc.lights, l) {
		sc.lights = append(sc.lights, l)
	}
}

func (sc *Scene) removeLight(l Light) {
	if i := slices.Index(sc.lights, l); i >= 0 {
		sc.lights = slices.Delete(sc.lights, i, i+1)
	}
}

// Destroy destroys the tree and the physics world.
func (sc *Scene) Destroy() {
	sc.root.Destroy()
	sc.lights = nil
	if sc.Physics != nil {
		sc.Physics.Destroy()
		sc.Physics = nil
	}
}
