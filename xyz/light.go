// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"log/slog"

	"veroengine.org/core/math32"
	"veroengine.org/core/render"
)

const (
	// LightGizmo is the model drawn for lights in the editor.
	LightGizmo = "Models/cube.obj"

	// LightGizmoMaterial is the material of the light gizmo.
	LightGizmoMaterial = "Editor/light"
)

// Light is a node that lights the scene it belongs to.
type Light interface {
	Node

	// Light returns the light for the current frame in world space.
	Light() render.Light
}

// lightLink is the registration of a light with its scene.
type lightLink struct {
	scene *Scene
}

// join moves the registration of l to sc.
func (ll *lightLink) join(l Light, sc *Scene) {
	if ll.scene == sc {
		return
	}
	ll.leave(l)
	sc.addLight(l)
	ll.scene = sc
}

func (ll *lightLink) leave(l Light) {
	if ll.scene != nil {
		ll.scene.removeLight(l)
		ll.scene = nil
	}
}

// lightGizmo is the editor representation of a light.
type lightGizmo struct {
	mesh     render.Drawable
	material render.Material
}

func (lg *lightGizmo) render(rc *RenderContext, pos math32.Vector3, tint math32.Vector3) {
	if !rc.Editor || rc.ShadowPass {
		return
	}
	d := rc.resolveMesh(&lg.mesh, LightGizmo)
	if lg.material == nil {
		lg.material = render.ResolveMaterial(rc.Backend, LightGizmoMaterial)
	}
	model := math32.ModelMatrix(pos, math32.Vector3{}, math32.Vector3Scalar(0.5))
	p := rc.Params(model, tint)
	p.Material = lg.material
	p.Shaded = false
	d.Render(p)
}

func (lg *lightGizmo) dispose() {
	dispose(&lg.mesh)
	if lg.material != nil {
		lg.material.Dispose()
		lg.material = nil
	}
}

// PointLight is a light that shines in all directions from its
// position. It can cast shadows through a cube shadow map.
type PointLight struct {
	NodeBase

	// Intensity multiplies the color of the light.
	Intensity float32

	// CastShadows renders a shadow map for the light.
	CastShadows bool

	link   lightLink
	gizmo  lightGizmo
	shadow render.ShadowMap

	// shadowFailed is set when the backend could not allocate a
	// shadow map, so that it is not asked again every frame.
	shadowFailed bool
}

func (pl *PointLight) Init() {
	pl.NodeBase.Init()
	pl.Intensity = 1
}

func (pl *PointLight) joinScene(sc *Scene) {
	pl.link.join(pl, sc)
}

func (pl *PointLight) Light() render.Light {
	return render.Light{
		Kind:     render.PointLight,
		Position: pl.GlobalPosition,
		Color:    pl.Color.MulScalar(pl.Intensity),
		Shadow:   pl.shadow,
	}
}

// ShadowMap returns the shadow map of the light, allocating it from
// the backend of the context when needed. It returns nil if the light
// does not cast shadows or the backend has no shadow maps.
func (pl *PointLight) ShadowMap(rc *RenderContext, size int) render.ShadowMap {
	if !pl.CastShadows || pl.shadowFailed || rc.Backend == nil {
		return nil
	}
	if pl.shadow == nil {
		sm, err := rc.Backend.NewShadowMap(size)
		if err != nil {
			slog.Warn("xyz.PointLight.ShadowMap: shadows disabled", "light", pl.Path(), "err", err)
			pl.shadowFailed = true
			return nil
		}
		pl.shadow = sm
	}
	return pl.shadow
}

func (pl *PointLight) castShadowsChanged() {
	pl.shadowFailed = false
	if !pl.CastShadows {
		pl.releaseShadow()
	}
}

func (pl *PointLight) releaseShadow() {
	if pl.shadow != nil {
		pl.shadow.Dispose()
		pl.shadow = nil
	}
}

func (pl *PointLight) Render(rc *RenderContext) {
	pl.gizmo.render(rc, pl.GlobalPosition, pl.Color.MulScalar(pl.Intensity))
}

// Destroy destroys the light, removing it from its scene and
// releasing its shadow map.
func (pl *PointLight) Destroy() {
	if pl.IsDestroyed() {
		return
	}
	pl.NodeBase.Destroy()
	pl.link.leave(pl)
	pl.releaseShadow()
	pl.gizmo.dispose()
}

func (pl *PointLight) Properties() []Property {
	return append(pl.NodeBase.Properties(),
		Property{Name: "Intensity", Kind: KindFloat, Value: &pl.Intensity},
		Property{Name: "CastShadows", Kind: KindBool, Value: &pl.CastShadows, OnSet: pl.castShadowsChanged},
	)
}

// DirectionalLight is a light that shines in the direction given by
// its world rotation, from infinitely far away.
type DirectionalLight struct {
	NodeBase

	// Intensity multiplies the color of the light.
	Intensity float32

	link  lightLink
	gizmo lightGizmo
}

func (dl *DirectionalLight) Init() {
	dl.NodeBase.Init()
	dl.Intensity = 1
}

func (dl *DirectionalLight) joinScene(sc *Scene) {
	dl.link.join(dl, sc)
}

func (dl *DirectionalLight) Light() render.Light {
	return render.Light{
		Kind:     render.DirectionalLight,
		Position: dl.GlobalPosition,
		Rotation: dl.GlobalRotation,
		Color:    dl.Color.MulScalar(dl.Intensity),
	}
}

func (dl *DirectionalLight) Render(rc *RenderContext) {
	dl.gizmo.render(rc, dl.GlobalPosition, dl.Color.MulScalar(dl.Intensity))
}

func (dl *DirectionalLight) Destroy() {
	if dl.IsDestroyed() {
		return
	}
	dl.NodeBase.Destroy()
	dl.link.leave(dl)
	dl.gizmo.dispose()
}

func (dl *DirectionalLight) Properties() []Property {
	return append(dl.NodeBase.Properties(),
		Property{Name: "Intensity", Kind: KindFloat, Value: &dl.Intensity})
}
