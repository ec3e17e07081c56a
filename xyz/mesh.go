// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"veroengine.org/core/render"
)

// DefaultModel is the model of a new [MeshNode].
const DefaultModel = "Models/cube.obj"

// MeshNode draws a model with a material. The model and material are
// resolved through the render backend the first time they are drawn,
// and again after their paths change.
type MeshNode struct {
	NodeBase

	// Model is the content path of the model.
	Model string

	// Material is the content path of the material;
	// [render.DefaultMaterialName] is the default material.
	Material string

	// Wireframe draws only the edges.
	Wireframe bool

	// Shaded enables lighting.
	Shaded bool

	// DepthTest enables depth testing.
	DepthTest bool

	drawable render.Drawable
	material render.Material
}

func (mn *MeshNode) Init() {
	mn.NodeBase.Init()
	mn.Model = DefaultModel
	mn.Material = render.DefaultMaterialName
	mn.Shaded = true
	mn.DepthTest = true
}

// SetModel sets the model path, disposing the current model.
func (mn *MeshNode) SetModel(path string) *MeshNode {
	mn.Model = path
	mn.modelChanged()
	return mn
}

// SetMaterial sets the material path, disposing the current material.
func (mn *MeshNode) SetMaterial(path string) *MeshNode {
	mn.Material = path
	mn.materialChanged()
	return mn
}

func (mn *MeshNode) modelChanged() {
	dispose(&mn.drawable)
}

func (mn *MeshNode) materialChanged() {
	if mn.material != nil {
		mn.material.Dispose()
		mn.material = nil
	}
}

// IsResolved returns whether the model has been resolved.
func (mn *MeshNode) IsResolved() bool {
	return mn.drawable != nil
}

func (mn *MeshNode) Render(rc *RenderContext) {
	d := rc.resolveMesh(&mn.drawable, mn.Model)
	if mn.material == nil {
		mn.material = render.ResolveMaterial(rc.Backend, mn.Material)
	}
	p := rc.Params(mn.ModelMatrix(), mn.Color)
	p.Material = mn.material
	p.Wireframe = mn.Wireframe
	p.Shaded = mn.Shaded
	p.DepthTest = mn.DepthTest
	d.Render(p)
}

// Destroy destroys the node and releases its model and material.
func (mn *MeshNode) Destroy() {
	if mn.IsDestroyed() {
		return
	}
	mn.NodeBase.Destroy()
	mn.modelChanged()
	mn.materialChanged()
}

func (mn *MeshNode) Properties() []Property {
	return append(mn.NodeBase.Properties(),
		Property{Name: "Model", Kind: KindString, Value: &mn.Model, OnSet: mn.modelChanged},
		Property{Name: "Material", Kind: KindString, Value: &mn.Material, OnSet: mn.materialChanged},
		Property{Name: "Wireframe", Kind: KindBool, Value: &mn.Wireframe},
		Property{Name: "Shaded", Kind: KindBool, Value: &mn.Shaded},
		Property{Name: "DepthTest", Kind: KindBool, Value: &mn.DepthTest},
	)
}
