// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"veroengine.org/core/math32"
	"veroengine.org/core/render"
)

// CameraGizmo is the model drawn for a [CameraNode] in the editor.
const CameraGizmo = "Editor/camera.obj"

// CameraNode drives the scene [Camera] from its world transform.
// Only visible camera nodes outside of edit mode and shadow passes
// move the scene camera. Hidden camera nodes, and all of them in edit
// mode or in the editor, draw a gizmo instead.
type CameraNode struct {
	NodeBase

	// FOV is the vertical field of view in radians.
	FOV float32

	// Orthographic selects an orthographic projection.
	Orthographic bool

	gizmo render.Drawable
}

func (cn *CameraNode) Init() {
	cn.NodeBase.Init()
	cn.FOV = math32.DegToRad(90)
}

// Draw overrides [NodeBase.Draw] so that a hidden camera still
// draws its gizmo.
func (cn *CameraNode) Draw(rc *RenderContext) {
	if rc.ShadowPass {
		if cn.Visible {
			cn.DrawChildren(rc)
		}
		return
	}
	if !cn.Visible || rc.EditMode || rc.Editor {
		cn.Render(rc)
	}
	if !cn.Visible {
		return
	}
	if !rc.EditMode && rc.Scene != nil {
		cn.apply(&rc.Scene.Camera)
	}
	cn.DrawChildren(rc)
}

// apply moves the camera to the world transform of the node.
func (cn *CameraNode) apply(cam *Camera) {
	cam.Position = cn.GlobalPosition
	cam.SetRotation(cn.GlobalRotation)
	cam.FOV = cn.FOV
	cam.Orthographic = cn.Orthographic
}

// Render draws the gizmo.
func (cn *CameraNode) Render(rc *RenderContext) {
	d := rc.resolveMesh(&cn.gizmo, CameraGizmo)
	model := math32.ModelMatrix(cn.GlobalPosition, cn.GlobalRotation, math32.Vector3Scalar(1))
	d.Render(rc.Params(model, cn.Color))
}

func (cn *CameraNode) Destroy() {
	if cn.IsDestroyed() {
		return
	}
	cn.NodeBase.Destroy()
	dispose(&cn.gizmo)
}

func (cn *CameraNode) Properties() []Property {
	return append(cn.NodeBase.Properties(),
		Property{Name: "FOV", Kind: KindFloat, Value: &cn.FOV},
		Property{Name: "Orthographic", Kind: KindBool, Value: &cn.Orthographic},
	)
}
