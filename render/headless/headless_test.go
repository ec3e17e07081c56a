// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package headless

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veroengine.org/core/render"
)

func TestBackendResolve(t *testing.T) {
	b := New(fstest.MapFS{"Models/cube.obj": {Data: []byte("o cube")}})

	d, err := b.ResolveMesh("Models/cube.obj")
	require.NoError(t, err)
	_, err = b.ResolveMesh("Models/none.obj")
	assert.ErrorIs(t, err, render.ErrNotFound)
	assert.Equal(t, 1, b.Live)

	d.Render(&render.DrawParams{Wireframe: true})
	require.Len(t, b.DrawsOf("Models/cube.obj"), 1)
	assert.True(t, b.Draws[0].Params.Wireframe)

	d.Dispose()
	assert.Equal(t, 0, b.Live)
	d.Dispose()
	d.Render(&render.DrawParams{})
	assert.Equal(t, 2, b.Misuses)
}

func TestResolveFallbacks(t *testing.T) {
	b := New(fstest.MapFS{})
	assert.Equal(t, render.Empty, render.ResolveMesh(b, "Models/none.obj"))
	assert.Equal(t, render.Empty, render.ResolveMesh(nil, "Models/cube.obj"))
	assert.Equal(t, render.DefaultMaterial, render.ResolveMaterial(b, "empty"))
	assert.Equal(t, render.DefaultMaterial, render.ResolveMaterial(b, "Materials/none.mat"))
	assert.Equal(t, 0, b.Live)
	assert.NotPanics(t, render.Empty.Dispose)
}

func TestShadowMap(t *testing.T) {
	b := New(nil)
	sm, err := b.NewShadowMap(256)
	require.NoError(t, err)
	assert.Equal(t, 256, sm.Size())
	for face := 0; face < 6; face++ {
		sm.BeginFace(face)
	}
	sm.End()
	sm.Dispose()
	assert.Equal(t, 6, b.ShadowFaces)
	assert.Equal(t, 0, b.Live)
	_, err = b.NewShadowMap(0)
	assert.Error(t, err)
}
