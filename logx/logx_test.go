// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	lev, ok := ParseLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelDebug, lev)

	lev, ok = ParseLevel(" Warn ")
	assert.True(t, ok)
	assert.Equal(t, slog.LevelWarn, lev)

	lev, ok = ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, defaultUserLevel, lev)
}

func TestHandlerLevel(t *testing.T) {
	old := UserLevel.Level()
	defer UserLevel.Set(old)

	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf))
	UserLevel.Set(slog.LevelWarn)
	log.Info("hidden")
	assert.Empty(t, buf.String())
	log.Warn("shown", "node", "Workspace")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "node=Workspace")
	assert.Contains(t, buf.String(), "WARN")
}
