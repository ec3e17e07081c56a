// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of a Vero application,
// which is stored in a TOML file next to its content.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"veroengine.org/core/math32"
)

// App is the configuration of an application.
type App struct {

	// Title is the title of the window.
	Title string `def:"Vero"`

	// Version is the version of the application.
	Version string `def:"v0.0.0"`

	// ContentDir is the directory that content paths are relative to.
	// A relative ContentDir is relative to the config file.
	ContentDir string `def:"Game/Content"`

	// StartScene is the scene loaded at startup, relative to ContentDir.
	StartScene string `def:"main.json"`

	// UserData is the directory for saved games and preferences.
	UserData string

	// Resolution is the size of the window.
	Resolution Resolution

	// Display has the display settings.
	Display Display

	// Physics has the physics settings.
	Physics Physics

	// Log has the logging settings.
	Log Log
}

type Resolution struct {

	// Width in pixels.
	Width int `def:"1280"`

	// Height in pixels.
	Height int `def:"720"`
}

// Aspect returns the width / height ratio, or 1 for an empty resolution.
func (r Resolution) Aspect() float32 {
	if r.Width <= 0 || r.Height <= 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}

type Display struct {
	FullScreen bool
	VSync      bool `def:"true"`

	// FPSLimit is the target frame rate; 0 is unlimited.
	FPSLimit int `def:"60"`

	// Brightness multiplies the output color.
	Brightness float32 `def:"1"`
}

type Physics struct {

	// Gravity is the acceleration of gravity.
	Gravity math32.Vector3

	// FixedStep is the physics timestep in seconds.
	FixedStep float32
}

type Log struct {

	// Level is the minimum log level: debug, info, warn or error.
	Level string `def:"info"`
}

// Defaults returns the default configuration.
func Defaults() *App {
	return &App{
		Title:      "Vero",
		Version:    "v0.0.0",
		ContentDir: filepath.Join("Game", "Content"),
		StartScene: "main.json",
		Resolution: Resolution{Width: 1280, Height: 720},
		Display:    Display{VSync: true, FPSLimit: 60, Brightness: 1},
		Physics:    Physics{Gravity: math32.Vec3(0, -10, 0), FixedStep: float32(1) / 60},
		Log:        Log{Level: "info"},
	}
}

// Open reads the configuration in the given TOML file on top of the
// defaults. A relative ContentDir is made relative to the file.
func Open(path string) (*App, error) {
	a := Defaults()
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(b, a); err != nil {
		return nil, fmt.Errorf("config.Open %s: %w", path, err)
	}
	if !filepath.IsAbs(a.ContentDir) {
		a.ContentDir = filepath.Join(filepath.Dir(path), a.ContentDir)
	}
	return a, nil
}

// Save writes the configuration to the given TOML file.
func (a *App) Save(path string) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(a); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ContentPath returns the path of the given content file.
func (a *App) ContentPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.ContentDir, name)
}
