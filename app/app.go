// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app runs a scene for an application: it loads the start
// scene of the configuration, steps and draws it every frame, reloads
// it when its file changes, and streams node poses to websocket
// clients.
package app

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"veroengine.org/core/base/errors"
	"veroengine.org/core/config"
	"veroengine.org/core/render"
	"veroengine.org/core/scenefile"
	"veroengine.org/core/stream"
	"veroengine.org/core/xyz"
	"veroengine.org/core/xyz/physics"
)

// Engine is a running application.
type Engine struct {

	// Config is the configuration of the application.
	Config *config.App

	// Scene is the scene being run.
	Scene *xyz.Scene

	// EditMode is passed to every update.
	EditMode bool

	// Path is the file of the current scene.
	Path string

	// Hub streams poses when [Engine.Serve] was called.
	Hub *stream.Hub

	watcher *scenefile.Watcher
	server  *http.Server
}

// New returns a new engine with an empty scene drawn with the given
// backend, which can be nil.
func New(cfg *config.App, backend render.Backend) *Engine {
	if cfg == nil {
		cfg = config.Defaults()
	}
	sc := xyz.NewScene(backend, cfg.Resolution.Aspect())
	if cfg.Physics.FixedStep > 0 {
		sc.FixedStep = cfg.Physics.FixedStep
	}
	gravity := cfg.Physics.Gravity
	sc.NewWorld = func() physics.World {
		w := physics.NewSimWorld()
		w.Gravity = gravity
		return w
	}
	sc.ResetPhysics()
	return &Engine{Config: cfg, Scene: sc}
}

// Load changes the scene to the start scene of the configuration.
func (e *Engine) Load() error {
	if e.Config.StartScene == "" {
		return nil
	}
	return e.Open(e.Config.ContentPath(e.Config.StartScene))
}

// Open changes the scene to the one in the given file.
func (e *Engine) Open(path string) error {
	if err := scenefile.Change(e.Scene, path); err != nil {
		return err
	}
	e.Path = path
	return nil
}

// Watch reloads the current scene whenever its file changes.
func (e *Engine) Watch() error {
	if e.Path == "" {
		return errors.New("app.Watch: no scene file")
	}
	if e.watcher != nil {
		e.watcher.Close()
	}
	w, err := scenefile.Watch(e.Path)
	if err != nil {
		return err
	}
	e.watcher = w
	return nil
}

// Serve serves the pose stream at the given address, and returns the
// address it listens on.
func (e *Engine) Serve(addr string) (string, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", err
	}
	e.Hub = stream.NewHub()
	mux := http.NewServeMux()
	mux.Handle("/stream", e.Hub)
	e.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := e.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("app.Serve", "addr", ln.Addr(), "err", err)
		}
	}()
	slog.Info("app: streaming poses", "url", "ws://"+ln.Addr().String()+"/stream")
	return ln.Addr().String(), nil
}

// Step reloads the scene if its file changed and runs one frame of
// the given duration in seconds.
func (e *Engine) Step(delta float32) {
	e.reload()
	e.Scene.Frame(delta, e.EditMode)
	if e.Hub != nil && e.Hub.Clients() > 0 {
		if err := e.Hub.Publish(stream.Capture(e.Scene)); err != nil {
			slog.Error("app.Step", "err", err)
		}
	}
}

func (e *Engine) reload() {
	if e.watcher == nil {
		return
	}
	select {
	case path := <-e.watcher.Changed:
		if err := scenefile.Change(e.Scene, path); err != nil {
			slog.Warn("app: scene not reloaded", "path", path, "err", err)
			return
		}
		slog.Info("app: scene reloaded", "path", path)
	default:
	}
}

// Run runs frames until the context is done or the given number of
// frames ran; frames <= 0 runs until the context is done. Frames are
// paced at the FPS limit of the configuration.
func (e *Engine) Run(ctx context.Context, frames int) error {
	var tick <-chan time.Time
	if fps := e.Config.Display.FPSLimit; fps > 0 {
		t := time.NewTicker(time.Second / time.Duration(fps))
		defer t.Stop()
		tick = t.C
	}
	last := time.Now()
	for n := 0; frames <= 0 || n < frames; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		now := time.Now()
		e.Step(float32(now.Sub(last).Seconds()))
		last = now
	}
	return nil
}

// Close stops watching and streaming and destroys the scene.
func (e *Engine) Close() {
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	if e.Hub != nil {
		e.Hub.Close()
	}
	if e.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		errors.Log(e.server.Shutdown(ctx))
	}
	e.Scene.Destroy()
}
