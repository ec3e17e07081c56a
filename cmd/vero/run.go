// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"

	"veroengine.org/core/app"
	"veroengine.org/core/base/errors"
	"veroengine.org/core/config"
	"veroengine.org/core/logx"
	"veroengine.org/core/math32"
	"veroengine.org/core/render/headless"
	"veroengine.org/core/render/rlrender"
)

// runOptions are the flags of the run command.
type runOptions struct {
	config   string
	scene    string
	headless bool
	frames   int
	watch    bool
	stream   string
	edit     bool
	editor   bool
}

func runCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the start scene of an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := openConfig(opts.config, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			if opts.scene != "" {
				cfg.StartScene = opts.scene
			}
			if !cmd.Flags().Changed("log-level") {
				if lev, ok := logx.ParseLevel(cfg.Log.Level); ok {
					logx.UserLevel.Set(lev)
				}
			}
			return run(cmd.Context(), cfg, &opts)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&opts.config, "config", "c", "app.toml", "application config file")
	fl.StringVar(&opts.scene, "scene", "", "scene to run instead of the start scene of the config")
	fl.BoolVar(&opts.headless, "headless", false, "run without a window")
	fl.IntVar(&opts.frames, "frames", 0, "stop after this many frames (0 runs until interrupted)")
	fl.BoolVarP(&opts.watch, "watch", "w", false, "reload the scene when its file changes")
	fl.StringVar(&opts.stream, "stream", "", "serve node poses over websocket at this address, as in :8080")
	fl.BoolVar(&opts.edit, "edit", false, "run in edit mode: no physics bodies and no spinning")
	fl.BoolVar(&opts.editor, "editor", false, "show light and camera gizmos")
	return cmd
}

// openConfig opens the config file; a missing file that was not asked
// for explicitly gives the defaults.
func openConfig(path string, explicit bool) (*config.App, error) {
	cfg, err := config.Open(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		slog.Debug("vero: no config file, using defaults", "path", path)
		return config.Defaults(), nil
	}
	return cfg, err
}

func run(ctx context.Context, cfg *config.App, opts *runOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if opts.headless {
		be := headless.New(os.DirFS(cfg.ContentDir))
		be.Record = false
		e, err := start(app.New(cfg, be), opts)
		if err != nil {
			return err
		}
		defer e.Close()
		err = e.Run(ctx, opts.frames)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	var flags uint32 = rl.FlagWindowResizable | rl.FlagMsaa4xHint
	if cfg.Display.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Resolution.Width), int32(cfg.Resolution.Height), cfg.Title)
	defer rl.CloseWindow()
	if cfg.Display.FullScreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(int32(cfg.Display.FPSLimit))

	be := rlrender.New(cfg.ContentDir)
	be.Brightness = cfg.Display.Brightness
	defer be.Close()
	e, err := start(app.New(cfg, be), opts)
	if err != nil {
		return err
	}
	defer e.Close()

	background := math32.Vec3(0.1, 0.1, 0.12)
	for n := 0; !rl.WindowShouldClose() && ctx.Err() == nil; n++ {
		if opts.frames > 0 && n >= opts.frames {
			break
		}
		if rl.IsWindowResized() {
			e.Scene.SetAspect(float32(rl.GetScreenWidth()) / float32(rl.GetScreenHeight()))
		}
		rlrender.BeginScene(e.Scene.Camera, background)
		e.Step(rl.GetFrameTime())
		rlrender.EndScene()
	}
	return nil
}

// start loads the start scene and turns on watching and streaming.
func start(e *app.Engine, opts *runOptions) (*app.Engine, error) {
	e.EditMode = opts.edit
	e.Scene.Editor = opts.editor
	if err := e.Load(); err != nil {
		e.Close()
		return nil, err
	}
	if opts.watch {
		errors.Log(e.Watch())
	}
	if opts.stream != "" {
		if _, err := e.Serve(opts.stream); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}
