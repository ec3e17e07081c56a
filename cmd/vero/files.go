// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"veroengine.org/core/math32"
	"veroengine.org/core/scenefile"
	"veroengine.org/core/tree"
	"veroengine.org/core/xyz"
	"veroengine.org/core/xyz/physics"
)

func newCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <scene file>",
		Short: "Create a starter scene with a camera, a light, a floor and a falling crate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists; use --force to replace it", path)
			}
			return scenefile.Save(path, starterScene())
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing file")
	return cmd
}

// starterScene returns the scene written by the new command.
func starterScene() xyz.Node {
	root := tree.NewRoot[xyz.NodeBase](xyz.WorkspaceName)

	cam := tree.NewNamed[xyz.CameraNode](root, "Camera")
	cam.Position = math32.Vec3(-8, 4, 0)
	cam.Rotation = math32.Vec3(0, -0.4, 0)

	sun := tree.NewNamed[xyz.DirectionalLight](root, "Sun")
	sun.Rotation = math32.Vec3(-1, 0.5, 0)
	lamp := tree.NewNamed[xyz.PointLight](root, "Lamp")
	lamp.Position = math32.Vec3(0, 5, 0)

	floor := tree.NewNamed[xyz.StaticBody](root, "Floor")
	floor.Scale = math32.Vec3(20, 1, 20)
	tree.NewNamed[xyz.Collider](floor, "Shape")
	tree.NewNamed[xyz.MeshNode](floor, "Mesh").Color = math32.Vec3(0.4, 0.4, 0.4)

	crate := tree.NewNamed[xyz.RigidBody](root, "Crate")
	crate.Position = math32.Vec3(0, 6, 0)
	crate.Rotation = math32.Vec3(0.3, 0.2, 0.1)
	tree.NewNamed[xyz.Collider](crate, "Shape")
	tree.NewNamed[xyz.MeshNode](crate, "Mesh").Color = math32.Vec3(0.8, 0.5, 0.2)

	ball := tree.NewNamed[xyz.RigidBody](root, "Ball")
	ball.Position = math32.Vec3(1, 9, 0.5)
	tree.NewNamed[xyz.Collider](ball, "Shape").SetShape(physics.Sphere)
	tree.NewNamed[xyz.MeshNode](ball, "Mesh").SetModel("Models/sphere.obj")

	tree.NewNamed[xyz.RotateNode](root, "Spinner").Spin = math32.Vec3(0, 1, 0)
	return root
}

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a scene file between the JSON, YAML and TOML formats",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return scenefile.Convert(args[0], args[1])
		},
	}
}
