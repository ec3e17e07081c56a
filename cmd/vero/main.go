// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command vero runs, creates and converts Vero scenes.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"veroengine.org/core/logx"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:           "vero",
		Short:         "Vero runs real-time 3D scenes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logx.SetDefault()
			if cmd.Flags().Changed("log-level") {
				lev, _ := logx.ParseLevel(level)
				logx.UserLevel.Set(lev)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&level, "log-level", "info", "minimum log level: debug, info, warn or error")
	cmd.AddCommand(runCmd(), newCmd(), convertCmd())
	return cmd
}
