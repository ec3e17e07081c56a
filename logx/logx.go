// Copyright (c) 2026, Vero Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx installs the engine's default [slog] logger, which
// writes text records with colored levels at a user-settable level.
package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity level of the default logger.
// It can be changed at any time; records below it are dropped.
var UserLevel = new(slog.LevelVar)

func init() {
	UserLevel.Set(defaultUserLevel)
}

// NewHandler returns a text handler writing to w that colors the level
// of each record according to the color profile of w.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: UserLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			lev, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(LevelStyle(out, lev).String())
			return a
		},
	})
}

// LevelStyle returns the level name styled for the given output.
func LevelStyle(out *termenv.Output, lev slog.Level) termenv.Style {
	s := out.String(lev.String())
	switch {
	case lev >= slog.LevelError:
		return s.Foreground(out.Color("1")).Bold()
	case lev >= slog.LevelWarn:
		return s.Foreground(out.Color("3"))
	case lev >= slog.LevelInfo:
		return s.Foreground(out.Color("4"))
	}
	return s.Faint()
}

// SetDefault installs a logger using [NewHandler] on stderr as the
// default [slog] logger.
func SetDefault() {
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}

// ParseLevel parses a level name such as "debug" or "WARN". Unknown
// names return the default level and false.
func ParseLevel(name string) (slog.Level, bool) {
	var lev slog.Level
	if err := lev.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(name)))); err != nil {
		return defaultUserLevel, false
	}
	return lev, true
}
