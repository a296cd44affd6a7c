// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logx provides the default logging configuration:
// a user-settable level and a text handler that colors
// the level when writing to a terminal.
package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// UserLevel is the verbosity [slog.Level] that the user has selected
// for what logging and printing messages should be shown. Messages at
// levels at or above this level will be shown. It should typically
// be set through [SetDefaultLogger] or the config file. The default
// is [slog.LevelInfo], or Debug / Warn with the debug / release tags.
var UserLevel = defaultUserLevel

// UseColor is whether to use color in log messages when the
// output supports it. It is on by default.
var UseColor = true

// levelVar is shared by all handlers made by [NewHandler]
// so that [SetLevel] takes effect immediately.
var levelVar slog.LevelVar

func init() {
	levelVar.Set(UserLevel)
}

// SetLevel sets [UserLevel] and the level of all handlers
// returned by [NewHandler].
func SetLevel(level slog.Level) {
	UserLevel = level
	levelVar.Set(level)
}

// ParseLevel returns the [slog.Level] for the given case-insensitive
// name (debug, info, warn, error). Unknown names return [UserLevel].
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return UserLevel
	}
	return level
}

// NewHandler returns a text [slog.Handler] writing to w, filtered at
// [UserLevel], with the level colored when w is a color terminal.
func NewHandler(w io.Writer) slog.Handler {
	out := termenv.NewOutput(w)
	color := UseColor && out.Profile != termenv.Ascii
	opts := &slog.HandlerOptions{
		Level: &levelVar,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if !color || len(groups) > 0 || a.Key != slog.LevelKey {
				return a
			}
			level, ok := a.Value.Any().(slog.Level)
			if !ok {
				return a
			}
			a.Value = slog.StringValue(ColorLevel(out, level))
			return a
		},
	}
	return slog.NewTextHandler(w, opts)
}

// ColorLevel returns the name of the given level colored
// for the given output.
func ColorLevel(out *termenv.Output, level slog.Level) string {
	s := out.String(level.String())
	switch {
	case level >= slog.LevelError:
		s = s.Foreground(out.Color("1")).Bold()
	case level >= slog.LevelWarn:
		s = s.Foreground(out.Color("3"))
	case level >= slog.LevelInfo:
		s = s.Foreground(out.Color("4"))
	default:
		s = s.Faint()
	}
	return s.String()
}

// SetDefaultLogger sets the level and installs a [NewHandler]
// logger on stderr as the [slog.Default] logger.
func SetDefaultLogger(level slog.Level) {
	SetLevel(level)
	slog.SetDefault(slog.New(NewHandler(os.Stderr)))
}
