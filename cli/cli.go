// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli runs commands configured from struct field tags,
// config files and command line flags.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// Run runs one of the given commands with the given config, which
// must be a pointer to a struct. The config is filled, in increasing
// priority, from `default:` tags, config files and [os.Args] flags.
// The first positional argument names the command; with none, the
// root command runs. If [Options.Fatal] is set, an error is logged and
// the program exits.
func Run[T any](opts *Options, cfg T, cmds ...*Cmd[T]) error {
	err := RunArgs(opts, cfg, os.Args[1:], os.Stdout, cmds...)
	if err != nil && opts.Fatal {
		slog.Error(err.Error())
		os.Exit(1)
	}
	return err
}

// RunArgs is [Run] with the given arguments, writing
// usage information to the given writer.
func RunArgs[T any](opts *Options, cfg T, args []string, usage io.Writer, cmds ...*Cmd[T]) error {
	fs, leftovers, err := Config(opts, cfg, args)
	if err != nil {
		return err
	}
	help, _ := fs.GetBool("help")
	name := ""
	if len(leftovers) > 0 {
		name = leftovers[0]
	}
	if help || name == "help" {
		fmt.Fprint(usage, Usage(opts, fs, cmds...))
		return nil
	}
	cmd := findCmd(cmds, name)
	if cmd == nil {
		if name == "" {
			fmt.Fprint(usage, Usage(opts, fs, cmds...))
			return nil
		}
		return fmt.Errorf("cli: unknown command %q", name)
	}
	if err := cmd.Func(cfg); err != nil {
		return fmt.Errorf("error running command %q: %w", cmd.Name, err)
	}
	return nil
}

// Config sets the given config from its defaults, config files and
// the given arguments, returning the flag set used and the
// remaining positional arguments.
func Config(opts *Options, cfg any, args []string) (*pflag.FlagSet, []string, error) {
	SetFromDefaults(cfg)
	if err := openFiles(opts, cfg, configArg(args)); err != nil {
		return nil, nil, err
	}
	fs := pflag.NewFlagSet(opts.AppName, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringP("config", "c", "", "the config file to open (toml or yaml)")
	fs.BoolP("help", "h", false, "show usage information")
	AddFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("cli: %w", err)
	}
	return fs, fs.Args(), nil
}

// Usage returns the usage string for the app,
// listing the commands and the flags of fs.
func Usage[T any](opts *Options, fs *pflag.FlagSet, cmds ...*Cmd[T]) string {
	var b strings.Builder
	b.WriteString(opts.AppName)
	if opts.AppAbout != "" {
		b.WriteString(": " + opts.AppAbout)
	}
	b.WriteString("\n\nUsage:\n  " + opts.AppName + " <command> [flags]\n\nCommands:\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "  %-12s %s", c.Name, c.Doc)
		if c.Root {
			b.WriteString(" (default)")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nFlags:\n")
	b.WriteString(fs.FlagUsages())
	return b.String()
}
