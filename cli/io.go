// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"cogentcore.org/instanced/base/fsx"
	"cogentcore.org/instanced/config"
)

// openFiles reads the given config file, or the [Options.DefaultFiles]
// if file is empty, into cfg, looking for them on [Options.IncludePaths].
// Later files overwrite settings from earlier ones.
func openFiles(opts *Options, cfg any, file string) error {
	var files []string
	if file != "" {
		files = fsx.FindFilesOnPaths(opts.IncludePaths, file)
		if len(files) == 0 {
			return fmt.Errorf("cli: config file %q not found on paths %v", file, opts.IncludePaths)
		}
	} else {
		files = fsx.FindFilesOnPaths(opts.IncludePaths, opts.DefaultFiles...)
	}
	if len(files) == 0 && opts.NeedConfigFile {
		return fmt.Errorf("cli: a config file is required; none of %v found on paths %v", opts.DefaultFiles, opts.IncludePaths)
	}
	for _, f := range files {
		if err := config.Open(cfg, f); err != nil {
			return fmt.Errorf("cli: opening config file %q: %w", f, err)
		}
		slog.Debug("cli: opened config file", "file", f)
	}
	return nil
}

// configArg returns the value of the --config / -c argument,
// which has to be known before the other flags are parsed.
func configArg(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		for _, prefix := range []string{"--config", "-config", "-c"} {
			if a == prefix && i+1 < len(args) {
				return args[i+1]
			}
			if v, ok := strings.CutPrefix(a, prefix+"="); ok {
				return v
			}
		}
	}
	return ""
}
