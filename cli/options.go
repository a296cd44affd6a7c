// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

// Options contains the options passed to [Run]
// that control its behavior.
type Options struct {

	// AppName is the internal name of the app, in kebab-case.
	AppName string

	// AppAbout is the description of the app.
	AppAbout string

	// Fatal is whether to, if there is an error in [Run],
	// log it and exit the program with an exit code of 1.
	Fatal bool

	// DefaultFiles are the config files opened when
	// none is given with --config. Missing ones are skipped.
	DefaultFiles []string

	// IncludePaths is the list of directories searched for
	// config files, in order.
	IncludePaths []string

	// NeedConfigFile is whether a config file must be found
	// for the command to run.
	NeedConfigFile bool
}

// DefaultOptions returns a new [Options] value with standard
// default values, based on the given app name and about.
func DefaultOptions(appName, appAbout string) *Options {
	return &Options{
		AppName:      appName,
		AppAbout:     appAbout,
		Fatal:        true,
		DefaultFiles: []string{appName + ".toml", appName + ".yaml"},
		IncludePaths: []string{".", "configs"},
	}
}
