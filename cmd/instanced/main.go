// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command instanced writes, inspects and animates instanced scenes:
//
//	instanced grid --grid.rows 8 --stream scene.xyzo
//	instanced dump -s scene.xyzo -f yaml --watch
//	instanced simulate --frames 500
package main

import (
	"cogentcore.org/instanced/base/logx"
	"cogentcore.org/instanced/cli"
	"cogentcore.org/instanced/config"
)

func main() {
	logx.SetDefaultLogger(logx.UserLevel)
	opts := cli.DefaultOptions("instanced", "writes, inspects and animates pipelined instanced scenes")
	cli.Run(opts, &config.Config{},
		cli.NewCmd("grid", "writes a grid of instances sharing one solid to the stream", applied(Grid)),
		cli.NewCmd("dump", "prints the nodes and instance lists of the stream", applied(Dump)).SetRoot(true),
		cli.NewCmd("simulate", "runs the pipeline stages over an animated instanced node", applied(Simulate)),
	)
}

// applied returns a command that applies the config before running fun.
func applied(fun func(c *config.Config) error) func(c *config.Config) error {
	return func(c *config.Config) error {
		if err := config.Apply(c); err != nil {
			return err
		}
		return fun(c)
	}
}
