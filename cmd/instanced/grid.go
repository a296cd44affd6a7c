// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/instanced/base/errors"
	"cogentcore.org/instanced/config"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/xyz"
)

// ErrNegativeCount is returned for a grid size or
// instance count below zero.
var ErrNegativeCount = errors.New("negative count")

// Grid writes the scene made by [NewGridScene] to the stream file.
func Grid(c *config.Config) error {
	f, err := os.Create(c.Stream.Path)
	if err != nil {
		return err
	}
	err = WriteGrid(c, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		slog.Info("wrote grid", "stream", c.Stream.Path, "instances", c.Grid.Rows*c.Grid.Cols)
	}
	return err
}

// WriteGrid writes the scene made by [NewGridScene] to w.
func WriteGrid(c *config.Config, w io.Writer) error {
	root, err := NewGridScene(c)
	if err != nil {
		return err
	}
	return objio.NewWriter(w).WriteObject(root)
}

// NewGridScene returns a scene with two instanced nodes sharing one
// instance list of Rows x Cols positions centered on the origin,
// each instancing its own unit solid.
func NewGridScene(c *config.Config) (*xyz.Group, error) {
	g := c.Grid
	if g.Rows < 0 || g.Cols < 0 {
		return nil, fmt.Errorf("grid: %d x %d: %w", g.Rows, g.Cols, ErrNegativeCount)
	}
	if g.Rows*g.Cols > xyz.MaxWriteInstances {
		return nil, fmt.Errorf("grid: %d x %d instances: %w", g.Rows, g.Cols, xyz.ErrTooManyInstances)
	}
	th := pipeline.MainThread
	root := xyz.NewGroup()
	root.SetName("scene")

	list := xyz.NewInstanceList(g.Rows * g.Cols)
	x0 := -float32(g.Cols-1) * g.Spacing / 2
	z0 := -float32(g.Rows-1) * g.Spacing / 2
	for r := range g.Rows {
		for col := range g.Cols {
			list.AppendPos(math32.Vec3(x0+float32(col)*g.Spacing, 0, z0+float32(r)*g.Spacing))
		}
	}

	floor := xyz.NewInstancedNode(root)
	floor.SetName("floor")
	floor.SetInstances(th, list)
	tile := xyz.NewSolid(floor)
	tile.SetName("tile")

	roof := xyz.NewInstancedNode(root)
	roof.SetName("roof")
	roof.SetPos(0, 3, 0)
	roof.SetInstances(th, list)
	slab := xyz.NewSolid(roof)
	slab.SetName("tile")
	slab.SetBounds(math32.B3(-0.5, 0, -0.5, 0.5, 0.2, 0.5))
	return root, nil
}
