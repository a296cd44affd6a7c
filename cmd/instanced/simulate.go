// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/instanced/config"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/xyz"
	"golang.org/x/sync/errgroup"
)

// StageStats are the results of one pipeline stage in [Simulate].
type StageStats struct {

	// Thread is the thread of the stage.
	Thread pipeline.Thread

	// Frames is the number of frames the stage ran.
	Frames int

	// Visits is the total number of solid visits by the stage.
	Visits int

	// Lag is the number of frames between the app frame that wrote
	// the instances seen by the stage in the last frame and that frame.
	Lag int
}

// Simulate animates an instanced node in the app stage while every
// other stage of [pipeline.Default] culls it, one goroutine per stage,
// cycling the pipeline between frames. It prints the per-stage results.
func Simulate(c *config.Config) error {
	stats, err := RunSimulation(context.Background(), c)
	if err != nil {
		return err
	}
	return writeStats(os.Stdout, stats)
}

// RunSimulation runs the simulation of [Simulate] and returns the
// results of each stage.
func RunSimulation(ctx context.Context, c *config.Config) ([]StageStats, error) {
	n := c.Simulate.Instances
	if n < 0 {
		return nil, fmt.Errorf("simulate: %d instances: %w", n, ErrNegativeCount)
	}
	if n > xyz.MaxWriteInstances {
		return nil, fmt.Errorf("simulate: %d instances: %w", n, xyz.ErrTooManyInstances)
	}
	p := pipeline.Default()
	root := xyz.NewGroup()
	root.SetName("simulation")
	in := xyz.NewInstancedNode(root)
	xyz.NewSolid(in)
	list := xyz.NewInstanceList(n)
	for i := range n {
		list.AppendPos(math32.Vec3(-1, 0, float32(i)))
	}
	in.SetInstances(pipeline.MainThread, list)
	p.Cycle()

	stats := make([]StageStats, p.NumStages())
	for i, name := range p.StageNames {
		stats[i].Thread = pipeline.NewThread(name, i)
	}
	for frame := range c.Simulate.Frames {
		g, gctx := errgroup.WithContext(ctx)
		for i := range stats {
			st := &stats[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if st.Thread.Stage == 0 {
					animate(in, st.Thread, frame)
				} else {
					cull(root, in, st, frame)
				}
				st.Frames++
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return stats, err
		}
		p.Cycle()
	}
	slog.Debug("simulate: done", "frames", c.Simulate.Frames, "pipeline frame", p.Frame())
	return stats, nil
}

// animate moves every instance to x = frame.
func animate(in *xyz.InstancedNode, th pipeline.Thread, frame int) {
	in.ModifyInstances(th, func(list *xyz.InstanceList) {
		for i, inst := range list.All() {
			pos := inst.Pos()
			pos.X = float32(frame)
			inst.SetPos(pos)
			list.Set(i, inst)
		}
	})
}

// cull traverses the scene for a later stage, counting the solid visits
// and the lag of the instances it sees behind the app stage.
func cull(root *xyz.Group, in *xyz.InstancedNode, st *StageStats, frame int) {
	trav := xyz.NewCullTraverser(st.Thread)
	trav.Traverse(root)
	for _, v := range trav.Visits {
		if _, ok := v.Node.(*xyz.Solid); ok {
			st.Visits++
		}
	}
	list := in.Instances(st.Thread)
	if list.Len() > 0 {
		st.Lag = frame - int(list.At(0).Pos().X)
	}
}

func writeStats(w io.Writer, stats []StageStats) error {
	for _, st := range stats {
		if _, err := fmt.Fprintf(w, "stage %d %-8s frames %6d  visits %8d  lag %d\n", st.Thread.Stage, st.Thread.Name, st.Frames, st.Visits, st.Lag); err != nil {
			return err
		}
	}
	return nil
}
