// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"context"
	"runtime"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type seq struct {
	vals []int
}

func (s *seq) CopyOnWrite() *seq {
	return &seq{vals: slices.Clone(s.vals)}
}

func (s *seq) push(v int) {
	s.vals = append(s.vals, v)
}

func TestCyclerStages(t *testing.T) {
	p := NewPipeline("test", 3)
	orig := &seq{}
	c := NewCycler(p, orig)
	app, cull, draw := 0, 1, 2

	assert.Same(t, orig, c.ReadStage(app))
	assert.Same(t, orig, c.ReadStage(draw))

	c.Modify(NewThread("app", app), func(s *seq) { s.push(1) })
	assert.Equal(t, []int{1}, c.ReadStage(app).vals)
	assert.Same(t, orig, c.ReadStage(cull))
	assert.Empty(t, orig.vals)

	p.Cycle()
	assert.Same(t, c.ReadStage(app), c.ReadStage(cull))
	assert.Same(t, orig, c.ReadStage(draw))

	c.Modify(MainThread, func(s *seq) { s.push(2) })
	assert.Equal(t, []int{1, 2}, c.ReadStage(app).vals)
	assert.Equal(t, []int{1}, c.ReadStage(cull).vals)

	p.Cycle()
	assert.Equal(t, []int{1, 2}, c.ReadStage(cull).vals)
	assert.Equal(t, []int{1}, c.ReadStage(draw).vals)
	assert.Equal(t, uint64(2), p.Frame())
}

func TestCyclerDraft(t *testing.T) {
	p := NewPipeline("test", 2)
	c := NewCycler(p, &seq{})
	g0 := c.Generation(0)

	d := c.WriteStage(0)
	assert.Same(t, d, c.WriteStage(0))
	d.push(7)
	assert.Empty(t, c.ReadStage(0).vals)
	c.ReleaseStage(0)
	assert.Same(t, d, c.ReadStage(0))
	assert.Greater(t, c.Generation(0), g0)

	// release without a draft is a no-op
	g1 := c.Generation(0)
	c.ReleaseStage(0)
	assert.Equal(t, g1, c.Generation(0))

	// next write copies again
	d2 := c.WriteStage(0)
	assert.NotSame(t, d, d2)
	c.ReleaseStage(0)
}

func TestCyclerCycleKeepsDraftsOpen(t *testing.T) {
	p := NewPipeline("test", 2)
	c := NewCycler(p, &seq{})
	d := c.WriteStage(0)
	d.push(1)
	p.Cycle()
	held := c.ReadStage(1)
	d.push(2)
	assert.Empty(t, held.vals)
	assert.Empty(t, c.ReadStage(0).vals)
	assert.NotSame(t, d, held)

	c.ReleaseStage(0)
	assert.Same(t, d, c.ReadStage(0))
	assert.Equal(t, []int{1, 2}, c.ReadStage(0).vals)
	assert.Empty(t, held.vals)
	assert.Empty(t, c.ReadStage(1).vals)

	p.Cycle()
	assert.Equal(t, []int{1, 2}, c.ReadStage(1).vals)
}

func TestCyclerStageRange(t *testing.T) {
	c := NewCycler(NewPipeline("test", 2), &seq{})
	assert.PanicsWithValue(t, "pipeline.Cycler: stage out of range", func() { c.WriteStage(2) })
	assert.PanicsWithValue(t, "pipeline.Cycler: stage out of range", func() { c.ReleaseStage(-1) })
	assert.PanicsWithValue(t, "pipeline.Cycler: stage out of range", func() { c.SetStage(5, &seq{}) })
	assert.PanicsWithValue(t, "pipeline.Cycler: stage out of range", func() { c.ReadStage(2) })
}

func TestCyclerSet(t *testing.T) {
	p := NewPipeline("test", 2)
	c := NewCycler(p, &seq{})
	c.WriteStage(1).push(9)
	nv := &seq{vals: []int{4}}
	c.SetStage(1, nv)
	assert.Same(t, nv, c.ReadStage(1))
	assert.Empty(t, c.ReadStage(0).vals)
	// the discarded draft is not published on cycle
	p.Cycle()
	assert.Empty(t, c.ReadStage(1).vals)
}

func TestCyclerSetAll(t *testing.T) {
	p := NewPipeline("test", 3)
	c := NewCycler(p, &seq{})
	c.WriteStage(1).push(5)
	v := &seq{vals: []int{7}}
	c.SetAll(v)
	for s := range 3 {
		assert.Same(t, v, c.ReadStage(s))
	}
	c.ReleaseStage(1)
	assert.Same(t, v, c.ReadStage(1))
}

func TestCyclerCopyStages(t *testing.T) {
	p := NewPipeline("test", 3)
	src := NewCycler(p, &seq{})
	src.Modify(MainThread, func(s *seq) { s.push(1) })
	p.Cycle()
	src.Modify(MainThread, func(s *seq) { s.push(2) })

	dst := NewCycler(p, &seq{})
	dst.CopyStages(src)
	for s := range 3 {
		assert.Same(t, src.ReadStage(s), dst.ReadStage(s))
	}
	assert.Equal(t, []int{1, 2}, dst.ReadStage(0).vals)
	assert.Equal(t, []int{1}, dst.ReadStage(1).vals)
	assert.Empty(t, dst.ReadStage(2).vals)

	dst.Modify(NewThread("cull", 1), func(s *seq) { s.push(9) })
	assert.Equal(t, []int{1}, src.ReadStage(1).vals)
	assert.Equal(t, []int{1, 9}, dst.ReadStage(1).vals)

	short := NewCycler(NewPipeline("short", 1), &seq{})
	short.CopyStages(src)
	assert.Same(t, src.ReadStage(0), short.ReadStage(0))
}

func TestSingleStage(t *testing.T) {
	p := NewPipeline("single", 0)
	require.Equal(t, 1, p.NumStages())
	c := NewCycler(p, &seq{})
	c.Modify(MainThread, func(s *seq) { s.push(1) })
	p.Cycle()
	assert.Equal(t, []int{1}, c.Read(MainThread).vals)
}

func TestPipelineThreads(t *testing.T) {
	p := NewPipeline("test", 4)
	assert.Equal(t, []string{"app", "cull", "draw", "stage-3"}, p.StageNames)
	th, ok := p.Thread("draw")
	assert.True(t, ok)
	assert.Equal(t, Thread{Name: "draw", Stage: 2}, th)
	_, ok = p.Thread("physics")
	assert.False(t, ok)
	assert.Equal(t, 3, Default().NumStages())
}

func newDroppedCycler(p *Pipeline) {
	c := NewCycler(p, &seq{})
	c.Modify(MainThread, func(s *seq) { s.push(1) })
}

func TestPipelineWeakCyclers(t *testing.T) {
	p := NewPipeline("test", 2)
	kept := NewCycler(p, &seq{})
	newDroppedCycler(p)
	assert.Eventually(t, func() bool {
		runtime.GC()
		return p.NumCyclers() == 1
	}, time.Second, 10*time.Millisecond)
	p.Cycle()
	runtime.KeepAlive(kept)
}

// TestCyclerConcurrent has the app stage write and cycle while the
// other stages read, checking that no reader ever sees a snapshot change.
func TestCyclerConcurrent(t *testing.T) {
	p := NewPipeline("test", 3)
	c := NewCycler(p, &seq{})
	const frames = 200

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		for i := range frames {
			c.Modify(MainThread, func(s *seq) { s.push(i) })
			p.Cycle()
		}
		return nil
	})
	for stage := 1; stage < 3; stage++ {
		g.Go(func() error {
			for {
				select {
				case <-done:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				s := c.ReadStage(stage)
				n := len(s.vals)
				for i, v := range s.vals {
					if v != i {
						t.Errorf("stage %d: value %d at %d", stage, v, i)
						return nil
					}
				}
				runtime.Gosched()
				if len(s.vals) != n {
					t.Errorf("stage %d: snapshot changed from %d to %d", stage, n, len(s.vals))
					return nil
				}
			}
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, frames, len(c.ReadStage(1).vals))
	assert.Equal(t, frames-1, len(c.ReadStage(2).vals))
}
