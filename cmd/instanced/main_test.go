// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cogentcore.org/instanced/config"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/xyz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testConfig(t *testing.T) *config.Config {
	c := config.New()
	c.Stream.Path = filepath.Join(t.TempDir(), "scene.xyzo")
	c.Grid.Rows = 2
	c.Grid.Cols = 3
	return c
}

func TestGridDump(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, Grid(c))

	var out bytes.Buffer
	require.NoError(t, dumpFile(c, &out))
	text := out.String()
	assert.Contains(t, text, "stream version 1.0")
	assert.Contains(t, text, "/scene/floor")
	assert.Contains(t, text, "list 1: 6 instances, used by /scene/floor, /scene/roof")

	c.Dump.Format = "yaml"
	out.Reset()
	require.NoError(t, dumpFile(c, &out))
	var sum Summary
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &sum))
	require.Len(t, sum.Nodes, 5)
	require.Len(t, sum.Lists, 1)
	assert.Equal(t, 6, sum.Lists[0].Instances)

	byPath := map[string]NodeInfo{}
	for _, ni := range sum.Nodes {
		byPath[ni.Path] = ni
	}
	floor := byPath["/scene/floor"]
	assert.Equal(t, "xyz.InstancedNode", floor.Type)
	assert.Equal(t, 6, floor.Instances)
	assert.Equal(t, 1, floor.List)
	assert.Equal(t, 6, byPath["/scene/floor/tile"].Visits)
	assert.Equal(t, 6, byPath["/scene/roof/tile"].Visits)
	assert.Equal(t, [3]float32{0, 3, 0}, byPath["/scene/roof"].Pos)
	// 3 columns 2 apart, centered: x in [-2.5, 2.5]
	assert.InDeltaSlice(t, []float32{-2.5, -0.5, -1.5, 2.5, 0.5, 1.5}, floor.Bounds[:], 1e-5)

	c.Dump.Format = "xml"
	assert.Error(t, dumpFile(c, &out))
}

func TestGridTooLarge(t *testing.T) {
	c := testConfig(t)
	c.Grid.Rows = 300
	c.Grid.Cols = 300
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteGrid(c, &buf), xyz.ErrTooManyInstances)

	c.Grid.Rows = -1
	err := WriteGrid(c, &buf)
	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.NotErrorIs(t, err, xyz.ErrTooManyInstances)
}

func TestSimulateBadInstances(t *testing.T) {
	c := config.New()
	c.Simulate.Instances = -3
	_, err := RunSimulation(context.Background(), c)
	assert.ErrorIs(t, err, ErrNegativeCount)
	assert.NotErrorIs(t, err, xyz.ErrTooManyInstances)

	c.Simulate.Instances = xyz.MaxWriteInstances + 1
	_, err = RunSimulation(context.Background(), c)
	assert.ErrorIs(t, err, xyz.ErrTooManyInstances)
}

func TestSimulate(t *testing.T) {
	prev := pipeline.Default()
	t.Cleanup(func() { pipeline.SetDefault(prev) })

	c := config.New()
	c.Pipeline.Name = "simulate-test"
	c.Simulate.Frames = 20
	c.Simulate.Instances = 5
	require.NoError(t, config.Apply(c))

	stats, err := RunSimulation(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, stats, 3)
	for i, st := range stats {
		assert.Equal(t, i, st.Thread.Stage)
		assert.Equal(t, 20, st.Frames)
		assert.Equal(t, i, st.Lag, "stage %s", st.Thread.Name)
	}
	assert.Equal(t, []string{"app", "cull", "draw"}, []string{stats[0].Thread.Name, stats[1].Thread.Name, stats[2].Thread.Name})
	assert.Zero(t, stats[0].Visits)
	assert.Equal(t, 20*5, stats[1].Visits)
	assert.Equal(t, 19*5, stats[2].Visits)
	assert.Equal(t, uint64(21), pipeline.Default().Frame())

	var out bytes.Buffer
	require.NoError(t, writeStats(&out, stats))
	assert.Contains(t, out.String(), "stage 2 draw")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch(t *testing.T) {
	c := testConfig(t)
	require.NoError(t, Grid(c))

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watch(ctx, c, &out) }()

	c.Grid.Cols = 5
	assert.Eventually(t, func() bool {
		if Grid(c) != nil {
			return false
		}
		return bytes.Contains([]byte(out.String()), []byte("10 instances"))
	}, 5*time.Second, 50*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
