// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline provides multi-stage pipelined data, where each
// stage of a frame pipeline (for example app, cull and draw) sees its
// own consistent snapshot of a value, and the snapshots advance one
// stage each time the pipeline is cycled.
package pipeline

import (
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
)

// DefaultStageNames are the names of the stages of the default three stage pipeline.
var DefaultStageNames = []string{"app", "cull", "draw"}

// Pipeline is a sequence of stages that pipelined values advance through.
// Every [Cycler] is created for a Pipeline, and calling [Pipeline.Cycle]
// at the end of each frame cycles all of them.
type Pipeline struct {

	// Name is the name of the pipeline, used for logging.
	Name string

	// StageNames has one name per stage; its length is the number of stages.
	StageNames []string

	// frame is the number of times the pipeline has been cycled.
	frame atomic.Uint64

	// mu protects cyclers.
	mu sync.Mutex

	// cyclers has one entry per registered [Cycler]. Each entry holds only a
	// weak reference, and returns nil once the cycler has been collected.
	cyclers []func() cycler
}

// cycler is the type-independent part of [Cycler].
type cycler interface {
	Cycle()
}

var defaultPipeline atomic.Pointer[Pipeline]

func init() {
	defaultPipeline.Store(NewPipeline("default", len(DefaultStageNames)))
}

// Default returns the default pipeline, which has the
// [DefaultStageNames] unless changed with [SetDefault].
func Default() *Pipeline {
	return defaultPipeline.Load()
}

// SetDefault sets the pipeline returned by [Default].
// Cyclers created before this call stay on their old pipeline.
func SetDefault(p *Pipeline) {
	defaultPipeline.Store(p)
}

// NewPipelineNamed returns a new pipeline with the given stage names.
// If no names are given it has a single stage.
func NewPipelineNamed(name string, stageNames ...string) *Pipeline {
	if len(stageNames) == 0 {
		stageNames = []string{"stage-0"}
	}
	return &Pipeline{Name: name, StageNames: stageNames}
}

// NewPipeline returns a new pipeline with the given number of
// stages (at least one), named from [DefaultStageNames] where available.
func NewPipeline(name string, numStages int) *Pipeline {
	numStages = max(numStages, 1)
	names := make([]string, numStages)
	for i := range names {
		if i < len(DefaultStageNames) {
			names[i] = DefaultStageNames[i]
		} else {
			names[i] = "stage-" + strconv.Itoa(i)
		}
	}
	return NewPipelineNamed(name, names...)
}

// NumStages returns the number of stages in the pipeline.
func (p *Pipeline) NumStages() int {
	return len(p.StageNames)
}

// Frame returns the number of times [Pipeline.Cycle] has been called.
func (p *Pipeline) Frame() uint64 {
	return p.frame.Load()
}

// NumCyclers returns the number of live cyclers registered with the pipeline.
func (p *Pipeline) NumCyclers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, get := range p.cyclers {
		if get() != nil {
			n++
		}
	}
	return n
}

// Thread returns a new [Thread] for the stage with the given name,
// and false if there is no such stage.
func (p *Pipeline) Thread(stageName string) (Thread, bool) {
	for i, nm := range p.StageNames {
		if nm == stageName {
			return Thread{Name: nm, Stage: i}, true
		}
	}
	return Thread{}, false
}

// add registers a cycler with the pipeline.
func (p *Pipeline) add(get func() cycler) {
	p.mu.Lock()
	p.cyclers = append(p.cyclers, get)
	p.mu.Unlock()
}

// Cycle advances every live cycler of the pipeline by one stage,
// so that each stage now sees what the previous stage saw, and
// increments the frame counter. Entries for collected cyclers are dropped.
func (p *Pipeline) Cycle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	live := p.cyclers[:0]
	for _, get := range p.cyclers {
		c := get()
		if c == nil {
			continue
		}
		c.Cycle()
		live = append(live, get)
	}
	clear(p.cyclers[len(live):])
	p.cyclers = live
	frame := p.frame.Add(1)
	slog.Debug("pipeline.Pipeline.Cycle", "pipeline", p.Name, "frame", frame, "cyclers", len(live))
}

// Thread identifies the pipeline stage that a goroutine works in.
// All reads and writes of pipelined data by that goroutine go
// through the Stage of its Thread.
type Thread struct {

	// Name is the name of the thread, typically the stage name.
	Name string

	// Stage is the index of the pipeline stage of the thread.
	Stage int
}

// NewThread returns a new [Thread] with the given name and stage.
func NewThread(name string, stage int) Thread {
	return Thread{Name: name, Stage: stage}
}

// MainThread is the application stage thread.
var MainThread = Thread{Name: "app", Stage: 0}
