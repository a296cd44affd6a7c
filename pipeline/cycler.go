// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"weak"
)

// Copier is a value that can be pipelined by a [Cycler]. Values are
// typically pointers to data that is never mutated once published;
// CopyOnWrite returns a new private copy that can be mutated.
type Copier[T any] interface {
	comparable

	// CopyOnWrite returns a new copy of the value that
	// shares nothing mutable with the receiver.
	CopyOnWrite() T
}

// slot is one published snapshot in the cycler ring. It is immutable.
type slot[T any] struct {
	data T
	gen  uint64
}

// Cycler holds one snapshot of a value per pipeline stage.
// Reading is lock-free and returns the current snapshot of a stage,
// which is never modified afterwards. Writing goes through a draft:
// [Cycler.Write] returns a private copy of the stage's snapshot that the
// caller may mutate, and [Cycler.Release] publishes it as the new
// snapshot of that stage. Snapshots are shared between stages after
// a [Cycler.Cycle], so a write to one stage never changes what another
// stage sees.
//
// Each stage must have at most one writer at a time.
type Cycler[T Copier[T]] struct {

	// ring holds the slots; stage s is at index (head + s) % len(ring).
	ring []atomic.Pointer[slot[T]]

	// head is the ring index of stage 0.
	head atomic.Uint32

	// mu protects drafts, open, gen, and serializes publishing with Cycle.
	mu sync.Mutex

	// drafts are the open drafts for each stage, indexed by stage.
	drafts []T

	// open records which stages have an open draft.
	open []bool

	// gen is the last generation number published.
	gen uint64
}

// NewCycler returns a new [Cycler] for the given pipeline (the [Default]
// pipeline if nil), with every stage sharing the given initial value.
// The cycler is registered with the pipeline, so that [Pipeline.Cycle]
// cycles it for as long as it is reachable.
func NewCycler[T Copier[T]](p *Pipeline, initial T) *Cycler[T] {
	if p == nil {
		p = Default()
	}
	n := p.NumStages()
	c := &Cycler[T]{
		ring:   make([]atomic.Pointer[slot[T]], n),
		drafts: make([]T, n),
		open:   make([]bool, n),
	}
	first := &slot[T]{data: initial}
	for i := range c.ring {
		c.ring[i].Store(first)
	}
	wp := weak.Make(c)
	p.add(func() cycler {
		if c := wp.Value(); c != nil {
			return c
		}
		return nil
	})
	return c
}

// NumStages returns the number of stages.
func (c *Cycler[T]) NumStages() int {
	return len(c.ring)
}

func (c *Cycler[T]) index(stage int) int {
	n := len(c.ring)
	return (int(c.head.Load()) + stage) % n
}

func (c *Cycler[T]) check(stage int) {
	if stage < 0 || stage >= len(c.ring) {
		panic("pipeline.Cycler: stage out of range")
	}
}

func (c *Cycler[T]) load(stage int) *slot[T] {
	c.check(stage)
	return c.ring[c.index(stage)].Load()
}

// Read returns the current snapshot for the stage of the given thread.
// The returned value must not be modified.
func (c *Cycler[T]) Read(th Thread) T {
	return c.ReadStage(th.Stage)
}

// ReadStage returns the current snapshot for the given stage.
// It never blocks. If it races with [Cycler.Cycle], it may
// return the snapshot of the neighboring stage, but never
// a partially written one.
func (c *Cycler[T]) ReadStage(stage int) T {
	return c.load(stage).data
}

// Generation returns the generation number of the current snapshot of the given
// stage, which increases every time a value is published to any stage.
func (c *Cycler[T]) Generation(stage int) uint64 {
	return c.load(stage).gen
}

// Write returns the draft for the stage of the given thread, which the
// caller may modify until it calls [Cycler.Release].
func (c *Cycler[T]) Write(th Thread) T {
	return c.WriteStage(th.Stage)
}

// WriteStage returns the draft for the given stage. If the stage already
// has an open draft, it is returned. Otherwise, a new draft is made with
// CopyOnWrite of the current snapshot, which may be shared by readers,
// other stages, or other holders.
func (c *Cycler[T]) WriteStage(stage int) T {
	c.check(stage)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open[stage] {
		return c.drafts[stage]
	}
	d := c.load(stage).data.CopyOnWrite()
	c.drafts[stage] = d
	c.open[stage] = true
	return d
}

// Release publishes the draft of the stage of the given thread.
func (c *Cycler[T]) Release(th Thread) {
	c.ReleaseStage(th.Stage)
}

// ReleaseStage publishes the draft of the given stage as its new snapshot.
// It does nothing if there is no open draft. If the pipeline cycled while
// the draft was open, the draft is published into the slot the stage has
// after the cycle.
func (c *Cycler[T]) ReleaseStage(stage int) {
	c.check(stage)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publish(stage)
}

// publish must be called with mu held.
func (c *Cycler[T]) publish(stage int) {
	if !c.open[stage] {
		return
	}
	c.publishValue(stage, c.drafts[stage])
}

// publishValue must be called with mu held.
func (c *Cycler[T]) publishValue(stage int, v T) {
	var zero T
	c.gen++
	c.ring[c.index(stage)].Store(&slot[T]{data: v, gen: c.gen})
	c.drafts[stage] = zero
	c.open[stage] = false
}

// Modify calls the given function with the draft for the stage of the given
// thread and then publishes it.
func (c *Cycler[T]) Modify(th Thread, fun func(v T)) {
	fun(c.Write(th))
	c.Release(th)
}

// Set publishes the given value as the snapshot for the stage of the given
// thread, discarding any open draft.
func (c *Cycler[T]) Set(th Thread, v T) {
	c.SetStage(th.Stage, v)
}

// SetStage publishes the given value as the snapshot for the given stage,
// discarding any open draft.
func (c *Cycler[T]) SetStage(stage int, v T) {
	c.check(stage)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishValue(stage, v)
}

// SetAll publishes the given value as the snapshot of every stage,
// discarding any open drafts.
func (c *Cycler[T]) SetAll(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s := range c.ring {
		c.publishValue(s, v)
	}
}

// CopyStages publishes the current snapshot of each stage of from as the
// snapshot of the same stage of c, discarding any open drafts of c. The
// snapshots are shared, not copied. Stages past the end of either cycler
// are left as they are.
func (c *Cycler[T]) CopyStages(from *Cycler[T]) {
	n := min(c.NumStages(), from.NumStages())
	vals := make([]T, n)
	for s := range n {
		vals[s] = from.load(s).data
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for s, v := range vals {
		c.publishValue(s, v)
	}
}

// Cycle advances the snapshots by one stage: stage s now sees what stage s-1
// saw, and stage 0 keeps sharing its previous snapshot. It is typically
// called through [Pipeline.Cycle]. Open drafts stay open and unpublished,
// since their writers may still be modifying them; they are published by
// the next [Cycler.Release] of their stage.
func (c *Cycler[T]) Cycle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for s, open := range c.open {
		if open {
			slog.Debug("pipeline.Cycler.Cycle: draft still open", "stage", s)
		}
	}
	n := uint32(len(c.ring))
	head := c.head.Load()
	newHead := (head + n - 1) % n
	c.ring[newHead].Store(c.ring[head].Load())
	c.head.Store(newHead)
}
