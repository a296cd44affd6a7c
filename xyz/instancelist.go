// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
)

// ErrTooManyInstances is returned when writing an [InstanceList]
// with more instances than the stream format can hold.
var ErrTooManyInstances = errors.New("xyz: too many instances to write")

// MaxWriteInstances is the largest number of instances that an
// [InstanceList] can have when it is written to a stream.
const MaxWriteInstances = math.MaxUint16

// InstanceList is an ordered list of [Instance]s. Lists are shared between
// pipeline stages and nodes, so a list that may be visible to anyone else
// must never be modified: get a private copy with [InstanceList.CopyOnWrite],
// typically through [InstancedNode.ModifyInstances].
type InstanceList struct {
	instances []Instance
}

var emptyInstanceList = &InstanceList{}

// EmptyInstanceList returns the shared empty list. It must not be modified.
func EmptyInstanceList() *InstanceList {
	return emptyInstanceList
}

// NewInstanceList returns a new empty list with capacity for n instances.
func NewInstanceList(n int) *InstanceList {
	return &InstanceList{instances: make([]Instance, 0, n)}
}

// Len returns the number of instances.
func (il *InstanceList) Len() int {
	return len(il.instances)
}

// At returns the instance at the given index.
func (il *InstanceList) At(i int) Instance {
	return il.instances[i]
}

// Set sets the instance at the given index.
func (il *InstanceList) Set(i int, in Instance) {
	il.instances[i] = in
}

// All returns an iterator over the index and value of each instance.
func (il *InstanceList) All() iter.Seq2[int, Instance] {
	return slices.All(il.instances)
}

// Append adds the given instance at the end and returns its index.
func (il *InstanceList) Append(in Instance) int {
	il.instances = append(il.instances, in)
	return len(il.instances) - 1
}

// AppendTransform adds a new instance with the given transform and returns its index.
func (il *InstanceList) AppendTransform(xf *Transform) int {
	return il.Append(NewInstance(xf))
}

// AppendPose adds a new instance with the given position, Euler rotation in
// degrees, and scale, and returns its index.
func (il *InstanceList) AppendPose(pos, euler, scale math32.Vector3) int {
	return il.AppendTransform(NewTransformPose(pos, euler, scale))
}

// AppendQuat adds a new instance with the given position, rotation,
// and scale, and returns its index.
func (il *InstanceList) AppendQuat(pos math32.Vector3, quat math32.Quat, scale math32.Vector3) int {
	return il.AppendTransform(NewTransform(pos, quat, scale))
}

// AppendPos adds a new instance at the given position, with no rotation
// and unit scale, and returns its index.
func (il *InstanceList) AppendPos(pos math32.Vector3) int {
	return il.AppendTransform(NewTransformPos(pos))
}

// Clear removes all instances.
func (il *InstanceList) Clear() {
	il.instances = nil
}

// TransformAll replaces the transform of every instance with m times it.
func (il *InstanceList) TransformAll(m *math32.Matrix4) {
	for i, in := range il.instances {
		om := in.Transform().Matrix()
		il.instances[i].xf = NewTransformMatrix(m.Mul(&om))
	}
}

// Without returns the list without the instances whose index is set in the
// given mask. Bits past the end of the list are ignored. If no instance is
// removed it returns the receiver, and if every instance is removed it
// returns [EmptyInstanceList]; otherwise it returns a new list.
func (il *InstanceList) Without(mask *bitset.BitSet) *InstanceList {
	n := uint(len(il.instances))
	var removed uint
	first := n
	for i, ok := mask.NextSet(0); ok && i < n; i, ok = mask.NextSet(i + 1) {
		if removed == 0 {
			first = i
		}
		removed++
	}
	if removed == 0 {
		return il
	}
	if removed >= n {
		return emptyInstanceList
	}
	res := NewInstanceList(int(n - removed))
	res.instances = append(res.instances, il.instances[:first]...)
	for i := first; i < n; i++ {
		if !mask.Test(i) {
			res.instances = append(res.instances, il.instances[i])
		}
	}
	return res
}

// CopyOnWrite returns a new list with the same instances,
// which can be modified without affecting the receiver.
func (il *InstanceList) CopyOnWrite() *InstanceList {
	return &InstanceList{instances: slices.Clone(il.instances)}
}

func (il *InstanceList) String() string {
	return fmt.Sprintf("InstanceList (%d instances)", il.Len())
}

// WriteDatagram implements [objio.Object].
func (il *InstanceList) WriteDatagram(w *objio.Writer, dg *datagram.Datagram) error {
	n := len(il.instances)
	if n > MaxWriteInstances {
		return fmt.Errorf("%w: %d > %d", ErrTooManyInstances, n, MaxWriteInstances)
	}
	dg.AddUint16(uint16(n))
	for _, in := range il.instances {
		w.WritePointer(dg, in.Transform())
	}
	return nil
}

// Fillin implements [objio.Object].
func (il *InstanceList) Fillin(r *objio.Reader, it *datagram.Iterator) error {
	n := int(it.Uint16())
	il.instances = make([]Instance, n)
	for range n {
		r.ReadPointer(it)
	}
	return nil
}

// CompletePointers implements [objio.Object].
func (il *InstanceList) CompletePointers(plist []objio.Object, r *objio.Reader) (int, error) {
	for i := range il.instances {
		xf, err := objio.Resolve[*Transform](plist, i)
		if err != nil {
			return i, err
		}
		il.instances[i].xf = xf
	}
	return len(il.instances), nil
}
