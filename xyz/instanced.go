// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"

	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/tree"
)

// InstancedNode renders everything below it once per [Instance] of its
// [InstanceList], each time with the instance transform applied between
// the node and its children. The list is pipelined, so each pipeline stage
// sees its own consistent list, and lists are shared between stages and
// nodes until they are modified.
type InstancedNode struct {
	NodeBase `copier:"-"`

	instances *pipeline.Cycler[*InstanceList]
}

func (in *InstancedNode) Init() {
	in.NodeBase.Init()
	if in.instances == nil {
		in.instances = pipeline.NewCycler(pipeline.Default(), EmptyInstanceList())
	}
}

// Instances returns the instance list for the given thread.
// It must not be modified; see [InstancedNode.ModifyInstances].
func (in *InstancedNode) Instances(th pipeline.Thread) *InstanceList {
	return in.instances.Read(th)
}

// NumInstances returns the number of instances for the given thread.
func (in *InstancedNode) NumInstances(th pipeline.Thread) int {
	return in.Instances(th).Len()
}

// SetInstances replaces the instance list for the given thread. The list
// is shared, not copied, so it must not be modified afterwards. A nil list
// is the empty list.
func (in *InstancedNode) SetInstances(th pipeline.Thread, list *InstanceList) {
	if list == nil {
		list = EmptyInstanceList()
	}
	in.instances.Set(th, list)
}

// ModifyInstances calls the given function with a private copy of the instance
// list for the given thread, which it may modify, and then publishes it.
func (in *InstancedNode) ModifyInstances(th pipeline.Thread, fun func(list *InstanceList)) {
	in.instances.Modify(th, fun)
}

// InternalBounds returns an infinite box, so that the node is never culled
// as a whole: its instances may be anywhere.
func (in *InstancedNode) InternalBounds(th pipeline.Thread) math32.Box3 {
	return math32.B3Infinite()
}

// CullCallback traverses the children once per instance, with the instance
// transform composed onto the net transform. The view frustum and cull planes
// are cleared, since the bounds of the children do not account for the
// instances. It returns false, since the children have been visited.
func (in *InstancedNode) CullCallback(trav *CullTraverser, data *CullData) bool {
	data.ViewFrustum = nil
	data.CullPlanes = nil
	list := in.Instances(trav.Thread)
	for _, inst := range list.All() {
		cd := data.Clone()
		cd.NetTransform = data.NetTransform.Compose(inst.Transform())
		trav.TraverseBelow(cd)
	}
	return false
}

// CalcTightBounds includes the children once per instance.
func (in *InstancedNode) CalcTightBounds(bb *math32.Box3, found *bool, xf *Transform, th pipeline.Thread) *Transform {
	next := xf.Compose(in.Transform(th))
	for _, inst := range in.Instances(th).All() {
		in.childTightBounds(bb, found, next.Compose(inst.Transform()), th)
	}
	return next
}

// Xform does nothing: the instance transforms are relative to this node,
// so they are not changed by flattening.
func (in *InstancedNode) Xform(m *math32.Matrix4) {}

// SafeToFlatten returns false: flattening would lose the instances.
func (in *InstancedNode) SafeToFlatten() bool { return false }

func (in *InstancedNode) SafeToCombine() bool { return true }

// CombineWith returns this node if other is an InstancedNode sharing
// the same instance list on the [pipeline.MainThread], and nil otherwise.
func (in *InstancedNode) CombineWith(other Node) Node {
	on, ok := other.(*InstancedNode)
	if !ok || on == nil {
		return nil
	}
	th := pipeline.MainThread
	if in.Instances(th) == on.Instances(th) {
		return in
	}
	return nil
}

// CopyFieldsFrom copies the fields of the given node. The node keeps its
// own instance cycler, with every stage sharing the list that stage has
// in from, so that the copy can be combined with from until either list
// is modified.
func (in *InstancedNode) CopyFieldsFrom(from tree.Node) {
	insts := in.instances
	in.NodeBase.CopyFieldsFrom(from)
	in.instances = insts
	if fi, ok := from.(*InstancedNode); ok {
		in.instances.CopyStages(fi.instances)
	}
}

func (in *InstancedNode) String() string {
	return fmt.Sprintf("%s (%d instances)", in.NodeBase.String(), in.NumInstances(pipeline.MainThread))
}

// WriteDatagram implements [objio.Object].
func (in *InstancedNode) WriteDatagram(w *objio.Writer, dg *datagram.Datagram) error {
	if err := in.writeNode(w, dg); err != nil {
		return err
	}
	w.WritePointer(dg, in.Instances(pipeline.MainThread))
	return nil
}

// Fillin implements [objio.Object].
func (in *InstancedNode) Fillin(r *objio.Reader, it *datagram.Iterator) error {
	in.fillinNode(in, r, it)
	r.ReadPointer(it)
	return nil
}

// CompletePointers implements [objio.Object].
func (in *InstancedNode) CompletePointers(plist []objio.Object, r *objio.Reader) (int, error) {
	n, err := in.completeNode(plist)
	if err != nil {
		return n, err
	}
	list, err := objio.Resolve[*InstanceList](plist, n)
	if err != nil {
		return n, err
	}
	if list == nil {
		list = EmptyInstanceList()
	}
	in.instances.SetAll(list)
	return n + 1, nil
}

var _ Node = &InstancedNode{}
