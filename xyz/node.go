// Copyright (c) 2019, Cogent Core. All rights reserved.
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

// Node is the common interface for all xyz scenegraph nodes.
type Node interface {
	tree.Node

	// AsNodeBase returns the [NodeBase] for our node, which gives
	// access to all the base-level data structures and methods
	// without requiring interface methods.
	AsNodeBase() *NodeBase

	// InternalBounds returns the bounding box of the node itself in its own
	// space, without its children. An empty box means the node has no volume
	// of its own and is never culled by itself, and an infinite box means it
	// must always be traversed.
	InternalBounds(th pipeline.Thread) math32.Box3

	// CullCallback is called by the [CullTraverser] when it visits the node,
	// after the node's own transform has been applied to data. It returns
	// true if the traverser should go on to visit the children, or false
	// if the callback has taken care of them.
	CullCallback(trav *CullTraverser, data *CullData) bool

	// CalcTightBounds expands bb to include the node and everything below it,
	// as seen through the parent transform xf, setting found to true if there
	// was anything to include. It returns the net transform of the node.
	CalcTightBounds(bb *math32.Box3, found *bool, xf *Transform, th pipeline.Thread) *Transform

	// Xform applies the given matrix to the geometry of the node, as part
	// of flattening a transform into the vertices below it.
	Xform(m *math32.Matrix4)

	// SafeToFlatten returns whether the node can be removed by flattening
	// its transform into the nodes below it.
	SafeToFlatten() bool

	// SafeToCombine returns whether the node can be combined with a sibling
	// by [Combine].
	SafeToCombine() bool

	// CombineWith returns a node that stands in for both this node and other,
	// or nil if they can not be combined.
	CombineWith(other Node) Node
}

// NodeBase is the basic 3D scenegraph node, which has its own transform,
// relative to its parent. The transform is pipelined, so that each
// pipeline stage sees its own consistent value.
type NodeBase struct {
	tree.NodeBase `copier:"-"`

	// xf is the transform of the node, relative to its parent.
	xf *pipeline.Cycler[*Transform]

	// numReadKids is the number of children pointers read by fillinNode.
	numReadKids int
}

// AsNode converts the given tree node to a [Node] and [NodeBase],
// returning nil if that is not possible.
func AsNode(n tree.Node) (Node, *NodeBase) {
	if n == nil {
		return nil, nil
	}
	nii, ok := n.(Node)
	if !ok {
		return nil, nil
	}
	return nii, nii.AsNodeBase()
}

// AsNodeBase returns the [NodeBase].
func (nb *NodeBase) AsNodeBase() *NodeBase {
	return nb
}

func (nb *NodeBase) Init() {
	if nb.xf == nil {
		nb.xf = pipeline.NewCycler(pipeline.Default(), IdentityTransform())
	}
}

// Transform returns the transform of the node for the given thread.
func (nb *NodeBase) Transform(th pipeline.Thread) *Transform {
	return nb.xf.Read(th)
}

// SetTransform sets the transform of the node for the given thread.
// A nil transform is the identity.
func (nb *NodeBase) SetTransform(th pipeline.Thread, xf *Transform) {
	nb.xf.Set(th, xf.orIdentity())
}

// SetPos sets the position of the node on the [pipeline.MainThread].
func (nb *NodeBase) SetPos(x, y, z float32) *NodeBase {
	th := pipeline.MainThread
	nb.SetTransform(th, nb.Transform(th).WithPos(math32.Vec3(x, y, z)))
	return nb
}

// SetScale sets the scale of the node on the [pipeline.MainThread].
func (nb *NodeBase) SetScale(x, y, z float32) *NodeBase {
	th := pipeline.MainThread
	nb.SetTransform(th, nb.Transform(th).WithScale(math32.Vec3(x, y, z)))
	return nb
}

// SetEulerRotation sets the rotation of the node on the [pipeline.MainThread],
// from Euler angles in degrees.
func (nb *NodeBase) SetEulerRotation(x, y, z float32) *NodeBase {
	th := pipeline.MainThread
	cur := nb.Transform(th)
	nb.SetTransform(th, NewTransformPose(cur.Pos(), math32.Vec3(x, y, z), cur.Scale()))
	return nb
}

// CopyFieldsFrom copies the fields of the given node. The node keeps its
// own transform cycler, with every stage set to the transform that stage
// has in from.
func (nb *NodeBase) CopyFieldsFrom(from tree.Node) {
	xf := nb.xf
	nb.NodeBase.CopyFieldsFrom(from)
	nb.xf = xf
	if _, fb := AsNode(from); fb != nil {
		nb.xf.CopyStages(fb.xf)
	}
}

// InternalBounds returns an empty box: the base node has no volume of its own.
func (nb *NodeBase) InternalBounds(th pipeline.Thread) math32.Box3 {
	return math32.B3Empty()
}

// CullCallback continues to the children.
func (nb *NodeBase) CullCallback(trav *CullTraverser, data *CullData) bool {
	return true
}

// CalcTightBounds includes the children of the node.
func (nb *NodeBase) CalcTightBounds(bb *math32.Box3, found *bool, xf *Transform, th pipeline.Thread) *Transform {
	next := xf.Compose(nb.Transform(th))
	nb.childTightBounds(bb, found, next, th)
	return next
}

// childTightBounds calls CalcTightBounds on every child with the given transform.
func (nb *NodeBase) childTightBounds(bb *math32.Box3, found *bool, xf *Transform, th pipeline.Thread) {
	for _, kid := range nb.Children {
		if kn, _ := AsNode(kid); kn != nil {
			kn.CalcTightBounds(bb, found, xf, th)
		}
	}
}

// Xform does nothing for nodes without geometry.
func (nb *NodeBase) Xform(m *math32.Matrix4) {}

func (nb *NodeBase) SafeToFlatten() bool { return true }

func (nb *NodeBase) SafeToCombine() bool { return true }

// CombineWith returns nil: base nodes are not combined.
func (nb *NodeBase) CombineWith(other Node) Node {
	return nil
}

// Combine returns the node that stands in for both a and b,
// if both are safe to combine and a can combine with b,
// and nil otherwise.
func Combine(a, b Node) Node {
	if a == nil || b == nil || !a.SafeToCombine() || !b.SafeToCombine() {
		return nil
	}
	return a.CombineWith(b)
}

// TightBounds returns the bounding box of the given node and everything
// below it in the node's parent space, and false if there is nothing with
// volume below it.
func TightBounds(n Node, th pipeline.Thread) (math32.Box3, bool) {
	bb := math32.B3Empty()
	found := false
	n.CalcTightBounds(&bb, &found, IdentityTransform(), th)
	return bb, found
}

// writeNode writes the fields common to all nodes: name, transform,
// and children. Every child must be an [objio.Object].
func (nb *NodeBase) writeNode(w *objio.Writer, dg *datagram.Datagram) error {
	if err := dg.AddString(nb.Name); err != nil {
		return err
	}
	w.WritePointer(dg, nb.Transform(pipeline.MainThread))
	dg.AddUint16(uint16(len(nb.Children)))
	for _, kid := range nb.Children {
		ko, ok := kid.(objio.Object)
		if !ok {
			return fmt.Errorf("child %s of type %T can not be written", kid.AsTree().Name, kid)
		}
		w.WritePointer(dg, ko)
	}
	return nil
}

// fillinNode reads what writeNode wrote. this is the node as its true type.
func (nb *NodeBase) fillinNode(this Node, r *objio.Reader, it *datagram.Iterator) {
	tree.InitNode(this)
	nb.Name = it.ReadString()
	r.ReadPointer(it)
	nb.numReadKids = int(it.Uint16())
	for range nb.numReadKids {
		r.ReadPointer(it)
	}
}

// completeNode sets the transform of every stage and the children from
// the start of plist, returning the number of pointers it used.
func (nb *NodeBase) completeNode(plist []objio.Object) (int, error) {
	xf, err := objio.Resolve[*Transform](plist, 0)
	if err != nil {
		return 0, err
	}
	nb.xf.SetAll(xf.orIdentity())
	if len(plist) < 1+nb.numReadKids {
		return 1, objio.ErrPointerCount
	}
	for i, p := range plist[1 : 1+nb.numReadKids] {
		kid, ok := p.(Node)
		if !ok {
			return 1 + i, fmt.Errorf("%w: child %d is %T", objio.ErrWrongType, i, p)
		}
		nb.AddChild(kid)
	}
	return 1 + nb.numReadKids, nil
}
