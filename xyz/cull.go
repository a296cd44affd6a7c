// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"slices"

	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/tree"
)

// CullData is the state of a [CullTraverser] at one node.
// It is cloned for each branch of the traversal.
type CullData struct {

	// Node is the node being visited.
	Node Node

	// NetTransform is the transform from the node space to the root space.
	NetTransform *Transform

	// ViewFrustum is the view frustum in root space that nodes are culled
	// against. Nil means no frustum culling below this point.
	ViewFrustum *math32.Frustum

	// CullPlanes are additional planes in root space: nodes entirely behind
	// any of them are culled.
	CullPlanes []math32.Plane
}

// Clone returns a copy of the data that can be changed
// without affecting the receiver.
func (cd *CullData) Clone() *CullData {
	c := *cd
	c.CullPlanes = slices.Clone(cd.CullPlanes)
	return &c
}

// IsInView returns whether the given bounds, in the node space, may be visible.
// Empty and infinite bounds are always in view.
func (cd *CullData) IsInView(bounds math32.Box3) bool {
	if bounds.IsEmpty() || bounds.IsInfinite() || (cd.ViewFrustum == nil && len(cd.CullPlanes) == 0) {
		return true
	}
	m := cd.NetTransform.Matrix()
	wb := bounds.MulMatrix4(&m)
	if cd.ViewFrustum != nil && !cd.ViewFrustum.IntersectsBox(wb) {
		return false
	}
	for _, pl := range cd.CullPlanes {
		if boxBehindPlane(wb, pl) {
			return false
		}
	}
	return true
}

// boxBehindPlane returns whether the box is entirely on the negative side of the plane.
func boxBehindPlane(b math32.Box3, pl math32.Plane) bool {
	var p math32.Vector3
	// the corner furthest along the plane normal
	p.X = b.Min.X
	if pl.Norm.X > 0 {
		p.X = b.Max.X
	}
	p.Y = b.Min.Y
	if pl.Norm.Y > 0 {
		p.Y = b.Max.Y
	}
	p.Z = b.Min.Z
	if pl.Norm.Z > 0 {
		p.Z = b.Max.Z
	}
	return pl.DistanceToPoint(p) < 0
}

// Visit is a node visited by a [CullTraverser], with the net transform
// it was visited with.
type Visit struct {
	Node      Node
	Transform *Transform
}

// CullTraverser walks a scene for one pipeline stage, accumulating transforms,
// culling nodes outside the view, and recording every node that is visited.
// Nodes can take over the traversal of their children with [Node.CullCallback].
type CullTraverser struct {

	// Thread is the pipeline thread whose snapshots are read.
	Thread pipeline.Thread

	// Frustum is the initial view frustum, in root space; nil for no frustum culling.
	Frustum *math32.Frustum

	// CullPlanes are the initial additional cull planes, in root space.
	CullPlanes []math32.Plane

	// Visits are the visited nodes, in traversal order.
	Visits []Visit

	// NumCulled is the number of nodes that were culled.
	NumCulled int

	// OnVisit, if set, is called for every visited node.
	OnVisit func(v Visit)
}

// NewCullTraverser returns a new traverser reading the snapshots of the given thread.
func NewCullTraverser(th pipeline.Thread) *CullTraverser {
	return &CullTraverser{Thread: th}
}

// Reset clears the results of the last traversal.
func (t *CullTraverser) Reset() {
	t.Visits = t.Visits[:0]
	t.NumCulled = 0
}

// Traverse visits the given root node and everything below it.
func (t *CullTraverser) Traverse(root Node) {
	t.traverse(&CullData{
		Node:         root,
		NetTransform: IdentityTransform(),
		ViewFrustum:  t.Frustum,
		CullPlanes:   slices.Clone(t.CullPlanes),
	})
}

// TraverseBelow visits every child of data.Node, using data as the
// parent state for each of them.
func (t *CullTraverser) TraverseBelow(data *CullData) {
	for _, kid := range data.Node.AsTree().Children {
		kn, _ := AsNode(kid)
		if kn == nil {
			continue
		}
		cd := data.Clone()
		cd.Node = kn
		t.traverse(cd)
	}
}

// traverse visits data.Node, with data holding the parent state.
func (t *CullTraverser) traverse(data *CullData) {
	n := data.Node
	data.NetTransform = data.NetTransform.Compose(n.AsNodeBase().Transform(t.Thread))
	if !data.IsInView(n.InternalBounds(t.Thread)) {
		t.NumCulled++
		return
	}
	v := Visit{Node: n, Transform: data.NetTransform}
	t.Visits = append(t.Visits, v)
	if t.OnVisit != nil {
		t.OnVisit(v)
	}
	if n.CullCallback(t, data) {
		t.TraverseBelow(data)
	}
}

// VisitsOf returns the visits of the given node, in traversal order.
func (t *CullTraverser) VisitsOf(n tree.Node) []Visit {
	var vs []Visit
	for _, v := range t.Visits {
		if tree.Node(v.Node) == n {
			vs = append(vs, v)
		}
	}
	return vs
}
