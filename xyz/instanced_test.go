// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/pipeline"
)

var mainTh = pipeline.MainThread

// newInstancedScene returns a root group with an instanced node holding
// one solid child, and instances at the given x positions.
func newInstancedScene(xs ...float32) (*Group, *InstancedNode, *Solid) {
	root := NewGroup()
	in := NewInstancedNode(root)
	sld := NewSolid(in)
	in.ModifyInstances(mainTh, func(list *InstanceList) {
		for _, x := range xs {
			list.AppendPos(math32.Vec3(x, 0, 0))
		}
	})
	return root, in, sld
}

func TestInstancedCullTraversal(t *testing.T) {
	root, in, sld := newInstancedScene(1, 2, 3)
	trav := NewCullTraverser(mainTh)
	trav.Traverse(root)

	visits := trav.VisitsOf(sld)
	require.Len(t, visits, 3)
	for i, v := range visits {
		assert.Equal(t, in.Instances(mainTh).At(i).Pos(), v.Transform.TransformPoint(math32.Vector3{}))
	}
	assert.Len(t, trav.VisitsOf(in), 1)
	assert.Len(t, trav.Visits, 5)
}

func TestInstancedCullTraversalEmpty(t *testing.T) {
	root, in, sld := newInstancedScene()
	trav := NewCullTraverser(mainTh)
	trav.Traverse(root)
	assert.Empty(t, trav.VisitsOf(sld))
	assert.Len(t, trav.VisitsOf(in), 1)
}

func TestInstancedNodeTransform(t *testing.T) {
	root, in, sld := newInstancedScene(1)
	in.SetPos(0, 5, 0)
	sld.SetPos(0, 0, 7)
	trav := NewCullTraverser(mainTh)
	trav.Traverse(root)
	visits := trav.VisitsOf(sld)
	require.Len(t, visits, 1)
	// node transform, then instance, then child
	assert.Equal(t, math32.Vec3(1, 5, 7), visits[0].Transform.TransformPoint(math32.Vector3{}))
}

func TestInstancedDisablesCulling(t *testing.T) {
	// a frustum around the origin
	fr := math32.NewFrustumFromMatrix(math32.Scale4(0.1, 0.1, 0.1))

	root, in, sld := newInstancedScene(100, 200)
	outside := NewSolid(root)
	outside.SetPos(100, 0, 0)

	trav := NewCullTraverser(mainTh)
	trav.Frustum = fr
	trav.Traverse(root)
	assert.Len(t, trav.VisitsOf(sld), 2)
	assert.Len(t, trav.VisitsOf(in), 1)
	assert.Empty(t, trav.VisitsOf(outside))
	assert.Equal(t, 1, trav.NumCulled)

	trav.Reset()
	trav.Frustum = nil
	trav.CullPlanes = []math32.Plane{math32.NewPlane(math32.Vec3(-1, 0, 0), 50)}
	trav.Traverse(root)
	assert.Len(t, trav.VisitsOf(sld), 2)
	assert.Empty(t, trav.VisitsOf(outside))
}

func TestInstancedCombine(t *testing.T) {
	_, a, _ := newInstancedScene(1, 2)
	b := NewInstancedNode()
	b.SetInstances(mainTh, a.Instances(mainTh))
	assert.Same(t, a, a.CombineWith(b))
	assert.Equal(t, Node(a), Combine(a, b))

	c := NewInstancedNode()
	c.SetInstances(mainTh, a.Instances(mainTh).CopyOnWrite())
	assert.Nil(t, a.CombineWith(c))
	assert.Nil(t, Combine(a, c))

	assert.Nil(t, a.CombineWith(NewGroup()))
	assert.Nil(t, Combine(a, nil))

	assert.False(t, a.SafeToFlatten())
	assert.True(t, a.SafeToCombine())
	assert.True(t, NewGroup().SafeToFlatten())
}

func TestInstancedTightBounds(t *testing.T) {
	_, in, _ := newInstancedScene(0, 10)
	in.SetPos(0, 1, 0)
	bb, found := TightBounds(in, mainTh)
	assert.True(t, found)
	assert.Equal(t, math32.B3(-0.5, 0.5, -0.5, 10.5, 1.5, 0.5), bb)

	_, empty, _ := newInstancedScene()
	_, found = TightBounds(empty, mainTh)
	assert.False(t, found)
	assert.True(t, empty.InternalBounds(mainTh).IsInfinite())
}

func TestInstancedXform(t *testing.T) {
	_, in, sld := newInstancedScene(3)
	before := in.Instances(mainTh)
	in.Xform(math32.Translation4(1, 1, 1))
	assert.Same(t, before, in.Instances(mainTh))
	sld.Xform(math32.Scale4(2, 2, 2))
	assert.Equal(t, math32.B3(-1, -1, -1, 1, 1, 1), sld.Bounds)
}

func TestInstancedCopySharesList(t *testing.T) {
	root, in, _ := newInstancedScene(1, 2, 3)
	cl := in.Clone().(*InstancedNode)
	assert.Same(t, in.Instances(mainTh), cl.Instances(mainTh))
	assert.Equal(t, 1, cl.NumChildren())
	assert.NotSame(t, in.Child(0), cl.Child(0))
	assert.Equal(t, Node(in), Combine(in, cl))

	root.AddChild(cl)
	cl.ModifyInstances(mainTh, func(list *InstanceList) { list.AppendPos(math32.Vec3(4, 0, 0)) })
	assert.Equal(t, 3, in.NumInstances(mainTh))
	assert.Equal(t, 4, cl.NumInstances(mainTh))
	assert.Nil(t, Combine(in, cl))
}

func TestInstancedCloneOwnsCyclers(t *testing.T) {
	cull := pipeline.NewThread("cull", 1)
	_, in, _ := newInstancedScene(1, 2, 3)
	in.SetPos(0, 1, 0)
	pipeline.Default().Cycle()
	in.ModifyInstances(mainTh, func(list *InstanceList) { list.AppendPos(math32.Vec3(4, 0, 0)) })

	cl := in.Clone().(*InstancedNode)
	assert.Equal(t, 4, cl.NumInstances(mainTh))
	assert.Equal(t, 3, cl.NumInstances(cull))
	assert.Same(t, in.Instances(cull), cl.Instances(cull))
	assert.Equal(t, math32.Vec3(0, 1, 0), cl.Transform(cull).Pos())

	cl.ModifyInstances(cull, func(list *InstanceList) { list.Clear() })
	assert.Zero(t, cl.NumInstances(cull))
	assert.Equal(t, 3, in.NumInstances(cull))

	cl.ModifyInstances(mainTh, func(list *InstanceList) { list.AppendPos(math32.Vec3(5, 0, 0)) })
	assert.Equal(t, 5, cl.NumInstances(mainTh))
	assert.Equal(t, 4, in.NumInstances(mainTh))
	assert.Nil(t, Combine(in, cl))

	in.SetPos(0, 5, 0)
	assert.Equal(t, math32.Vec3(0, 1, 0), cl.Transform(mainTh).Pos())
	cl.SetTransform(cull, nil)
	assert.Equal(t, math32.Vec3(0, 1, 0), in.Transform(cull).Pos())
}

func TestInstancedString(t *testing.T) {
	_, in, _ := newInstancedScene(1, 2, 3)
	assert.Equal(t, "/group/instanced-node-0 (3 instances)", in.String())
}

func TestInstancedPipelineStages(t *testing.T) {
	cull := pipeline.NewThread("cull", 1)
	root, in, sld := newInstancedScene()
	pipeline.Default().Cycle()

	in.ModifyInstances(mainTh, func(list *InstanceList) { list.AppendPos(math32.Vec3(1, 0, 0)) })
	assert.Equal(t, 1, in.NumInstances(mainTh))
	held := in.Instances(cull)
	assert.Zero(t, held.Len())

	trav := NewCullTraverser(cull)
	trav.Traverse(root)
	assert.Empty(t, trav.VisitsOf(sld))

	pipeline.Default().Cycle()
	assert.Equal(t, 1, in.NumInstances(cull))
	assert.Zero(t, held.Len())
	trav.Reset()
	trav.Traverse(root)
	assert.Len(t, trav.VisitsOf(sld), 1)

	// writing the app stage again does not change what cull sees
	in.ModifyInstances(mainTh, func(list *InstanceList) { list.Clear() })
	assert.Equal(t, 1, in.NumInstances(cull))
}
