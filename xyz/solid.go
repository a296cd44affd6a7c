// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
	"cogentcore.org/instanced/pipeline"
)

// Solid represents an individual 3D solid element. The geometry
// itself lives in the rendering backend; the scenegraph only
// tracks its bounding box, in the solid's own space.
type Solid struct {
	NodeBase `copier:"-"`

	// Bounds is the bounding box of the geometry of the solid.
	Bounds math32.Box3
}

func (sld *Solid) Init() {
	sld.NodeBase.Init()
	if sld.Bounds == (math32.Box3{}) {
		sld.Bounds = math32.B3(-0.5, -0.5, -0.5, 0.5, 0.5, 0.5)
	}
}

// SetBounds sets the [Solid.Bounds].
func (sld *Solid) SetBounds(bb math32.Box3) *Solid {
	sld.Bounds = bb
	return sld
}

func (sld *Solid) InternalBounds(th pipeline.Thread) math32.Box3 {
	return sld.Bounds
}

func (sld *Solid) CalcTightBounds(bb *math32.Box3, found *bool, xf *Transform, th pipeline.Thread) *Transform {
	next := xf.Compose(sld.Transform(th))
	if !sld.Bounds.IsEmpty() {
		m := next.Matrix()
		bb.ExpandByBox(sld.Bounds.MulMatrix4(&m))
		*found = true
	}
	sld.childTightBounds(bb, found, next, th)
	return next
}

// Xform transforms the bounds by the given matrix.
func (sld *Solid) Xform(m *math32.Matrix4) {
	sld.Bounds = sld.Bounds.MulMatrix4(m)
}

// WriteDatagram implements [objio.Object].
func (sld *Solid) WriteDatagram(w *objio.Writer, dg *datagram.Datagram) error {
	if err := sld.writeNode(w, dg); err != nil {
		return err
	}
	addVector3(dg, sld.Bounds.Min)
	addVector3(dg, sld.Bounds.Max)
	return nil
}

// Fillin implements [objio.Object].
func (sld *Solid) Fillin(r *objio.Reader, it *datagram.Iterator) error {
	sld.fillinNode(sld, r, it)
	sld.Bounds.Min = readVector3(it)
	sld.Bounds.Max = readVector3(it)
	return nil
}

// CompletePointers implements [objio.Object].
func (sld *Solid) CompletePointers(plist []objio.Object, r *objio.Reader) (int, error) {
	return sld.completeNode(plist)
}

var _ Node = &Solid{}
