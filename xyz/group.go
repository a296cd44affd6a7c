// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/objio"
)

// Group collects individual elements in a scene but does not have geometry of
// its own. It does have a transform that applies to all nodes under it.
type Group struct {
	NodeBase `copier:"-"`
}

// WriteDatagram implements [objio.Object].
func (gp *Group) WriteDatagram(w *objio.Writer, dg *datagram.Datagram) error {
	return gp.writeNode(w, dg)
}

// Fillin implements [objio.Object].
func (gp *Group) Fillin(r *objio.Reader, it *datagram.Iterator) error {
	gp.fillinNode(gp, r, it)
	return nil
}

// CompletePointers implements [objio.Object].
func (gp *Group) CompletePointers(plist []objio.Object, r *objio.Reader) (int, error) {
	return gp.completeNode(plist)
}

// test for impl
var _ Node = &Group{}
