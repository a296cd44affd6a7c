// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"strconv"
	"sync/atomic"

	"cogentcore.org/instanced/types"
)

// admin.go has infrastructure code outside of the Node interface.

// New returns a new node of the given type with the given optional parent.
// If the name is unspecified, it defaults to the ID (kebab-case) name of
// the type, plus the number of lifetime children of its parent.
func New[T NodeValue](parent ...Node) *T {
	n := new(T)
	ni := any(n).(Node)
	InitNode(ni)
	if len(parent) == 0 || parent[0] == nil {
		ni.AsTree().SetName(ni.AsTree().NodeType().IDName)
		return n
	}
	p := parent[0].AsTree().This
	p.AsTree().Children = append(p.AsTree().Children, ni)
	SetParent(ni, p)
	return n
}

// InitNode initializes the node. It sets [NodeBase.This] to the node
// and calls [Node.Init] the first time it is called on a node.
func InitNode(n Node) {
	nb := n.AsTree()
	if nb.This != n {
		nb.This = n
		nb.This.Init()
	}
}

// SetParent sets the parent of the given node to the given parent node.
// This is only for nodes with no existing parent; see [MoveToParent] to
// move nodes that already have a parent. It does not add the node to the
// parent's list of children; see [NodeBase.AddChild] for a version that does.
// It automatically gives the node a unique name if it does not have one.
func SetParent(child Node, parent Node) {
	nb := child.AsTree()
	nb.Parent = parent
	if parent != nil {
		pn := parent.AsTree()
		c := atomic.AddUint64(&pn.numLifetimeChildren, 1)
		if nb.Name == "" {
			nb.SetName(nb.NodeType().IDName + "-" + strconv.FormatUint(c-1, 10)) // must subtract 1 so we start at 0
		}
	}
	child.OnAdd()
	if parent != nil {
		if oca := parent.AsTree().OnChildAdded; oca != nil {
			oca(child)
		}
	}
}

// MoveToParent removes the given node from its current parent
// and adds it as a child of the given new parent.
// The old and new parents can be in different trees (or not).
func MoveToParent(child Node, parent Node) {
	oldParent := child.AsTree().Parent
	if oldParent != nil {
		opb := oldParent.AsTree()
		if idx := IndexOf(opb.Children, child); idx >= 0 {
			opb.Children = append(opb.Children[:idx], opb.Children[idx+1:]...)
		}
	}
	parent.AsTree().AddChild(child)
}

// NewOfType returns a new instance of the given [Node] type.
func NewOfType(typ *types.Type) Node {
	return typ.New().(Node)
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	nb := n.AsTree()
	return nb.This == nil || nb.Parent == nil || nb.Parent.AsTree().This == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	if IsRoot(n) {
		return n.AsTree().This
	}
	return Root(n.AsTree().Parent)
}
