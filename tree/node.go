// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the parent/child node hierarchy that
// scene graphs are built on, centered on the [Node] interface.
package tree

// Node is the interface of every node in a tree. All of the structure
// lives in [NodeBase], which every node type embeds; Node holds only
// the hooks that node types may override. Nodes are always pointers;
// the matching non-pointer types satisfy [NodeValue].
type Node interface {

	// AsTree returns the embedded [NodeBase].
	AsTree() *NodeBase

	// Init sets up the node. It runs once, before the node
	// gets a parent.
	Init()

	// OnAdd runs each time the node gets a parent.
	OnAdd()

	// Destroy releases the node and everything below it.
	Destroy()

	// CopyFieldsFrom copies the field values of from, which has the same
	// type, into this node. Overrides must call [NodeBase.CopyFieldsFrom]
	// first and then fix up the fields it can not copy.
	CopyFieldsFrom(from Node)
}

// NodeValue is satisfied by the non-pointer form of node types,
// and lets [New] take the node type as a type parameter.
type NodeValue interface {
	NodeValue()
}

// NodeValue implements [NodeValue].
func (nb NodeBase) NodeValue() {}
