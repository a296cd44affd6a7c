// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"log/slog"
	"reflect"
	"slices"
	"strings"

	"github.com/jinzhu/copier"

	"cogentcore.org/instanced/base/strcase"
	"cogentcore.org/instanced/types"
)

// NodeBase holds the hierarchy of a node and implements [Node].
// Node types embed it, and are created with [New], [NodeBase.NewChild]
// or [NodeBase.Clone], or set up with [InitNode] before use.
type NodeBase struct {

	// Name identifies the node among its siblings and in paths.
	// Unnamed nodes get the kebab-case name of their type and the
	// number of children ever added to their parent, as in group-2.
	Name string `copier:"-"`

	// This is the node as its concrete type, so that NodeBase methods
	// reach overridden methods. It is nil once the node is destroyed.
	This Node `copier:"-" json:"-" yaml:"-"`

	// Parent is the node this one is a child of, or nil for a root.
	// Use [MoveToParent] to change it.
	Parent Node `copier:"-" json:"-" yaml:"-"`

	// Children are the child nodes, in order.
	Children []Node `copier:"-" yaml:",omitempty"`

	// OnChildAdded, if set, is called with each node that
	// becomes a child of this one.
	OnChildAdded func(n Node) `copier:"-" json:"-" yaml:"-"`

	// numLifetimeChildren counts every child ever added, for naming.
	numLifetimeChildren uint64

	// index is where this node was last found in its parent.
	index int
}

// String returns the path of the node.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// AsTree implements [Node].
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// SetName sets the name of the node.
func (n *NodeBase) SetName(name string) *NodeBase {
	n.Name = name
	return n
}

// NodeType returns the registered [types.Type] of the node,
// registering it first if needed.
func (n *NodeBase) NodeType() *types.Type {
	if t := types.TypeByValue(n.This); t != nil {
		if t.Instance == nil {
			t.Instance = n.NewInstance()
		}
		return t
	}
	name := types.TypeNameValue(n.This)
	return types.AddType(&types.Type{
		Name:     name,
		IDName:   strcase.ToKebab(name[strings.LastIndex(name, ".")+1:]),
		Instance: n.NewInstance(),
	})
}

// NewInstance returns a new zero node of the same type.
func (n *NodeBase) NewInstance() Node {
	return reflect.New(reflect.TypeOf(n.This).Elem()).Interface().(Node)
}

// IndexInParent returns the index of the node among the children of
// its parent, or -1 for a root. The search starts at the last result.
func (n *NodeBase) IndexInParent() int {
	if n.Parent == nil {
		return -1
	}
	n.index = IndexOf(n.Parent.AsTree().Children, n.This, n.index)
	return n.index
}

// ParentLevel returns the level of the given ancestor above the
// parent of this node, which is level 0, or -1 if it is not an ancestor.
func (n *NodeBase) ParentLevel(parent Node) int {
	level := 0
	for cur := n.Parent; cur != nil; cur = cur.AsTree().Parent {
		if cur == parent {
			return level
		}
		level++
	}
	return -1
}

// HasChildren returns whether the node has any children.
func (n *NodeBase) HasChildren() bool {
	return len(n.Children) > 0
}

// NumChildren returns the number of children.
func (n *NodeBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child at index i, or nil if there is none.
func (n *NodeBase) Child(i int) Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// ChildByName returns the first child with the given name, or nil.
// See [IndexOf] for startIndex.
func (n *NodeBase) ChildByName(name string, startIndex ...int) Node {
	return n.Child(IndexByName(n.Children, name, startIndex...))
}

// EscapePathName escapes / in a name as \\ for use in a path.
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName reverses [EscapePathName].
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the /-separated names from the root down to the node,
// with a leading /.
func (n *NodeBase) Path() string {
	p := "/" + EscapePathName(n.Name)
	if n.Parent == nil {
		return p
	}
	return n.Parent.AsTree().Path() + p
}

// FindPath returns the node at the given path below this node, in the
// form of [NodeBase.Path] without the leading name of this node, or nil.
func (n *NodeBase) FindPath(path string) Node {
	cur := n.This
	for _, name := range strings.Split(strings.TrimSpace(path), "/") {
		if name == "" {
			continue
		}
		cur = cur.AsTree().ChildByName(UnescapePathName(name))
		if cur == nil {
			return nil
		}
	}
	return cur
}

// AddChild appends kid, which must not have a parent, to the children.
func (n *NodeBase) AddChild(kid Node) {
	n.InsertChild(kid, len(n.Children))
}

// NewChild appends a new node of the given type to the children and returns it.
func (n *NodeBase) NewChild(typ *types.Type) Node {
	kid := NewOfType(typ)
	n.AddChild(kid)
	return kid
}

// InsertChild inserts kid, which must not have a parent,
// at the given index of the children.
func (n *NodeBase) InsertChild(kid Node, index int) {
	InitNode(kid)
	n.Children = slices.Insert(n.Children, index, kid)
	SetParent(kid, n.This)
}

// DeleteChildAt removes and destroys the child at the given index,
// returning false if there is none.
func (n *NodeBase) DeleteChildAt(index int) bool {
	kid := n.Child(index)
	if kid == nil {
		return false
	}
	n.Children = slices.Delete(n.Children, index, index+1)
	kid.Destroy()
	return true
}

// DeleteChild removes and destroys the given child,
// returning false if it is not a child.
func (n *NodeBase) DeleteChild(kid Node) bool {
	if kid == nil {
		return false
	}
	return n.DeleteChildAt(IndexOf(n.Children, kid))
}

// DeleteChildren removes and destroys all of the children.
func (n *NodeBase) DeleteChildren() {
	kids := n.Children
	n.Children = nil
	for _, kid := range kids {
		if kid != nil {
			kid.Destroy()
		}
	}
}

// Delete removes the node from its parent and destroys it.
func (n *NodeBase) Delete() {
	if n.Parent != nil {
		n.Parent.AsTree().DeleteChild(n.This)
		return
	}
	n.This.Destroy()
}

// Destroy implements [Node] by destroying the children
// and clearing This.
func (n *NodeBase) Destroy() {
	if n.This == nil {
		return
	}
	n.DeleteChildren()
	n.This = nil
}

// Return values of walk functions.
const (
	Continue = true
	Break    = false
)

// WalkUp calls fun on the node and then each of its ancestors until
// fun returns [Break]. It returns false if the walk was stopped.
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	for cur := n.This; cur != nil; cur = cur.AsTree().Parent {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkDown calls fun on the node and everything below it, depth first
// in child order. Returning [Break] skips the children of that node.
// Nodes destroyed by fun are not descended into.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if n.This == nil || !fun(n.This) || n.This == nil {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		if kid != nil {
			kid.AsTree().WalkDown(fun)
		}
	}
}

// CopyFrom makes this node a deep copy of from, which must have the same
// type: the fields are copied with [Node.CopyFieldsFrom] and the children
// are replaced by clones of the children of from. Fields tagged
// copier:"-" and unexported fields are not copied.
func (n *NodeBase) CopyFrom(from Node) {
	if from == nil {
		slog.Error("tree.NodeBase.CopyFrom: nil source", "node", n)
		return
	}
	n.DeleteChildren()
	n.This.CopyFieldsFrom(from)
	for _, kid := range from.AsTree().Children {
		n.AddChild(kid.AsTree().Clone())
	}
}

// Clone returns a deep copy of the node and everything below it,
// with the same name and no parent.
func (n *NodeBase) Clone() Node {
	c := n.NewInstance()
	InitNode(c)
	c.AsTree().SetName(n.Name)
	c.AsTree().CopyFrom(n.This)
	return c
}

// CopyFieldsFrom implements [Node] with a deep copy by
// github.com/jinzhu/copier of the exported fields. The hierarchy
// fields of the NodeBase itself are never changed.
func (n *NodeBase) CopyFieldsFrom(from Node) {
	keep := *n
	err := copier.CopyWithOption(n.This, from.AsTree().This, copier.Option{CaseSensitive: true, DeepCopy: true})
	*n = keep
	if err != nil {
		slog.Error("tree.NodeBase.CopyFieldsFrom", "err", err)
	}
}

// Init implements [Node] and does nothing.
func (n *NodeBase) Init() {}

// OnAdd implements [Node] and does nothing.
func (n *NodeBase) OnAdd() {}
