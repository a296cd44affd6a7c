// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objio_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/instanced/datagram"
	. "cogentcore.org/instanced/objio"
	"cogentcore.org/instanced/types"
)

type node struct {
	Name        string
	Left, Right *node
}

func (n *node) WriteDatagram(w *Writer, dg *datagram.Datagram) error {
	if err := dg.AddString(n.Name); err != nil {
		return err
	}
	w.WritePointer(dg, n.Left)
	w.WritePointer(dg, n.Right)
	return nil
}

func (n *node) Fillin(r *Reader, it *datagram.Iterator) error {
	n.Name = it.ReadString()
	r.ReadPointer(it)
	r.ReadPointer(it)
	return nil
}

func (n *node) CompletePointers(plist []Object, r *Reader) (int, error) {
	var err error
	if n.Left, err = Resolve[*node](plist, 0); err != nil {
		return 0, err
	}
	if n.Right, err = Resolve[*node](plist, 1); err != nil {
		return 1, err
	}
	return 2, nil
}

// leaf is written where a node is expected when read back.
type leaf struct{}

func (l *leaf) WriteDatagram(w *Writer, dg *datagram.Datagram) error { return nil }
func (l *leaf) Fillin(r *Reader, it *datagram.Iterator) error         { return nil }
func (l *leaf) CompletePointers(plist []Object, r *Reader) (int, error) {
	return 0, nil
}

// mislabeled writes a pointer to a leaf but reads it back as a node.
type mislabeled struct {
	Leaf *leaf
	Node *node
}

func (m *mislabeled) WriteDatagram(w *Writer, dg *datagram.Datagram) error {
	w.WritePointer(dg, m.Leaf)
	return nil
}

func (m *mislabeled) Fillin(r *Reader, it *datagram.Iterator) error {
	r.ReadPointer(it)
	return nil
}

func (m *mislabeled) CompletePointers(plist []Object, r *Reader) (int, error) {
	var err error
	m.Node, err = Resolve[*node](plist, 0)
	return 1, err
}

// greedy requests a pointer and then does not consume it.
type greedy struct{}

func (g *greedy) WriteDatagram(w *Writer, dg *datagram.Datagram) error {
	w.WritePointer(dg, nil)
	return nil
}
func (g *greedy) Fillin(r *Reader, it *datagram.Iterator) error {
	r.ReadPointer(it)
	return nil
}
func (g *greedy) CompletePointers(plist []Object, r *Reader) (int, error) {
	return 0, nil
}

type unregistered struct{ leaf }

func init() {
	types.AddType(&types.Type{Name: "cogentcore.org/instanced/objio_test.node", IDName: "node", Instance: &node{}})
	types.AddType(&types.Type{Name: "cogentcore.org/instanced/objio_test.leaf", IDName: "leaf", Instance: &leaf{}})
	types.AddType(&types.Type{Name: "cogentcore.org/instanced/objio_test.mislabeled", IDName: "mislabeled", Instance: &mislabeled{}})
	types.AddType(&types.Type{Name: "cogentcore.org/instanced/objio_test.greedy", IDName: "greedy", Instance: &greedy{}})
}

func roundTrip(t *testing.T, objs ...Object) []Object {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, obj := range objs {
		require.NoError(t, w.WriteObject(obj))
	}
	res, err := NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, res, len(objs))
	return res
}

func TestSharingPreserved(t *testing.T) {
	shared := &node{Name: "shared"}
	root := &node{Name: "root", Left: &node{Name: "a", Left: shared}, Right: &node{Name: "b", Right: shared}}

	res := roundTrip(t, root)
	rr := res[0].(*node)
	assert.Equal(t, "root", rr.Name)
	require.NotNil(t, rr.Left.Left)
	assert.Equal(t, "shared", rr.Left.Left.Name)
	assert.Same(t, rr.Left.Left, rr.Right.Right)
	assert.Nil(t, rr.Left.Right)
}

func TestForwardAndCyclicPointers(t *testing.T) {
	a := &node{Name: "a"}
	b := &node{Name: "b", Left: a}
	a.Left = b
	a.Right = a

	rr := roundTrip(t, a)[0].(*node)
	assert.Equal(t, "b", rr.Left.Name)
	assert.Same(t, rr, rr.Left.Left)
	assert.Same(t, rr, rr.Right)
}

func TestLaterBatchReferencesEarlier(t *testing.T) {
	first := &node{Name: "first"}
	second := &node{Name: "second", Left: first}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteObject(first))
	require.NoError(t, w.WriteObject(second))
	require.NoError(t, w.WriteObject(first))
	id, ok := w.ID(first)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), id)

	r := NewReader(&buf)
	res, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Same(t, res[0], res[1].(*node).Left)
	assert.Same(t, res[0], res[2])
	assert.Equal(t, 2, r.NumObjects())
	assert.Equal(t, uint16(VersionMajor), r.Major)
}

func TestWrongType(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteObject(&mislabeled{Leaf: &leaf{}}))
	_, err := NewReader(&buf).ReadObject()
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestPointerCount(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteObject(&greedy{}))
	_, err := NewReader(&buf).ReadObject()
	assert.ErrorIs(t, err, ErrPointerCount)
}

func TestUnknownType(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).WriteObject(&unregistered{})
	assert.ErrorIs(t, err, ErrUnknownType)

	err = NewWriter(&buf).WriteObject(nil)
	assert.Error(t, err)
}

func TestBadHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("abcd\x01\x00\x00\x00"))).ReadObject()
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = NewReader(bytes.NewReader([]byte("xyzo\x09\x00\x00\x00"))).ReadObject()
	assert.ErrorIs(t, err, ErrBadHeader)

	_, err = NewReader(bytes.NewReader(nil)).ReadObject()
	assert.ErrorIs(t, err, ErrBadHeader)
}

func TestEmptyStream(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("xyzo\x01\x00\x00\x00"))).ReadObject()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDanglingPointer(t *testing.T) {
	rec := datagram.New()
	rec.AddUint32(1)
	rec.AddUint16(0)
	require.NoError(t, rec.AddString("cogentcore.org/instanced/objio_test.node"))
	require.NoError(t, rec.AddString("lonely"))
	rec.AddUint32(5) // never written
	rec.AddUint32(0)

	dg := datagram.New()
	dg.AddBytes([]byte(Magic))
	dg.AddUint16(VersionMajor)
	dg.AddUint16(VersionMinor)
	dg.AddUint32(1)
	dg.AddUint32(1)
	dg.AddUint32(uint32(rec.Len()))
	dg.AddBytes(rec.Bytes())

	_, err := NewReader(bytes.NewReader(dg.Bytes())).ReadObject()
	assert.ErrorIs(t, err, ErrDanglingPointer)
}
