// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/types"
)

// pending is an object of the current batch waiting for its pointers.
type pending struct {
	obj  Object
	refs []uint32
}

// Reader reads objects written by a [Writer].
type Reader struct {
	r io.Reader

	headerDone bool

	// Major and Minor are the version of the stream, set once the header is read.
	Major, Minor uint16

	// objects has every object read so far, by id.
	objects map[uint32]Object

	// types has the types of the stream, by type index.
	types []*types.Type

	// batch has the objects of the current batch, in read order.
	batch []*pending

	// cur is the object currently being filled in.
	cur *pending
}

// NewReader returns a new [Reader] reading from the given reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, objects: map[uint32]Object{}}
}

func (r *Reader) readHeader() error {
	var hdr [len(Magic) + 4]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if string(hdr[:len(Magic)]) != Magic {
		return fmt.Errorf("%w: magic %q", ErrBadHeader, hdr[:len(Magic)])
	}
	it := datagram.NewIterator(datagram.FromBytes(hdr[len(Magic):]))
	r.Major = it.Uint16()
	r.Minor = it.Uint16()
	if r.Major != VersionMajor {
		return fmt.Errorf("%w: version %d.%d, want %d.x", ErrBadHeader, r.Major, r.Minor, VersionMajor)
	}
	return nil
}

// NumObjects returns the number of objects read so far.
func (r *Reader) NumObjects() int {
	return len(r.objects)
}

// Object returns the object read with the given id, or nil.
func (r *Reader) Object(id uint32) Object {
	return r.objects[id]
}

// ReadObject reads the next batch of the stream and returns its root object.
// It returns [io.EOF] at the end of the stream.
func (r *Reader) ReadObject() (Object, error) {
	if !r.headerDone {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
		r.headerDone = true
	}
	var bh [8]byte
	if _, err := io.ReadFull(r.r, bh[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, err
	}
	it := datagram.NewIterator(datagram.FromBytes(bh[:]))
	root := it.Uint32()
	nrec := it.Uint32()
	r.batch = r.batch[:0]
	for range nrec {
		if err := r.readRecord(); err != nil {
			return nil, err
		}
	}
	if err := r.complete(); err != nil {
		return nil, err
	}
	obj, ok := r.objects[root]
	if !ok {
		return nil, fmt.Errorf("%w: root object %d", ErrDanglingPointer, root)
	}
	slog.Debug("objio.Reader.ReadObject", "root", root, "records", nrec)
	return obj, nil
}

// ReadAll reads all remaining batches of the stream and returns their root objects.
func (r *Reader) ReadAll() ([]Object, error) {
	var roots []Object
	for {
		obj, err := r.ReadObject()
		if errors.Is(err, io.EOF) {
			return roots, nil
		}
		if err != nil {
			return roots, err
		}
		roots = append(roots, obj)
	}
}

// readRecord reads one record, creates its object, and fills it in.
func (r *Reader) readRecord() error {
	var lb [4]byte
	if _, err := io.ReadFull(r.r, lb[:]); err != nil {
		return fmt.Errorf("objio: reading record length: %w", io.ErrUnexpectedEOF)
	}
	n := datagram.NewIterator(datagram.FromBytes(lb[:])).Uint32()
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return fmt.Errorf("objio: reading record: %w", io.ErrUnexpectedEOF)
	}
	it := datagram.NewIterator(datagram.FromBytes(buf))
	id := it.Uint32()
	tidx := int(it.Uint16())
	switch {
	case tidx == len(r.types):
		name := it.ReadString()
		if it.Err() != nil {
			return it.Err()
		}
		tp := types.TypeByName(name)
		if tp == nil {
			return fmt.Errorf("%w: %q", ErrUnknownType, name)
		}
		r.types = append(r.types, tp)
	case tidx > len(r.types):
		return fmt.Errorf("%w: type index %d", ErrUnknownType, tidx)
	}
	tp := r.types[tidx]
	obj, ok := tp.New().(Object)
	if !ok {
		return fmt.Errorf("%w: %q is not an objio.Object", ErrUnknownType, tp.Name)
	}
	if id == 0 {
		return fmt.Errorf("objio: record with object id 0")
	}
	if _, has := r.objects[id]; has {
		return fmt.Errorf("objio: duplicate object id %d", id)
	}
	p := &pending{obj: obj}
	r.cur = p
	err := obj.Fillin(r, it)
	r.cur = nil
	if err == nil {
		err = it.Err()
	}
	if err != nil {
		return fmt.Errorf("objio: reading %s %d: %w", tp.Name, id, err)
	}
	r.objects[id] = obj
	r.batch = append(r.batch, p)
	return nil
}

// ReadPointer reads a pointer written by [Writer.WritePointer]. It must only
// be called from [Object.Fillin]. It returns the index of the pointer in the
// list passed to [Object.CompletePointers].
func (r *Reader) ReadPointer(it *datagram.Iterator) int {
	id := it.Uint32()
	if r.cur == nil {
		slog.Error("objio.Reader.ReadPointer: called outside of Fillin")
		return -1
	}
	r.cur.refs = append(r.cur.refs, id)
	return len(r.cur.refs) - 1
}

// complete resolves the pointers of every object of the batch, once all of
// them have been read, and calls CompletePointers on each in read order.
func (r *Reader) complete() error {
	for _, p := range r.batch {
		plist := make([]Object, len(p.refs))
		for i, id := range p.refs {
			if id == 0 {
				continue
			}
			obj, ok := r.objects[id]
			if !ok {
				return fmt.Errorf("%w: %T points to object %d", ErrDanglingPointer, p.obj, id)
			}
			plist[i] = obj
		}
		n, err := p.obj.CompletePointers(plist, r)
		if err != nil {
			return fmt.Errorf("objio: completing %T: %w", p.obj, err)
		}
		if n != len(plist) {
			return fmt.Errorf("%w: %T used %d of %d pointers", ErrPointerCount, p.obj, n, len(plist))
		}
	}
	r.batch = r.batch[:0]
	return nil
}
