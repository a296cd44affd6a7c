// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package objio

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/types"
)

// Writer writes objects and everything they point to.
// Objects written in earlier batches are only referenced by id,
// so a Writer should be used for the whole stream. A Writer must not
// be used after it returns an error.
type Writer struct {
	w io.Writer

	headerDone bool

	// ids has the id of every object written or queued so far.
	ids map[Object]uint32

	nextID uint32

	// typeIndex has the index of every type name written so far.
	typeIndex map[string]uint16

	// queue has the objects of the current batch that still need to be written.
	queue []Object
}

// NewWriter returns a new [Writer] writing to the given writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, ids: map[Object]uint32{}, typeIndex: map[string]uint16{}}
}

func (w *Writer) writeHeader() error {
	dg := datagram.New()
	dg.AddBytes([]byte(Magic))
	dg.AddUint16(VersionMajor)
	dg.AddUint16(VersionMinor)
	_, err := w.w.Write(dg.Bytes())
	return err
}

// ID returns the id of the given object in the stream, and false if it
// has not been written.
func (w *Writer) ID(obj Object) (uint32, bool) {
	id, ok := w.ids[obj]
	return id, ok
}

// WriteObject writes the given object, followed by every object reachable from it
// that has not been written before, as one batch.
func (w *Writer) WriteObject(obj Object) error {
	if isNil(obj) {
		return fmt.Errorf("objio.Writer.WriteObject: nil object")
	}
	if !w.headerDone {
		if err := w.writeHeader(); err != nil {
			return err
		}
		w.headerDone = true
	}
	root := w.enqueue(obj)
	batch := datagram.New()
	nrec := uint32(0)
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		dg, err := w.record(cur)
		if err != nil {
			w.queue = nil
			return err
		}
		batch.AddUint32(uint32(dg.Len()))
		batch.AddBytes(dg.Bytes())
		nrec++
	}
	head := datagram.New()
	head.AddUint32(root)
	head.AddUint32(nrec)
	head.AddBytes(batch.Bytes())
	slog.Debug("objio.Writer.WriteObject", "root", root, "records", nrec, "bytes", head.Len())
	_, err := w.w.Write(head.Bytes())
	return err
}

// record returns the record datagram for the given object.
func (w *Writer) record(obj Object) (*datagram.Datagram, error) {
	tp := types.TypeByValue(obj)
	if tp == nil {
		return nil, fmt.Errorf("%w: %T", ErrUnknownType, obj)
	}
	dg := datagram.New()
	dg.AddUint32(w.ids[obj])
	if idx, ok := w.typeIndex[tp.Name]; ok {
		dg.AddUint16(idx)
	} else {
		if len(w.typeIndex) >= math.MaxUint16 {
			return nil, fmt.Errorf("objio: too many types in stream")
		}
		idx := uint16(len(w.typeIndex))
		w.typeIndex[tp.Name] = idx
		dg.AddUint16(idx)
		if err := dg.AddString(tp.Name); err != nil {
			return nil, err
		}
	}
	if err := obj.WriteDatagram(w, dg); err != nil {
		return nil, fmt.Errorf("objio: writing %T: %w", obj, err)
	}
	return dg, nil
}

// enqueue returns the id of the given object, assigning one
// and adding it to the queue if it has not been seen before.
func (w *Writer) enqueue(obj Object) uint32 {
	if id, ok := w.ids[obj]; ok {
		return id
	}
	w.nextID++
	w.ids[obj] = w.nextID
	w.queue = append(w.queue, obj)
	return w.nextID
}

// WritePointer writes a pointer to the given object, which may be nil.
// The object is written later in the same batch if it has not been
// written before.
func (w *Writer) WritePointer(dg *datagram.Datagram, obj Object) {
	if isNil(obj) {
		dg.AddUint32(0)
		return
	}
	dg.AddUint32(w.enqueue(obj))
}
