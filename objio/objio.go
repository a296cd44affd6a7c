// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package objio reads and writes graphs of objects that point to each
// other, preserving sharing: an object referenced from many places is
// written once and read back as a single object.
//
// Pointers are written as uint32 object ids. While reading, a pointer can
// refer to an object that has not been read yet, so [Object.Fillin] only
// records pointer requests with [Reader.ReadPointer], and the resolved
// objects are handed to [Object.CompletePointers] once every object of the
// batch has been read.
//
// A stream starts with a header ("xyzo" and a uint16 major and minor
// version), followed by batches, one per [Writer.WriteObject]. A batch is
// [uint32 root id][uint32 record count] followed by the records, each
// [uint32 length][uint32 id][uint16 type index][type name if new][body].
package objio

import (
	"errors"
	"fmt"
	"reflect"

	"cogentcore.org/instanced/datagram"
)

const (
	// Magic is the first bytes of every stream.
	Magic = "xyzo"

	// VersionMajor is the major version of the stream format.
	// Streams with a different major version can not be read.
	VersionMajor = 1

	// VersionMinor is the minor version of the stream format.
	VersionMinor = 0
)

var (
	// ErrBadHeader is returned when a stream does not start with a valid header.
	ErrBadHeader = errors.New("objio: bad stream header")

	// ErrUnknownType is returned for objects whose type is not registered.
	ErrUnknownType = errors.New("objio: unknown type")

	// ErrWrongType is returned when a pointer resolves to an object of
	// a different type than the one the pointer field holds.
	ErrWrongType = errors.New("objio: pointer to wrong type")

	// ErrDanglingPointer is returned when a pointer refers to an
	// object id that is not in the stream.
	ErrDanglingPointer = errors.New("objio: dangling pointer")

	// ErrPointerCount is returned when [Object.CompletePointers] does not
	// consume exactly the pointers requested by [Object.Fillin].
	ErrPointerCount = errors.New("objio: pointer count mismatch")
)

// Object is an object that can be written to and read from a stream.
// Objects are always pointers, and must be registered in the types
// registry so that the [Reader] can create them by type name.
type Object interface {

	// WriteDatagram writes the object to the given datagram, using
	// [Writer.WritePointer] for every pointer to another Object.
	WriteDatagram(w *Writer, dg *datagram.Datagram) error

	// Fillin reads the object from the given iterator, in the order written
	// by WriteDatagram, calling [Reader.ReadPointer] for every pointer.
	Fillin(r *Reader, it *datagram.Iterator) error

	// CompletePointers sets the pointers of the object from plist, which has
	// the objects for the pointers requested in Fillin, in request order.
	// It returns the number of entries of plist that it used.
	CompletePointers(plist []Object, r *Reader) (int, error)
}

// Resolve returns plist[i] as type T, which is the zero value if the pointer
// was nil. It returns an error wrapping [ErrWrongType] if the object is not a T,
// and [ErrPointerCount] if i is out of range.
func Resolve[T Object](plist []Object, i int) (T, error) {
	var zero T
	if i < 0 || i >= len(plist) {
		return zero, fmt.Errorf("%w: pointer %d of %d", ErrPointerCount, i, len(plist))
	}
	if plist[i] == nil {
		return zero, nil
	}
	v, ok := plist[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: pointer %d is %T, not %T", ErrWrongType, i, plist[i], zero)
	}
	return v, nil
}

// isNil returns whether the given object is nil or a nil pointer.
func isNil(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
