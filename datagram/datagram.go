// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package datagram provides an append-only little-endian binary record
// ([Datagram]) and a sequential reader over it ([Iterator]).
package datagram

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrShortRead is returned by [Iterator.Err] when a value
// was read past the end of the datagram.
var ErrShortRead = errors.New("datagram: read past end of datagram")

// Datagram is a binary record that values are appended to in little-endian order.
// The zero value is an empty datagram ready to use.
type Datagram struct {
	buf []byte
}

// New returns a new empty datagram.
func New() *Datagram {
	return &Datagram{}
}

// FromBytes returns a datagram holding the given bytes, which it takes ownership of.
func FromBytes(b []byte) *Datagram {
	return &Datagram{buf: b}
}

// Bytes returns the contents of the datagram.
func (dg *Datagram) Bytes() []byte {
	return dg.buf
}

// Len returns the number of bytes in the datagram.
func (dg *Datagram) Len() int {
	return len(dg.buf)
}

// Reset empties the datagram, keeping its capacity.
func (dg *Datagram) Reset() {
	dg.buf = dg.buf[:0]
}

func (dg *Datagram) AddUint8(v uint8) {
	dg.buf = append(dg.buf, v)
}

func (dg *Datagram) AddBool(v bool) {
	if v {
		dg.AddUint8(1)
	} else {
		dg.AddUint8(0)
	}
}

func (dg *Datagram) AddUint16(v uint16) {
	dg.buf = binary.LittleEndian.AppendUint16(dg.buf, v)
}

func (dg *Datagram) AddUint32(v uint32) {
	dg.buf = binary.LittleEndian.AppendUint32(dg.buf, v)
}

func (dg *Datagram) AddUint64(v uint64) {
	dg.buf = binary.LittleEndian.AppendUint64(dg.buf, v)
}

func (dg *Datagram) AddInt32(v int32) {
	dg.AddUint32(uint32(v))
}

func (dg *Datagram) AddFloat32(v float32) {
	dg.AddUint32(math.Float32bits(v))
}

func (dg *Datagram) AddFloat64(v float64) {
	dg.AddUint64(math.Float64bits(v))
}

// AddString adds the given string preceded by its uint16 length.
// It returns an error if the string is longer than 65535 bytes.
func (dg *Datagram) AddString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("datagram: string of %d bytes is too long", len(s))
	}
	dg.AddUint16(uint16(len(s)))
	dg.buf = append(dg.buf, s...)
	return nil
}

// AddBytes appends the given raw bytes.
func (dg *Datagram) AddBytes(b []byte) {
	dg.buf = append(dg.buf, b...)
}

// Iterator reads values sequentially from a [Datagram]. Reading past the end
// returns zero values and sets a sticky error reported by [Iterator.Err].
type Iterator struct {
	buf []byte
	pos int
	err error
}

// NewIterator returns a new iterator at the start of the given datagram.
func NewIterator(dg *Datagram) *Iterator {
	return &Iterator{buf: dg.buf}
}

// Err returns the first error encountered while reading, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Remaining returns the number of unread bytes.
func (it *Iterator) Remaining() int {
	return len(it.buf) - it.pos
}

// next returns the next n bytes, or nil after setting the error.
func (it *Iterator) next(n int) []byte {
	if it.err != nil {
		return nil
	}
	if it.pos+n > len(it.buf) {
		it.err = fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrShortRead, n, it.pos, len(it.buf))
		it.pos = len(it.buf)
		return nil
	}
	b := it.buf[it.pos : it.pos+n]
	it.pos += n
	return b
}

func (it *Iterator) Uint8() uint8 {
	b := it.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (it *Iterator) Bool() bool {
	return it.Uint8() != 0
}

func (it *Iterator) Uint16() uint16 {
	b := it.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (it *Iterator) Uint32() uint32 {
	b := it.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (it *Iterator) Uint64() uint64 {
	b := it.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (it *Iterator) Int32() int32 {
	return int32(it.Uint32())
}

func (it *Iterator) Float32() float32 {
	return math.Float32frombits(it.Uint32())
}

func (it *Iterator) Float64() float64 {
	return math.Float64frombits(it.Uint64())
}

// ReadString reads a string preceded by its uint16 length.
func (it *Iterator) ReadString() string {
	n := it.Uint16()
	b := it.next(int(n))
	if b == nil {
		return ""
	}
	return string(b)
}

// Bytes reads the given number of raw bytes. The result
// aliases the datagram.
func (it *Iterator) Bytes(n int) []byte {
	return it.next(n)
}
