// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package datagram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatagramLayout(t *testing.T) {
	dg := New()
	dg.AddUint16(0x0102)
	dg.AddUint32(7)
	dg.AddBool(true)
	require.NoError(t, dg.AddString("ab"))
	assert.Equal(t, []byte{0x02, 0x01, 7, 0, 0, 0, 1, 2, 0, 'a', 'b'}, dg.Bytes())

	dg.Reset()
	assert.Zero(t, dg.Len())
}

func TestIterator(t *testing.T) {
	dg := New()
	dg.AddUint8(200)
	dg.AddInt32(-5)
	dg.AddUint64(1 << 40)
	dg.AddFloat32(1.5)
	dg.AddFloat64(-2.25)
	require.NoError(t, dg.AddString("instanced"))

	it := NewIterator(dg)
	assert.Equal(t, uint8(200), it.Uint8())
	assert.Equal(t, int32(-5), it.Int32())
	assert.Equal(t, uint64(1<<40), it.Uint64())
	assert.Equal(t, float32(1.5), it.Float32())
	assert.Equal(t, -2.25, it.Float64())
	assert.Equal(t, "instanced", it.ReadString())
	assert.Zero(t, it.Remaining())
	assert.NoError(t, it.Err())

	assert.Zero(t, it.Uint32())
	assert.ErrorIs(t, it.Err(), ErrShortRead)
	// the error is sticky
	assert.Zero(t, it.Uint8())
	assert.ErrorIs(t, it.Err(), ErrShortRead)
}

func TestLongString(t *testing.T) {
	dg := New()
	assert.Error(t, dg.AddString(strings.Repeat("x", 70000)))
	assert.Zero(t, dg.Len())
}
