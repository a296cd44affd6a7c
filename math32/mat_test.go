// Copyright 2021 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const StandardTol = float32(1.0e-5)

func TestMatrix4Mul(t *testing.T) {
	tr := Translation4(1, 2, 3)
	sc := Scale4(2, 2, 2)

	// scale first, then translate: multiplication order is reverse of logical order
	m := tr.Mul(sc)
	assert.Equal(t, Vec3(3, 4, 5), Vec3(1, 1, 1).MulMatrix4(m))

	m = sc.Mul(tr)
	assert.Equal(t, Vec3(4, 6, 8), Vec3(1, 1, 1).MulMatrix4(m))

	id := Identity4()
	assert.True(t, id.Mul(m).IsEqualTol(m, StandardTol))
	assert.True(t, m.Mul(id).IsEqualTol(m, StandardTol))

	var sm Matrix4
	sm = *tr
	sm.SetMul(sc)
	assert.Equal(t, *tr.Mul(sc), sm)
}

func TestMatrix4Decompose(t *testing.T) {
	pos := Vec3(1, -2, 3)
	quat := NewQuatAxisAngle(Vec3(0, 1, 0), DegToRad(30))
	scale := Vec3(2, 3, 4)
	m := Transform4(pos, quat, scale)

	dp, dq, ds := m.Decompose()
	tol := float32(1e-4)
	assert.True(t, pos.IsEqualTol(dp, tol), "pos %v", dp)
	assert.True(t, quat.IsEqualTol(dq, tol), "quat %v", dq)
	assert.True(t, scale.IsEqualTol(ds, tol), "scale %v", ds)
	assert.InDelta(t, 24, m.Determinant(), 1e-4)
}

func TestQuatRotation(t *testing.T) {
	q := NewQuatAxisAngle(Vec3(0, 0, 1), DegToRad(90))
	v := Vec3(1, 0, 0).MulQuat(q)
	assert.True(t, Vec3(0, 1, 0).IsEqualTol(v, StandardTol), "rotated %v", v)

	m := Transform4(Vector3{}, q, Vec3(1, 1, 1))
	assert.True(t, v.IsEqualTol(Vec3(1, 0, 0).MulMatrix4(m), StandardTol))

	q2 := q.Mul(q)
	v = Vec3(1, 0, 0).MulQuat(q2)
	assert.True(t, Vec3(-1, 0, 0).IsEqualTol(v, StandardTol), "rotated %v", v)

	assert.True(t, QuatIdentity().IsEqualTol(q.Mul(q.Conjugate()), StandardTol))
}

func TestQuatEuler(t *testing.T) {
	euler := Vec3(DegToRad(10), DegToRad(20), DegToRad(30))
	q := NewQuatEuler(euler)
	assert.InDelta(t, 1, q.Length(), 1e-5)
	assert.True(t, euler.IsEqualTol(q.ToEuler(), 1e-4), "euler %v", q.ToEuler())
}

func TestBox3(t *testing.T) {
	b := B3Empty()
	assert.True(t, b.IsEmpty())
	b.ExpandByBox(B3Empty())
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec3(-1, -1, -1))
	b.ExpandByPoint(Vec3(1, 2, 3))
	assert.Equal(t, B3(-1, -1, -1, 1, 2, 3), b)
	assert.Equal(t, Vec3(0, 0.5, 1), b.Center())

	tb := b.MulMatrix4(Translation4(10, 0, 0))
	assert.Equal(t, B3(9, -1, -1, 11, 2, 3), tb)

	sb := b.MulMatrix4(Scale4(-2, 1, 1))
	assert.Equal(t, B3(-2, -1, -1, 2, 2, 3), sb)
	assert.True(t, B3Empty().MulMatrix4(Translation4(1, 1, 1)).IsEmpty())

	assert.True(t, b.ContainsPoint(Vec3(1, 2, 3)))
	assert.False(t, b.ContainsPoint(Vec3(0, 2.5, 0)))
	assert.True(t, b.IntersectsBox(B3(1, 2, 3, 4, 4, 4)))
	assert.False(t, b.IntersectsBox(B3(1.5, 0, 0, 4, 4, 4)))

	assert.True(t, B3Infinite().IsInfinite())
	assert.False(t, b.IsInfinite())
}

func TestVector3Dim(t *testing.T) {
	v := Vec3(1, 2, 3)
	assert.Equal(t, []float32{1, 2, 3}, []float32{v.Dim(0), v.Dim(1), v.Dim(2)})
	v.SetDim(1, 7)
	assert.Equal(t, Vec3(1, 7, 3), v)
	assert.Equal(t, float32(2), Clamp(float32(5), 0, 2))
}

func TestFrustum(t *testing.T) {
	f := NewFrustumFromMatrix(Identity4())
	assert.True(t, f.ContainsPoint(Vec3(0, 0, 0)))
	assert.True(t, f.ContainsPoint(Vec3(1, -1, 1)))
	assert.False(t, f.ContainsPoint(Vec3(1.5, 0, 0)))

	assert.True(t, f.IntersectsBox(B3(0.5, 0.5, 0.5, 2, 2, 2)))
	assert.False(t, f.IntersectsBox(B3(2, 2, 2, 3, 3, 3)))
	assert.True(t, f.IntersectsBox(B3Infinite()))
}
