// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"cogentcore.org/instanced/datagram"
	"cogentcore.org/instanced/math32"
	"cogentcore.org/instanced/objio"
)

// Transform is an immutable spatial transform, relative to the parent
// element. It holds the position, rotation and scale of a pose, and the
// matrix composed from them. Transforms are shared freely, and are never
// modified after they are made; use the With methods or [Transform.Compose]
// to get new ones.
//
// A nil *Transform is the identity transform.
type Transform struct {
	pos   math32.Vector3
	quat  math32.Quat
	scale math32.Vector3
	mat   math32.Matrix4

	// identity is true for the identity transform.
	identity bool

	// fromMatrix is true if the matrix is authoritative, as for composed
	// transforms; the components are then decomposed from it and may not
	// represent shear.
	fromMatrix bool
}

var identityTransform = &Transform{
	quat:     math32.QuatIdentity(),
	scale:    math32.Vec3(1, 1, 1),
	mat:      *math32.Identity4(),
	identity: true,
}

// IdentityTransform returns the shared identity transform.
func IdentityTransform() *Transform {
	return identityTransform
}

// NewTransform returns a new transform with the given position,
// rotation, and scale.
func NewTransform(pos math32.Vector3, quat math32.Quat, scale math32.Vector3) *Transform {
	if quat.IsNil() {
		quat = math32.QuatIdentity()
	}
	t := &Transform{pos: pos, quat: quat, scale: scale}
	t.mat.SetTransform(pos, quat, scale)
	return t
}

// NewTransformPose returns a new transform with the given position, Euler
// rotation in degrees, and scale.
func NewTransformPose(pos, euler, scale math32.Vector3) *Transform {
	rad := math32.Vec3(math32.DegToRad(euler.X), math32.DegToRad(euler.Y), math32.DegToRad(euler.Z))
	return NewTransform(pos, math32.NewQuatEuler(rad), scale)
}

// NewTransformPos returns a new translation transform.
func NewTransformPos(pos math32.Vector3) *Transform {
	return NewTransform(pos, math32.QuatIdentity(), math32.Vec3(1, 1, 1))
}

// NewTransformMatrix returns a new transform with the given matrix.
func NewTransformMatrix(m *math32.Matrix4) *Transform {
	if m.IsIdentity() {
		return identityTransform
	}
	t := &Transform{mat: *m, fromMatrix: true}
	t.pos, t.quat, t.scale = m.Decompose()
	return t
}

// IsIdentity returns whether this is the identity transform.
func (t *Transform) IsIdentity() bool {
	return t == nil || t.identity
}

// orIdentity returns the identity transform for a nil t.
func (t *Transform) orIdentity() *Transform {
	if t == nil {
		return identityTransform
	}
	return t
}

// Pos returns the position.
func (t *Transform) Pos() math32.Vector3 {
	return t.orIdentity().pos
}

// Quat returns the rotation.
func (t *Transform) Quat() math32.Quat {
	return t.orIdentity().quat
}

// EulerRotation returns the rotation as Euler angles in degrees.
func (t *Transform) EulerRotation() math32.Vector3 {
	e := t.Quat().ToEuler()
	return math32.Vec3(math32.RadToDeg(e.X), math32.RadToDeg(e.Y), math32.RadToDeg(e.Z))
}

// Scale returns the scale.
func (t *Transform) Scale() math32.Vector3 {
	return t.orIdentity().scale
}

// Matrix returns the transform matrix.
func (t *Transform) Matrix() math32.Matrix4 {
	return t.orIdentity().mat
}

// WithPos returns a new transform with the given position
// and the rotation and scale of this one.
func (t *Transform) WithPos(pos math32.Vector3) *Transform {
	return NewTransform(pos, t.Quat(), t.Scale())
}

// WithQuat returns a new transform with the given rotation
// and the position and scale of this one.
func (t *Transform) WithQuat(quat math32.Quat) *Transform {
	return NewTransform(t.Pos(), quat, t.Scale())
}

// WithScale returns a new transform with the given scale
// and the position and rotation of this one.
func (t *Transform) WithScale(scale math32.Vector3) *Transform {
	return NewTransform(t.Pos(), t.Quat(), scale)
}

// TransformPoint returns the given point transformed by this transform.
func (t *Transform) TransformPoint(p math32.Vector3) math32.Vector3 {
	if t.IsIdentity() {
		return p
	}
	return p.MulMatrix4(&t.mat)
}

// Compose returns the transform that applies other and then this transform,
// so that other is relative to this one (the matrix is t * other).
// Results are cached, so composing the same pair again returns the same
// transform.
func (t *Transform) Compose(other *Transform) *Transform {
	switch {
	case other.IsIdentity():
		return t.orIdentity()
	case t.IsIdentity():
		return other
	}
	key := composeKey{t, other}
	cache := composeCache.Load()
	if cache != nil {
		if r, ok := cache.Get(key); ok {
			composeHits.Add(1)
			return r
		}
	}
	composeMisses.Add(1)
	r := NewTransformMatrix(t.mat.Mul(&other.mat))
	if cache != nil {
		cache.Add(key, r)
	}
	return r
}

// IsEqualTol returns whether the matrices of the two transforms are equal within tol.
func (t *Transform) IsEqualTol(other *Transform, tol float32) bool {
	tm, om := t.Matrix(), other.Matrix()
	return tm.IsEqualTol(&om, tol)
}

// CopyOnWrite returns a copy of the transform, so that [Transform]
// can be held by a [pipeline.Cycler].
func (t *Transform) CopyOnWrite() *Transform {
	if t == nil {
		return identityTransform
	}
	c := *t
	return &c
}

func (t *Transform) String() string {
	switch {
	case t.IsIdentity():
		return "identity"
	case t.fromMatrix:
		return fmt.Sprintf("matrix pos: %v quat: %v scale: %v", t.pos, t.quat, t.scale)
	}
	return fmt.Sprintf("pos: %v quat: %v scale: %v", t.pos, t.quat, t.scale)
}

// transform encodings in the stream
const (
	transformIdentity uint8 = iota
	transformComponents
	transformMatrix
)

// WriteDatagram implements [objio.Object].
func (t *Transform) WriteDatagram(w *objio.Writer, dg *datagram.Datagram) error {
	switch {
	case t.IsIdentity():
		dg.AddUint8(transformIdentity)
	case t.fromMatrix:
		dg.AddUint8(transformMatrix)
		for _, v := range t.mat {
			dg.AddFloat32(v)
		}
	default:
		dg.AddUint8(transformComponents)
		addVector3(dg, t.pos)
		dg.AddFloat32(t.quat.X)
		dg.AddFloat32(t.quat.Y)
		dg.AddFloat32(t.quat.Z)
		dg.AddFloat32(t.quat.W)
		addVector3(dg, t.scale)
	}
	return nil
}

// Fillin implements [objio.Object].
func (t *Transform) Fillin(r *objio.Reader, it *datagram.Iterator) error {
	switch kind := it.Uint8(); kind {
	case transformIdentity:
		*t = *identityTransform
	case transformMatrix:
		var m math32.Matrix4
		for i := range m {
			m[i] = it.Float32()
		}
		*t = *NewTransformMatrix(&m)
	case transformComponents:
		pos := readVector3(it)
		quat := math32.NewQuat(it.Float32(), it.Float32(), it.Float32(), it.Float32())
		scale := readVector3(it)
		*t = *NewTransform(pos, quat, scale)
	default:
		return fmt.Errorf("unknown transform encoding %d", kind)
	}
	return nil
}

// CompletePointers implements [objio.Object].
func (t *Transform) CompletePointers(plist []objio.Object, r *objio.Reader) (int, error) {
	return 0, nil
}

func addVector3(dg *datagram.Datagram, v math32.Vector3) {
	dg.AddFloat32(v.X)
	dg.AddFloat32(v.Y)
	dg.AddFloat32(v.Z)
}

func readVector3(it *datagram.Iterator) math32.Vector3 {
	x := it.Float32()
	y := it.Float32()
	z := it.Float32()
	return math32.Vec3(x, y, z)
}

// composeKey is the key of the compose cache.
type composeKey struct {
	a, b *Transform
}

// DefaultComposeCacheSize is the default number of entries in the compose cache.
const DefaultComposeCacheSize = 4096

var (
	composeCache  atomic.Pointer[lru.Cache[composeKey, *Transform]]
	composeHits   atomic.Uint64
	composeMisses atomic.Uint64
)

func init() {
	SetComposeCacheSize(DefaultComposeCacheSize)
}

// SetComposeCacheSize sets the number of composed transforms that
// [Transform.Compose] keeps. A size of 0 or less disables the cache.
func SetComposeCacheSize(size int) error {
	if size <= 0 {
		composeCache.Store(nil)
		return nil
	}
	c, err := lru.New[composeKey, *Transform](size)
	if err != nil {
		return err
	}
	composeCache.Store(c)
	return nil
}

// ComposeCacheStats returns the number of hits and misses of the compose cache.
func ComposeCacheStats() (hits, misses uint64) {
	return composeHits.Load(), composeMisses.Load()
}
