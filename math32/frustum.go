// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Plane represents a plane in 3D space by its normal vector and a constant offset.
// Points p on the plane satisfy Norm·p + Off = 0.
type Plane struct {
	Norm Vector3
	Off  float32
}

// NewPlane returns a new plane with the given normal and offset.
func NewPlane(normal Vector3, offset float32) Plane {
	return Plane{normal, offset}
}

// Normalize normalizes this plane so that the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Norm.Length()
	if l == 0 {
		return
	}
	inv := 1 / l
	p.Norm = p.Norm.MulScalar(inv)
	p.Off *= inv
}

// DistanceToPoint returns the signed distance from this plane to the specified point.
func (p Plane) DistanceToPoint(point Vector3) float32 {
	return p.Norm.Dot(point) + p.Off
}

// Frustum represents a frustum by its six planes, oriented so that
// the positive half-space of each plane is inside the frustum.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix returns the frustum of the given combined
// view * projection matrix (Gribb / Hartmann plane extraction).
func NewFrustumFromMatrix(m *Matrix4) *Frustum {
	f := &Frustum{}
	f.SetFromMatrix(m)
	return f
}

// SetFromMatrix sets the frustum's planes from the given
// view * projection matrix.
func (f *Frustum) SetFromMatrix(m *Matrix4) {
	f.Planes[0] = NewPlane(Vec3(m[3]-m[0], m[7]-m[4], m[11]-m[8]), m[15]-m[12])
	f.Planes[1] = NewPlane(Vec3(m[3]+m[0], m[7]+m[4], m[11]+m[8]), m[15]+m[12])
	f.Planes[2] = NewPlane(Vec3(m[3]+m[1], m[7]+m[5], m[11]+m[9]), m[15]+m[13])
	f.Planes[3] = NewPlane(Vec3(m[3]-m[1], m[7]-m[5], m[11]-m[9]), m[15]-m[13])
	f.Planes[4] = NewPlane(Vec3(m[3]-m[2], m[7]-m[6], m[11]-m[10]), m[15]-m[14])
	f.Planes[5] = NewPlane(Vec3(m[3]+m[2], m[7]+m[6], m[11]+m[10]), m[15]+m[14])
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
}

// IntersectsBox determines whether the specified box intersects this frustum.
// Infinite boxes always intersect.
func (f *Frustum) IntersectsBox(box Box3) bool {
	if box.IsInfinite() {
		return true
	}
	for _, pl := range f.Planes {
		// the corner of the box furthest along the plane normal
		p := box.Min
		if pl.Norm.X > 0 {
			p.X = box.Max.X
		}
		if pl.Norm.Y > 0 {
			p.Y = box.Max.Y
		}
		if pl.Norm.Z > 0 {
			p.Z = box.Max.Z
		}
		if pl.DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint determines whether this frustum contains the specified point.
func (f *Frustum) ContainsPoint(point Vector3) bool {
	for _, pl := range f.Planes {
		if pl.DistanceToPoint(point) < 0 {
			return false
		}
	}
	return true
}
