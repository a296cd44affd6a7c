// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Box3 is an axis-aligned 3D box from Min to Max. A box with Max below
// Min on any axis is empty; [B3Empty] is the identity for expansion.
type Box3 struct {
	Min Vector3
	Max Vector3
}

// B3 returns the box from (x0, y0, z0) to (x1, y1, z1).
func B3(x0, y0, z0, x1, y1, z1 float32) Box3 {
	return Box3{Min: Vec3(x0, y0, z0), Max: Vec3(x1, y1, z1)}
}

// B3Empty returns an empty box that any expansion replaces.
func B3Empty() Box3 {
	var b Box3
	b.SetEmpty()
	return b
}

// SetEmpty makes the box empty, with Min at +Inf and Max at -Inf.
func (b *Box3) SetEmpty() {
	b.Min = Vector3Scalar(Infinity)
	b.Max = Vector3Scalar(-Infinity)
}

// B3Infinite returns the box that contains every point.
func B3Infinite() Box3 {
	return Box3{Min: Vector3Scalar(-Infinity), Max: Vector3Scalar(Infinity)}
}

// IsInfinite returns whether the box is unbounded on any side.
func (b Box3) IsInfinite() bool {
	for i := range 3 {
		if IsInf(b.Min.Dim(i), -1) || IsInf(b.Max.Dim(i), 1) {
			return true
		}
	}
	return false
}

// IsEmpty returns whether Max is below Min on any axis.
func (b Box3) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// ExpandByPoint grows the box to contain p.
func (b *Box3) ExpandByPoint(p Vector3) {
	b.Min.SetMin(p)
	b.Max.SetMax(p)
}

// ExpandByBox grows the box to contain o. Empty boxes add nothing.
func (b *Box3) ExpandByBox(o Box3) {
	if !o.IsEmpty() {
		b.ExpandByPoint(o.Min)
		b.ExpandByPoint(o.Max)
	}
}

// Center returns the midpoint of the box.
func (b Box3) Center() Vector3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

// ContainsPoint returns whether p is inside the box or on its boundary.
func (b Box3) ContainsPoint(p Vector3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectsBox returns whether the two boxes overlap or touch.
func (b Box3) IntersectsBox(o Box3) bool {
	return o.Max.X >= b.Min.X && o.Min.X <= b.Max.X &&
		o.Max.Y >= b.Min.Y && o.Min.Y <= b.Max.Y &&
		o.Max.Z >= b.Min.Z && o.Min.Z <= b.Max.Z
}

// MulMatrix4 returns the axis-aligned box that contains the box
// transformed by the affine matrix m. Empty boxes stay empty.
func (b Box3) MulMatrix4(m *Matrix4) Box3 {
	if b.IsEmpty() {
		return B3Empty()
	}
	// Each output axis is the translation plus, per input axis,
	// the smaller and larger of the column scaled by Min and Max.
	r := Box3{Min: Vec3(m[12], m[13], m[14]), Max: Vec3(m[12], m[13], m[14])}
	for col := range 3 {
		lo, hi := b.Min.Dim(col), b.Max.Dim(col)
		for row := range 3 {
			e := m[col*4+row]
			a, c := e*lo, e*hi
			r.Min.SetDim(row, r.Min.Dim(row)+Min(a, c))
			r.Max.SetDim(row, r.Max.Dim(row)+Max(a, c))
		}
	}
	return r
}
