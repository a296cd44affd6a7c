// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"cogentcore.org/instanced/math32"
)

// Instance is one placement of the instanced sub-graph of an [InstancedNode].
// It is a value type; the setters replace the transform with a new one.
// The zero Instance has the identity transform.
type Instance struct {
	xf *Transform
}

// NewInstance returns a new instance with the given transform.
func NewInstance(xf *Transform) Instance {
	return Instance{xf: xf}
}

// Transform returns the transform of the instance, which is never nil.
func (in Instance) Transform() *Transform {
	return in.xf.orIdentity()
}

// SetTransform sets the transform of the instance.
func (in *Instance) SetTransform(xf *Transform) {
	in.xf = xf
}

// Pos returns the position of the instance.
func (in Instance) Pos() math32.Vector3 {
	return in.xf.Pos()
}

// SetPos sets the position of the instance.
func (in *Instance) SetPos(pos math32.Vector3) {
	in.xf = in.xf.WithPos(pos)
}

// Quat returns the rotation of the instance.
func (in Instance) Quat() math32.Quat {
	return in.xf.Quat()
}

// SetQuat sets the rotation of the instance.
func (in *Instance) SetQuat(quat math32.Quat) {
	in.xf = in.xf.WithQuat(quat)
}

// EulerRotation returns the rotation of the instance as Euler angles in degrees.
func (in Instance) EulerRotation() math32.Vector3 {
	return in.xf.EulerRotation()
}

// SetEulerRotation sets the rotation of the instance from Euler angles in degrees.
func (in *Instance) SetEulerRotation(euler math32.Vector3) {
	in.xf = NewTransformPose(in.xf.Pos(), euler, in.xf.Scale())
}

// Scale returns the scale of the instance.
func (in Instance) Scale() math32.Vector3 {
	return in.xf.Scale()
}

// SetScale sets the scale of the instance.
func (in *Instance) SetScale(scale math32.Vector3) {
	in.xf = in.xf.WithScale(scale)
}

func (in Instance) String() string {
	return in.Transform().String()
}
