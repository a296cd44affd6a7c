// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 has the float32 vectors, quaternions, matrices,
// boxes and frusta used by the xyz scene graph. Scalar functions
// come from github.com/chewxy/math32.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

const (
	Pi = math.Pi

	// DegToRadFactor is the number of radians per degree.
	DegToRadFactor = Pi / 180

	// RadToDegFactor is the number of degrees per radian.
	RadToDegFactor = 180 / Pi
)

// Infinity is positive infinity.
var Infinity = float32(math.Inf(1))

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 { return degrees * DegToRadFactor }

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 { return radians * RadToDegFactor }

func Abs(x float32) float32 { return math32.Abs(x) }
func Asin(x float32) float32 { return math32.Asin(x) }
func Atan2(y, x float32) float32 { return math32.Atan2(y, x) }
func Cos(x float32) float32 { return math32.Cos(x) }
func Sin(x float32) float32 { return math32.Sin(x) }
func Sqrt(x float32) float32 { return math32.Sqrt(x) }
func Max(x, y float32) float32 { return math32.Max(x, y) }
func Min(x, y float32) float32 { return math32.Min(x, y) }

// IsInf reports whether x is an infinity of the given sign,
// or of either sign if sign is 0.
func IsInf(x float32, sign int) bool { return math32.IsInf(x, sign) }

// Clamp limits x to the closed interval [lo, hi].
func Clamp[T cmp.Ordered](x, lo, hi T) T {
	return min(max(x, lo), hi)
}

// EqualTol returns whether a and b differ by at most tol.
func EqualTol(a, b, tol float32) bool {
	return Abs(a-b) <= tol
}
