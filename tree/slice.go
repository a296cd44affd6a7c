// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

// IndexOf returns the index of the given node in the given slice,
// or -1 if it is not found. The optional startIndex argument
// allows for optimized bidirectional searching if you have a guess
// at where the node might be, which can be a key speedup for large
// slices. If no value is specified for startIndex, it starts in the
// middle, which is a good default.
func IndexOf(slice []Node, child Node, startIndex ...int) int {
	return findFunc(slice, func(e Node) bool { return e == child }, startIndex...)
}

// IndexByName returns the index of the first element in the given slice that
// has the given name, or -1 if none is found. See [IndexOf] for info on startIndex.
func IndexByName(slice []Node, name string, startIndex ...int) int {
	return findFunc(slice, func(ch Node) bool { return ch.AsTree().Name == name }, startIndex...)
}

// findFunc searches outward in both directions from startIndex,
// returning the first index for which match is true.
func findFunc(slice []Node, match func(n Node) bool, startIndex ...int) int {
	sz := len(slice)
	if sz == 0 {
		return -1
	}
	st := sz / 2
	if len(startIndex) > 0 {
		st = startIndex[0]
	}
	if st < 0 || st >= sz {
		st = sz / 2
	}
	upi := st + 1
	dni := st
	upo := false
	for {
		if !upo && upi < sz {
			if match(slice[upi]) {
				return upi
			}
			upi++
		} else {
			upo = true
		}
		if dni >= 0 {
			if match(slice[dni]) {
				return dni
			}
			dni--
		} else if upo {
			break
		}
	}
	return -1
}
