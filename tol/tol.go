// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package tol implements tolerant comparisons of floating point numbers
//  Two numbers a and b are considered equal if
//    |a - b| ≤ AbsEps   or   |a - b| ≤ RelEps・(|a| + |b|)
package tol

import "math"

// tolerances
const (
	AbsEps = 1e-8 // absolute tolerance
	RelEps = 1e-5 // relative tolerance w.r.t the sum of magnitudes
)

// Equal returns true if a and b are equal within the absolute or relative tolerances
func Equal(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	if diff <= AbsEps {
		return true
	}
	return diff <= RelEps*(math.Abs(a)+math.Abs(b))
}

// EqualSlices returns true if a and b have the same length and all entries are Equal
func EqualSlices(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Less returns true if a < b and a is not Equal to b
func Less(a, b float64) bool {
	return a < b && !Equal(a, b)
}
