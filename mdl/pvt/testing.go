// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// CheckDerivs checks the p and r derivatives of viscosity and inverse formation volume factor
// against numerical derivatives computed with central differences (5-point rule)
//  Input:
//   mdl     -- model
//   reg     -- region
//   P, R    -- pressures and solution ratios of points to be checked
//   cond    -- state of all points
//   tolD    -- tolerance to compare analytical and numerical derivatives
//   verbose -- show messages
//   pSkip   -- pressures to skip (e.g. breakpoints where derivatives are discontinuous)
//   tolSkip -- tolerance to skip pressures
//  Note: T is nil; thus mdl must not have a viscosity correction
func CheckDerivs(tst *testing.T, mdl Model, reg int, P, R []float64, cond PhasePresence, tolD float64, verbose bool, pSkip []float64, tolSkip float64) {

	if len(P) != len(R) {
		chk.Panic("CheckDerivs: len(P)=%d must be equal to len(R)=%d", len(P), len(R))
	}

	// single cell evaluations
	regions := []int{reg}
	conds := []PhasePresence{cond}
	mu, dmudp, dmudr := make([]float64, 1), make([]float64, 1), make([]float64, 1)
	b, dbdp, dbdr := make([]float64, 1), make([]float64, 1), make([]float64, 1)
	tmp, dtmpdp, dtmpdr := make([]float64, 1), make([]float64, 1), make([]float64, 1)
	muAt := func(p, r float64) float64 {
		mdl.MuCond(regions, []float64{p}, nil, []float64{r}, conds, tmp, dtmpdp, dtmpdr)
		return tmp[0]
	}
	bAt := func(p, r float64) float64 {
		mdl.InvBCond(regions, []float64{p}, nil, []float64{r}, conds, tmp, dtmpdp, dtmpdr)
		return tmp[0]
	}

	// for all points
	h := 1e-3
	for i, p := range P {
		if doskip(p, pSkip, tolSkip) {
			continue
		}
		r := R[i]
		mdl.MuCond(regions, []float64{p}, nil, []float64{r}, conds, mu, dmudp, dmudr)
		mdl.InvBCond(regions, []float64{p}, nil, []float64{r}, conds, b, dbdp, dbdr)
		if verbose {
			io.Pforan("\np=%g, r=%g, saturated=%v\n", p, r, cond.HasFreeGas())
		}

		// viscosity
		chk.AnaNum(tst, io.Sf("∂mu/∂p @ %g,%g", p, r), tolD, dmudp[0], numDeriv(func(x float64) float64 { return muAt(x, r) }, p, h), verbose)
		chk.AnaNum(tst, io.Sf("∂mu/∂r @ %g,%g", p, r), tolD, dmudr[0], numDeriv(func(x float64) float64 { return muAt(p, x) }, r, h), verbose)

		// inverse formation volume factor
		chk.AnaNum(tst, io.Sf("∂b/∂p  @ %g,%g", p, r), tolD, dbdp[0], numDeriv(func(x float64) float64 { return bAt(x, r) }, p, h), verbose)
		chk.AnaNum(tst, io.Sf("∂b/∂r  @ %g,%g", p, r), tolD, dbdr[0], numDeriv(func(x float64) float64 { return bAt(p, x) }, r, h), verbose)
	}
}

// numDeriv computes df/dx @ x with central differences (5-point rule)
func numDeriv(f func(x float64) float64, x, h float64) float64 {
	return (f(x-2*h) - 8*f(x-h) + 8*f(x+h) - f(x+2*h)) / (12 * h)
}

// doskip analyse whether a point should be skip or not
func doskip(x float64, xskip []float64, tol float64) bool {
	for _, v := range xskip {
		if math.Abs(x-v) < tol {
			return true
		}
	}
	return false
}
