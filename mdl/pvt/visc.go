// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import "github.com/cpmech/gopvt/tol"

// ViscosityTable holds the oil viscosity as a function of temperature (OILVISCT)
type ViscosityTable struct {
	T  []float64 // temperatures; strictly increasing
	Mu []float64 // oil viscosities at T
}

// ViscosityRef holds the reference conditions of a ViscosityTable (VISCREF)
type ViscosityRef struct {
	P  float64 // reference pressure
	Rs float64 // reference solution gas-oil ratio
}

// viscCorrection scales isothermal viscosities according to temperature
//  mu(p,T,r) = mu_iso(p,r)・f(T) / mu_iso(pref,rsref)
//  where f is interpolated from ViscosityTable and (pref,rsref) come from ViscosityRef
type viscCorrection struct {
	tables []ViscosityTable // one per region; nil means no correction
	refs   []ViscosityRef   // one per region
}

// set stores the tables; nothing is computed here
func (o *viscCorrection) set(tables []ViscosityTable, refs []ViscosityRef) {
	o.tables = tables
	o.refs = refs
}

// active tells whether a correction is attached
func (o *viscCorrection) active() bool {
	return len(o.tables) > 0
}

// factor returns f(T)/mu_iso(pref,rsref) for region reg
//  muIso computes isothermal viscosities of region reg
//  Regions without table, or with an unusable one, are not corrected.
func (o *viscCorrection) factor(reg int, T float64, muIso func(p, rs float64) float64) float64 {
	if reg >= len(o.tables) {
		return 1
	}
	tab := o.tables[reg]
	if len(tab.T) == 0 || len(tab.Mu) != len(tab.T) {
		return 1
	}
	var muT float64
	if len(tab.T) == 1 {
		muT = tab.Mu[0]
	} else {
		j, w, _ := bracket(tab.T, T)
		muT = tab.Mu[j] + w*(tab.Mu[j+1]-tab.Mu[j])
	}
	var ref ViscosityRef
	if reg < len(o.refs) {
		ref = o.refs[reg]
	}
	return muT / muIso(ref.P, ref.Rs)
}

// CheckViscosity checks the viscosity tables and references of nreg regions
//  There must be one table per region and at most one reference per table. An empty table
//  means no correction for its region. Errors are *MalformedTableError with Knot = -1.
func CheckViscosity(tables []ViscosityTable, refs []ViscosityRef, nreg int) error {
	if len(tables) != nreg {
		return malformed(-1, -1, "there are %d oilvisct tables for %d regions", len(tables), nreg)
	}
	if len(refs) > len(tables) {
		return malformed(-1, -1, "there are %d viscref entries for %d oilvisct tables", len(refs), len(tables))
	}
	for reg, tab := range tables {
		if len(tab.Mu) != len(tab.T) {
			return malformed(reg, -1, "oilvisct: mismatched column lengths: len(T)=%d, len(mu)=%d", len(tab.T), len(tab.Mu))
		}
		for i := range tab.T {
			if !finite(tab.T[i]) || !finite(tab.Mu[i]) {
				return malformed(reg, -1, "oilvisct: row %d has non-finite values: T=%g, mu=%g", i, tab.T[i], tab.Mu[i])
			}
			if tab.Mu[i] <= 0 {
				return malformed(reg, -1, "oilvisct: viscosity mu=%g at T=%g must be positive", tab.Mu[i], tab.T[i])
			}
			if i > 0 && !tol.Less(tab.T[i-1], tab.T[i]) {
				return malformed(reg, -1, "oilvisct: temperatures must be strictly increasing: T[%d]=%g, T[%d]=%g", i-1, tab.T[i-1], i, tab.T[i])
			}
		}
	}
	for reg, ref := range refs {
		if !finite(ref.P) || !finite(ref.Rs) {
			return malformed(reg, -1, "viscref: non-finite reference p=%g, rs=%g", ref.P, ref.Rs)
		}
	}
	return nil
}
