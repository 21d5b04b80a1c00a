// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import "github.com/cpmech/gosl/chk"

// DeadOil implements the PVT model of dead oil; i.e. oil without dissolved gas (PVDO)
//  B and mu depend on pressure only; all solution ratios and r derivatives are zero.
type DeadOil struct {
	pu     PhaseUsage     // phase usage
	curves []Curve        // one pressure curve per region
	visc   viscCorrection // temperature dependence of viscosity
}

// add model to factory
func init() {
	allocators["deadoil"] = func() Model { return new(DeadOil) }
}

// Init initialises model with the PVDO tables in deck
func (o *DeadOil) Init(pu PhaseUsage, deck *Deck) (err error) {
	if !pu.Active[Liquid] {
		return chk.Err("deadoil: oil phase must be active")
	}
	if len(deck.Pvdo) == 0 {
		return malformed(-1, -1, "there are no regions")
	}
	o.pu = pu
	o.curves = make([]Curve, len(deck.Pvdo))
	for reg, c := range deck.Pvdo {
		var reason string
		o.curves[reg], reason = newCurve(c.P, c.B, c.Mu)
		if reason != "" {
			return malformed(reg, -1, "%s", reason)
		}
	}
	if len(deck.Oilvisct) > 0 || len(deck.Viscref) > 0 {
		err = CheckViscosity(deck.Oilvisct, deck.Viscref, len(o.curves))
		if err != nil {
			return
		}
		o.SetViscosityCorrection(deck.Oilvisct, deck.Viscref)
	}
	return
}

// Curve returns the pressure curve of region reg
func (o *DeadOil) Curve(reg int) Curve { return o.curves[reg] }

// SetViscosityCorrection sets the tables specifying the temperature dependence of viscosity
//  Only references are stored. The reference solution ratio is ignored.
func (o *DeadOil) SetViscosityCorrection(tables []ViscosityTable, refs []ViscosityRef) {
	o.visc.set(tables, refs)
}

// Mu computes the viscosity as a function of p, T and z
func (o *DeadOil) Mu(regions []int, p, T, z, mu []float64) {
	for i := range p {
		reg := regionOf(regions, i)
		mu[i], _ = o.curves[reg].eval(itemMu, p[i])
		mu[i] *= o.muFactor(reg, T, i)
	}
}

// MuDeriv computes the viscosity and its p and r derivatives as a function of p, T and r
func (o *DeadOil) MuDeriv(regions []int, p, T, r, mu, dmudp, dmudr []float64) {
	for i := range p {
		reg := regionOf(regions, i)
		f := o.muFactor(reg, T, i)
		mu[i], dmudp[i] = o.curves[reg].eval(itemMu, p[i])
		mu[i] *= f
		dmudp[i] *= f
		dmudr[i] = 0
	}
}

// MuCond computes the viscosity and its p and r derivatives; cond is irrelevant for dead oil
func (o *DeadOil) MuCond(regions []int, p, T, r []float64, cond []PhasePresence, mu, dmudp, dmudr []float64) {
	o.MuDeriv(regions, p, T, r, mu, dmudp, dmudr)
}

// B computes the formation volume factor as a function of p, T and z
func (o *DeadOil) B(regions []int, p, T, z, B []float64) {
	for i := range p {
		b, _ := o.curves[regionOf(regions, i)].eval(itemInvB, p[i])
		B[i] = 1.0 / b
	}
}

// DBdp computes the formation volume factor and its p derivative as a function of p, T and z
func (o *DeadOil) DBdp(regions []int, p, T, z, B, dBdp []float64) {
	for i := range p {
		b, dbdp := o.curves[regionOf(regions, i)].eval(itemInvB, p[i])
		B[i] = 1.0 / b
		dBdp[i] = -dbdp / (b * b)
	}
}

// InvB computes b = 1/B and its p and r derivatives as a function of p, T and r
func (o *DeadOil) InvB(regions []int, p, T, r, b, dbdp, dbdr []float64) {
	for i := range p {
		b[i], dbdp[i] = o.curves[regionOf(regions, i)].eval(itemInvB, p[i])
		dbdr[i] = 0
	}
}

// InvBCond computes b = 1/B and its p and r derivatives; cond is irrelevant for dead oil
func (o *DeadOil) InvBCond(regions []int, p, T, r []float64, cond []PhasePresence, b, dbdp, dbdr []float64) {
	o.InvB(regions, p, T, r, b, dbdp, dbdr)
}

// RsSat returns zero because dead oil has no dissolved gas
func (o *DeadOil) RsSat(regions []int, p, rsSat, drsSatdp []float64) {
	zeros(len(p), rsSat, drsSatdp)
}

// RvSat returns zero because dead oil does not vaporise
func (o *DeadOil) RvSat(regions []int, p, rvSat, drvSatdp []float64) {
	zeros(len(p), rvSat, drvSatdp)
}

// R returns zero because dead oil has no dissolved gas
func (o *DeadOil) R(regions []int, p, z, R []float64) {
	zeros(len(p), R)
}

// DRdp returns zero because dead oil has no dissolved gas
func (o *DeadOil) DRdp(regions []int, p, z, R, dRdp []float64) {
	zeros(len(p), R, dRdp)
}

// muFactor returns the temperature correction factor of viscosity of cell i
func (o *DeadOil) muFactor(reg int, T []float64, i int) float64 {
	if !o.visc.active() {
		return 1
	}
	return o.visc.factor(reg, T[i], func(p, rs float64) float64 {
		mu, _ := o.curves[reg].eval(itemMu, p)
		return mu
	})
}

// zeros sets the first n entries of all slices to zero
func zeros(n int, slices ...[]float64) {
	for _, s := range slices {
		for i := 0; i < n; i++ {
			s[i] = 0
		}
	}
}
