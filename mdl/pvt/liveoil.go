// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import "github.com/cpmech/gosl/chk"

// LiveOil implements the PVT model of live oil; i.e. oil with dissolved gas (PVTO)
//  The properties are interpolated within a saturated curve (knots of r_s, each one with a
//  pressure sub-curve) and the undersaturated curves branching off each knot.
//  The oil is saturated if r ≥ rsSat(p), unless the state is given explicitly by PhasePresence.
type LiveOil struct {
	pu   PhaseUsage     // phase usage
	tab  *Table         // tables of all regions; shared and never modified
	visc viscCorrection // temperature dependence of viscosity
}

// add model to factory
func init() {
	allocators["liveoil"] = func() Model { return new(LiveOil) }
}

// NewLiveOil returns a new live oil model using an already built table
func NewLiveOil(pu PhaseUsage, tab *Table) (o *LiveOil, err error) {
	o = new(LiveOil)
	err = o.set(pu, tab)
	if err != nil {
		return nil, err
	}
	return
}

// Init initialises model with the PVTO tables in deck
func (o *LiveOil) Init(pu PhaseUsage, deck *Deck) (err error) {
	tab, err := NewTable(deck.Pvto)
	if err != nil {
		return
	}
	err = o.set(pu, tab)
	if err != nil {
		return
	}
	if len(deck.Oilvisct) > 0 || len(deck.Viscref) > 0 {
		err = CheckViscosity(deck.Oilvisct, deck.Viscref, tab.TableCount())
		if err != nil {
			return
		}
		o.SetViscosityCorrection(deck.Oilvisct, deck.Viscref)
	}
	return
}

// set sets phase usage and table
func (o *LiveOil) set(pu PhaseUsage, tab *Table) error {
	if !pu.Active[Liquid] || !pu.Active[Vapour] {
		return chk.Err("liveoil: oil and gas phases must be active")
	}
	if tab == nil {
		return chk.Err("liveoil: table must be non-nil")
	}
	o.pu = pu
	o.tab = tab
	return nil
}

// Table returns the (shared) tables of this model
func (o *LiveOil) Table() *Table { return o.tab }

// SetViscosityCorrection sets the tables specifying the temperature dependence of viscosity
//  Only references are stored; the correction is evaluated by the viscosity functions.
func (o *LiveOil) SetViscosityCorrection(tables []ViscosityTable, refs []ViscosityRef) {
	o.visc.set(tables, refs)
}

// Mu computes the viscosity as a function of p, T and z
func (o *LiveOil) Mu(regions []int, p, T, z, mu []float64) {
	for i := range p {
		reg := regionOf(regions, i)
		mu[i], _, _ = o.tab.regions[reg].eval(itemMu, p[i], o.ratio(z, i))
		mu[i] *= o.muFactor(reg, T, i)
	}
}

// MuDeriv computes the viscosity and its p and r derivatives as a function of p, T and r
//  The oil is considered saturated if r ≥ rsSat(p)
func (o *LiveOil) MuDeriv(regions []int, p, T, r, mu, dmudp, dmudr []float64) {
	for i := range p {
		reg := regionOf(regions, i)
		mu[i], dmudp[i], dmudr[i] = o.tab.regions[reg].eval(itemMu, p[i], r[i])
		o.scaleMu(reg, T, i, mu, dmudp, dmudr)
	}
}

// MuCond computes the viscosity and its p and r derivatives as a function of p, T and r
//  The oil is considered saturated if cond[i] has free gas
func (o *LiveOil) MuCond(regions []int, p, T, r []float64, cond []PhasePresence, mu, dmudp, dmudr []float64) {
	for i := range p {
		reg := regionOf(regions, i)
		mu[i], dmudp[i], dmudr[i] = o.tab.regions[reg].evalCond(itemMu, p[i], r[i], cond[i])
		o.scaleMu(reg, T, i, mu, dmudp, dmudr)
	}
}

// B computes the formation volume factor as a function of p, T and z
func (o *LiveOil) B(regions []int, p, T, z, B []float64) {
	for i := range p {
		b, _, _ := o.tab.regions[regionOf(regions, i)].eval(itemInvB, p[i], o.ratio(z, i))
		B[i] = 1.0 / b
	}
}

// DBdp computes the formation volume factor and its p derivative as a function of p, T and z
func (o *LiveOil) DBdp(regions []int, p, T, z, B, dBdp []float64) {
	for i := range p {
		b, dbdp, _ := o.tab.regions[regionOf(regions, i)].eval(itemInvB, p[i], o.ratio(z, i))
		B[i] = 1.0 / b
		dBdp[i] = -dbdp / (b * b)
	}
}

// InvB computes b = 1/B and its p and r derivatives as a function of p, T and r
//  The oil is considered saturated if r ≥ rsSat(p)
func (o *LiveOil) InvB(regions []int, p, T, r, b, dbdp, dbdr []float64) {
	for i := range p {
		b[i], dbdp[i], dbdr[i] = o.tab.regions[regionOf(regions, i)].eval(itemInvB, p[i], r[i])
	}
}

// InvBCond computes b = 1/B and its p and r derivatives as a function of p, T and r
//  The oil is considered saturated if cond[i] has free gas
func (o *LiveOil) InvBCond(regions []int, p, T, r []float64, cond []PhasePresence, b, dbdp, dbdr []float64) {
	for i := range p {
		b[i], dbdp[i], dbdr[i] = o.tab.regions[regionOf(regions, i)].evalCond(itemInvB, p[i], r[i], cond[i])
	}
}

// RsSat computes the solution gas-oil ratio at saturated conditions and its p derivative
func (o *LiveOil) RsSat(regions []int, p, rsSat, drsSatdp []float64) {
	for i := range p {
		rsSat[i], drsSatdp[i] = o.tab.regions[regionOf(regions, i)].rsSat(p[i])
	}
}

// RvSat computes the vaporised oil-gas ratio at saturated conditions and its p derivative
//  Live oil does not model oil vaporised in gas; thus rvSat = 0 and drvSatdp = 0
func (o *LiveOil) RvSat(regions []int, p, rvSat, drvSatdp []float64) {
	zeros(len(p), rvSat, drvSatdp)
}

// R computes the solution factor as a function of p and z
func (o *LiveOil) R(regions []int, p, z, R []float64) {
	for i := range p {
		R[i], _ = o.solution(regionOf(regions, i), p[i], z, i)
	}
}

// DRdp computes the solution factor and its p derivative as a function of p and z
func (o *LiveOil) DRdp(regions []int, p, z, R, dRdp []float64) {
	for i := range p {
		R[i], dRdp[i] = o.solution(regionOf(regions, i), p[i], z, i)
	}
}

// auxiliary //////////////////////////////////////////////////////////////////////////////////////

// ratio returns the surface volume ratio of gas and oil of cell i
func (o *LiveOil) ratio(z []float64, i int) float64 {
	np := o.pu.NumPhases
	zo := z[i*np+o.pu.Pos[Liquid]]
	zg := z[i*np+o.pu.Pos[Vapour]]
	if zo == 0 || zg == 0 {
		return 0
	}
	return zg / zo
}

// solution returns R and dR/dp of cell i
//  saturated:      R = rsSat(p), dR/dp = drsSat/dp
//  undersaturated: R = zg/zo,    dR/dp = 0
func (o *LiveOil) solution(reg int, p float64, z []float64, i int) (R, dRdp float64) {
	r := o.ratio(z, i)
	if r == 0 {
		return 0, 0
	}
	rs, drsdp := o.tab.regions[reg].rsSat(p)
	if isSaturated(r, rs) {
		return rs, drsdp
	}
	return r, 0
}

// muFactor returns the temperature correction factor of viscosity of cell i
func (o *LiveOil) muFactor(reg int, T []float64, i int) float64 {
	if !o.visc.active() {
		return 1
	}
	return o.visc.factor(reg, T[i], func(p, rs float64) float64 {
		mu, _, _ := o.tab.regions[reg].eval(itemMu, p, rs)
		return mu
	})
}

// scaleMu applies the temperature correction to the viscosity of cell i and its derivatives
func (o *LiveOil) scaleMu(reg int, T []float64, i int, mu, dmudp, dmudr []float64) {
	if !o.visc.active() {
		return
	}
	f := o.muFactor(reg, T, i)
	mu[i] *= f
	dmudp[i] *= f
	dmudr[i] *= f
}
