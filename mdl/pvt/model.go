// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pvt implements tabulated black-oil PVT models for oil
//  The models evaluate, for a batch of n cells, the formation volume factor B, its inverse
//  b = 1/B, the viscosity mu and the solution gas-oil ratio at saturated conditions rsSat,
//  together with derivatives w.r.t pressure p and solution ratio r.
//  Conventions:
//   * n = len(p); all output slices are allocated by the caller and have length ≥ n
//   * z holds surface volumes with n・NumPhases entries laid out according to PhaseUsage
//   * regions holds the PVT region of each cell; regions == nil means region 0 for all cells
//   * r = z_gas/z_oil; a cell without oil or without gas has r = 0 (gas-free oil)
//   * T is only read when a viscosity correction is attached; otherwise it may be nil
//   * out-of-range inputs are clamped to the table limits; there are no evaluation errors
package pvt

import (
	"strings"

	"github.com/cpmech/gosl/chk"
)

// phase positions
const (
	Aqua      = iota // water
	Liquid           // oil
	Vapour           // gas
	MaxPhases        // number of phase kinds
)

// PhaseUsage holds the active phases and their positions in surface volume arrays
type PhaseUsage struct {
	NumPhases int             // number of active phases
	Active    [MaxPhases]bool // active flags indexed by Aqua, Liquid or Vapour
	Pos       [MaxPhases]int  // position of phase in z (valid if active)
}

// NewPhaseUsage returns the phase usage corresponding to the given phase names
//  names -- "water", "oil" or "gas" in the order they appear in z
func NewPhaseUsage(names ...string) (pu PhaseUsage, err error) {
	for _, name := range names {
		var phase int
		switch strings.ToLower(name) {
		case "water", "aqua":
			phase = Aqua
		case "oil", "liquid":
			phase = Liquid
		case "gas", "vapour", "vapor":
			phase = Vapour
		default:
			return pu, chk.Err("phase named %q is incorrect; options are \"water\", \"oil\" and \"gas\"", name)
		}
		if pu.Active[phase] {
			return pu, chk.Err("phase %q is given more than once", name)
		}
		pu.Active[phase] = true
		pu.Pos[phase] = pu.NumPhases
		pu.NumPhases++
	}
	return
}

// PhasePresence holds flags indicating which phases are present as free phases in a cell
type PhasePresence uint8

// phase presence flags
const (
	FreeWater PhasePresence = 1 << iota
	FreeOil
	FreeGas
)

// HasFreeGas tells whether free gas is present; i.e. the oil is saturated
func (o PhasePresence) HasFreeGas() bool { return o&FreeGas != 0 }

// HasFreeOil tells whether free oil is present
func (o PhasePresence) HasFreeOil() bool { return o&FreeOil != 0 }

// HasFreeWater tells whether free water is present
func (o PhasePresence) HasFreeWater() bool { return o&FreeWater != 0 }

// SetFreeGas marks free gas as present
func (o *PhasePresence) SetFreeGas() { *o |= FreeGas }

// SetFreeOil marks free oil as present
func (o *PhasePresence) SetFreeOil() { *o |= FreeOil }

// SetFreeWater marks free water as present
func (o *PhasePresence) SetFreeWater() { *o |= FreeWater }

// Deck holds the already parsed tables that define the PVT models of oil
type Deck struct {
	Pvto     []RegionData     // live oil tables; one per region
	Pvdo     []Columns        // dead oil tables; one per region
	Oilvisct []ViscosityTable // optional temperature dependence of oil viscosity; one per region
	Viscref  []ViscosityRef   // reference conditions of Oilvisct; one per region
}

// Model defines tabulated PVT models for oil
type Model interface {
	Init(pu PhaseUsage, deck *Deck) error // initialises model; tables are built and checked here

	// viscosity
	//  Mu:      mu(p,T,z)
	//  MuDeriv: mu(p,T,r) and derivatives; saturated if r ≥ rsSat(p)
	//  MuCond:  mu(p,T,r) and derivatives; saturated if cond has free gas
	Mu(regions []int, p, T, z, mu []float64)
	MuDeriv(regions []int, p, T, r, mu, dmudp, dmudr []float64)
	MuCond(regions []int, p, T, r []float64, cond []PhasePresence, mu, dmudp, dmudr []float64)

	// formation volume factor
	//  B:        B(p,T,z)
	//  DBdp:     B(p,T,z) and ∂B/∂p
	//  InvB:     b = 1/B(p,T,r) and derivatives; saturated if r ≥ rsSat(p)
	//  InvBCond: b = 1/B(p,T,r) and derivatives; saturated if cond has free gas
	B(regions []int, p, T, z, B []float64)
	DBdp(regions []int, p, T, z, B, dBdp []float64)
	InvB(regions []int, p, T, r, b, dbdp, dbdr []float64)
	InvBCond(regions []int, p, T, r []float64, cond []PhasePresence, b, dbdp, dbdr []float64)

	// solution ratios
	RsSat(regions []int, p, rsSat, drsSatdp []float64) // dissolved gas-oil ratio at saturated conditions
	RvSat(regions []int, p, rvSat, drvSatdp []float64) // vaporised oil-gas ratio at saturated conditions
	R(regions []int, p, z, R []float64)                // solution factor R(p,z)
	DRdp(regions []int, p, z, R, dRdp []float64)       // solution factor R(p,z) and ∂R/∂p

	// temperature dependence of viscosity
	SetViscosityCorrection(tables []ViscosityTable, refs []ViscosityRef)
}

// New returns a new (not initialised) PVT model
func New(name string) (model Model, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'pvt' database", name)
	}
	return allocator(), nil
}

// NewFromDeck allocates and initialises the model selected by the keywords present in deck
//  PVTO data selects "liveoil"; otherwise PVDO data selects "deadoil"
func NewFromDeck(deck *Deck, pu PhaseUsage) (model Model, err error) {
	var name string
	switch {
	case len(deck.Pvto) > 0:
		name = "liveoil"
	case len(deck.Pvdo) > 0:
		name = "deadoil"
	default:
		return nil, chk.Err("deck has neither PVTO nor PVDO tables")
	}
	model, err = New(name)
	if err != nil {
		return
	}
	err = model.Init(pu, deck)
	if err != nil {
		return nil, err
	}
	return
}

// allocators holds all available models
var allocators = map[string]func() Model{}

// regionOf returns the PVT region of cell i; regions == nil means region 0
func regionOf(regions []int, i int) int {
	if regions == nil {
		return 0
	}
	return regions[i]
}

// SliceRegions returns regions[lo:hi], keeping the nil (all cells in region 0) convention
func SliceRegions(regions []int, lo, hi int) []int {
	if regions == nil {
		return nil
	}
	return regions[lo:hi]
}
