// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
)

// Density holds the densities of oil, water and gas at surface (standard) conditions
//  The in-situ density of live oil is:
//   ρ(p,r) = b(p,r)・(ρo + r・ρg)
type Density struct {
	Oil   float64 // surface density of oil
	Water float64 // surface density of water
	Gas   float64 // surface density of gas
}

// Init initialises this structure
func (o *Density) Init(prms dbf.Params) (err error) {
	for _, p := range prms {
		switch strings.ToLower(p.N) {
		case "rhoo":
			o.Oil = p.V
		case "rhow":
			o.Water = p.V
		case "rhog":
			o.Gas = p.V
		default:
			return chk.Err("density: parameter named %q is incorrect\n", p.N)
		}
	}
	if o.Oil <= 0 {
		return chk.Err("density: surface density of oil rhoo = %g is invalid", o.Oil)
	}
	if o.Water < 0 || o.Gas < 0 {
		return chk.Err("density: surface densities of water and gas must be non-negative; rhow = %g, rhog = %g", o.Water, o.Gas)
	}
	return
}

// GetPrms gets (an example of) parameters
//  Input:
//   example -- returns example of parameters; othewise returs current parameters
func (o Density) GetPrms(example bool) dbf.Params {
	if example {
		return dbf.Params{
			&dbf.P{N: "rhoo", V: 800.0},  // [kg/m³]
			&dbf.P{N: "rhow", V: 1022.0}, // [kg/m³]
			&dbf.P{N: "rhog", V: 0.9907}, // [kg/m³]
		}
	}
	return dbf.Params{
		&dbf.P{N: "rhoo", V: o.Oil},
		&dbf.P{N: "rhow", V: o.Water},
		&dbf.P{N: "rhog", V: o.Gas},
	}
}

// OilReservoir computes the in-situ density of oil and its derivatives
//  Input:
//   b, dbdp, dbdr -- inverse formation volume factor and its derivatives
//   r             -- dissolved gas-oil ratio
func (o Density) OilReservoir(b, dbdp, dbdr, r float64) (ρ, dρdp, dρdr float64) {
	mass := o.Oil + r*o.Gas
	ρ = b * mass
	dρdp = dbdp * mass
	dρdr = dbdr*mass + b*o.Gas
	return
}
