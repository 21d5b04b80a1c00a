// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from PVT (.yaml or .json) files
package inp

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cpmech/gopvt/mdl/pvt"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun/dbf"
	"github.com/cpmech/gosl/io"
	"gopkg.in/yaml.v3"
)

// PvtoData holds the live oil rows of one region
type PvtoData struct {
	Saturated      [][]float64         `json:"saturated" yaml:"saturated"`           // rows of [rs, p, B, mu]
	Undersaturated map[int][][]float64 `json:"undersaturated" yaml:"undersaturated"` // knot index => rows of [p, B, mu]
}

// PvtData holds all data read from a PVT file
type PvtData struct {

	// input
	Desc     string        `json:"desc" yaml:"desc"`         // description
	Phases   []string      `json:"phases" yaml:"phases"`     // active phases in the order of surface volumes; default: water, oil, gas
	Density  dbf.Params    `json:"density" yaml:"density"`   // surface densities: rhoo, rhow, rhog
	Pvto     []*PvtoData   `json:"pvto" yaml:"pvto"`         // live oil; one per region
	Pvdo     [][][]float64 `json:"pvdo" yaml:"pvdo"`         // dead oil; one per region; rows of [p, B, mu]
	Oilvisct [][][]float64 `json:"oilvisct" yaml:"oilvisct"` // viscosity versus temperature; one per region; rows of [T, mu]
	Viscref  [][]float64   `json:"viscref" yaml:"viscref"`   // reference conditions of oilvisct; one per region; [p, rs]

	// derived
	Deck  *pvt.Deck      `json:"-" yaml:"-"` // tables
	Pu    pvt.PhaseUsage `json:"-" yaml:"-"` // phase usage
	Rho   pvt.Density    `json:"-" yaml:"-"` // surface densities
	Model pvt.Model      `json:"-" yaml:"-"` // initialised model
	Name  string         `json:"-" yaml:"-"` // model name: "liveoil" or "deadoil"
}

// ReadPvt reads, decodes and initialises all data in PVT file
//  The format is selected by the file extension: .json, .yaml or .yml
func ReadPvt(dir, fn string, verbose bool) (o *PvtData, err error) {

	// read file; io.ReadFile panics on failure
	path := filepath.Join(dir, fn)
	err = readable(path)
	if err != nil {
		return nil, chk.Err("cannot read PVT file %q:\n%v", fn, err)
	}
	b := io.ReadFile(path)

	// decode
	o, err = DecodePvt(b, filepath.Ext(fn))
	if err != nil {
		return nil, chk.Err("cannot decode PVT file %q:\n%v", fn, err)
	}

	// derived data
	err = o.Init()
	if err != nil {
		return nil, err
	}
	if verbose {
		io.Pforan("%v\n", o)
	}
	return
}

// readable checks whether path is a regular file that can be opened for reading
func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.IsDir() {
		return chk.Err("%q is a directory", path)
	}
	return nil
}

// DecodePvt decodes PVT data in JSON or YAML format
//  ext -- ".json", ".yaml" or ".yml"
//  Note: Init must be called afterwards
func DecodePvt(b []byte, ext string) (o *PvtData, err error) {
	o = new(PvtData)
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		err = dec.Decode(o)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		err = dec.Decode(o)
	default:
		return nil, chk.Err("format %q is incorrect; options are \".json\", \".yaml\" and \".yml\"", ext)
	}
	if err != nil {
		return nil, err
	}
	return
}

// Init converts the input rows into tables and initialises the PVT model
//  Errors in tables are *pvt.MalformedTableError
func (o *PvtData) Init() (err error) {

	// phases
	if len(o.Phases) == 0 {
		o.Phases = []string{"water", "oil", "gas"}
	}
	o.Pu, err = pvt.NewPhaseUsage(o.Phases...)
	if err != nil {
		return
	}

	// densities
	if len(o.Density) > 0 {
		err = o.Rho.Init(o.Density)
		if err != nil {
			return
		}
	}

	// tables
	o.Deck, err = o.deck()
	if err != nil {
		return
	}

	// model
	o.Model, err = pvt.NewFromDeck(o.Deck, o.Pu)
	if err != nil {
		return
	}
	o.Name = "deadoil"
	if len(o.Deck.Pvto) > 0 {
		o.Name = "liveoil"
	}
	return
}

// deck converts rows into tables
func (o *PvtData) deck() (deck *pvt.Deck, err error) {
	deck = new(pvt.Deck)

	// live oil
	for reg, dat := range o.Pvto {
		if dat == nil {
			return nil, chk.Err("pvto: region %d is empty", reg)
		}
		var rd pvt.RegionData
		for i, row := range dat.Saturated {
			if len(row) != 4 {
				return nil, chk.Err("pvto: region %d: saturated row %d must have 4 values [rs, p, B, mu]; got %v", reg, i, row)
			}
			rd.Rs = append(rd.Rs, row[0])
			rd.P = append(rd.P, row[1])
			rd.B = append(rd.B, row[2])
			rd.Mu = append(rd.Mu, row[3])
		}
		if len(dat.Undersaturated) > 0 {
			knots := make([]int, 0, len(dat.Undersaturated))
			for k := range dat.Undersaturated {
				if k < 0 {
					return nil, chk.Err("pvto: region %d: knot index %d is negative", reg, k)
				}
				knots = append(knots, k)
			}
			sort.Ints(knots)
			rd.Undersaturated = make([]pvt.Columns, knots[len(knots)-1]+1)
			for _, k := range knots {
				rd.Undersaturated[k], err = columns(dat.Undersaturated[k], 3)
				if err != nil {
					return nil, chk.Err("pvto: region %d: knot %d: %v", reg, k, err)
				}
			}
		}
		deck.Pvto = append(deck.Pvto, rd)
	}

	// dead oil
	for reg, rows := range o.Pvdo {
		c, err := columns(rows, 3)
		if err != nil {
			return nil, chk.Err("pvdo: region %d: %v", reg, err)
		}
		deck.Pvdo = append(deck.Pvdo, c)
	}

	// temperature dependence of viscosity
	for reg, rows := range o.Oilvisct {
		c, err := columns(rows, 2)
		if err != nil {
			return nil, chk.Err("oilvisct: region %d: %v", reg, err)
		}
		deck.Oilvisct = append(deck.Oilvisct, pvt.ViscosityTable{T: c.P, Mu: c.B})
	}
	if len(o.Viscref) > 0 && len(o.Viscref) != len(o.Oilvisct) {
		return nil, chk.Err("viscref: there are %d entries for %d oilvisct regions", len(o.Viscref), len(o.Oilvisct))
	}
	for reg, ref := range o.Viscref {
		if len(ref) != 2 {
			return nil, chk.Err("viscref: region %d must have 2 values [p, rs]; got %v", reg, ref)
		}
		deck.Viscref = append(deck.Viscref, pvt.ViscosityRef{P: ref[0], Rs: ref[1]})
	}
	if len(deck.Oilvisct) > 0 {
		nreg := len(deck.Pvto)
		if nreg == 0 {
			nreg = len(deck.Pvdo)
		}
		err = pvt.CheckViscosity(deck.Oilvisct, deck.Viscref, nreg)
		if err != nil {
			return nil, err
		}
	}
	return
}

// columns converts rows with ncol values into columns
//  ncol == 3: [p, B, mu] => P, B, Mu
//  ncol == 2: [x, y]     => P, B
func columns(rows [][]float64, ncol int) (c pvt.Columns, err error) {
	for i, row := range rows {
		if len(row) != ncol {
			return c, chk.Err("row %d must have %d values; got %v", i, ncol, row)
		}
		c.P = append(c.P, row[0])
		c.B = append(c.B, row[1])
		if ncol > 2 {
			c.Mu = append(c.Mu, row[2])
		}
	}
	return
}

// String returns a summary of PVT data
func (o PvtData) String() string {
	l := io.Sf("desc     = %q\n", o.Desc)
	l += io.Sf("phases   = %v\n", o.Phases)
	l += io.Sf("model    = %s\n", o.Name)
	l += io.Sf("density  = rhoo:%g rhow:%g rhog:%g\n", o.Rho.Oil, o.Rho.Water, o.Rho.Gas)
	if o.Deck == nil {
		return l
	}
	if lo, ok := o.Model.(*pvt.LiveOil); ok {
		tab := lo.Table()
		for reg := 0; reg < tab.TableCount(); reg++ {
			pbub := tab.BubblePoints(reg)
			l += io.Sf("region %d: %d knots; bubble points in [%g, %g]\n", reg, len(pbub), pbub[0], pbub[len(pbub)-1])
		}
	}
	for reg, c := range o.Deck.Pvdo {
		l += io.Sf("region %d: %d points; pressures in [%g, %g]\n", reg, len(c.P), c.P[0], c.P[len(c.P)-1])
	}
	if len(o.Deck.Oilvisct) > 0 {
		l += io.Sf("viscosity correction with %d tables\n", len(o.Deck.Oilvisct))
	}
	return l
}
