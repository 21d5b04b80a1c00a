// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"math"

	"github.com/cpmech/gopvt/tol"
	"github.com/cpmech/gosl/io"
)

// Columns holds the (p, B, mu) columns of a pressure curve
type Columns struct {
	P  []float64 // pressure
	B  []float64 // formation volume factor
	Mu []float64 // viscosity
}

// RegionData holds the live oil data of one PVT region
//  Saturated rows are given by the Rs, P, B and Mu columns; consecutive rows with the same Rs
//  belong to the same knot and the first pressure of a knot is its bubble point.
//  Undersaturated[k] holds the rows of knot k above its saturated rows; records may be
//  missing (fewer records than knots) or empty, in which case they are completed from
//  the neighbour knots.
type RegionData struct {
	Rs, P, B, Mu   []float64 // saturated rows
	Undersaturated []Columns // undersaturated rows of each knot
}

// MalformedTableError reports a table that cannot be used to build a Table
type MalformedTableError struct {
	Region int    // region index; -1 if the problem is not related to a region
	Knot   int    // knot index; -1 if the problem is not related to a knot
	Reason string // description
}

// Error implements the error interface
func (o *MalformedTableError) Error() string {
	switch {
	case o.Region < 0:
		return io.Sf("pvt: malformed table: %s", o.Reason)
	case o.Knot < 0:
		return io.Sf("pvt: malformed table in region %d: %s", o.Region, o.Reason)
	}
	return io.Sf("pvt: malformed table in region %d, knot %d: %s", o.Region, o.Knot, o.Reason)
}

// malformed returns a new MalformedTableError
func malformed(region, knot int, msg string, prm ...interface{}) error {
	return &MalformedTableError{region, knot, io.Sf(msg, prm...)}
}

// column items
const (
	itemInvB = iota // 1/B
	itemMu          // mu
)

// Curve holds an immutable pressure curve with (p, 1/B, mu) columns
type Curve struct {
	p    []float64 // pressures; strictly increasing
	invB []float64 // inverse formation volume factors
	mu   []float64 // viscosities
}

// newCurve copies and checks the given columns
//  Output:
//   reason -- description of the problem; empty if columns are fine
func newCurve(p, B, mu []float64) (o Curve, reason string) {
	n := len(p)
	if n == 0 {
		return o, "curve has no points"
	}
	if len(B) != n || len(mu) != n {
		return o, io.Sf("mismatched column lengths: len(p)=%d, len(B)=%d, len(mu)=%d", n, len(B), len(mu))
	}
	o.p = make([]float64, n)
	o.invB = make([]float64, n)
	o.mu = make([]float64, n)
	for i := 0; i < n; i++ {
		if !finite(p[i]) || !finite(B[i]) || !finite(mu[i]) {
			return o, io.Sf("row %d has non-finite values: p=%g, B=%g, mu=%g", i, p[i], B[i], mu[i])
		}
		if B[i] <= 0 {
			return o, io.Sf("formation volume factor B=%g at p=%g must be positive", B[i], p[i])
		}
		if mu[i] <= 0 {
			return o, io.Sf("viscosity mu=%g at p=%g must be positive", mu[i], p[i])
		}
		if i > 0 && !tol.Less(p[i-1], p[i]) {
			return o, io.Sf("pressures must be strictly increasing: p[%d]=%g, p[%d]=%g", i-1, p[i-1], i, p[i])
		}
		o.p[i] = p[i]
		o.invB[i] = 1.0 / B[i]
		o.mu[i] = mu[i]
	}
	return
}

// Len returns the number of points
func (o Curve) Len() int { return len(o.p) }

// Pressure returns the pressure of point i
func (o Curve) Pressure(i int) float64 { return o.p[i] }

// B returns the formation volume factor of point i
func (o Curve) B(i int) float64 { return 1.0 / o.invB[i] }

// InvB returns the inverse formation volume factor of point i
func (o Curve) InvB(i int) float64 { return o.invB[i] }

// Mu returns the viscosity of point i
func (o Curve) Mu(i int) float64 { return o.mu[i] }

// column returns the values of item
func (o Curve) column(item int) []float64 {
	if item == itemMu {
		return o.mu
	}
	return o.invB
}

// appended returns a new curve with the points of o followed by the points of c
func (o Curve) appended(c Curve) Curve {
	return Curve{
		p:    append(append([]float64{}, o.p...), c.p...),
		invB: append(append([]float64{}, o.invB...), c.invB...),
		mu:   append(append([]float64{}, o.mu...), c.mu...),
	}
}

// extendedLike returns a copy of o extended with the shape of donor
//  The pressure increments of donor are copied and 1/B and mu are scaled by the ratios
//  between consecutive points of donor; thus compressibility and viscosibility are kept.
func (o Curve) extendedLike(donor Curve) Curve {
	n := o.Len() + donor.Len() - 1
	res := Curve{make([]float64, n), make([]float64, n), make([]float64, n)}
	copy(res.p, o.p)
	copy(res.invB, o.invB)
	copy(res.mu, o.mu)
	for i, j := o.Len(), 1; i < n; i, j = i+1, j+1 {
		res.p[i] = res.p[i-1] + donor.p[j] - donor.p[j-1]
		res.invB[i] = res.invB[i-1] * donor.invB[j] / donor.invB[j-1]
		res.mu[i] = res.mu[i-1] * donor.mu[j] / donor.mu[j-1]
	}
	return res
}

// Knot holds one solution ratio of the saturated curve and its pressure sub-curve
type Knot struct {
	rs  float64 // solution gas-oil ratio
	sat Curve   // saturated behaviour
}

// Rs returns the solution gas-oil ratio of this knot
func (o Knot) Rs() float64 { return o.rs }

// Saturated returns the pressure sub-curve at saturated conditions
func (o Knot) Saturated() Curve { return o.sat }

// BubblePoint returns the pressure at which this knot becomes saturated
func (o Knot) BubblePoint() float64 { return o.sat.p[0] }

// region holds the tables of one PVT region
type region struct {
	knots []Knot    // saturated curve
	under []Curve   // undersaturated curves; one per knot, starting at the bubble point
	rs    []float64 // solution ratio of knots
	pbub  []float64 // bubble point pressure of knots; non-decreasing
}

// Table holds the live oil tables of all PVT regions
//  A Table is immutable once built and can be shared by any number of models and goroutines.
type Table struct {
	regions []region
}

// TableCount returns the number of regions
func (o *Table) TableCount() int { return len(o.regions) }

// SaturatedCurve returns the knots of the saturated curve of region reg
func (o *Table) SaturatedCurve(reg int) []Knot {
	return append([]Knot{}, o.regions[reg].knots...)
}

// UndersaturatedCurve returns the undersaturated curve of knot k of region reg
//  Note: the first points of the curve are the saturated points of the knot
func (o *Table) UndersaturatedCurve(reg, k int) Curve {
	return o.regions[reg].under[k]
}

// BubblePoints returns the bubble point pressures of the knots of region reg
func (o *Table) BubblePoints(reg int) []float64 {
	return append([]float64{}, o.regions[reg].pbub...)
}

// Builder builds Tables
type Builder struct {
	data []RegionData
}

// AddRegion adds the data of the next region
func (o *Builder) AddRegion(dat RegionData) {
	o.data = append(o.data, dat)
}

// Build checks all data and builds the table
func (o *Builder) Build() (tab *Table, err error) {
	if len(o.data) == 0 {
		return nil, malformed(-1, -1, "there are no regions")
	}
	tab = &Table{regions: make([]region, len(o.data))}
	for i, dat := range o.data {
		tab.regions[i], err = buildRegion(i, dat)
		if err != nil {
			return nil, err
		}
	}
	return
}

// NewTable builds a table with one region per item in data
func NewTable(data []RegionData) (*Table, error) {
	var b Builder
	for _, dat := range data {
		b.AddRegion(dat)
	}
	return b.Build()
}

// buildRegion builds the tables of region reg
func buildRegion(reg int, dat RegionData) (o region, err error) {

	// check columns
	n := len(dat.Rs)
	if n == 0 {
		return o, malformed(reg, -1, "region has no knots")
	}
	if len(dat.P) != n || len(dat.B) != n || len(dat.Mu) != n {
		return o, malformed(reg, -1, "mismatched column lengths: len(rs)=%d, len(p)=%d, len(B)=%d, len(mu)=%d", n, len(dat.P), len(dat.B), len(dat.Mu))
	}

	// knots
	start := 0
	for i := 1; i <= n; i++ {
		if i < n && tol.Equal(dat.Rs[i], dat.Rs[start]) {
			continue
		}
		k := len(o.knots)
		rs := dat.Rs[start]
		if !finite(rs) {
			return o, malformed(reg, k, "solution ratio %g is not finite", rs)
		}
		if k > 0 && !tol.Less(o.rs[k-1], rs) {
			return o, malformed(reg, k, "solution ratios must be strictly increasing: rs[%d]=%g, rs[%d]=%g", k-1, o.rs[k-1], k, rs)
		}
		sat, reason := newCurve(dat.P[start:i], dat.B[start:i], dat.Mu[start:i])
		if reason != "" {
			return o, malformed(reg, k, "saturated curve: %s", reason)
		}
		pbub := sat.p[0]
		if k > 0 {
			prev := o.pbub[k-1]
			if tol.Less(pbub, prev) {
				return o, malformed(reg, k, "bubble point pressures must not decrease: pbub[%d]=%g, pbub[%d]=%g", k-1, prev, k, pbub)
			}
			if tol.Equal(pbub, prev) {
				pbub = prev
			}
		}
		o.knots = append(o.knots, Knot{rs, sat})
		o.rs = append(o.rs, rs)
		o.pbub = append(o.pbub, pbub)
		start = i
	}

	// undersaturated curves
	nk := len(o.knots)
	if len(dat.Undersaturated) > nk {
		return o, malformed(reg, -1, "there are %d undersaturated records for %d knots", len(dat.Undersaturated), nk)
	}
	o.under = make([]Curve, nk)
	for k, knot := range o.knots {
		o.under[k] = knot.sat
		if k >= len(dat.Undersaturated) || len(dat.Undersaturated[k].P) == 0 {
			continue
		}
		u := dat.Undersaturated[k]
		extra, reason := newCurve(u.P, u.B, u.Mu)
		if reason != "" {
			return o, malformed(reg, k, "undersaturated curve: %s", reason)
		}
		last := knot.sat.p[knot.sat.Len()-1]
		if !tol.Less(last, extra.p[0]) {
			return o, malformed(reg, k, "undersaturated pressure %g must be greater than saturated pressure %g", extra.p[0], last)
		}
		o.under[k] = knot.sat.appended(extra)
	}

	// complete single-point undersaturated curves
	for k := 0; k < nk; k++ {
		if o.under[k].Len() > 1 {
			continue
		}
		if donor := o.donorOf(k); donor >= 0 {
			o.under[k] = o.under[k].extendedLike(o.under[donor])
		}
	}
	return
}

// donorOf returns the knot that lends its undersaturated shape to knot k
//  The next knot with at least two points is preferred; otherwise the previous one. Returns -1 if none.
func (o *region) donorOf(k int) int {
	for j := k + 1; j < len(o.under); j++ {
		if o.under[j].Len() > 1 {
			return j
		}
	}
	for j := k - 1; j >= 0; j-- {
		if o.under[j].Len() > 1 {
			return j
		}
	}
	return -1
}

// finite tells whether x is neither NaN nor ±Inf
func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
