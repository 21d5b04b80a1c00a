// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"sort"

	"github.com/cpmech/gopvt/tol"
)

// bracket locates x within the strictly increasing breakpoints xs
//  Output:
//   j  -- index of segment [xs[j], xs[j+1]]; zero if len(xs) == 1
//   w  -- weight of xs[j+1] such that x = (1-w)・xs[j] + w・xs[j+1]; clamped to [0,1]
//   in -- x is within [xs[0], xs[n-1]], end points included; false if x was clamped
//  Note: x equal to a breakpoint (tolerant comparison) selects the segment on its right,
//        except at the last breakpoint where the last segment is selected
func bracket(xs []float64, x float64) (j int, w float64, in bool) {
	n := len(xs)
	if n == 1 {
		return 0, 0, tol.Equal(x, xs[0])
	}
	if x <= xs[0] {
		return 0, 0, tol.Equal(x, xs[0])
	}
	if x >= xs[n-1] {
		return n - 2, 1, tol.Equal(x, xs[n-1])
	}
	j = sort.Search(n, func(i int) bool { return xs[i] > x }) - 1
	if j+1 < n-1 && tol.Equal(x, xs[j+1]) {
		return j + 1, 0, true
	}
	if tol.Equal(x, xs[n-1]) {
		return n - 2, 1, true
	}
	w = (x - xs[j]) / (xs[j+1] - xs[j])
	return j, w, true
}

// eval returns the value of item at pressure p and its derivative w.r.t p
//  The derivative is the slope of the bracketing segment; it is zero outside the pressure range.
func (o Curve) eval(item int, p float64) (val, dvdp float64) {
	ys := o.column(item)
	if len(ys) == 1 {
		return ys[0], 0
	}
	j, w, in := bracket(o.p, p)
	val = ys[j] + w*(ys[j+1]-ys[j])
	if in {
		dvdp = (ys[j+1] - ys[j]) / (o.p[j+1] - o.p[j])
	}
	return
}

// rsSat returns the solution ratio at saturated conditions and its derivative w.r.t p
//  The knots' r_s are interpolated over their bubble point pressures. Equal bubble points
//  give a step: the largest r_s of the step is returned when p reaches it.
func (o *region) rsSat(p float64) (rs, drsdp float64) {
	n := len(o.pbub)
	if n == 1 {
		return o.rs[0], 0
	}
	j := sort.Search(n, func(i int) bool { return o.pbub[i] > p }) - 1
	if j+1 < n && tol.Equal(p, o.pbub[j+1]) {
		pb := o.pbub[j+1]
		j = sort.Search(n, func(i int) bool { return o.pbub[i] > pb }) - 1
		p = pb
	}
	if j < 0 {
		return o.rs[0], 0
	}
	if j == n-1 {
		if tol.Equal(p, o.pbub[n-1]) && o.pbub[n-2] < o.pbub[n-1] {
			drsdp = (o.rs[n-1] - o.rs[n-2]) / (o.pbub[n-1] - o.pbub[n-2])
		}
		return o.rs[n-1], drsdp
	}
	drsdp = (o.rs[j+1] - o.rs[j]) / (o.pbub[j+1] - o.pbub[j])
	rs = o.rs[j] + (p-o.pbub[j])*drsdp
	return
}

// saturated returns item at saturated conditions for pressure p
//  rs and drsdp are rsSat(p) and its derivative. The undersaturated interpolation is evaluated
//  at r = rsSat(p); thus both branches coincide on the saturation boundary, including pressures
//  above the highest bubble point where the last knot's undersaturated curve is followed.
//  dvdp is the total derivative along the saturated curve: ∂v/∂p + ∂v/∂r・drsSat/dp.
//  The derivative w.r.t r is zero because r is clamped to rsSat(p).
func (o *region) saturated(item int, p, rs, drsdp float64) (val, dvdp float64) {
	val, dvdp, dvdr := o.undersaturated(item, p, rs)
	dvdp += dvdr * drsdp
	return
}

// undersaturated returns item at undersaturated conditions for pressure p and solution ratio r
//  The knots k and k+1 bracketing r are evaluated at the same distance above their own bubble
//  points as p is above the bubble point of r, pb(r), which is interpolated linearly between the
//  knots. Both values are then interpolated linearly in r.
//  Derivatives:
//   dvdp = (1-w)・s[k] + w・s[k+1] where s are the slopes of the bracketing pressure segments
//   dvdr = (v[k+1]-v[k])/Δrs - dvdp・Δpb/Δrs; zero if r was clamped
func (o *region) undersaturated(item int, p, r float64) (val, dvdp, dvdr float64) {
	if len(o.knots) == 1 {
		val, dvdp = o.under[0].eval(item, p)
		return
	}
	k, w, in := bracket(o.rs, r)
	Δrs := o.rs[k+1] - o.rs[k]
	Δpb := o.pbub[k+1] - o.pbub[k]
	Δp := p - (o.pbub[k] + w*Δpb)
	v0, d0 := o.under[k].eval(item, o.pbub[k]+Δp)
	v1, d1 := o.under[k+1].eval(item, o.pbub[k+1]+Δp)
	val = v0 + w*(v1-v0)
	dvdp = d0 + w*(d1-d0)
	if in {
		dvdr = (v1-v0)/Δrs - dvdp*Δpb/Δrs
	}
	return
}

// eval returns item at (p, r); the state is saturated if r ≥ rsSat(p)
func (o *region) eval(item int, p, r float64) (val, dvdp, dvdr float64) {
	rs, drsdp := o.rsSat(p)
	if isSaturated(r, rs) {
		val, dvdp = o.saturated(item, p, rs, drsdp)
		return
	}
	return o.undersaturated(item, p, r)
}

// evalCond returns item at (p, r) with the state given by the presence of free gas
func (o *region) evalCond(item int, p, r float64, cond PhasePresence) (val, dvdp, dvdr float64) {
	if cond.HasFreeGas() {
		rs, drsdp := o.rsSat(p)
		val, dvdp = o.saturated(item, p, rs, drsdp)
		return
	}
	return o.undersaturated(item, p, r)
}

// isSaturated tells whether the solution ratio r corresponds to saturated oil
func isSaturated(r, rsSat float64) bool {
	return r >= rsSat || tol.Equal(r, rsSat)
}
