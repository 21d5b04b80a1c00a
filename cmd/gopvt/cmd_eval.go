// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cpmech/gopvt/internal/logging"
	"github.com/cpmech/gopvt/mdl/pvt"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	"github.com/spf13/cobra"
)

// sweep holds the flags defining a pressure sweep
type sweep struct {
	region int
	pmin   float64
	pmax   float64
	np     int
}

// addFlags adds the sweep flags to cmd
func (o *sweep) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.region, "region", 0, "PVT region")
	cmd.Flags().Float64Var(&o.pmin, "pmin", 1, "Minimum pressure")
	cmd.Flags().Float64Var(&o.pmax, "pmax", 400, "Maximum pressure")
	cmd.Flags().IntVar(&o.np, "np", 11, "Number of pressures")
}

// pressures returns the pressures of the sweep
func (o *sweep) pressures() ([]float64, error) {
	if o.np < 2 {
		return nil, fmt.Errorf("number of pressures np=%d must be at least 2", o.np)
	}
	if o.pmax <= o.pmin {
		return nil, fmt.Errorf("pmax=%g must be greater than pmin=%g", o.pmax, o.pmin)
	}
	return utl.LinSpace(o.pmin, o.pmax, o.np), nil
}

// evalRow holds the properties at one pressure
type evalRow struct {
	P     float64 `json:"p"`
	R     float64 `json:"r"`
	B     float64 `json:"B"`
	InvB  float64 `json:"b"`
	Mu    float64 `json:"mu"`
	DBdp  float64 `json:"dBdp"`
	Dmudp float64 `json:"dmudp"`
	Rho   float64 `json:"rho"`
}

// evaluate evaluates all properties at pressures P and solution ratio rs
//  saturated -- evaluate at saturated conditions; then r = rsSat(p)
//  T         -- temperatures; may be nil without viscosity correction
func evaluate(ctx context.Context, logger *slog.Logger, mdl pvt.Model, rho pvt.Density, reg int, P, T []float64, rs float64, saturated bool) []evalRow {

	// cells
	n := len(P)
	regions := make([]int, n)
	R := make([]float64, n)
	cond := make([]pvt.PhasePresence, n)
	for i := range P {
		regions[i] = reg
		R[i] = rs
		if saturated {
			cond[i].SetFreeGas()
		}
	}

	// evaluate batch
	rsSat, drsSat := make([]float64, n), make([]float64, n)
	mu, dmudp, dmudr := make([]float64, n), make([]float64, n), make([]float64, n)
	b, dbdp, dbdr := make([]float64, n), make([]float64, n), make([]float64, n)
	pvt.Parallel(n, func(lo, hi int) {
		rr := pvt.SliceRegions(regions, lo, hi)
		var tt []float64
		if T != nil {
			tt = T[lo:hi]
		}
		mdl.RsSat(rr, P[lo:hi], rsSat[lo:hi], drsSat[lo:hi])
		mdl.MuCond(rr, P[lo:hi], tt, R[lo:hi], cond[lo:hi], mu[lo:hi], dmudp[lo:hi], dmudr[lo:hi])
		mdl.InvBCond(rr, P[lo:hi], tt, R[lo:hi], cond[lo:hi], b[lo:hi], dbdp[lo:hi], dbdr[lo:hi])
	})

	// results
	rows := make([]evalRow, n)
	over := 0
	for i, p := range P {
		r := R[i]
		if saturated {
			r = rsSat[i]
		} else if r > rsSat[i] {
			over++
		}
		ρ, _, _ := rho.OilReservoir(b[i], dbdp[i], dbdr[i], r)
		rows[i] = evalRow{
			P:     p,
			R:     r,
			B:     1.0 / b[i],
			InvB:  b[i],
			Mu:    mu[i],
			DBdp:  -dbdp[i] / (b[i] * b[i]),
			Dmudp: dmudp[i],
			Rho:   ρ,
		}
		logger.Log(ctx, logging.LevelTrace, "cell evaluated", logging.Cell(i, reg, p, r), "b", b[i], "mu", mu[i])
	}
	if over > 0 {
		logger.Warn("solution ratio is above rsSat; values follow the undersaturated curves", "rs", rs, "cells", over)
	}
	return rows
}

func newEvalCmd() *cobra.Command {
	var sw sweep
	var rs, temp float64
	var saturated bool
	cmd := &cobra.Command{
		Use:   "eval FILE",
		Short: "Evaluate oil properties along a pressure sweep",
		Long: `Evaluates B, b = 1/B, viscosity, their pressure derivatives and the in-situ
density of oil at equally spaced pressures in one region.
The oil is undersaturated with solution ratio --rs unless --saturated is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerOf(cmd)
			dat, err := readPvt(logger, args[0])
			if err != nil {
				return err
			}
			if err = checkRegion(dat, sw.region); err != nil {
				return err
			}
			P, err := sw.pressures()
			if err != nil {
				return err
			}
			var T []float64
			if cmd.Flags().Changed("temp") {
				T = make([]float64, len(P))
				for i := range T {
					T[i] = temp
				}
			} else if len(dat.Deck.Oilvisct) > 0 {
				return fmt.Errorf("--temp is required because %s has oilvisct tables", args[0])
			}
			logger.Debug("evaluating", "region", sw.region, "np", len(P), "rs", rs, "saturated", saturated)
			rows := evaluate(cmd.Context(), logger, dat.Model, dat.Rho, sw.region, P, T, rs, saturated)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}
			l := io.Sf("%12s%12s%12s%12s%12s%14s%14s%12s\n", "p", "r", "B", "b", "mu", "dB/dp", "dmu/dp", "rho")
			for _, row := range rows {
				l += io.Sf("%12.4f%12.4f%12.6f%12.6f%12.6f%14.6e%14.6e%12.4f\n", row.P, row.R, row.B, row.InvB, row.Mu, row.DBdp, row.Dmudp, row.Rho)
			}
			fmt.Fprint(cmd.OutOrStdout(), l)
			return nil
		},
	}
	sw.addFlags(cmd)
	cmd.Flags().Float64Var(&rs, "rs", 0, "Dissolved gas-oil ratio of undersaturated oil")
	cmd.Flags().Float64Var(&temp, "temp", 0, "Temperature; required if the file has oilvisct tables")
	cmd.Flags().BoolVar(&saturated, "saturated", false, "Evaluate at saturated conditions")
	return cmd
}
