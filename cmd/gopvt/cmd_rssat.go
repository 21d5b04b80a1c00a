// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/cpmech/gosl/io"
	"github.com/spf13/cobra"
)

// rsSatRow holds rsSat at one pressure
type rsSatRow struct {
	P        float64 `json:"p"`
	RsSat    float64 `json:"rsSat"`
	DrsSatdp float64 `json:"drsSatdp"`
}

func newRsSatCmd() *cobra.Command {
	var sw sweep
	cmd := &cobra.Command{
		Use:   "rssat FILE",
		Short: "Evaluate the saturated solution gas-oil ratio along a pressure sweep",
		Args:  cobra.ExactArgs(1),
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
			n := len(P)
			regions := make([]int, n)
			for i := range regions {
				regions[i] = sw.region
			}
			rs, drs := make([]float64, n), make([]float64, n)
			dat.Model.RsSat(regions, P, rs, drs)

			rows := make([]rsSatRow, n)
			for i := range P {
				rows[i] = rsSatRow{P[i], rs[i], drs[i]}
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
			}
			l := io.Sf("%12s%12s%14s\n", "p", "rsSat", "drsSat/dp")
			for _, row := range rows {
				l += io.Sf("%12.4f%12.4f%14.6e\n", row.P, row.RsSat, row.DrsSatdp)
			}
			fmt.Fprint(cmd.OutOrStdout(), l)
			return nil
		},
	}
	sw.addFlags(cmd)
	return cmd
}
