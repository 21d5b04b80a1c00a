// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/cpmech/gopvt/inp"
	"github.com/cpmech/gopvt/mdl/pvt"
	"github.com/spf13/cobra"
)

// regionSummary describes the tables of one region
type regionSummary struct {
	Region int     `json:"region"`
	Knots  int     `json:"knots,omitempty"`  // live oil
	Points int     `json:"points,omitempty"` // dead oil
	Pmin   float64 `json:"pmin"`             // lowest bubble point (live oil) or pressure (dead oil)
	Pmax   float64 `json:"pmax"`             // highest bubble point (live oil) or pressure (dead oil)
	RsMax  float64 `json:"rsmax"`            // largest solution ratio; zero for dead oil
}

// summarise returns the summary of all regions of dat
func summarise(dat *inp.PvtData) (res []regionSummary) {
	switch m := dat.Model.(type) {
	case *pvt.LiveOil:
		tab := m.Table()
		for reg := 0; reg < tab.TableCount(); reg++ {
			knots := tab.SaturatedCurve(reg)
			pbub := tab.BubblePoints(reg)
			res = append(res, regionSummary{
				Region: reg,
				Knots:  len(knots),
				Pmin:   pbub[0],
				Pmax:   pbub[len(pbub)-1],
				RsMax:  knots[len(knots)-1].Rs(),
			})
		}
	case *pvt.DeadOil:
		for reg := range dat.Deck.Pvdo {
			c := m.Curve(reg)
			res = append(res, regionSummary{
				Region: reg,
				Points: c.Len(),
				Pmin:   c.Pressure(0),
				Pmax:   c.Pressure(c.Len() - 1),
			})
		}
	}
	return
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Read and check PVT tables",
		Long: `Reads a PVT file, builds its tables and reports the regions.
Malformed tables are reported with their region and knot.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerOf(cmd)
			dat, err := readPvt(logger, args[0])
			if err != nil {
				return err
			}
			summary := summarise(dat)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"file":    args[0],
					"desc":    dat.Desc,
					"model":   dat.Name,
					"phases":  dat.Phases,
					"regions": summary,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: OK\n", args[0])
			fmt.Fprint(out, dat.String())
			return nil
		},
	}
}
