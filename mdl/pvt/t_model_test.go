// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pvt

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_model01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("model01. phase usage and presence")

	pu, err := NewPhaseUsage("Oil", "vapour", "water")
	if err != nil {
		tst.Errorf("NewPhaseUsage failed: %v\n", err)
		return
	}
	chk.Int(tst, "number of phases", pu.NumPhases, 3)
	chk.Int(tst, "oil position", pu.Pos[Liquid], 0)
	chk.Int(tst, "gas position", pu.Pos[Vapour], 1)
	chk.Int(tst, "water position", pu.Pos[Aqua], 2)

	if _, err = NewPhaseUsage("oil", "solvent"); err == nil {
		tst.Errorf("NewPhaseUsage should have failed with unknown phase\n")
	}
	if _, err = NewPhaseUsage("oil", "liquid"); err == nil {
		tst.Errorf("NewPhaseUsage should have failed with repeated phase\n")
	}

	var cond PhasePresence
	if cond.HasFreeGas() || cond.HasFreeOil() || cond.HasFreeWater() {
		tst.Errorf("zero PhasePresence must have no free phases\n")
	}
	cond.SetFreeGas()
	cond.SetFreeOil()
	if !cond.HasFreeGas() || !cond.HasFreeOil() || cond.HasFreeWater() {
		tst.Errorf("PhasePresence flags are incorrect: %b\n", cond)
	}
	cond.SetFreeWater()
	if cond != FreeWater|FreeOil|FreeGas {
		tst.Errorf("PhasePresence flags are incorrect: %b\n", cond)
	}
}
