// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// gopvt inspects and evaluates PVT tables of oil
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cpmech/gopvt/inp"
	"github.com/cpmech/gopvt/internal/logging"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd returns the root command with all subcommands
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gopvt",
		Short: "Tabulated PVT properties of oil",
		Long: `gopvt reads live oil (PVTO) or dead oil (PVDO) tables from .yaml or .json files,
checks them and evaluates formation volume factors, viscosities, densities and
saturated solution gas-oil ratios along pressure sweeps.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: info, debug or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newCheckCmd(),
		newEvalCmd(),
		newRsSatCmd(),
	)
	return rootCmd
}

// loggerOf returns the logger configured by the global flags of cmd
func loggerOf(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	jsonOut, _ := cmd.Flags().GetBool("json")
	return logging.New(cmd.ErrOrStderr(), logging.Options{Level: level, JSON: jsonOut})
}

// readPvt reads the PVT file at path and logs a summary
func readPvt(logger *slog.Logger, path string) (*inp.PvtData, error) {
	logger.Debug("reading PVT file", "path", path)
	dat, err := inp.ReadPvt(filepath.Dir(path), filepath.Base(path), false)
	if err != nil {
		return nil, err
	}
	logger.Info("PVT model built", "file", filepath.Base(path), "model", dat.Name, "regions", regionCount(dat))
	return dat, nil
}

// regionCount returns the number of PVT regions in dat
func regionCount(dat *inp.PvtData) int {
	if dat.Name == "liveoil" {
		return len(dat.Deck.Pvto)
	}
	return len(dat.Deck.Pvdo)
}

// checkRegion checks whether reg is a valid region of dat
func checkRegion(dat *inp.PvtData, reg int) error {
	if n := regionCount(dat); reg < 0 || reg >= n {
		return fmt.Errorf("region %d is out of range; the file has %d regions", reg, n)
	}
	return nil
}
