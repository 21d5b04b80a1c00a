// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

const (
	spe1File      = "../../inp/data/spe1.yaml"
	deadoilFile   = "../../inp/data/deadoil.json"
	malformedFile = "../../inp/data/malformed.yaml"
)

// run executes the root command with args and returns stdout and stderr
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errb bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errb.String(), err
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "gopvt version "+version) {
		t.Errorf("stdout = %q, want version", stdout)
	}

	stdout, _, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	var res map[string]string
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("failed to parse %q: %v", stdout, err)
	}
	if res["version"] != version {
		t.Errorf("version = %q, want %q", res["version"], version)
	}
}

func TestCheckCmd(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		model   string
		regions []regionSummary
	}{
		{"live oil", spe1File, "liveoil", []regionSummary{{Region: 0, Knots: 8, Pmin: 1, Pmax: 345, RsMax: 197}}},
		{"dead oil", deadoilFile, "deadoil", []regionSummary{
			{Region: 0, Points: 4, Pmin: 10, Pmax: 400},
			{Region: 1, Points: 2, Pmin: 50, Pmax: 300},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, "check", tt.file)
			if err != nil {
				t.Fatalf("check failed: %v", err)
			}
			if !strings.Contains(stdout, "OK") || !strings.Contains(stdout, tt.model) {
				t.Errorf("stdout = %q, want OK and %q", stdout, tt.model)
			}

			stdout, _, err = run(t, "check", tt.file, "--json")
			if err != nil {
				t.Fatalf("check --json failed: %v", err)
			}
			var res struct {
				Model   string          `json:"model"`
				Regions []regionSummary `json:"regions"`
			}
			if err := json.Unmarshal([]byte(stdout), &res); err != nil {
				t.Fatalf("failed to parse %q: %v", stdout, err)
			}
			if res.Model != tt.model {
				t.Errorf("model = %q, want %q", res.Model, tt.model)
			}
			if len(res.Regions) != len(tt.regions) {
				t.Fatalf("regions = %v, want %v", res.Regions, tt.regions)
			}
			for i := range res.Regions {
				if res.Regions[i] != tt.regions[i] {
					t.Errorf("region %d = %+v, want %+v", i, res.Regions[i], tt.regions[i])
				}
			}
		})
	}
}

func TestEvalCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		P    []float64
		R    []float64
		B    []float64
		Mu   []float64
	}{
		{
			"undersaturated live oil",
			[]string{"eval", spe1File, "--temp", "80", "--rs", "53", "--pmin", "69", "--pmax", "207", "--np", "3"},
			[]float64{69, 138, 207},
			[]float64{53, 53, 53},
			[]float64{1.295, 1.280, 1.270},
			[]float64{0.830 / 0.695, 0.860 / 0.695, 0.890 / 0.695},
		},
		{
			"saturated live oil",
			[]string{"eval", spe1File, "--temp", "80", "--saturated", "--pmin", "1", "--pmax", "345", "--np", "2"},
			[]float64{1, 345},
			[]float64{0, 197},
			[]float64{1.062, 1.827},
			[]float64{1.040 / 0.695, 0.449 / 0.695},
		},
		{
			"dead oil",
			[]string{"eval", deadoilFile, "--region", "1", "--pmin", "50", "--pmax", "300", "--np", "2"},
			[]float64{50, 300},
			[]float64{0, 0},
			[]float64{1.05, 1.02},
			[]float64{3.0, 3.3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, append(tt.args, "--json")...)
			if err != nil {
				t.Fatalf("eval failed: %v", err)
			}
			var rows []evalRow
			if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
				t.Fatalf("failed to parse %q: %v", stdout, err)
			}
			if len(rows) != len(tt.P) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.P))
			}
			for i, row := range rows {
				for _, c := range []struct {
					name      string
					got, want float64
				}{
					{"p", row.P, tt.P[i]},
					{"r", row.R, tt.R[i]},
					{"B", row.B, tt.B[i]},
					{"b", row.InvB, 1 / tt.B[i]},
					{"mu", row.Mu, tt.Mu[i]},
				} {
					if math.Abs(c.got-c.want) > 1e-9 {
						t.Errorf("row %d: %s = %v, want %v", i, c.name, c.got, c.want)
					}
				}
			}

			// text output
			stdout, _, err = run(t, tt.args...)
			if err != nil {
				t.Fatalf("eval failed: %v", err)
			}
			if lines := strings.Split(strings.TrimSpace(stdout), "\n"); len(lines) != len(tt.P)+1 {
				t.Errorf("got %d lines, want %d: %q", len(lines), len(tt.P)+1, stdout)
			}
		})
	}
}

func TestEvalCmd_Density(t *testing.T) {
	stdout, _, err := run(t, "eval", spe1File, "--temp", "80", "--rs", "53", "--pmin", "69", "--pmax", "138", "--np", "2", "--json")
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	var rows []evalRow
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("failed to parse %q: %v", stdout, err)
	}
	want := (786.5 + 53*0.9698) / 1.295
	if math.Abs(rows[0].Rho-want) > 1e-9 {
		t.Errorf("rho = %v, want %v", rows[0].Rho, want)
	}
}

func TestRsSatCmd(t *testing.T) {
	stdout, _, err := run(t, "rssat", spe1File, "--pmin", "1", "--pmax", "400", "--np", "5", "--json")
	if err != nil {
		t.Fatalf("rssat failed: %v", err)
	}
	var rows []rsSatRow
	if err := json.Unmarshal([]byte(stdout), &rows); err != nil {
		t.Fatalf("failed to parse %q: %v", stdout, err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5", len(rows))
	}
	if rows[0].RsSat != 0 || rows[4].RsSat != 197 {
		t.Errorf("rsSat(1) = %v, rsSat(400) = %v; want 0 and 197", rows[0].RsSat, rows[4].RsSat)
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].RsSat < rows[i-1].RsSat {
			t.Errorf("rsSat must not decrease: %v", rows)
		}
	}
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		notWant string
	}{
		{"info", []string{"check", spe1File}, "PVT model built", "reading PVT file"},
		{"debug", []string{"check", spe1File, "--log-level", "debug"}, "reading PVT file", "TRACE"},
		{"trace", []string{"eval", spe1File, "--temp", "80", "--np", "2", "--log-level", "trace"}, "level=TRACE", ""},
		{"above rsSat", []string{"eval", spe1File, "--temp", "80", "--rs", "100", "--pmin", "1", "--pmax", "50", "--np", "2"}, "above rsSat", ""},
		{"json", []string{"check", spe1File, "--json"}, `"msg":"PVT model built"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want %q", stderr, tt.want)
			}
			if tt.notWant != "" && strings.Contains(stderr, tt.notWant) {
				t.Errorf("stderr = %q, should not contain %q", stderr, tt.notWant)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing file", []string{"check", "nonexistent.yaml"}, ""},
		{"malformed table", []string{"check", malformedFile}, "region 0, knot 1"},
		{"region out of range", []string{"eval", deadoilFile, "--region", "2"}, "region 2"},
		{"negative region", []string{"rssat", deadoilFile, "--region", "-1"}, "region -1"},
		{"too few pressures", []string{"rssat", spe1File, "--np", "1"}, "np=1"},
		{"inverted sweep", []string{"eval", deadoilFile, "--pmin", "300", "--pmax", "100"}, "pmax"},
		{"missing temperature", []string{"eval", spe1File}, "--temp"},
		{"missing argument", []string{"eval"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
