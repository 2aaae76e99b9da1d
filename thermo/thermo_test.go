// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// field left-pads/truncates s to exactly width columns, matching the fixed
// width layout described in §6.
func field(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// buildRecord assembles a synthetic single-interval GAS record column-by-
// column, so the test does not depend on hand-counting an 80-column string.
func buildRecord(name string, lo, hi, weight, heat float64, a [7]float64, b [2]float64) string {
	header := field(name, 18) + field("synthetic test record", 55) +
		field("1", 2) + field("T1", 6) + "0" + field("", 0) +
		field(fmt.Sprintf("%.4f", weight), 13) + field(fmt.Sprintf("%.3f", heat), 13)

	line1 := " " + field(fmt.Sprintf("%.3f", lo), 10) + field(fmt.Sprintf("%.3f", hi), 10) +
		"7" + strings.Repeat(" ", 42) + field(fmt.Sprintf("%.3e", 0.0), 15)
	line2 := field(fmt.Sprintf("%.8e", a[0]), 16) + field(fmt.Sprintf("%.8e", a[1]), 16) +
		field(fmt.Sprintf("%.8e", a[2]), 16) + field(fmt.Sprintf("%.8e", a[3]), 16) +
		field(fmt.Sprintf("%.8e", a[4]), 16)
	line3 := field(fmt.Sprintf("%.8e", a[5]), 16) + field(fmt.Sprintf("%.8e", a[6]), 16) +
		strings.Repeat(" ", 16) + field(fmt.Sprintf("%.8e", b[0]), 16) + field(fmt.Sprintf("%.8e", b[1]), 16)

	return header + "\n" + line1 + "\n" + line2 + "\n" + line3 + "\n"
}

func TestLoadSingleRecord(tst *testing.T) {
	chk.PrintTitle("TestLoadSingleRecord")
	a := [7]float64{-2.21037e4, 1.5e2, 3.0, 1e-3, -1e-6, 2e-9, -1e-13}
	b := [2]float64{710.8, -10.76}
	record := buildRecord("N2", 200, 6000, 28.0134, 0, a, b)

	db := NewDB()
	if err := db.Load(strings.NewReader(record)); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	sp, ok := db.ByName("N2")
	if !ok {
		tst.Fatal("N2 not found")
	}
	chk.IntAssert(len(sp.Intervals), 1)
	if sp.Phase != Gas {
		tst.Errorf("expected GAS, got %v", sp.Phase)
	}
	chk.AnaNum(tst, "weight", 1e-6, sp.Weight, 28.0134, chk.Verbose)
}

func TestEnthalpyClampsAtBounds(tst *testing.T) {
	chk.PrintTitle("TestEnthalpyClampsAtBounds")
	a := [7]float64{-2.21037e4, 1.5e2, 3.0, 1e-3, -1e-6, 2e-9, -1e-13}
	b := [2]float64{710.8, -10.76}
	record := buildRecord("N2", 200, 6000, 28.0134, 0, a, b)

	db := NewDB()
	if err := db.Load(strings.NewReader(record)); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	sp, _ := db.ByName("N2")

	// T=100 lies below the only interval: that interval is selected and its
	// polynomial is evaluated at T=100 itself (the interval is clamped, not T).
	below := db.Enthalpy0(sp, 100)
	T := 100.0
	want := -a[0]/(T*T) + a[1]*math.Log(T)/T + a[2] + a[3]*T/2 + a[4]*T*T/3 +
		a[5]*T*T*T/4 + a[6]*T*T*T*T/5 + b[0]/T
	chk.AnaNum(tst, "clamped enthalpy", 1e-12, below, want, chk.Verbose)

	if !db.TemperatureCheck(sp, 500) {
		tst.Errorf("expected T=500 to be inside N2's interval")
	}
	if db.TemperatureCheck(sp, 50000) {
		tst.Errorf("expected T=50000 to be outside N2's interval")
	}
}

func TestGibbsIsEnthalpyMinusEntropy(tst *testing.T) {
	chk.PrintTitle("TestGibbsIsEnthalpyMinusEntropy")
	a := [7]float64{-2.21037e4, 1.5e2, 3.0, 1e-3, -1e-6, 2e-9, -1e-13}
	b := [2]float64{710.8, -10.76}
	record := buildRecord("N2", 200, 6000, 28.0134, 0, a, b)

	db := NewDB()
	if err := db.Load(strings.NewReader(record)); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	sp, _ := db.ByName("N2")
	T := 500.0
	g := db.Gibbs0(sp, T)
	want := db.Enthalpy0(sp, T) - db.Entropy0(sp, T)
	chk.AnaNum(tst, "G0", 1e-12, g, want, chk.Verbose)
}

func TestSearchPositiveMatch(tst *testing.T) {
	chk.PrintTitle("TestSearchPositiveMatch")
	a := [7]float64{-2.21037e4, 1.5e2, 3.0, 1e-3, -1e-6, 2e-9, -1e-13}
	b := [2]float64{710.8, -10.76}
	record := buildRecord("N2", 200, 6000, 28.0134, 0, a, b)

	db := NewDB()
	if err := db.Load(strings.NewReader(record)); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	found := db.Search("N2")
	if len(found) != 1 {
		tst.Errorf("expected 1 match for %q, got %d", "N2", len(found))
	}
	notFound := db.Search("XYZ")
	if len(notFound) != 0 {
		tst.Errorf("expected 0 matches for %q, got %d", "XYZ", len(notFound))
	}
}
