// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"math"
	"testing"

	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

func TestPcOverPtGuessMatchesClassicalCriticalRatio(t *testing.T) {
	// for γ=1.2, (γ+1)/2 = 1.1, exponent γ/(γ-1) = 6: 1.1^6 ≈ 1.7716.
	got := pcOverPtGuess(1.2)
	want := math.Pow(1.1, 6)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("pcOverPtGuess(1.2) = %v, want %v", got, want)
	}
}

func TestAreaRatioOutOfRangeOnSubUnityTarget(t *testing.T) {
	tdb := thermo.NewDB()
	sp := &thermo.Species{
		Name: "H2", Phase: thermo.Gas, NumTerms: 1, Weight: 2.016,
		Formula:   [thermo.MaxFormulaTerms]thermo.ElementCoef{{Element: "H", Coef: 2}},
		Intervals: []thermo.Interval{{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}}},
	}
	tdb.Add(sp)
	pdb := propellant.NewDB()
	r := &propellant.Reactant{
		Name: "FUELH2", NumTerms: 1, Heat: -100,
		Formula: [propellant.MaxFormulaTerms]propellant.ElementCoef{{Element: "H", Coef: 2}},
	}
	pdb.Add(r)
	comp := product.Composition{{Reactant: r, Moles: 1}}
	c := product.NewCase(tdb, pdb, comp, 10)

	_, err := Frozen(c, ExitCondition{Kind: SupersonicAreaRatio, Value: 0.5})
	if err == nil {
		t.Fatal("expected AreaRatioOutOfRange for AR<1")
	}
	if _, ok := err.(*AreaRatioOutOfRange); !ok {
		t.Fatalf("expected *AreaRatioOutOfRange, got %T: %v", err, err)
	}
}

func TestInitialLogPcPeSubsonicNeverNegative(t *testing.T) {
	v := initialLogPcPe(1.2, 0.5, 1.5, true)
	if v < 0 {
		t.Fatalf("subsonic ln(pc/pe) guess must stay >= 0, got %v", v)
	}
}

func TestNoEquilibriumWrapsChamberFailure(t *testing.T) {
	tdb := thermo.NewDB() // empty: no species at all means ListProducts finds nothing usable
	pdb := propellant.NewDB()
	r := &propellant.Reactant{
		Name: "FUELH2", NumTerms: 1, Heat: -100,
		Formula: [propellant.MaxFormulaTerms]propellant.ElementCoef{{Element: "H", Coef: 2}},
	}
	pdb.Add(r)
	comp := product.Composition{{Reactant: r, Moles: 1}}
	c := product.NewCase(tdb, pdb, comp, 10)

	_, err := Frozen(c, ExitCondition{Kind: Pressure, Value: 1})
	if err == nil {
		t.Fatal("expected NoEquilibrium when no product species are available")
	}
	if _, ok := err.(*NoEquilibrium); !ok {
		t.Fatalf("expected *NoEquilibrium, got %T: %v", err, err)
	}
}
