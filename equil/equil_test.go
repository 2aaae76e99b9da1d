// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gocea/linsolve"
	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

func TestTolerancesFromPrmsOverridesNamedFields(t *testing.T) {
	prms := fun.Prms{
		&fun.Prm{N: "ConvTol", V: 1e-4},
		&fun.Prm{N: "IterationMax", V: 40},
	}
	tol := TolerancesFromPrms(prms)
	if tol.ConvTol != 1e-4 {
		t.Fatalf("ConvTol override not applied: got %v", tol.ConvTol)
	}
	if tol.IterationMax != 40 {
		t.Fatalf("IterationMax override not applied: got %v", tol.IterationMax)
	}
	// unmentioned fields keep their §4.4 defaults.
	if tol.ConcTol != DefaultTolerances().ConcTol {
		t.Fatalf("ConcTol should be untouched: got %v", tol.ConcTol)
	}
}

// singleSpeciesCase builds a trivial one-element, one-gas-species system
// (H2, constant Cp/R=3.5) with no dissociation reactions possible, so the
// equilibrium solver should converge immediately with all of the element's
// moles carried by the single gas species.
func singleSpeciesCase(t *testing.T, pressure float64) *product.Case {
	tdb := thermo.NewDB()
	species := &thermo.Species{
		Name:     "H2",
		Phase:    thermo.Gas,
		Formula:  [thermo.MaxFormulaTerms]thermo.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
		Weight:   2.016,
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}, B: [2]float64{0, 0}},
		},
	}
	tdb.Add(species)

	pdb := propellant.NewDB()
	reactant := &propellant.Reactant{
		Name:     "FUELH2",
		Formula:  [propellant.MaxFormulaTerms]propellant.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
		Heat:     -100,
	}
	pdb.Add(reactant)

	comp := product.Composition{{Reactant: reactant, Moles: 1}}
	c := product.NewCase(tdb, pdb, comp, pressure)
	c.T = 1000
	return c
}

func TestSolveTPSingleSpeciesConverges(t *testing.T) {
	c := singleSpeciesCase(t, 10)
	solver := &linsolve.LU{}
	tol := DefaultTolerances()

	result, err := Solve(c, TP, 0, tol, solver)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !c.Product.IsEquilibrium {
		t.Fatal("expected IsEquilibrium=true after convergence")
	}
	if result.Properties.T != 1000 {
		t.Fatalf("TP solve must not move T: got %v", result.Properties.T)
	}

	wantMoles := c.ElementBalance["H"] / 2 // one H2 molecule carries two H atoms
	if math.Abs(c.Product.NGas-wantMoles) > 1e-6 {
		t.Fatalf("NGas = %v, want %v", c.Product.NGas, wantMoles)
	}
}

func TestSolveTPIsPressureInvariantForSingleSpecies(t *testing.T) {
	// with only one possible species, n is fixed by mass balance alone and
	// must not depend on P.
	lo := singleSpeciesCase(t, 1)
	hi := singleSpeciesCase(t, 50)
	solver := &linsolve.LU{}
	tol := DefaultTolerances()

	rLo, err := Solve(lo, TP, 0, tol, solver)
	if err != nil {
		t.Fatalf("Solve(lo): %v", err)
	}
	rHi, err := Solve(hi, TP, 0, tol, solver)
	if err != nil {
		t.Fatalf("Solve(hi): %v", err)
	}
	if math.Abs(rLo.Case.Product.NGas-rHi.Case.Product.NGas) > 1e-6 {
		t.Fatalf("NGas should be pressure-invariant here: %v vs %v",
			rLo.Case.Product.NGas, rHi.Case.Product.NGas)
	}
}

func TestDampingBoundsStepToUnity(t *testing.T) {
	p := product.NewProduct()
	p.GasSpecies = nil
	p.NMolesGas = nil
	p.LnNGas = nil
	p.NGas = 0.1
	tol := DefaultTolerances()
	lambda := damping(p, nil, 0.01, 0.02, tol)
	if lambda != 1 {
		t.Fatalf("expected lambda=1 for small deltas and no species, got %v", lambda)
	}
}

func TestConvergedRejectsLargeLnTStep(t *testing.T) {
	p := product.NewProduct()
	p.NGas = 1
	p.NGasTotal = 1
	tol := DefaultTolerances()
	if converged(p, nil, nil, 0, 1e-2, tol, HP) {
		t.Fatal("a 1e-2 ΔlnT step must not be reported converged for HP")
	}
	if !converged(p, nil, nil, 0, 0, tol, TP) {
		t.Fatal("zero deltas with empty species list must converge")
	}
}
