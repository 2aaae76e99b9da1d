// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gocea

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

// hydrogenCase builds a trivial one-element, one-gas-species system
// programmatically, mirroring equil's own singleSpeciesCase, so the root
// package's orchestration can be tested without a thermo.lib file.
func hydrogenCase(t *testing.T) (*Case, *ThermoDB, *PropellantDB) {
	t.Helper()
	tdb := thermo.NewDB()
	tdb.Add(&thermo.Species{
		Name:     "H2",
		Phase:    thermo.Gas,
		Formula:  [thermo.MaxFormulaTerms]thermo.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
		Weight:   2.016,
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}},
		},
	})

	pdb := propellant.NewDB()
	r := &propellant.Reactant{
		Name:     "FUELH2",
		Formula:  [propellant.MaxFormulaTerms]propellant.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
		Heat:     -100,
	}
	pdb.Add(r)

	comp := product.Composition{{Reactant: r, Moles: 1}}
	c := NewCase(tdb, pdb, comp, 10)
	c.T = 1000
	return c, tdb, pdb
}

func TestComputeEquilibriumTP(t *testing.T) {
	c, _, _ := hydrogenCase(t)
	result, err := ComputeEquilibrium(c, TP, 0)
	if err != nil {
		t.Fatalf("ComputeEquilibrium: %v", err)
	}
	if result.Properties.T != 1000 {
		t.Fatalf("TP must not move T: got %v", result.Properties.T)
	}
	if !c.Product.IsEquilibrium {
		t.Fatal("expected IsEquilibrium=true")
	}
}

// dissociatingHydrogenCase builds a two-species (H2, H) system over the
// single element H, whose degree of dissociation varies with T and P — unlike
// hydrogenCase, which has only one possible gas species and so leaves no
// freedom for the equilibrium solver to actually shift composition.
func dissociatingHydrogenCase(t *testing.T, T, P float64) *Case {
	t.Helper()
	tdb := thermo.NewDB()
	tdb.Add(&thermo.Species{
		Name:     "H2",
		Phase:    thermo.Gas,
		Formula:  [thermo.MaxFormulaTerms]thermo.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
		Weight:   2.016,
		Intervals: []thermo.Interval{
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 3.5, 0, 0, 0, 0}},
		},
	})
	tdb.Add(&thermo.Species{
		Name:     "H",
		Phase:    thermo.Gas,
		Formula:  [thermo.MaxFormulaTerms]thermo.ElementCoef{{Element: "H", Coef: 1}},
		NumTerms: 1,
		Weight:   1.008,
		Intervals: []thermo.Interval{
			// large positive B[0] models the atomization energy, so
			// dissociation is endothermic and favoured by higher T.
			{Lo: 200, Hi: 6000, A: [7]float64{0, 0, 2.5, 0, 0, 0, 0}, B: [2]float64{26000, 3}},
		},
	})

	pdb := propellant.NewDB()
	r := &propellant.Reactant{
		Name:     "FUELH2",
		Formula:  [propellant.MaxFormulaTerms]propellant.ElementCoef{{Element: "H", Coef: 2}},
		NumTerms: 1,
	}
	pdb.Add(r)

	comp := product.Composition{{Reactant: r, Moles: 1}}
	c := NewCase(tdb, pdb, comp, P)
	c.T = T
	return c
}

// TestSPRecoversTPTemperatureAndEntropy equilibrates a dissociating
// two-species system at a fixed T,P (TP), then re-solves the same
// composition as an SP problem holding the resulting entropy fixed at the
// same pressure but starting from a displaced temperature guess. The SP
// energy row (entropyTarget in equil/assemble.go, and its ×1000 scale bug in
// equil/solve.go's assemble) must get the entropy target's units and
// Jacobian diagonal right for this round trip to land back on T0; before
// those were fixed, the SP solve chased a target 1000x too large and either
// converged to the wrong temperature or failed outright.
func TestSPRecoversTPTemperatureAndEntropy(t *testing.T) {
	const T0, P0 = 3000.0, 1.0

	tpCase := dissociatingHydrogenCase(t, T0, P0)
	tpResult, err := ComputeEquilibrium(tpCase, TP, 0)
	if err != nil {
		t.Fatalf("TP ComputeEquilibrium: %v", err)
	}
	if tpResult.Properties.T != T0 {
		t.Fatalf("TP solve must not move T: got %v", tpResult.Properties.T)
	}
	targetS := tpResult.Properties.S

	spCase := dissociatingHydrogenCase(t, T0*1.2, P0) // displaced initial guess
	spResult, err := ComputeEquilibrium(spCase, SP, targetS)
	if err != nil {
		t.Fatalf("SP ComputeEquilibrium: %v", err)
	}

	if math.Abs(spResult.Properties.T-T0)/T0 > 1e-3 {
		t.Fatalf("SP solve should recover the TP solution's temperature: got %v, want %v",
			spResult.Properties.T, T0)
	}
	if math.Abs(spResult.Properties.S-targetS)/math.Abs(targetS) > 1e-3 {
		t.Fatalf("SP solve should converge to the fixed entropy target: got %v, want %v",
			spResult.Properties.S, targetS)
	}
}

func TestComputeFrozenAndShiftingIspAgreeForSingleSpecies(t *testing.T) {
	c, _, _ := hydrogenCase(t)
	frozenResult, err := ComputeFrozen(c, ExitCondition{Kind: Pressure, Value: 1})
	if err != nil {
		t.Fatalf("ComputeFrozen: %v", err)
	}
	if frozenResult.Isp <= 0 {
		t.Fatalf("expected positive Isp, got %v", frozenResult.Isp)
	}

	c2, _, _ := hydrogenCase(t)
	shiftResult, err := ComputeShifting(c2, ExitCondition{Kind: Pressure, Value: 1})
	if err != nil {
		t.Fatalf("ComputeShifting: %v", err)
	}
	// with a single possible gas species there is nothing to re-equilibrate,
	// so frozen and shifting must agree closely.
	if math.Abs(frozenResult.Isp-shiftResult.Isp)/frozenResult.Isp > 1e-3 {
		t.Fatalf("frozen Isp %v and shifting Isp %v should agree for a single-species system",
			frozenResult.Isp, shiftResult.Isp)
	}
}

func TestParseProblem(t *testing.T) {
	cases := map[string]Problem{"TP": TP, "hp": HP, " Sp ": SP}
	for s, want := range cases {
		got, err := ParseProblem(s)
		if err != nil {
			t.Fatalf("ParseProblem(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseProblem(%q) = %v, want %v", s, got, want)
		}
	}
	if _, err := ParseProblem("bogus"); err == nil {
		t.Fatal("expected error for unknown problem string")
	}
}

func TestLoadCaseSpecJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")
	body := `{
		"thermoFile": "thermo.lib",
		"propellantFile": "propellant.lib",
		"composition": [{"reactant": "FUELH2", "moles": 1}],
		"pressure": 10,
		"problem": "HP"
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	spec, err := LoadCaseSpec(path)
	if err != nil {
		t.Fatalf("LoadCaseSpec: %v", err)
	}
	if spec.Pressure != 10 || spec.Problem != "HP" || len(spec.Composition) != 1 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}

func TestLoadCaseSpecYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.yaml")
	body := "thermoFile: thermo.lib\npropellantFile: propellant.lib\npressure: 20\nproblem: SP\ncomposition:\n  - reactant: FUELH2\n    moles: 2\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	spec, err := LoadCaseSpec(path)
	if err != nil {
		t.Fatalf("LoadCaseSpec: %v", err)
	}
	if spec.Pressure != 20 || spec.Problem != "SP" || spec.Composition[0].Moles != 2 {
		t.Fatalf("unexpected spec: %+v", spec)
	}
}
