// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equil implements the Gordon–McBride free-energy-minimization
// equilibrium solver (NASA RP-1311): the reduced matrix assembler, the
// damped Newton outer iteration with condensed-phase management, and the
// auxiliary linear solves that yield the thermodynamic derivatives.
package equil

import (
	"github.com/cpmech/gosl/fun"

	"github.com/cpmech/gocea/product"
)

// R is the universal gas constant, J/(mol·K). Since n (moles of gas per
// gram, see package product) is expressed per gram, n·R·T carries units of
// J/g == kJ/kg, matching the kJ/kg convention of Properties (§3).
const R = 8.314462618

// Problem selects which two state variables are held fixed (§1, §4.3).
type Problem int

const (
	// TP holds temperature and pressure fixed.
	TP Problem = iota
	// HP holds enthalpy and pressure fixed; T is solved for.
	HP
	// SP holds entropy and pressure fixed; T is solved for.
	SP
)

func (p Problem) String() string {
	switch p {
	case TP:
		return "TP"
	case HP:
		return "HP"
	case SP:
		return "SP"
	}
	return "?"
}

// roff is the number of trailing unknowns beyond πⱼ and Δnₖ: Δln n alone
// for TP, plus Δln T for HP/SP (§4.3).
func (p Problem) roff() int {
	if p == TP {
		return 1
	}
	return 2
}

// Solver tunables (§4.4). Exposed as a struct (rather than bare package
// constants) so callers can override them the way msolid models read
// fun.Prms-supplied parameters, while the defaults reproduce §4.4 exactly.
type Tolerances struct {
	ConcTol      float64
	LogConcTol   float64
	ConvTol      float64
	IterationMax int
	InitialTempHPSP float64
}

// DefaultTolerances returns the §4.4 constants.
func DefaultTolerances() Tolerances {
	return Tolerances{
		ConcTol:         1e-8,
		LogConcTol:      -18.420681,
		ConvTol:         5e-6,
		IterationMax:    100,
		InitialTempHPSP: 3800,
	}
}

// TolerancesFromPrms returns DefaultTolerances with any of its fields
// overridden by a fun.Prms list, matching the way msolid models (e.g.
// HyperElast1.Init) read named overrides out of a fun.Prms instead of
// exposing bare struct fields to callers that build a Case from a
// parameter file. Unrecognised names are ignored.
func TolerancesFromPrms(prms fun.Prms) Tolerances {
	tol := DefaultTolerances()
	for _, p := range prms {
		switch p.N {
		case "ConcTol":
			tol.ConcTol = p.V
		case "LogConcTol":
			tol.LogConcTol = p.V
		case "ConvTol":
			tol.ConvTol = p.V
		case "IterationMax":
			tol.IterationMax = int(p.V)
		case "InitialTempHPSP":
			tol.InitialTempHPSP = p.V
		}
	}
	return tol
}

// Properties is the converged equilibrium state's thermodynamic summary
// (§3 EquilibriumProperties).
type Properties struct {
	P float64 // atm
	T float64 // K
	H float64 // kJ/kg
	U float64 // kJ/kg
	G float64 // kJ/kg
	S float64 // kJ/kg·K
	M float64 // g/mol, mean molecular weight of the gas phase

	DlnVDlnP float64 // (∂lnV/∂lnP)ₜ
	DlnVDlnT float64 // (∂lnV/∂lnT)ₚ
	Cp       float64 // kJ/kg·K
	Cv       float64 // kJ/kg·K
	Gamma    float64 // isentropic exponent γs
	SoundSpeed float64 // m/s
}

// Result is what Solve returns: the converged Properties plus a reference
// to the Case whose Product now holds the converged mole numbers.
type Result struct {
	Case       *product.Case
	Properties Properties
	Iterations int
}
