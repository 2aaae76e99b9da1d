// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package perf implements the nozzle PerformanceSolver (§4.6, §4.7):
// frozen and shifting throat/exit loops nested around the chamber
// equilibrium, each solving an entropy-conserving temperature at a trial
// pressure and, for area-ratio exit conditions, inverting the area ratio
// to find that trial pressure.
package perf

import (
	"github.com/cpmech/gocea/equil"
	"github.com/cpmech/gocea/linsolve"
	"github.com/cpmech/gocea/product"
)

// Iteration caps (§4.6).
const (
	PcPtIterationMax = 5
	PcPeIterationMax = 6
	TempIterationMax = 8
)

// ExitKind selects how the exit station is located.
type ExitKind int

const (
	// Pressure fixes the exit static pressure directly (atm).
	Pressure ExitKind = iota
	// SupersonicAreaRatio locates the exit station downstream of the
	// throat at the given Ae/At.
	SupersonicAreaRatio
	// SubsonicAreaRatio locates the exit station upstream of the throat
	// (subsonic branch) at the given Ae/At.
	SubsonicAreaRatio
)

// ExitCondition is the PerformanceSolver's exit-locating parameter (§4.6,
// §6).
type ExitCondition struct {
	Kind  ExitKind
	Value float64 // pe (atm) for Pressure, Ae/At otherwise
}

// Station is one point along the nozzle (chamber, throat or exit): the
// converged case plus the derived flow quantities (§4.6).
type Station struct {
	Case *product.Case
	T    float64 // K
	P    float64 // atm
	H    float64 // kJ/kg
	S    float64 // kJ/kg·K
	N    float64 // moles of gas per gram

	Gamma      float64 // isentropic exponent at this station
	SoundSpeed float64 // m/s
	FlowSpeed  float64 // Isp contribution at this station, m/s
	AeAt       float64 // area ratio relative to the throat

	Converged bool // false if the station's inner loop hit its cap
}

// Result is the converged chamber/throat/exit triple plus the summary
// performance figures (§4.6).
type Result struct {
	Chamber *Station
	Throat  *Station
	Exit    *Station

	Isp          float64 // m/s, equals Exit.FlowSpeed
	AreaPerMdot  float64 // A/ṁ at the exit, m²·s/kg
	CStar        float64 // characteristic velocity, m/s
	Cf           float64 // thrust coefficient
	Ivac         float64 // vacuum specific impulse, m/s

	ThroatNonConvergence bool
	ExitNonConvergence   bool
}

// solverDeps bundles the shared dependencies threaded through frozen.go and
// shifting.go so neither needs package-level state.
type solverDeps struct {
	tol    equil.Tolerances
	solver linsolve.Solver
}

func defaultDeps() solverDeps {
	return solverDeps{tol: equil.DefaultTolerances(), solver: linsolve.NewLU()}
}
