// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gocea implements the Gordon–McBride chemical-equilibrium and
// rocket-performance evaluator (NASA RP-1311): reading thermodynamic and
// propellant databases, driving the damped-Newton equilibrium solver for a
// given propellant Case, and, optionally, the frozen/shifting nozzle
// performance loops built on top of it. The numerical core lives in the
// thermo, propellant, product, equil and perf subpackages; this package is
// the thin orchestration layer a caller is expected to import (§6).
package gocea

import (
	"github.com/cpmech/gocea/equil"
	"github.com/cpmech/gocea/linsolve"
	"github.com/cpmech/gocea/perf"
	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

// ThermoDB and PropellantDB are re-exported so callers need only import
// this package to build and load a Case end to end.
type ThermoDB = thermo.DB
type PropellantDB = propellant.DB

// Problem selects which two state variables are held fixed, re-exported
// from equil so callers need only import this package (§1, §4.3).
type Problem = equil.Problem

const (
	TP = equil.TP
	HP = equil.HP
	SP = equil.SP
)

// Case is the aggregate a caller builds and passes to Compute*: one
// propellant composition plus the mutable product state the solver
// iterates on (§3 "Ownership"). It is an alias of product.Case rather than
// a wrapping struct, since product.Case already owns everything §3 asks
// for and solvers are free functions over it.
type Case = product.Case

// Result is the converged equilibrium state returned by ComputeEquilibrium.
type Result = equil.Result

// Properties is the converged equilibrium state's thermodynamic summary
// (§3 EquilibriumProperties).
type Properties = equil.Properties

// ExitCondition selects how a nozzle performance Result locates its exit
// station (§4.6).
type ExitCondition = perf.ExitCondition

const (
	Pressure             = perf.Pressure
	SupersonicAreaRatio  = perf.SupersonicAreaRatio
	SubsonicAreaRatio    = perf.SubsonicAreaRatio
)

// PerformanceResult is the converged chamber/throat/exit triple plus the
// summary performance figures (§4.6).
type PerformanceResult = perf.Result

// NewCase builds a Case from a composition and chamber pressure (atm),
// computing the cached element-balance vector and heat of formation that
// every outer-loop iteration references (§3).
func NewCase(tdb *ThermoDB, pdb *PropellantDB, comp product.Composition, pressure float64) *Case {
	return product.NewCase(tdb, pdb, comp, pressure)
}

// defaultTolerances and defaultSolver are used by ComputeEquilibrium;
// callers who need to override them call equil.Solve directly instead.
// perf.Frozen and perf.Shifting always use these same defaults.
func defaultTolerances() equil.Tolerances { return equil.DefaultTolerances() }
func defaultSolver() linsolve.Solver      { return linsolve.NewLU() }

// ComputeEquilibrium runs the Gordon–McBride outer iteration of §4.4 for
// the given Problem, mutating c.Product in place and returning the
// converged thermodynamic Properties. targetS (kJ/(kg·K)) is the fixed
// entropy for SP problems and is ignored otherwise.
func ComputeEquilibrium(c *Case, p Problem, targetS float64) (*Result, error) {
	return equil.Solve(c, p, targetS, defaultTolerances(), defaultSolver())
}

// ComputeFrozen runs the nozzle performance loops of §4.6 holding the
// chamber composition fixed downstream of combustion.
func ComputeFrozen(c *Case, ec ExitCondition) (*PerformanceResult, error) {
	return perf.Frozen(c, ec)
}

// ComputeShifting runs the nozzle performance loops of §4.6 re-establishing
// chemical equilibrium at every trial station.
func ComputeShifting(c *Case, ec ExitCondition) (*PerformanceResult, error) {
	return perf.Shifting(c, ec)
}
