// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"math"

	"github.com/cpmech/gocea/equil"
	"github.com/cpmech/gocea/product"
)

// Shifting runs the same chamber/throat/exit outer loops as Frozen, but
// re-establishes chemical equilibrium at every trial pressure (problem
// type SP, entropy held at the chamber value) instead of holding the
// composition fixed (§4.6).
func Shifting(c *product.Case, ec ExitCondition) (*Result, error) {
	deps := defaultDeps()

	chamberResult, err := equil.Solve(c, equil.HP, 0, deps.tol, deps.solver)
	if err != nil {
		return nil, &NoEquilibrium{Cause: err}
	}
	props := chamberResult.Properties
	chamber := &Station{
		Case: c, T: c.T, P: c.P, H: props.H, S: props.S, N: c.Product.NGas,
		Gamma: props.Gamma, SoundSpeed: props.SoundSpeed, Converged: true,
	}
	sc := chamber.S

	throat, throatOK := shiftingThroat(c, chamber, sc, deps)
	result := &Result{Chamber: chamber, Throat: throat, ThroatNonConvergence: !throatOK}

	exit, exitOK, err := shiftingExit(c, chamber, throat, sc, ec, deps)
	if err != nil {
		return result, err
	}
	result.Exit = exit
	result.ExitNonConvergence = !exitOK

	finalizePerformance(result)
	return result, nil
}

// shiftingStation re-equilibrates a clone of c at pressure p and chamber
// entropy sc (problem SP), seeding T and the mole-number state from
// lastCase so each trial starts near the previous one's solution.
func shiftingStation(lastCase *product.Case, p, sc float64, deps solverDeps) (*Station, *product.Case, bool) {
	clone := lastCase.Clone()
	clone.P = p
	res, err := equil.Solve(clone, equil.SP, sc, deps.tol, deps.solver)
	if err != nil {
		return nil, lastCase, false
	}
	return &Station{
		Case: clone, T: res.Properties.T, P: p, H: res.Properties.H, S: res.Properties.S,
		N: clone.Product.NGas, Gamma: res.Properties.Gamma, SoundSpeed: res.Properties.SoundSpeed,
		Converged: true,
	}, clone, true
}

func shiftingThroat(c *product.Case, chamber *Station, sc float64, deps solverDeps) (*Station, bool) {
	pcOverPt := pcOverPtGuess(chamber.Gamma)
	last := c
	var st *Station
	converged := false

	for i := 0; i < PcPtIterationMax; i++ {
		p := c.P / pcOverPt
		next, clone, ok := shiftingStation(last, p, sc, deps)
		if !ok {
			break
		}
		last = clone
		u := flowSpeed(chamber.H, next.H)
		next.FlowSpeed = u
		next.AeAt = 1
		st = next

		if u == 0 {
			converged = true
			break
		}
		a := next.SoundSpeed
		if math.Abs(u*u-a*a)/(u*u) <= 4e-5 {
			converged = true
			break
		}
		pcOverPt /= 1 + (u*u-a*a)/(1000*(next.Gamma+1)*next.N*equil.R*next.T)
	}
	return st, converged
}

func shiftingExit(c *product.Case, chamber, throat *Station, sc float64, ec ExitCondition, deps solverDeps) (*Station, bool, error) {
	if ec.Kind == Pressure {
		p := ec.Value
		next, _, ok := shiftingStation(throat.Case, p, sc, deps)
		if !ok {
			return nil, false, nil
		}
		next.FlowSpeed = flowSpeed(chamber.H, next.H)
		next.AeAt = areaRatio(throat, next)
		return next, ok, nil
	}

	ar := ec.Value
	if ar <= 1.0 {
		return nil, false, &AreaRatioOutOfRange{AeAt: ar}
	}
	subsonic := ec.Kind == SubsonicAreaRatio
	lnPcPt := math.Log(c.P / throat.P)
	logPcPe := initialLogPcPe(throat.Gamma, lnPcPt, ar, subsonic)

	last := throat.Case
	var st *Station
	converged := false
	for i := 0; i < PcPeIterationMax; i++ {
		p := c.P / math.Exp(logPcPe)
		next, clone, ok := shiftingStation(last, p, sc, deps)
		if !ok {
			break
		}
		last = clone
		next.FlowSpeed = flowSpeed(chamber.H, next.H)
		next.AeAt = areaRatio(throat, next)
		st = next

		u, a := next.FlowSpeed, next.SoundSpeed
		if u*u == a*a {
			break
		}
		relErr := math.Abs(next.AeAt-ar) / ar
		if relErr <= 1e-5 {
			converged = true
			break
		}
		logPcPe += next.Gamma * u * u / (u*u - a*a) * (math.Log(ar) - math.Log(next.AeAt))
	}
	return st, converged, nil
}
