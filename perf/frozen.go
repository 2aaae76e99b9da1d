// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import (
	"math"

	"github.com/cpmech/gocea/equil"
	"github.com/cpmech/gocea/product"
)

// barPerAtm mirrors equil's unexported constant for the ideal-gas pressure
// term of the entropy function (§4.1).
const barPerAtm = 1.01325

// Frozen runs the chamber/throat/exit nozzle loops with the composition
// held fixed at its chamber values downstream of combustion (§4.6).
func Frozen(c *product.Case, ec ExitCondition) (*Result, error) {
	deps := defaultDeps()

	chamberResult, err := equil.Solve(c, equil.HP, 0, deps.tol, deps.solver)
	if err != nil {
		return nil, &NoEquilibrium{Cause: err}
	}
	p := c.Product

	cp := frozenCp(c, c.T)
	cv := cp - p.NGas*equil.R
	gamma := cp / cv

	chamber := &Station{
		Case:       c,
		T:          c.T,
		P:          c.P,
		H:          chamberResult.Properties.H,
		S:          chamberResult.Properties.S,
		N:          p.NGas,
		Gamma:      gamma,
		SoundSpeed: chamberResult.Properties.SoundSpeed,
		Converged:  true,
	}
	sc := chamber.S

	throat, throatOK := frozenThroat(c, chamber, sc, gamma)
	result := &Result{Chamber: chamber, Throat: throat, ThroatNonConvergence: !throatOK}

	exit, exitOK, err := frozenExit(c, chamber, throat, sc, gamma, ec)
	if err != nil {
		return result, err
	}
	result.Exit = exit
	result.ExitNonConvergence = !exitOK

	finalizePerformance(result)
	return result, nil
}

// frozenEnthalpy evaluates H(T) = R·T·Σ n_k·H°_k(T) over the case's fixed
// (chamber) mole numbers.
func frozenEnthalpy(c *product.Case, T float64) float64 {
	p := c.Product
	tdb := c.ThermoDB
	var hOverRT float64
	for k, sp := range p.GasSpecies {
		hOverRT += p.NMolesGas[k] * tdb.Enthalpy0(sp, T)
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		hOverRT += p.NCondensed[i] * tdb.Enthalpy0(p.CondensedSpecies[i], T)
	}
	return equil.R * T * hOverRT
}

// frozenEntropy evaluates S(T,P) over the case's fixed mole numbers,
// including the ideal-mixture and pressure terms for the gas phase (§4.1).
func frozenEntropy(c *product.Case, T, P float64) float64 {
	p := c.Product
	tdb := c.ThermoDB
	n := p.NGas
	var sOverR float64
	for k, sp := range p.GasSpecies {
		nk := p.NMolesGas[k]
		if nk <= 0 || n <= 0 {
			continue
		}
		sOverR += nk * (tdb.Entropy0(sp, T) - math.Log(nk/n) - math.Log(barPerAtm*P))
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		sOverR += p.NCondensed[i] * tdb.Entropy0(p.CondensedSpecies[i], T)
	}
	return equil.R * sOverR
}

// frozenCp evaluates Cp(T) = R·Σ n_k·Cp°_k(T) over the case's fixed mole
// numbers (§4.6's frozen Cp, distinct from DerivativeSolver's reactive Cp).
func frozenCp(c *product.Case, T float64) float64 {
	p := c.Product
	tdb := c.ThermoDB
	var cpOverR float64
	for k, sp := range p.GasSpecies {
		cpOverR += p.NMolesGas[k] * tdb.Cp0(sp, T)
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		cpOverR += p.NCondensed[i] * tdb.Cp0(p.CondensedSpecies[i], T)
	}
	return equil.R * cpOverR
}

// solveFrozenTemperature is the inner Newton loop that finds T at pressure
// P conserving the chamber entropy Sc, stepping ΔlnT = (Sc−S(T,P))/Cp(T)
// (§4.6), bounded to TempIterationMax.
func solveFrozenTemperature(c *product.Case, sc, t0, p float64) (t float64, converged bool) {
	t = t0
	for i := 0; i < TempIterationMax; i++ {
		s := frozenEntropy(c, t, p)
		cp := frozenCp(c, t)
		if cp == 0 {
			return t, false
		}
		dlnT := (sc - s) / cp
		t *= math.Exp(dlnT)
		if math.Abs(dlnT) < 1e-8 {
			return t, true
		}
	}
	return t, false
}

func soundSpeed(n, t, gamma float64) float64 {
	v := 1000 * n * equil.R * t * gamma
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v)
}

func flowSpeed(hc, h float64) float64 {
	d := 2000 * (hc - h)
	if d < 0 {
		d = 0
	}
	return math.Sqrt(d)
}

// frozenThroat finds the throat station by relaxing pc/pt from its
// critical-ratio guess until sound speed and flow speed agree (§4.6).
func frozenThroat(c *product.Case, chamber *Station, sc, gamma float64) (*Station, bool) {
	n := chamber.N
	pcOverPt := pcOverPtGuess(gamma)
	t := chamber.T
	converged := false

	for i := 0; i < PcPtIterationMax; i++ {
		p := c.P / pcOverPt
		var ok bool
		t, ok = solveFrozenTemperature(c, sc, t, p)
		a := soundSpeed(n, t, gamma)
		u := flowSpeed(chamber.H, frozenEnthalpy(c, t))
		if u == 0 {
			converged = ok
			break
		}
		if math.Abs(u*u-a*a)/(u*u) <= 4e-5 {
			converged = ok
			break
		}
		pcOverPt /= 1 + (u*u-a*a)/(1000*(gamma+1)*n*equil.R*t)
	}

	p := c.P / pcOverPt
	a := soundSpeed(n, t, gamma)
	u := flowSpeed(chamber.H, frozenEnthalpy(c, t))
	return &Station{
		Case: c, T: t, P: p, H: frozenEnthalpy(c, t), S: frozenEntropy(c, t, p), N: n,
		Gamma: gamma, SoundSpeed: a, FlowSpeed: u, AeAt: 1, Converged: converged,
	}, converged
}

// frozenExit locates the exit station, either directly (Pressure) or by
// inverting the area ratio around the same entropy-conserving temperature
// solve used at the throat (§4.6).
func frozenExit(c *product.Case, chamber, throat *Station, sc, gamma float64, ec ExitCondition) (*Station, bool, error) {
	n := chamber.N

	if ec.Kind == Pressure {
		p := ec.Value
		t, ok := solveFrozenTemperature(c, sc, throat.T, p)
		a := soundSpeed(n, t, gamma)
		u := flowSpeed(chamber.H, frozenEnthalpy(c, t))
		st := &Station{
			Case: c, T: t, P: p, H: frozenEnthalpy(c, t), S: frozenEntropy(c, t, p), N: n,
			Gamma: gamma, SoundSpeed: a, FlowSpeed: u, Converged: ok,
		}
		st.AeAt = areaRatio(throat, st)
		return st, ok, nil
	}

	ar := ec.Value
	if ar <= 1.0 {
		return nil, false, &AreaRatioOutOfRange{AeAt: ar}
	}
	subsonic := ec.Kind == SubsonicAreaRatio
	lnPcPt := math.Log(c.P / throat.P)
	logPcPe := initialLogPcPe(gamma, lnPcPt, ar, subsonic)

	t := throat.T
	var st *Station
	converged := false
	for i := 0; i < PcPeIterationMax; i++ {
		p := c.P / math.Exp(logPcPe)
		var ok bool
		t, ok = solveFrozenTemperature(c, sc, t, p)
		a := soundSpeed(n, t, gamma)
		u := flowSpeed(chamber.H, frozenEnthalpy(c, t))
		st = &Station{
			Case: c, T: t, P: p, H: frozenEnthalpy(c, t), S: frozenEntropy(c, t, p), N: n,
			Gamma: gamma, SoundSpeed: a, FlowSpeed: u, Converged: ok,
		}
		st.AeAt = areaRatio(throat, st)

		if u*u == a*a {
			break
		}
		relErr := math.Abs(st.AeAt-ar) / ar
		if relErr <= 1e-5 {
			converged = true
			break
		}
		logPcPe += gamma * u * u / (u*u - a*a) * (math.Log(ar) - math.Log(st.AeAt))
	}
	return st, converged, nil
}

// finalizePerformance fills Isp, A/ṁ, C*, Cf and Ivac from the converged
// throat and exit stations (§4.6).
func finalizePerformance(r *Result) {
	if r.Exit == nil {
		return
	}
	r.Isp = r.Exit.FlowSpeed
	r.AreaPerMdot = areaPerMassFlow(r.Exit)
	throatAreaPerMdot := areaPerMassFlow(r.Throat)
	r.CStar = r.Chamber.P * throatAreaPerMdot
	if r.Isp != 0 {
		r.Cf = r.Isp / r.CStar
	}
	r.Ivac = r.Isp + r.Exit.P*r.AreaPerMdot
}

func areaPerMassFlow(st *Station) float64 {
	if st.P == 0 || st.FlowSpeed == 0 {
		return 0
	}
	return 1000 * equil.R * st.T * st.N / (st.P * st.FlowSpeed)
}
