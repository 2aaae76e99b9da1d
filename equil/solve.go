// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/gocea/linsolve"
	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/thermo"
)

// Solve runs the damped-Newton outer iteration of §4.4 to equilibrium for
// the given Problem, mutating c.Product in place, and returns the
// converged thermodynamic Properties. targetS (kJ/(kg·K)) is the fixed
// entropy for SP problems and is ignored otherwise.
func Solve(c *product.Case, problem Problem, targetS float64, tol Tolerances, solver linsolve.Solver) (*Result, error) {
	p := c.Product
	if !p.ElementsListed {
		if err := p.ListElements(c.Composition); err != nil {
			return nil, err
		}
	}
	if !p.SpeciesListed {
		if err := p.ListProducts(c.ThermoDB); err != nil {
			return nil, err
		}
	}

	if problem != TP && c.T == 0 {
		c.T = tol.InitialTempHPSP
	}

	iterations, err := runOuter(c, problem, targetS, tol, solver, false)
	if err != nil {
		return nil, err
	}

	p.IsEquilibrium = true
	props := summarize(c, problem)
	if err := solveDerivatives(c, c.T, c.P, c.ThermoDB, solver, &props); err != nil {
		return nil, err
	}
	props.T = c.T
	props.P = c.P

	return &Result{Case: c, Properties: props, Iterations: iterations}, nil
}

// runOuter is the inner damped-Newton loop plus condensed-phase management,
// restarting itself (rather than fiddling with the iteration counter) every
// time the active condensed set changes or a singular matrix is recovered
// from, per §9's guidance to model this as recursion (§4.4).
func runOuter(c *product.Case, problem Problem, targetS float64, tol Tolerances, solver linsolve.Solver, reinserted bool) (int, error) {
	p := c.Product
	tdb := c.ThermoDB

	for iter := 0; iter < tol.IterationMax; iter++ {
		sys := assemble(c, problem, targetS, tdb)

		x, err := solver.Solve(sys.m, sys.rhs)
		if err != nil {
			if removeNonpositive(p) {
				return runOuter(c, problem, targetS, tol, solver, reinserted)
			}
			if !reinserted {
				reinsertGas(p)
				return runOuter(c, problem, targetS, tol, solver, true)
			}
			return iter, &Singular{Recovered: false}
		}

		pis := x[:len(p.Elements)]
		dCond := x[len(p.Elements) : len(p.Elements)+p.NumActiveCondensed]
		dLnN := x[sys.lnNIdx()]
		dLnT := 0.0
		if problem != TP {
			dLnT = x[sys.lnTIdx()]
		}

		dGas := gasDeltas(c, tdb, pis, dLnN, dLnT, problem)

		lambda := damping(p, dGas, dLnN, dLnT, tol)
		applyUpdate(c, dGas, dCond, dLnN, dLnT, lambda, tol)

		if chk.Verbose {
			io.Pf("equil: iter=%d T=%.2f residual|2=%.3e\n", iter, c.T, massBalanceResidualNorm(c))
		}

		if converged(p, dGas, dCond, dLnN, dLnT, tol, problem) {
			pisConverged := append([]float64(nil), pis...)
			if manageCondensed(p, tdb, c.T, pisConverged) {
				return runOuter(c, problem, targetS, tol, solver, reinserted)
			}
			return iter + 1, nil
		}
	}
	return tol.IterationMax, &NoConvergence{Stage: StageEquilibrium, Iterations: tol.IterationMax}
}

// assemble dispatches to assembleTP/HP/SP, computing each problem's target
// value at the current state (§4.3).
func assemble(c *product.Case, problem Problem, targetS float64, tdb *thermo.DB) *system {
	switch problem {
	case HP:
		targetHoverR := c.HeatOfFormation / (R * c.T)
		return assembleHP(c, c.T, c.P, targetHoverR, tdb)
	case SP:
		// targetS (kJ/(kg·K)) and J/(g·K) are numerically identical since
		// both the kJ/kg and kg/g factors of 1000 cancel; no conversion
		// beyond dividing by R is needed (matches the HP path's H/(R·T)).
		targetSoverR := targetS / R
		return assembleSP(c, c.T, c.P, targetSoverR, tdb)
	default:
		return assembleTP(c, c.T, c.P, tdb)
	}
}

// gasDeltas reconstructs Δln nₖ for every gas species from the solved π
// vector and the Δln n / Δln T unknowns (§4.4.c).
func gasDeltas(c *product.Case, tdb *thermo.DB, pis []float64, dLnN, dLnT float64, problem Problem) []float64 {
	p := c.Product
	out := make([]float64, len(p.GasSpecies))
	for k, sp := range p.GasSpecies {
		mu := gasMu(tdb, sp, c.T, c.P, p.NMolesGas[k], p.NGas)
		var piSum float64
		for j := range p.Elements {
			piSum += pis[j] * p.A[j][k]
		}
		out[k] = -mu + piSum + dLnN
		if problem != TP {
			out[k] += tdb.Enthalpy0(sp, c.T) * dLnT
		}
	}
	return out
}

// damping computes λ per §4.4.d: bound the step so no ln-concentration
// overshoots by more than 2/5 of a decade-ish unit and no near-zero species
// crosses the concentration floor.
func damping(p *product.Product, dGas []float64, dLnN, dLnT float64, tol Tolerances) float64 {
	lambda1max := math.Max(math.Abs(dLnT), math.Abs(dLnN))
	lambda2 := 1.0
	lnN := lnOrFloor(p.NGas)
	for k := range p.GasSpecies {
		if dGas[k] <= 0 {
			continue
		}
		lnNk := p.LnNGas[k]
		ratio := lnNk - lnN
		if ratio <= tol.LogConcTol {
			denom := dGas[k] - dLnN
			if denom != 0 {
				bound := math.Abs((-lnNk + lnN - 9.2103404) / denom)
				if bound < lambda2 {
					lambda2 = bound
				}
			}
		} else if dGas[k] > lambda1max {
			lambda1max = dGas[k]
		}
	}
	lambda1 := 1.0
	if lambda1max > 0 {
		lambda1 = 2.0 / (5.0 * lambda1max)
	}
	return math.Min(1.0, math.Min(lambda1, lambda2))
}

// applyUpdate advances the mole numbers, condensed moles and temperature by
// λ times the Newton step (§4.4.e).
func applyUpdate(c *product.Case, dGas []float64, dCond []float64, dLnN, dLnT, lambda float64, tol Tolerances) {
	p := c.Product
	lnN := lnOrFloor(p.NGas)
	for k := range p.GasSpecies {
		p.LnNGas[k] += lambda * dGas[k]
		if p.LnNGas[k]-lnN <= tol.LogConcTol {
			p.NMolesGas[k] = 0
		} else {
			p.NMolesGas[k] = math.Exp(p.LnNGas[k])
		}
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		p.NCondensed[i] += lambda * dCond[i]
	}
	if dLnT != 0 {
		c.T *= math.Exp(lambda * dLnT)
	}
	lnN += lambda * dLnN
	p.NGas = math.Exp(lnN)

	total := p.NGas
	for i := 0; i < p.NumActiveCondensed; i++ {
		total += p.NCondensed[i]
	}
	p.NGasTotal = total
}

// massBalanceResidualNorm returns the Euclidean norm of the per-element
// mass-balance residual Σ A_jk n_k + Σ ACond_ji n_cond_i - b_j, a verbose-
// mode diagnostic of how far the current iterate still is from satisfying
// §4.3's constraint rows (not used by the convergence test itself, which
// is the Δ-based §4.4.f criteria in converged).
func massBalanceResidualNorm(c *product.Case) float64 {
	p := c.Product
	resid := make([]float64, len(p.Elements))
	for j, elem := range p.Elements {
		var sum float64
		for k := range p.GasSpecies {
			sum += p.A[j][k] * p.NMolesGas[k]
		}
		for i := 0; i < p.NumActiveCondensed; i++ {
			sum += p.ACond[j][i] * p.NCondensed[i]
		}
		resid[j] = sum - c.ElementBalance[elem]
	}
	return floats.Norm(resid, 2)
}

// lnOrFloor returns ln(n), or a value far below any realistic LogConcTol
// when n has already collapsed to zero (§4.4.e concentration floor).
func lnOrFloor(n float64) float64 {
	if n <= 0 {
		return -1e30
	}
	return math.Log(n)
}

// converged reports whether every §4.4.f test passes at the current step.
func converged(p *product.Product, dGas []float64, dCond []float64, dLnN, dLnT float64, tol Tolerances, problem Problem) bool {
	total := p.NGasTotal
	if total <= 0 {
		return false
	}
	for k := range p.GasSpecies {
		if p.NMolesGas[k]*math.Abs(dGas[k])/total > tol.ConvTol {
			return false
		}
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		if math.Abs(dCond[i])/total > tol.ConvTol {
			return false
		}
	}
	if p.NGas*math.Abs(dLnN)/total > tol.ConvTol {
		return false
	}
	if problem != TP && math.Abs(dLnT) > 1e-4 {
		return false
	}
	return true
}

// reinsertGas resets any gas species driven to zero concentration back to a
// small positive trace, clearing a singular system caused by an entirely
// vacated species column (§4.4.b gas reinsertion).
func reinsertGas(p *product.Product) {
	const trace = 1e-6
	for k := range p.NMolesGas {
		if p.NMolesGas[k] <= 0 {
			p.NMolesGas[k] = trace
			p.LnNGas[k] = math.Log(trace)
		}
	}
}

// summarize computes H, U, G, S, M from the converged mole-number state
// (§4.1, §4.4 step 4).
func summarize(c *product.Case, problem Problem) Properties {
	p := c.Product
	tdb := c.ThermoDB
	T, P := c.T, c.P

	var hOverRT, sOverR, mass float64
	for k, sp := range p.GasSpecies {
		nk := p.NMolesGas[k]
		if nk <= 0 {
			continue
		}
		hOverRT += nk * tdb.Enthalpy0(sp, T)
		sOverR += nk * (tdb.Entropy0(sp, T) - math.Log(nk/p.NGas) - math.Log(barPerAtm*P))
		mass += nk * sp.Weight
	}
	for i := 0; i < p.NumActiveCondensed; i++ {
		sp := p.CondensedSpecies[i]
		nk := p.NCondensed[i]
		hOverRT += nk * tdb.Enthalpy0(sp, T)
		sOverR += nk * tdb.Entropy0(sp, T)
	}

	var props Properties
	props.H = R * T * hOverRT
	props.S = R * sOverR
	props.G = props.H - T*props.S
	props.U = props.H - p.NGas*R*T // U = H - pV, pV per gram = n_gas·R·T for an ideal gas
	if p.NGas > 0 {
		props.M = mass / p.NGas
	}
	return props
}
