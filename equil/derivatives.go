// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"github.com/cpmech/gocea/linsolve"
	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/thermo"
)

// solveDerivatives populates Properties' (∂lnV/∂lnP)ₜ, (∂lnV/∂lnT)ₚ, Cp,
// Cv, γs and sound speed from the converged equilibrium state (§4.5),
// reusing the common mass-balance/phase-equilibrium block and rewriting
// only the right-hand side for each of the two auxiliary solves.
func solveDerivatives(c *product.Case, T, P float64, tdb *thermo.DB, solver linsolve.Solver, props *Properties) error {
	p := c.Product
	e := len(p.Elements)
	nc := p.NumActiveCondensed
	nk := p.NMolesGas

	common := assembleCommon(c, T, P, tdb)

	// T-derivative: rhs_element_j = -Σ A_jk n_k H°_k; rhs_cond_i = -H°_cond_i;
	// rhs_lnN = -Σ n_k H°_k (§4.5).
	tSys := newSystem(e, nc, 1)
	copyMatrix(tSys.m, common.m)
	for j := range p.Elements {
		var sum float64
		for k, sp := range p.GasSpecies {
			sum += p.A[j][k] * nk[k] * tdb.Enthalpy0(sp, T)
		}
		tSys.rhs[j] = -sum
	}
	for i := 0; i < nc; i++ {
		tSys.rhs[e+i] = -tdb.Enthalpy0(p.CondensedSpecies[i], T)
	}
	var lnNRhsT float64
	for k, sp := range p.GasSpecies {
		lnNRhsT += nk[k] * tdb.Enthalpy0(sp, T)
	}
	tSys.rhs[tSys.lnNIdx()] = -lnNRhsT

	xT, err := solver.Solve(tSys.m, tSys.rhs)
	if err != nil {
		return &Singular{Recovered: false}
	}
	dlnVdlnT := 1 + xT[tSys.lnNIdx()]

	// P-derivative: rhs_element_j = +Σ A_jk n_k; rhs_cond=0; rhs_lnN=Σ n_k (§4.5).
	pSys := newSystem(e, nc, 1)
	copyMatrix(pSys.m, common.m)
	for j := range p.Elements {
		var sum float64
		for k := range p.GasSpecies {
			sum += p.A[j][k] * nk[k]
		}
		pSys.rhs[j] = sum
	}
	var lnNRhsP float64
	for k := range p.GasSpecies {
		lnNRhsP += nk[k]
	}
	pSys.rhs[pSys.lnNIdx()] = lnNRhsP

	xP, err := solver.Solve(pSys.m, pSys.rhs)
	if err != nil {
		return &Singular{Recovered: false}
	}
	dlnVdlnP := xP[pSys.lnNIdx()] - 1

	// Cp/R = Σ n_k Cp°_k (frozen) + Σ n_k H°_k Δln n_k + Σ n_cond_i H°_cond_i Δn_cond_i,
	// with Δln n_k/Δn_cond_i read off the T-derivative solution (§4.5, §4.4.c
	// without the Δln T term since this auxiliary system has no Δln T unknown).
	var cpOverR float64
	for k, sp := range p.GasSpecies {
		cpOverR += nk[k] * tdb.Cp0(sp, T)
		var dlnnk float64
		for j := range p.Elements {
			dlnnk += xT[j] * p.A[j][k]
		}
		dlnnk += xT[tSys.lnNIdx()]
		cpOverR += nk[k] * tdb.Enthalpy0(sp, T) * dlnnk
	}
	for i := 0; i < nc; i++ {
		sp := p.CondensedSpecies[i]
		cpOverR += p.NCondensed[i] * tdb.Cp0(sp, T)
		cpOverR += tdb.Enthalpy0(sp, T) * xT[e+i]
	}

	props.DlnVDlnT = dlnVdlnT
	props.DlnVDlnP = dlnVdlnP
	props.Cp = R * cpOverR
	n := p.NGas
	props.Cv = props.Cp + n*R*dlnVdlnT*dlnVdlnT/negIfZero(dlnVdlnP)
	props.Gamma = -(props.Cp / props.Cv) / dlnVdlnP
	soundSq := 1000 * n * R * T * props.Gamma
	if soundSq < 0 {
		soundSq = 0
	}
	props.SoundSpeed = math.Sqrt(soundSq)
	return nil
}

func copyMatrix(dst, src [][]float64) {
	for i := range src {
		copy(dst[i], src[i])
	}
}

func negIfZero(v float64) float64 {
	if v == 0 {
		return -1e-300
	}
	return v
}
