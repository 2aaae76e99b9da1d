// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"github.com/cpmech/gosl/la"

	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/thermo"
)

// barPerAtm converts pressure from atm to bar for the ln(P) term of the
// gas-phase chemical potential (§4.1).
const barPerAtm = 1.01325

// system is the assembled (E+Nc+roff)-square matrix plus its right-hand
// side column, with unknowns ordered πⱼ, Δnₖ (condensed), Δln n, [Δln T].
type system struct {
	e, nc, roff int
	m           [][]float64 // size x size
	rhs         []float64   // size
}

func newSystem(e, nc, roff int) *system {
	size := e + nc + roff
	// la.MatAlloc matches the teacher's own dense-matrix allocation idiom
	// (msolid/driver.go's o.D, o.Eps): a slice of independently-backed rows,
	// since this square system is always small (E+Nc+roff, well under 100).
	m := la.MatAlloc(size, size)
	return &system{e: e, nc: nc, roff: roff, m: m, rhs: make([]float64, size)}
}

func (s *system) size() int { return s.e + s.nc + s.roff }

// lnNIdx / lnTIdx locate the Δln n and Δln T unknowns.
func (s *system) lnNIdx() int { return s.e + s.nc }
func (s *system) lnTIdx() int { return s.e + s.nc + 1 }

// gasMu returns μⱼ/RT for gas species k at the current state (§4.1).
func gasMu(db *thermo.DB, sp *thermo.Species, T, P float64, nk, n float64) float64 {
	g := db.Gibbs0(sp, T)
	if nk <= 0 || n <= 0 {
		return g
	}
	return g + math.Log(nk/n) + math.Log(barPerAtm*P)
}

// condMu returns μ/RT for a condensed species (§4.1): just G°/RT.
func condMu(db *thermo.DB, sp *thermo.Species, T float64) float64 {
	return db.Gibbs0(sp, T)
}

// assembleCommon fills the mass-balance / phase-equilibrium block shared
// by TP, HP and SP (§4.3): element rows, condensed rows, and the Δln n
// identity row, with no Δln T column/row. For TP this is the complete
// system; HP/SP extend it with extendWithLnT.
func assembleCommon(c *product.Case, T, P float64, tdb *thermo.DB) *system {
	p := c.Product
	e := len(p.Elements)
	nc := p.NumActiveCondensed
	s := newSystem(e, nc, 1) // roff=1 until extended

	n := p.NGas
	nk := p.NMolesGas

	// upper-left E×E and element×lnN column/row (mirrored).
	for j := 0; j < e; j++ {
		for i := 0; i < e; i++ {
			var sum float64
			for k := range p.GasSpecies {
				sum += p.A[j][k] * p.A[i][k] * nk[k]
			}
			s.m[j][i] = sum
		}
		var lnNCoef float64
		for k := range p.GasSpecies {
			lnNCoef += p.A[j][k] * nk[k]
		}
		s.m[j][s.lnNIdx()] = lnNCoef
		s.m[s.lnNIdx()][j] = lnNCoef
	}

	// element×condensed coupling, mirrored into condensed rows.
	for j := 0; j < e; j++ {
		for i := 0; i < nc; i++ {
			coef := condensedElementCoef(p, j, i)
			s.m[j][e+i] = coef
			s.m[e+i][j] = coef
		}
	}
	// condensed block (condensed-condensed, condensed-lnN) is zero (§4.3).

	// Δln n identity row/column diagonal.
	var sumNk float64
	for k := range p.GasSpecies {
		sumNk += nk[k]
	}
	s.m[s.lnNIdx()][s.lnNIdx()] = sumNk - n

	// right-hand side: element mass balance, condensed equilibrium, lnN identity.
	for j, elem := range p.Elements {
		b := c.ElementBalance[elem]
		var gasSum, muSum, condSum float64
		for k, sp := range p.GasSpecies {
			gasSum += p.A[j][k] * nk[k]
			muSum += p.A[j][k] * nk[k] * gasMu(tdb, sp, T, P, nk[k], n)
		}
		for i := 0; i < nc; i++ {
			condSum += condensedElementCoef(p, j, i) * p.NCondensed[i]
		}
		s.rhs[j] = b - gasSum - condSum + muSum
	}
	for i := 0; i < nc; i++ {
		sp := p.CondensedSpecies[i]
		s.rhs[e+i] = condMu(tdb, sp, T)
	}
	var muNSum float64
	for k, sp := range p.GasSpecies {
		muNSum += nk[k] * gasMu(tdb, sp, T, P, nk[k], n)
	}
	s.rhs[s.lnNIdx()] = n - sumNk + muNSum

	return s
}

func condensedElementCoef(p *product.Product, elementIdx, activeCondIdx int) float64 {
	if activeCondIdx >= len(p.ACond[elementIdx]) {
		return 0
	}
	return p.ACond[elementIdx][activeCondIdx]
}

// extendWithLnT grows s by one row/column for the Δln T unknown, filling
// it with the energy-conservation (HP) or entropy-conservation (SP) row
// per §4.3/§4.4. target supplies H°/S° and the RHS constraint value.
func extendWithLnT(s *system, c *product.Case, T, P float64, tdb *thermo.DB, target problemTarget) *system {
	e, nc := s.e, s.nc
	grown := newSystem(e, nc, 2)
	size := s.size()
	for i := 0; i < size; i++ {
		copy(grown.m[i], s.m[i])
		grown.rhs[i] = s.rhs[i]
	}

	p := c.Product
	nk := p.NMolesGas
	lnT := grown.lnTIdx()

	var diag, current float64
	for j := range p.Elements {
		var col float64
		for k, sp := range p.GasSpecies {
			col += p.A[j][k] * nk[k] * target.species(tdb, sp, T)
		}
		grown.m[j][lnT] = col
		grown.m[lnT][j] = col
	}
	for i := 0; i < nc; i++ {
		sp := p.CondensedSpecies[i]
		col := p.NCondensed[i] * target.species(tdb, sp, T)
		grown.m[e+i][lnT] = col
		grown.m[lnT][e+i] = col
	}
	var lnNCol float64
	for k, sp := range p.GasSpecies {
		lnNCol += nk[k] * target.species(tdb, sp, T)
	}
	grown.m[grown.lnNIdx()][lnT] = lnNCol
	grown.m[lnT][grown.lnNIdx()] = lnNCol

	for k, sp := range p.GasSpecies {
		diag += nk[k] * target.cpLike(tdb, sp, T)
		current += nk[k] * target.species(tdb, sp, T)
	}
	for i := 0; i < nc; i++ {
		sp := p.CondensedSpecies[i]
		diag += p.NCondensed[i] * target.cpLike(tdb, sp, T)
		current += p.NCondensed[i] * target.species(tdb, sp, T)
	}
	if target.mixingCorrection != nil {
		current += target.mixingCorrection(p, P)
	}
	grown.m[lnT][lnT] = diag
	grown.rhs[lnT] = target.value - current

	return grown
}

// problemTarget abstracts the HP (enthalpy) vs SP (entropy) energy row so
// assembleHP/assembleSP share the same extension logic. species/cpLike
// drive the Newton matrix's cross-derivative columns and diagonal; value
// and mixingCorrection drive the residual (the actual constrained
// quantity), which for entropy needs the ideal-mixture -R ln(x_k P) term
// that the pure standard-state S°/R function omits.
type problemTarget struct {
	value             float64 // target H/(R·T) for HP or S/R for SP (per gram of propellant)
	species           func(tdb *thermo.DB, sp *thermo.Species, T float64) float64
	cpLike            func(tdb *thermo.DB, sp *thermo.Species, T float64) float64
	mixingCorrection  func(p *product.Product, P float64) float64
}

func enthalpyTarget(targetHoverR float64) problemTarget {
	return problemTarget{
		value:   targetHoverR,
		species: func(tdb *thermo.DB, sp *thermo.Species, T float64) float64 { return tdb.Enthalpy0(sp, T) },
		cpLike:  func(tdb *thermo.DB, sp *thermo.Species, T float64) float64 { return tdb.Cp0(sp, T) },
	}
}

func entropyTarget(targetSoverR float64) problemTarget {
	return problemTarget{
		value:   targetSoverR,
		species: func(tdb *thermo.DB, sp *thermo.Species, T float64) float64 { return tdb.Entropy0(sp, T) },
		// d(S/R)/dlnT = Cp/R since dS = (Cp/T)dT = Cp·dlnT; same Cp0 as the
		// HP path's cpLike, not Cp0/T.
		cpLike: func(tdb *thermo.DB, sp *thermo.Species, T float64) float64 { return tdb.Cp0(sp, T) },
		mixingCorrection: func(p *product.Product, P float64) float64 {
			n := p.NGas
			var mix float64
			for _, nk := range p.NMolesGas {
				if nk <= 0 || n <= 0 {
					continue
				}
				mix -= nk * (math.Log(nk/n) + math.Log(barPerAtm*P))
			}
			return mix
		},
	}
}

// assembleTP builds the fixed T,P system: the common block alone.
func assembleTP(c *product.Case, T, P float64, tdb *thermo.DB) *system {
	return assembleCommon(c, T, P, tdb)
}

// assembleHP builds the fixed H,P system.
func assembleHP(c *product.Case, T, P, targetHoverR float64, tdb *thermo.DB) *system {
	common := assembleCommon(c, T, P, tdb)
	return extendWithLnT(common, c, T, P, tdb, enthalpyTarget(targetHoverR))
}

// assembleSP builds the fixed S,P system.
func assembleSP(c *product.Case, T, P, targetSoverR float64, tdb *thermo.DB) *system {
	common := assembleCommon(c, T, P, tdb)
	return extendWithLnT(common, c, T, P, tdb, entropyTarget(targetSoverR))
}
