// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package product

import (
	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

// Case is a value-owning aggregate of one propellant formulation plus its
// derived product state: it uniquely owns its Product, while ThermoDB and
// PropellantDB are shared, read-only references (§3 "Ownership"). Solvers
// are free functions taking *Case, never methods that hide ownership.
type Case struct {
	ThermoDB     *thermo.DB
	PropellantDB *propellant.DB

	Composition Composition
	Product     *Product

	// ElementBalance is bⱼ, computed once from Composition and cached here
	// since every outer-loop iteration references it.
	ElementBalance map[string]float64

	// HeatOfFormation is the composition's mass-weighted heat of formation
	// (J/g), the enthalpy constraint for HP problems.
	HeatOfFormation float64

	P float64 // pressure, atm
	T float64 // temperature, K (input for TP; solved for HP/SP)
}

// NewCase builds a Case from a composition and pressure, computing the
// cached element-balance vector and heat of formation.
func NewCase(tdb *thermo.DB, pdb *propellant.DB, comp Composition, p float64) *Case {
	return &Case{
		ThermoDB:        tdb,
		PropellantDB:    pdb,
		Composition:     comp,
		Product:         NewProduct(),
		ElementBalance:  comp.ElementBalance(),
		HeatOfFormation: comp.HeatOfFormation(),
		P:               p,
	}
}

// Clone returns a deep-enough copy of c for the performance solver to
// perturb (P, T) and re-run equilibrium without disturbing the chamber
// state (§4.6).
func (c *Case) Clone() *Case {
	cp := *c
	cp.Product = &Product{
		MaxElements:      c.Product.MaxElements,
		MaxSpecies:       c.Product.MaxSpecies,
		Elements:         append([]string(nil), c.Product.Elements...),
		GasSpecies:       append([]*thermo.Species(nil), c.Product.GasSpecies...),
		CondensedSpecies: append([]*thermo.Species(nil), c.Product.CondensedSpecies...),
		NMolesGas:        append([]float64(nil), c.Product.NMolesGas...),
		LnNGas:           append([]float64(nil), c.Product.LnNGas...),
		NCondensed:       append([]float64(nil), c.Product.NCondensed...),
		NGas:             c.Product.NGas,
		NGasTotal:        c.Product.NGasTotal,
		NumActiveCondensed: c.Product.NumActiveCondensed,
		ElementsListed:   c.Product.ElementsListed,
		SpeciesListed:    c.Product.SpeciesListed,
		IsEquilibrium:    c.Product.IsEquilibrium,
	}
	cp.Product.A = cloneMatrix(c.Product.A)
	cp.Product.ACond = cloneMatrix(c.Product.ACond)
	return &cp
}

func cloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
