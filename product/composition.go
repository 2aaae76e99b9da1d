// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package product

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocea/propellant"
)

// Component is one (reactant, mole-quantity) pair in a Composition.
type Component struct {
	Reactant *propellant.Reactant
	Moles    float64
}

// Composition is a list of propellant components (§3).
type Composition []Component

func reactantWeight(r *propellant.Reactant) float64 {
	var mw float64
	for i := 0; i < r.NumTerms; i++ {
		term := r.Formula[i]
		mw += term.Coef * AtomicWeight(term.Element)
	}
	return mw
}

// TotalMass returns m = Σ coefᵢ·Mᵢ, the total mass (g) represented by the
// composition's reactant mole quantities.
func (c Composition) TotalMass() float64 {
	var m float64
	for _, comp := range c {
		m += comp.Moles * reactantWeight(comp.Reactant)
	}
	return m
}

// ElementBalance computes bⱼ, moles of element j per gram of propellant,
// for every element symbol appearing anywhere in the composition (§3).
func (c Composition) ElementBalance() map[string]float64 {
	m := c.TotalMass()
	if m <= 0 {
		chk.Panic("product: composition has non-positive total mass")
	}
	b := make(map[string]float64)
	for _, comp := range c {
		for i := 0; i < comp.Reactant.NumTerms; i++ {
			term := comp.Reactant.Formula[i]
			b[term.Element] += comp.Moles * term.Coef / m
		}
	}
	return b
}

// HeatOfFormation returns the composition's mass-weighted heat of
// formation (J/g of propellant), used as the HP enthalpy constraint.
func (c Composition) HeatOfFormation() float64 {
	m := c.TotalMass()
	if m <= 0 {
		chk.Panic("product: composition has non-positive total mass")
	}
	var h float64
	for _, comp := range c {
		h += comp.Moles * reactantWeight(comp.Reactant) * comp.Reactant.Heat
	}
	return h / m
}
