// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package product implements the element and species indexers and the
// Product/Case aggregates of §3 and §4.2: scanning a propellant
// composition to build the active element list, scanning the thermo
// database to find candidate product species, and the mutable mole-number
// state the equilibrium solver iterates on.
package product

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/gocea/propellant"
	"github.com/cpmech/gocea/thermo"
)

// MaxElements is the default cap on distinct elements in a Product (§3).
const MaxElements = 15

// MaxSpecies is the default cap on candidate species per phase (§3).
const MaxSpecies = 400

// CapacityExceeded is returned when the element or species indexers exceed
// their configured capacity (§4.2, §4.4).
type CapacityExceeded struct {
	Kind string // "elements" or "species"
	N    int
	Max  int
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("capacity exceeded: %s count %d exceeds max %d", e.Kind, e.N, e.Max)
}

// Product holds the candidate and active species arrays for one Case
// (§3).
type Product struct {
	MaxElements int
	MaxSpecies  int

	Elements []string // element symbols present, in first-seen order

	GasSpecies       []*thermo.Species // candidate gas species
	CondensedSpecies []*thermo.Species // candidate condensed species

	// A[j][k] is the stoichiometric coefficient of element j in gas
	// species k, indexed in the same order as Elements/GasSpecies.
	A [][]float64

	// ACond[j][i] is the stoichiometric coefficient of element j in
	// condensed candidate i, in CondensedSpecies order; the first
	// NumActiveCondensed columns are the active set.
	ACond [][]float64

	NGas      float64   // n, moles of gas per gram (Σ n[GAS])
	NGasTotal float64   // Σn including condensed
	NMolesGas []float64 // n[GAS][k]
	LnNGas    []float64 // ln n[GAS][k]

	NCondensed       []float64 // n[CONDENSED][k], only the first NumActiveCondensed entries are active
	NumActiveCondensed int

	ElementsListed bool
	SpeciesListed  bool
	IsEquilibrium  bool
}

// NewProduct returns an empty Product with the default capacities.
func NewProduct() *Product {
	return &Product{MaxElements: MaxElements, MaxSpecies: MaxSpecies}
}

// ElementIndex returns the index of an element symbol in p.Elements, or -1.
func (p *Product) ElementIndex(symbol string) int {
	for i, e := range p.Elements {
		if e == symbol {
			return i
		}
	}
	return -1
}

// ListElements scans comp's reactants and fills p.Elements with every
// distinct element symbol appearing in a nonzero formula term (§4.2).
func (p *Product) ListElements(comp Composition) error {
	if p.MaxElements == 0 {
		p.MaxElements = MaxElements
	}
	for _, c := range comp {
		for i := 0; i < c.Reactant.NumTerms; i++ {
			term := c.Reactant.Formula[i]
			if term.Coef == 0 {
				continue
			}
			if p.ElementIndex(term.Element) >= 0 {
				continue
			}
			if len(p.Elements) >= p.MaxElements {
				return &CapacityExceeded{Kind: "elements", N: len(p.Elements) + 1, Max: p.MaxElements}
			}
			p.Elements = append(p.Elements, term.Element)
		}
	}
	p.ElementsListed = true
	return nil
}

// speciesElementsKnown reports whether every element of sp's formula is
// present in p.Elements.
func (p *Product) speciesElementsKnown(sp *thermo.Species) bool {
	for i := 0; i < sp.NumTerms; i++ {
		if sp.Formula[i].Coef == 0 {
			continue
		}
		if p.ElementIndex(sp.Formula[i].Element) < 0 {
			return false
		}
	}
	return true
}

// ListProducts scans db for species whose formula is entirely covered by
// p.Elements, partitions them by phase, and seeds the initial mole-number
// state (§4.2).
func (p *Product) ListProducts(db *thermo.DB) error {
	if !p.ElementsListed {
		chk.Panic("product: ListProducts called before ListElements")
	}
	if p.MaxSpecies == 0 {
		p.MaxSpecies = MaxSpecies
	}
	p.GasSpecies = p.GasSpecies[:0]
	p.CondensedSpecies = p.CondensedSpecies[:0]
	for _, sp := range db.All() {
		if sp.NumTerms == 0 || !p.speciesElementsKnown(sp) {
			continue
		}
		switch sp.Phase {
		case thermo.Gas:
			if len(p.GasSpecies) >= p.MaxSpecies {
				return &CapacityExceeded{Kind: "species", N: len(p.GasSpecies) + 1, Max: p.MaxSpecies}
			}
			p.GasSpecies = append(p.GasSpecies, sp)
		case thermo.Condensed:
			if len(p.CondensedSpecies) >= p.MaxSpecies {
				return &CapacityExceeded{Kind: "species", N: len(p.CondensedSpecies) + 1, Max: p.MaxSpecies}
			}
			p.CondensedSpecies = append(p.CondensedSpecies, sp)
		}
	}

	p.buildStoichMatrix()

	// seed initial mole numbers: n = Σn = 0.1; gas nⱼ = 0.1/Ng (§4.2).
	ng := len(p.GasSpecies)
	p.NMolesGas = make([]float64, ng)
	p.LnNGas = make([]float64, ng)
	seed := 0.0
	if ng > 0 {
		seed = 0.1 / float64(ng)
	}
	for k := range p.NMolesGas {
		p.NMolesGas[k] = seed
		p.LnNGas[k] = logOrFloor(seed)
	}
	p.NGas = 0.1
	p.NGasTotal = 0.1
	p.NCondensed = make([]float64, len(p.CondensedSpecies))
	p.NumActiveCondensed = 0

	p.SpeciesListed = true
	return nil
}

// buildStoichMatrix fills A[j][k] = stoichiometric coefficient of element
// j in gas species k, and ACond for the full condensed candidate set.
func (p *Product) buildStoichMatrix() {
	ne := len(p.Elements)
	p.A = make([][]float64, ne)
	for j := range p.A {
		p.A[j] = make([]float64, len(p.GasSpecies))
	}
	p.ACond = make([][]float64, ne)
	for j := range p.ACond {
		p.ACond[j] = make([]float64, len(p.CondensedSpecies))
	}
	for j, elem := range p.Elements {
		for k, sp := range p.GasSpecies {
			p.A[j][k] = formulaCoef(sp, elem)
		}
		for i, sp := range p.CondensedSpecies {
			p.ACond[j][i] = formulaCoef(sp, elem)
		}
	}
}

// SwapCondensed exchanges the candidate condensed species at full-list
// indices i and j, keeping NCondensed and the ACond columns in lockstep so
// ACond[row][i] always describes CondensedSpecies[i] (§4.4.g).
func (p *Product) SwapCondensed(i, j int) {
	if i == j {
		return
	}
	p.CondensedSpecies[i], p.CondensedSpecies[j] = p.CondensedSpecies[j], p.CondensedSpecies[i]
	p.NCondensed[i], p.NCondensed[j] = p.NCondensed[j], p.NCondensed[i]
	for row := range p.ACond {
		p.ACond[row][i], p.ACond[row][j] = p.ACond[row][j], p.ACond[row][i]
	}
}

// EvictCondensed drops the active condensed species at index i (its moles
// have gone nonpositive), swapping the last active entry into its place and
// shrinking NumActiveCondensed (§4.4.g remove_condensed).
func (p *Product) EvictCondensed(i int) {
	last := p.NumActiveCondensed - 1
	p.SwapCondensed(i, last)
	p.NCondensed[last] = 0
	p.NumActiveCondensed--
}

// IncludeCondensed activates the inactive candidate at full-list index j,
// seeding it with zero moles (§4.4.g include_condensed).
func (p *Product) IncludeCondensed(j int) {
	if j < p.NumActiveCondensed || j >= len(p.CondensedSpecies) {
		return
	}
	p.SwapCondensed(p.NumActiveCondensed, j)
	p.NCondensed[p.NumActiveCondensed] = 0
	p.NumActiveCondensed++
}

// SubstituteCondensed replaces the active species at index i with the
// inactive candidate at full-list index j, carrying i's mole number over to
// the replacement (phase-transition substitution, §4.4.g).
func (p *Product) SubstituteCondensed(i, j int) {
	moles := p.NCondensed[i]
	p.SwapCondensed(i, j)
	p.NCondensed[i] = moles
}

// FindAlternatePhase returns the full-list index of a condensed candidate
// other than exclude sharing the same formula whose thermo interval admits
// T, or -1 if none (§4.4.g temperature-range phase check).
func (p *Product) FindAlternatePhase(db *thermo.DB, exclude int, T float64) int {
	key := p.CondensedSpecies[exclude].FormulaKey()
	for i, sp := range p.CondensedSpecies {
		if i == exclude {
			continue
		}
		if sp.FormulaKey() != key {
			continue
		}
		if db.TemperatureCheck(sp, T) {
			return i
		}
	}
	return -1
}

func formulaCoef(sp *thermo.Species, elem string) float64 {
	for i := 0; i < sp.NumTerms; i++ {
		if sp.Formula[i].Element == elem {
			return sp.Formula[i].Coef
		}
	}
	return 0
}

const logConcFloor = -1e30 // effectively -inf, never actually read back through math.Exp

func logOrFloor(n float64) float64 {
	if n <= 0 {
		return logConcFloor
	}
	return math.Log(n)
}

// Reactant is re-exported for callers that only need the propellant type
// alongside Product without importing the propellant package directly.
type Reactant = propellant.Reactant
