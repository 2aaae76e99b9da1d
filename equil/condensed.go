// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import (
	"math"

	"github.com/cpmech/gocea/product"
	"github.com/cpmech/gocea/thermo"
)

// removeNonpositive evicts every active condensed species whose mole number
// has gone nonpositive (§4.4.g remove_condensed, first pass). Reports
// whether anything changed.
func removeNonpositive(p *product.Product) bool {
	changed := false
	for i := 0; i < p.NumActiveCondensed; {
		if p.NCondensed[i] <= 0 {
			p.EvictCondensed(i)
			changed = true
			continue
		}
		i++
	}
	return changed
}

// checkPhaseRanges walks the active condensed species and, for any whose
// temperature interval no longer admits T, either substitutes an alternate
// phase of the same species (if the transition point is more than 50 K from
// T) or adds the alternate phase alongside the current one (§4.4.g).
func checkPhaseRanges(p *product.Product, tdb *thermo.DB, T float64) bool {
	changed := false
	for i := 0; i < p.NumActiveCondensed; i++ {
		sp := p.CondensedSpecies[i]
		if tdb.TemperatureCheck(sp, T) {
			continue
		}
		alt := p.FindAlternatePhase(tdb, i, T)
		if alt < 0 {
			continue
		}
		transition := tdb.TransitionTemperature(sp, T)
		if math.Abs(T-transition) > 50 {
			p.SubstituteCondensed(i, alt)
			changed = true
		} else if alt >= p.NumActiveCondensed {
			p.IncludeCondensed(alt)
			changed = true
		}
	}
	return changed
}

// includeCandidates finds the inactive condensed candidate (passing
// temperature_check) minimizing G°ₖ − Σⱼ πⱼ·A_element_j(k), and activates
// it only if that minimum is negative (§4.4.g include_condensed).
func includeCandidates(p *product.Product, tdb *thermo.DB, T float64, pis []float64) bool {
	best := -1
	bestVal := math.Inf(1)
	for i := p.NumActiveCondensed; i < len(p.CondensedSpecies); i++ {
		sp := p.CondensedSpecies[i]
		if !tdb.TemperatureCheck(sp, T) {
			continue
		}
		mu := condMu(tdb, sp, T)
		var piSum float64
		for j := range p.Elements {
			piSum += pis[j] * condensedElementCoef(p, j, i)
		}
		val := mu - piSum
		if val < bestVal {
			bestVal = val
			best = i
		}
	}
	if best >= 0 && bestVal < 0 {
		p.IncludeCondensed(best)
		return true
	}
	return false
}

// manageCondensed runs the full remove/phase-check/include pass after a
// converged inner iteration and reports whether the active set changed,
// requiring another inner iteration (§4.4.g).
func manageCondensed(p *product.Product, tdb *thermo.DB, T float64, pis []float64) bool {
	changed := removeNonpositive(p)
	if checkPhaseRanges(p, tdb, T) {
		changed = true
	}
	if includeCandidates(p, tdb, T, pis) {
		changed = true
	}
	return changed
}
