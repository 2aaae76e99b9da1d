// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import "strings"

// Search returns every species whose name contains query, case-sensitively.
//
// The source routine this is modelled on printed species whose names did
// NOT match the query — almost certainly a negated test left in by
// accident. This implementation uses the obviously-intended positive match
// (§9).
func (db *DB) Search(query string) []*Species {
	var out []*Species
	for _, sp := range db.species {
		if strings.Contains(sp.Name, query) {
			out = append(out, sp)
		}
	}
	return out
}

// SearchByFormula returns every species whose formula matches target
// exactly: same set of (element, coefficient) pairs, compared over all
// MaxFormulaTerms slots.
func (db *DB) SearchByFormula(target [MaxFormulaTerms]ElementCoef, numTerms int) []*Species {
	return db.searchByFormula(target, numTerms, MaxFormulaTerms)
}

// SearchByFormulaLegacy reproduces the source's comparison cutoff: the
// formula-vs-species comparison exits at j==5, comparing only the first 5
// slots. A thermo record holds at most MaxFormulaTerms (5) terms, so this
// covers every slot and returns the same species as SearchByFormula. Kept
// only for release-note parity with the original tool (§9); all production
// code in this module calls SearchByFormula instead.
func (db *DB) SearchByFormulaLegacy(target [MaxFormulaTerms]ElementCoef, numTerms int) []*Species {
	return db.searchByFormula(target, numTerms, 5)
}

func (db *DB) searchByFormula(target [MaxFormulaTerms]ElementCoef, numTerms, limit int) []*Species {
	var out []*Species
	for _, sp := range db.species {
		if sp.NumTerms != numTerms {
			continue
		}
		match := true
		for j := 0; j < limit && j < MaxFormulaTerms; j++ {
			if sp.Formula[j] != target[j] {
				match = false
				break
			}
		}
		if match {
			out = append(out, sp)
		}
	}
	return out
}
