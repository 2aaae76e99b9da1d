// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package thermo implements a read-only lookup of species thermodynamic
// coefficients (NASA 9-coefficient polynomials, RP-1311) and the
// dimensionless H°/RT, S°/R, Cp°/R and G°/RT evaluators built on them.
package thermo

import "strconv"

// Phase distinguishes gaseous from condensed product species.
type Phase int

const (
	Gas Phase = iota
	Condensed
)

func (p Phase) String() string {
	if p == Gas {
		return "GAS"
	}
	return "CONDENSED"
}

// MaxFormulaTerms is the maximum number of (element, coefficient) pairs a
// thermo record may carry, per the 80-column format (§6).
const MaxFormulaTerms = 5

// ElementCoef is one (element symbol, stoichiometric coefficient) pair.
type ElementCoef struct {
	Element string
	Coef    float64
}

// Interval holds one contiguous temperature range's NASA-9 polynomial: 7
// exponent coefficients a[0..6] and 2 integration constants b[0],b[1].
type Interval struct {
	Lo, Hi float64
	A      [7]float64
	B      [2]float64
}

// Contains reports whether T lies in [Lo,Hi).
func (iv Interval) Contains(T float64) bool {
	return T >= iv.Lo && T < iv.Hi
}

// Species is one ThermoDB record: identity, phase, formula and either a
// chain of temperature-interval polynomials (the common case) or, for
// single-temperature condensed records, a fixed AssignedEnthalpy at RefT.
type Species struct {
	Name      string
	ID        string
	Phase     Phase
	Formula   [MaxFormulaTerms]ElementCoef
	NumTerms  int
	Weight    float64 // molecular weight, g/mol
	Heat      float64 // heat of formation at 298.15 K, as read from the record
	Intervals []Interval

	// single-temperature condensed records (nint == 0 in the source file)
	AssignedEnthalpy float64
	RefT             float64
}

// HasIntervals reports whether this species carries NASA-9 polynomial
// intervals (as opposed to a single assigned enthalpy).
func (sp *Species) HasIntervals() bool {
	return len(sp.Intervals) > 0
}

// FormulaKey returns a comparison key for the "same formula as previous
// record" heat-of-formation fallback (§9); order-sensitive, matching how
// the source file lists elements.
func (sp *Species) FormulaKey() string {
	var key string
	for i := 0; i < sp.NumTerms; i++ {
		key += sp.Formula[i].Element
		key += formatCoef(sp.Formula[i].Coef)
	}
	return key
}

// ElementSet returns the distinct element symbols appearing in the formula.
func (sp *Species) ElementSet() []string {
	out := make([]string, 0, sp.NumTerms)
	for i := 0; i < sp.NumTerms; i++ {
		if sp.Formula[i].Coef != 0 {
			out = append(out, sp.Formula[i].Element)
		}
	}
	return out
}

func formatCoef(c float64) string {
	// precision beyond 1e-6 never distinguishes two real thermo records.
	return strconv.FormatInt(int64(c*1e6), 10)
}
