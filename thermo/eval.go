// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// DB is a read-only collection of Species, keyed by name for lookup.
type DB struct {
	species []*Species
	byName  map[string]*Species
}

// NewDB returns an empty database, ready for Load.
func NewDB() *DB {
	return &DB{byName: make(map[string]*Species)}
}

// Add registers sp directly, for callers building a DB programmatically
// rather than from a thermo.lib-formatted file.
func (db *DB) Add(sp *Species) {
	db.species = append(db.species, sp)
	db.byName[sp.Name] = sp
}

// All returns every species in the database, in file order.
func (db *DB) All() []*Species {
	return db.species
}

// ByName looks a species up by its record name.
func (db *DB) ByName(name string) (*Species, bool) {
	sp, ok := db.byName[name]
	return sp, ok
}

// IntervalFor selects the applicable NASA-9 interval for T, clamping to the
// nearest end interval when T falls outside the union of ranges (§4.1).
func (db *DB) IntervalFor(sp *Species, T float64) Interval {
	n := len(sp.Intervals)
	if n == 0 {
		chk.Panic("thermo: species %q has no polynomial intervals", sp.Name)
	}
	if T < sp.Intervals[0].Lo {
		return sp.Intervals[0]
	}
	last := sp.Intervals[n-1]
	if T >= last.Hi {
		return last
	}
	for _, iv := range sp.Intervals {
		if iv.Contains(T) {
			return iv
		}
	}
	return last
}

// Enthalpy0 returns the dimensionless H°/RT for species sp at temperature T.
func (db *DB) Enthalpy0(sp *Species, T float64) float64 {
	if !sp.HasIntervals() {
		return sp.AssignedEnthalpy
	}
	iv := db.IntervalFor(sp, T)
	a := iv.A
	return -a[0]/(T*T) + a[1]*math.Log(T)/T + a[2] + a[3]*T/2 + a[4]*T*T/3 +
		a[5]*T*T*T/4 + a[6]*T*T*T*T/5 + iv.B[0]/T
}

// Entropy0 returns the dimensionless S°/R for species sp at temperature T.
func (db *DB) Entropy0(sp *Species, T float64) float64 {
	if !sp.HasIntervals() {
		return 0
	}
	iv := db.IntervalFor(sp, T)
	a := iv.A
	return -a[0]/(2*T*T) - a[1]/T + a[2]*math.Log(T) + a[3]*T + a[4]*T*T/2 +
		a[5]*T*T*T/3 + a[6]*T*T*T*T/4 + iv.B[1]
}

// Cp0 returns the dimensionless Cp°/R for species sp at temperature T.
func (db *DB) Cp0(sp *Species, T float64) float64 {
	if !sp.HasIntervals() {
		return 0
	}
	iv := db.IntervalFor(sp, T)
	a := iv.A
	return a[0]/(T*T) + a[1]/T + a[2] + a[3]*T + a[4]*T*T + a[5]*T*T*T + a[6]*T*T*T*T
}

// Gibbs0 returns the dimensionless G°/RT for species sp at temperature T.
func (db *DB) Gibbs0(sp *Species, T float64) float64 {
	return db.Enthalpy0(sp, T) - db.Entropy0(sp, T)
}

// refTTol is the tolerance used when matching T against a single-temperature
// (assigned-enthalpy) condensed species' RefT: such records carry RefT from
// a fixed-point decimal source, so exact float equality would effectively
// never admit the species once T has been through any arithmetic.
const refTTol = 1e-6

// TemperatureCheck reports whether T is strictly within the union of the
// species' temperature intervals, or within refTTol of RefT for a
// single-temperature (assigned-enthalpy) condensed species.
func (db *DB) TemperatureCheck(sp *Species, T float64) bool {
	for _, iv := range sp.Intervals {
		if iv.Contains(T) {
			return true
		}
	}
	if !sp.HasIntervals() {
		return math.Abs(T-sp.RefT) <= refTTol
	}
	return false
}

// TransitionTemperature returns whichever of the lowest or highest interval
// bound is nearer to T, for condensed phase-substitution decisions (§4.4.g).
func (db *DB) TransitionTemperature(sp *Species, T float64) float64 {
	lo := sp.Intervals[0].Lo
	hi := sp.Intervals[len(sp.Intervals)-1].Hi
	if math.Abs(T-lo) <= math.Abs(T-hi) {
		return lo
	}
	return hi
}
