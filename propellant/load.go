// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propellant

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

const (
	calPerGToJPerG    = 4.1868     // §6
	lbPerIn3ToGPerCm3 = 27.679905  // §6
)

func column(line string, lo, hi int) string {
	n := len(line)
	if lo >= n {
		return ""
	}
	if hi > n {
		hi = n
	}
	return line[lo:hi]
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// Load reads the propellant database format of §6: one record per line,
// lines starting with '*' are comments and are skipped, a leading '+'
// continues (appends to) the previous record's name. Columns: name
// [9..39), six (coef[3], element[2]) groups from column 39 with stride 5,
// heat (cal/g) at [69..74), density (lb/in^3) at [75..80).
func (db *DB) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 1<<20)

	var cur *Reactant
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if line[0] == '*' {
			continue
		}
		if line[0] == '+' {
			if cur == nil {
				return chk.Err("propellant: '+' continuation with no preceding record")
			}
			delete(db.byName, cur.Name)
			cur.Name += strings.TrimSpace(column(line, 9, 39))
			db.byName[cur.Name] = cur
			continue
		}

		r := &Reactant{}
		r.Name = strings.TrimSpace(column(line, 9, 39))

		n := 0
		for i := 0; i < MaxFormulaTerms; i++ {
			off := 39 + i*5
			coefStr := column(line, off, off+3)
			elem := strings.TrimSpace(column(line, off+3, off+5))
			coef := parseFloat(coefStr)
			if elem == "" || coef == 0 {
				continue
			}
			r.Formula[n] = ElementCoef{Element: elem, Coef: coef}
			n++
		}
		r.NumTerms = n

		heatCalPerG := parseFloat(column(line, 69, 74))
		r.Heat = heatCalPerG * calPerGToJPerG

		densityLbPerIn3 := parseFloat(column(line, 75, 80))
		r.Density = densityLbPerIn3 * lbPerIn3ToGPerCm3

		db.reactants = append(db.reactants, r)
		db.byName[r.Name] = r
		cur = r
	}
	return sc.Err()
}
