// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package thermo

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
)

// column slices a fixed-width field [lo,hi) out of line, 0-indexed,
// tolerating short lines (returns the shorter remainder, or "" when the
// line ends before lo; no padding is added).
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

func charAt(line string, i int) byte {
	if i >= len(line) {
		return ' '
	}
	return line[i]
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// the NASA format packs some exponents without an explicit 'E', e.g.
	// "1.234567-02"; normalise those before parsing.
	s = normaliseExponent(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func normaliseExponent(s string) string {
	for i := 1; i < len(s)-1; i++ {
		if (s[i] == '+' || s[i] == '-') && (s[i-1] != 'e' && s[i-1] != 'E' && s[i-1] != '+' && s[i-1] != '-') {
			if d := s[i-1]; d >= '0' && d <= '9' {
				return s[:i] + "E" + s[i:]
			}
		}
	}
	return s
}

func isComment(line string) bool {
	if line == "" {
		return false
	}
	switch line[0] {
	case ' ', '!', '-':
		return true
	}
	return false
}

// Load reads a thermo database in the 80-column record format (§6) from r,
// appending every parsed Species into db.
//
// The formula sub-layout within the comments field (columns 18..73) is not
// pinned down by the distilled 80-column spec; this loader follows the
// historical NASA thermo.inp convention of up to 5 (2-char symbol, 6-char
// coefficient) pairs starting at column 18.
func (db *DB) Load(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 1<<20)

	var prevKey string
	var prevHeat float64
	havePrev := false

	for sc.Scan() {
		header := sc.Text()
		if isComment(header) || strings.TrimSpace(header) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(header), "END") {
			continue
		}

		sp := &Species{}
		sp.Name = strings.TrimSpace(column(header, 0, 18))
		if sp.Name == "" {
			continue
		}

		comments := column(header, 18, 73)
		sp.NumTerms = parseFormula(comments, &sp.Formula)

		nint, err := strconv.Atoi(strings.TrimSpace(column(header, 73, 75)))
		if err != nil {
			return chk.Err("thermo: bad nint field for species %q: %v", sp.Name, err)
		}
		sp.ID = strings.TrimSpace(column(header, 75, 81))
		if charAt(header, 81) == '0' {
			sp.Phase = Gas
		} else {
			sp.Phase = Condensed
		}
		sp.Weight = parseFloat(column(header, 82, 95))
		heat := parseFloat(column(header, 95, 108))

		key := sp.FormulaKey()
		if heat == 0 && havePrev && key == prevKey {
			heat = prevHeat
		}
		sp.Heat = heat
		prevKey, prevHeat, havePrev = key, heat, true

		if nint == 0 {
			if !sc.Scan() {
				return chk.Err("thermo: unexpected EOF after header for species %q", sp.Name)
			}
			line := sc.Text()
			sp.RefT = parseFloat(column(line, 1, 11))
			sp.AssignedEnthalpy = heat
		} else {
			for k := 0; k < nint; k++ {
				if !sc.Scan() {
					return chk.Err("thermo: unexpected EOF reading interval %d for species %q", k, sp.Name)
				}
				l1 := sc.Text()
				lo := parseFloat(column(l1, 1, 11))
				hi := parseFloat(column(l1, 11, 21))

				if !sc.Scan() {
					return chk.Err("thermo: unexpected EOF reading coefficients for species %q", sp.Name)
				}
				l2 := sc.Text()

				if !sc.Scan() {
					return chk.Err("thermo: unexpected EOF reading coefficients for species %q", sp.Name)
				}
				l3 := sc.Text()

				var a [7]float64
				for i := 0; i < 5; i++ {
					a[i] = parseFloat(column(l2, 16*i, 16*(i+1)))
				}
				a[5] = parseFloat(column(l3, 0, 16))
				a[6] = parseFloat(column(l3, 16, 32))
				var b [2]float64
				b[0] = parseFloat(column(l3, 48, 64))
				b[1] = parseFloat(column(l3, 64, 80))

				sp.Intervals = append(sp.Intervals, Interval{Lo: lo, Hi: hi, A: a, B: b})
			}
		}

		db.species = append(db.species, sp)
		db.byName[sp.Name] = sp
	}
	return sc.Err()
}

// parseFormula extracts up to MaxFormulaTerms (element, coefficient) pairs
// packed as 2-char symbol + 6-char coefficient, starting at offset 0 of
// field (i.e. column 18 of the full header line).
func parseFormula(field string, out *[MaxFormulaTerms]ElementCoef) int {
	n := 0
	for i := 0; i < MaxFormulaTerms; i++ {
		off := i * 8
		if off+8 > len(field) {
			break
		}
		sym := strings.TrimSpace(field[off : off+2])
		coefStr := strings.TrimSpace(field[off+2 : off+8])
		if sym == "" {
			continue
		}
		coef := parseFloat(coefStr)
		if coef == 0 {
			continue
		}
		out[n] = ElementCoef{Element: sym, Coef: coef}
		n++
	}
	return n
}
