// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package propellant

import (
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func field(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

func buildLine(name string, terms []ElementCoef, heatCalPerG, densityLbIn3 float64) string {
	line := field("", 9) + field(name, 30)
	for i := 0; i < MaxFormulaTerms; i++ {
		if i < len(terms) {
			line += field(intStr(terms[i].Coef), 3) + field(terms[i].Element, 2)
		} else {
			line += field("", 5)
		}
	}
	line += field(floatStr(heatCalPerG), 5) + " " + field(floatStr(densityLbIn3), 5)
	return line
}

func intStr(v float64) string {
	return field2(v)
}
func field2(v float64) string {
	s := ""
	n := int(v)
	if n == 0 {
		return "0"
	}
	for n > 0 {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	return s
}
func floatStr(v float64) string {
	return intStr(v)
}

func TestLoadAluminumReactant(tst *testing.T) {
	chk.PrintTitle("TestLoadAluminumReactant")
	line := buildLine("AL", []ElementCoef{{Element: "AL", Coef: 1}}, 0, 100)
	db := NewDB()
	if err := db.Load(strings.NewReader(line + "\n")); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	r, ok := db.ByName("AL")
	if !ok {
		tst.Fatal("AL not found")
	}
	chk.IntAssert(r.NumTerms, 1)
	chk.AnaNum(tst, "density", 1e-6, r.Density, 100*lbPerIn3ToGPerCm3, chk.Verbose)
}

func TestContinuationLine(tst *testing.T) {
	chk.PrintTitle("TestContinuationLine")
	line1 := buildLine("HYDRAZINE", []ElementCoef{{Element: "N", Coef: 2}, {Element: "H", Coef: 4}}, 0, 0)
	line2 := "+" + field("", 8) + field("-N2H4", 30)
	db := NewDB()
	if err := db.Load(strings.NewReader(line1 + "\n" + line2 + "\n")); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	r, ok := db.ByName("HYDRAZINE-N2H4")
	if !ok {
		tst.Fatalf("expected continued name, got: %v", db.All())
	}
	chk.IntAssert(r.NumTerms, 2)
}

func TestCommentLineSkipped(tst *testing.T) {
	chk.PrintTitle("TestCommentLineSkipped")
	line := buildLine("O2", []ElementCoef{{Element: "O", Coef: 2}}, 0, 0)
	db := NewDB()
	if err := db.Load(strings.NewReader("* a comment\n" + line + "\n")); err != nil {
		tst.Fatalf("load failed: %v", err)
	}
	chk.IntAssert(len(db.All()), 1)
}
