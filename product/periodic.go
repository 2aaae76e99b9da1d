// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package product

// atomicNumber maps the element symbols that appear in propellant/thermo
// records (CEA-style, upper-case, "E" for the free electron) to their
// atomic number. Z=0 is reserved for the electron.
var atomicNumber = map[string]int{
	"E": 0,
	"H": 1, "HE": 2, "LI": 3, "BE": 4, "B": 5, "C": 6, "N": 7, "O": 8,
	"F": 9, "NE": 10, "NA": 11, "MG": 12, "AL": 13, "SI": 14, "P": 15,
	"S": 16, "CL": 17, "AR": 18, "K": 19, "CA": 20, "TI": 22, "CR": 24,
	"MN": 25, "FE": 26, "NI": 28, "CU": 29, "ZN": 30, "ZR": 40, "BA": 56,
	"W": 74, "PB": 82,
}

// AtomicNumber returns the atomic number for an element symbol, and
// whether the symbol is known.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := atomicNumber[symbol]
	return z, ok
}

// atomicWeight maps element symbols to their standard atomic weight
// (g/mol), used to turn a reactant's formula into a molecular weight.
var atomicWeight = map[string]float64{
	"E": 0.00054858,
	"H": 1.00794, "HE": 4.002602, "LI": 6.941, "BE": 9.012182, "B": 10.811,
	"C": 12.0107, "N": 14.0067, "O": 15.9994, "F": 18.9984032, "NE": 20.1797,
	"NA": 22.98977, "MG": 24.305, "AL": 26.981538, "SI": 28.0855,
	"P": 30.973762, "S": 32.065, "CL": 35.453, "AR": 39.948, "K": 39.0983,
	"CA": 40.078, "TI": 47.867, "CR": 51.9961, "MN": 54.938049,
	"FE": 55.845, "NI": 58.6934, "CU": 63.546, "ZN": 65.409, "ZR": 91.224,
	"BA": 137.327, "W": 183.84, "PB": 207.2,
}

// AtomicWeight returns the standard atomic weight for an element symbol
// (g/mol).
func AtomicWeight(symbol string) float64 {
	return atomicWeight[symbol]
}
