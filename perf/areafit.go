// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import "math"

// initialLogPcPe returns the empirical starting guess for ln(pc/pe) given
// the frozen isentropic exponent, the already-converged ln(pc/pt), and the
// requested area ratio (§4.6). The subsonic branch mirrors the supersonic
// fit's magnitude but subtracts it from ln(pc/pt), since a subsonic exit
// sits at a pressure between the throat and the chamber rather than
// downstream of it; the supersonic/low-AR split below 2 is given verbatim,
// the subsonic analogue is not spelled out beyond "analogous" and is this
// package's extrapolation of it.
func initialLogPcPe(gamma, lnPcPt, ar float64, subsonic bool) float64 {
	lnAR := math.Log(ar)
	var fit float64
	switch {
	case ar < 2:
		fit = math.Sqrt(3.294*ar*ar + 1.535*lnAR)
	default:
		fit = gamma + 1.4*lnAR
	}
	if subsonic {
		v := lnPcPt - fit
		if v < 0 {
			v = 0
		}
		return v
	}
	if ar < 2 {
		return lnPcPt + fit
	}
	return fit
}

// areaRatio computes Ae/At from two stations' temperature, pressure, gas
// moles and flow speed, using mass-flow conservation A ∝ (n·T)/(P·u)
// (§4.6).
func areaRatio(throat, exit *Station) float64 {
	num := exit.N * exit.T * throat.P * throat.FlowSpeed
	den := throat.N * throat.T * exit.P * exit.FlowSpeed
	if den == 0 {
		return math.Inf(1)
	}
	return num / den
}

// pcOverPtGuess is the classical ((γ+1)/2)^(γ/(γ−1)) critical pressure
// ratio used to seed the throat loop (§4.6).
func pcOverPtGuess(gamma float64) float64 {
	return math.Pow((gamma+1)/2, gamma/(gamma-1))
}
