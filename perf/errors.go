// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package perf

import "fmt"

// NoEquilibrium is returned when the chamber equilibrium itself fails; the
// performance solver never reaches the throat or exit loops (§4.7).
type NoEquilibrium struct {
	Cause error
}

func (e *NoEquilibrium) Error() string {
	return fmt.Sprintf("perf: chamber equilibrium failed: %v", e.Cause)
}

func (e *NoEquilibrium) Unwrap() error { return e.Cause }

// AreaRatioOutOfRange is returned when the requested exit area ratio is not
// a physically reachable expansion (Ae/At ≤ 1); no exit state is produced
// (§4.6, §4.7).
type AreaRatioOutOfRange struct {
	AeAt float64
}

func (e *AreaRatioOutOfRange) Error() string {
	return fmt.Sprintf("perf: area ratio %.4g out of range (must be > 1)", e.AeAt)
}
