// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package equil

import "fmt"

// Stage names the solver phase a NoConvergence error occurred in (§7).
type Stage int

const (
	StageEquilibrium Stage = iota
	StageTemperature
)

func (s Stage) String() string {
	switch s {
	case StageEquilibrium:
		return "Equilibrium"
	case StageTemperature:
		return "Temperature"
	}
	return "?"
}

// NoConvergence is returned when the outer iteration hits ITERATION_MAX
// (§4.4, §7). A final singular system with no recovery path is reported as
// Singular instead.
type NoConvergence struct {
	Stage      Stage
	Iterations int
}

func (e *NoConvergence) Error() string {
	return fmt.Sprintf("equil: no convergence in stage %v after %d iterations", e.Stage, e.Iterations)
}

// Singular is surfaced only when condensed removal and gas reinsertion
// both fail to recover a singular assembled matrix (§4.4.b, §7).
type Singular struct {
	Recovered bool
}

func (e *Singular) Error() string {
	return fmt.Sprintf("equil: singular matrix (recovered=%v)", e.Recovered)
}
