// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linsolve provides the abstract dense linear solve the rest of
// this module treats as a black box (§1, §4.3): solve(A,b) -> x for a
// square n×n system, reporting Singular on a (near-)zero pivot.
//
// This mirrors the shape of the teacher's la.LinSol factory
// (github.com/cpmech/gofem/fem: la.GetSolver("umfpack"/"mumps")) but, since
// our systems are small and dense rather than large and sparse, is backed
// by gonum's partial-pivot LU (gonum.org/v1/gonum/mat) instead of a sparse
// external solver.
package linsolve

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when the assembled matrix has no usable pivot.
var ErrSingular = errors.New("linsolve: singular matrix")

// Solver solves dense square systems A*x = b.
type Solver interface {
	Solve(a [][]float64, b []float64) (x []float64, err error)
}

// LU is the default Solver: Gaussian elimination with partial pivoting via
// gonum's mat.LU.
type LU struct{}

// NewLU returns the default dense solver.
func NewLU() *LU {
	return &LU{}
}

// Solve factors a and solves a*x = b. a is consumed by value (copied into a
// gonum dense matrix) and is never mutated.
func (LU) Solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	if n == 0 {
		return nil, nil
	}
	for _, row := range a {
		if len(row) != n {
			return nil, errors.New("linsolve: matrix is not square")
		}
	}
	if len(b) != n {
		return nil, errors.New("linsolve: rhs length does not match matrix size")
	}

	flat := make([]float64, n*n)
	for i, row := range a {
		copy(flat[i*n:(i+1)*n], row)
	}
	A := mat.NewDense(n, n, flat)

	var lu mat.LU
	lu.Factorize(A)
	if cond := lu.Cond(); math.IsInf(cond, 1) || cond > 1e16 {
		return nil, ErrSingular
	}

	bVec := mat.NewVecDense(n, append([]float64(nil), b...))
	var xVec mat.VecDense
	if err := lu.SolveVecTo(&xVec, false, bVec); err != nil {
		return nil, ErrSingular
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = xVec.AtVec(i)
	}
	return x, nil
}
