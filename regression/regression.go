// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package regression provides the public API for the least-squares solver.
//
// The solver fits a target random variable against an ordered basis of
// random variables across Monte Carlo paths. It performs no differentiation
// and tolerates near-singular design matrices via an SVD pseudo-inverse.
package regression

import (
	"github.com/adjoint-fin/stochad/internal/randvar"
	"github.com/adjoint-fin/stochad/internal/regression"
)

// Linear is a least-squares regression over an ordered basis.
type Linear = regression.Linear

// ErrSingularRegression reports a design matrix that could not be
// factorized; the coefficients returned alongside it are a best-effort
// degenerate (all-zero) solution.
var ErrSingularRegression = regression.ErrSingularRegression

// NewLinear creates a solver for the given ordered basis functions.
func NewLinear(basis ...*randvar.RandomVariable) *Linear {
	return regression.NewLinear(basis...)
}

// Polynomial evaluates a fitted polynomial c[0] + c[1]*x + ... at x.
func Polynomial(coeffs []float64, x *randvar.RandomVariable) *randvar.RandomVariable {
	return regression.Polynomial(coeffs, x)
}

// PolynomialBasis returns the basis {1, x, x^2, ..., x^degree}.
func PolynomialBasis(x *randvar.RandomVariable, degree int) []*randvar.RandomVariable {
	return regression.PolynomialBasis(x, degree)
}
