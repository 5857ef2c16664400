// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package randvar provides the public API for vectorized random variables.
//
// A RandomVariable holds one value per simulated Monte Carlo path, or a
// single scalar that broadcasts against any path count. All operations are
// pure and return a new value.
//
// Example:
//
//	x := randvar.FromValues([]float64{-0.3, 0.1, 0.7})
//	y := x.Choose(randvar.Scalar(1), randvar.Scalar(0)) // per-path indicator
//	mean := y.Average()
package randvar

import (
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// RandomVariable is an immutable vector of per-path values, or a scalar.
type RandomVariable = randvar.RandomVariable

// ShapeError reports an operation between two non-scalar random variables
// with different path counts.
type ShapeError = randvar.ShapeError

// Scalar returns a random variable holding a single broadcast value.
func Scalar(v float64) *RandomVariable {
	return randvar.Scalar(v)
}

// FromValues returns a random variable holding one value per path.
func FromValues(values []float64) *RandomVariable {
	return randvar.FromValues(values)
}

// Compatible returns an error if a and b are both non-scalar with different
// path counts.
func Compatible(a, b *RandomVariable) error {
	return randvar.Compatible(a, b)
}
