// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode algorithmic differentiation over
// vectorized random variables.
//
// A Factory creates differentiable Variables and owns the tape they record
// onto. Every arithmetic or choose operation appends a node; calling
// Gradient on an output walks the tape backwards and returns the adjoint of
// every ancestor. Discontinuous choose operations are differentiated by a
// configurable Dirac-delta approximation instead of the mathematically true
// (zero almost everywhere) derivative.
//
// Example:
//
//	factory, _ := autodiff.NewFactory(autodiff.DefaultConfig())
//	s0 := factory.FromScalar(1.0)
//	payoff := s0.SubScalar(1.05).Choose(factory.Constant(1), factory.Constant(0))
//	delta := payoff.Gradient().Of(s0.ID())
package autodiff

import (
	"github.com/adjoint-fin/stochad/internal/autodiff"
)

// Factory creates differentiable random variables and owns their tape.
type Factory = autodiff.Factory

// Variable is a differentiable random variable recorded on a tape.
type Variable = autodiff.Variable

// Gradient maps tape node ids to their accumulated adjoints.
type Gradient = autodiff.Gradient

// Tape is the append-only arena of recorded operations.
type Tape = autodiff.Tape

// OpKind tags the operation that produced a tape node.
type OpKind = autodiff.OpKind

// Config controls how a Factory differentiates choose operations.
type Config = autodiff.Config

// ConfigError reports an invalid factory configuration field.
type ConfigError = autodiff.ConfigError

// DiracDeltaMethod selects the Dirac-delta approximation strategy.
type DiracDeltaMethod = autodiff.DiracDeltaMethod

// Dirac-delta approximation methods.
const (
	DiracDeltaDirect                   = autodiff.DiracDeltaDirect
	DiracDeltaRegressionOnDistribution = autodiff.DiracDeltaRegressionOnDistribution
)

// NewFactory creates a factory with a validated configuration.
func NewFactory(cfg Config) (*Factory, error) {
	return autodiff.NewFactory(cfg)
}

// MustNewFactory is NewFactory for configurations known to be valid.
func MustNewFactory(cfg Config) *Factory {
	return autodiff.MustNewFactory(cfg)
}

// DefaultConfig returns the default smoothing configuration.
func DefaultConfig() Config {
	return autodiff.DefaultConfig()
}
