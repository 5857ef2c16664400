// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package montecarlo provides the public API for the path simulator: a time
// grid, a seeded one-factor Brownian motion, and a Black-Scholes model
// advanced by a log-Euler scheme.
//
// The autodiff factory is injected into the simulation, so the same model
// code produces plain or differentiable paths depending on the factory's
// configuration.
//
// Example:
//
//	td := montecarlo.NewTimeDiscretization(0.0, 1, 1.0)
//	bm := montecarlo.NewBrownianMotion(td, 200000, 3141)
//	model := montecarlo.BlackScholesModel{InitialValue: 1.0, RiskFreeRate: 0.05, Volatility: 0.50}
//	sim := montecarlo.NewSimulation(model, bm, autodiff.MustNewFactory(autodiff.DefaultConfig()))
package montecarlo

import (
	"github.com/adjoint-fin/stochad/internal/autodiff"
	"github.com/adjoint-fin/stochad/internal/montecarlo"
)

// TimeDiscretization is an equidistant time grid.
type TimeDiscretization = montecarlo.TimeDiscretization

// BrownianMotion holds pre-generated, seeded Brownian increments.
type BrownianMotion = montecarlo.BrownianMotion

// BlackScholesModel holds the parameters of the lognormal asset model.
type BlackScholesModel = montecarlo.BlackScholesModel

// Simulation is a Monte Carlo simulation of a Black-Scholes model.
type Simulation = montecarlo.Simulation

// NewTimeDiscretization creates a grid starting at initial with
// numberOfSteps steps of size deltaT.
func NewTimeDiscretization(initial float64, numberOfSteps int, deltaT float64) *TimeDiscretization {
	return montecarlo.NewTimeDiscretization(initial, numberOfSteps, deltaT)
}

// NewBrownianMotion generates a one-factor Brownian motion on the given
// grid with the given path count and seed.
func NewBrownianMotion(td *TimeDiscretization, numberOfPaths int, seed int64) *BrownianMotion {
	return montecarlo.NewBrownianMotion(td, numberOfPaths, seed)
}

// NewSimulation builds the asset path for the model on the given noise,
// recording onto the factory's tape.
func NewSimulation(model BlackScholesModel, brownian *BrownianMotion, factory *autodiff.Factory) *Simulation {
	return montecarlo.NewSimulation(model, brownian, factory)
}
