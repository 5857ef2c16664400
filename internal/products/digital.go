// Package products implements payoffs and delta estimators evaluated on a
// Monte Carlo simulation: the digital option itself, plus the
// likelihood-ratio, finite-difference, and adjoint-regression benchmarks
// used to assess the quality of the algorithmic-differentiation deltas.
package products

import (
	"fmt"

	"github.com/adjoint-fin/stochad/internal/autodiff"
	"github.com/adjoint-fin/stochad/internal/montecarlo"
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// DigitalOption pays one unit at maturity if the asset is at or above the
// strike, zero otherwise. Its payoff is a step function of the asset, which
// is what makes its delta hard for pathwise differentiation.
type DigitalOption struct {
	Maturity float64
	Strike   float64
}

// Value returns the discounted payoff as a differentiable random variable:
//
//	exp(-r T) * choose(S(T) - K, 1, 0)
//
// The indicator enters the tape through a single Choose node; the Dirac
// configuration of the simulation's factory decides how it differentiates.
func (o DigitalOption) Value(sim *montecarlo.Simulation) (*autodiff.Variable, error) {
	asset, err := sim.AssetValue(o.Maturity)
	if err != nil {
		return nil, fmt.Errorf("digital option: %w", err)
	}

	f := sim.Factory()
	trigger := asset.SubScalar(o.Strike)
	payoff := trigger.Choose(f.Constant(1), f.Constant(0))

	discount := sim.Numeraire(0) / sim.Numeraire(o.Maturity)
	return payoff.MultScalar(discount), nil
}

// Trigger returns S(T) - K as a plain random variable, the quantity whose
// distribution near zero drives all smoothing choices.
func (o DigitalOption) Trigger(sim *montecarlo.Simulation) (*autodiff.Variable, error) {
	asset, err := sim.AssetValue(o.Maturity)
	if err != nil {
		return nil, fmt.Errorf("digital option: %w", err)
	}
	return asset.SubScalar(o.Strike), nil
}

// DeltaAAD values the option on the simulation, runs the reverse pass and
// returns the pathwise sensitivity with respect to the initial asset value.
// Its average is the Monte Carlo delta.
func (o DigitalOption) DeltaAAD(sim *montecarlo.Simulation) (*randvar.RandomVariable, error) {
	value, err := o.Value(sim)
	if err != nil {
		return nil, err
	}
	return value.Gradient().Of(sim.InitialValue().ID()), nil
}
