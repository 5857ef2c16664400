package montecarlo

import (
	"math"

	"github.com/adjoint-fin/stochad/internal/autodiff"
)

// BlackScholesModel holds the parameters of a lognormal asset model
//
//	dS = r S dt + sigma S dW.
type BlackScholesModel struct {
	InitialValue float64
	RiskFreeRate float64
	Volatility   float64
}

// Simulation is a Monte Carlo simulation of a Black-Scholes model on a
// Brownian motion, advanced by a log-Euler scheme:
//
//	S(t+dt) = S(t) * exp((r - sigma^2/2) dt + sigma dW)
//
// The asset path is built from a differentiable leaf for the initial value,
// so gradients of any payoff evaluated on the simulation can be taken with
// respect to it. The factory also fixes the Dirac-delta configuration used
// when those gradients cross an indicator.
type Simulation struct {
	model    BlackScholesModel
	brownian *BrownianMotion
	factory  *autodiff.Factory

	initial *autodiff.Variable
	assets  []*autodiff.Variable // one per grid index
}

// NewSimulation builds the full asset path up front. The tape therefore
// contains the whole forward simulation by the time any payoff is
// evaluated.
func NewSimulation(model BlackScholesModel, brownian *BrownianMotion, factory *autodiff.Factory) *Simulation {
	td := brownian.TimeDiscretization()

	initial := factory.FromScalar(model.InitialValue)

	assets := make([]*autodiff.Variable, td.NumberOfSteps()+1)
	assets[0] = initial
	for i := 0; i < td.NumberOfSteps(); i++ {
		dt := td.StepSize(i)
		drift := (model.RiskFreeRate - 0.5*model.Volatility*model.Volatility) * dt
		logReturn := brownian.Increment(i).MultScalar(model.Volatility).AddScalar(drift)
		growth := factory.ConstantValues(logReturn).Exp()
		assets[i+1] = assets[i].Mult(growth)
	}

	return &Simulation{
		model:    model,
		brownian: brownian,
		factory:  factory,
		initial:  initial,
		assets:   assets,
	}
}

// Model returns the model parameters.
func (s *Simulation) Model() BlackScholesModel { return s.model }

// BrownianMotion returns the driving noise.
func (s *Simulation) BrownianMotion() *BrownianMotion { return s.brownian }

// Factory returns the random variable factory the simulation records onto.
func (s *Simulation) Factory() *autodiff.Factory { return s.factory }

// NumberOfPaths returns the path count.
func (s *Simulation) NumberOfPaths() int { return s.brownian.NumberOfPaths() }

// InitialValue returns the differentiable leaf of the initial asset value.
// Its ID is the key under which a gradient holds the Monte Carlo delta.
func (s *Simulation) InitialValue() *autodiff.Variable { return s.initial }

// AssetValue returns the asset at the given grid time.
func (s *Simulation) AssetValue(t float64) (*autodiff.Variable, error) {
	i, err := s.brownian.TimeDiscretization().TimeIndex(t)
	if err != nil {
		return nil, err
	}
	return s.assets[i], nil
}

// Numeraire returns the money-market account exp(r t).
func (s *Simulation) Numeraire(t float64) float64 {
	return math.Exp(s.model.RiskFreeRate * t)
}

// CloneWithInitialValue rebuilds the simulation with a shifted initial
// value on the same Brownian increments and a fresh factory with the same
// configuration. Used by finite-difference estimators.
func (s *Simulation) CloneWithInitialValue(initialValue float64) (*Simulation, error) {
	model := s.model
	model.InitialValue = initialValue
	factory, err := autodiff.NewFactory(s.factory.Config())
	if err != nil {
		return nil, err
	}
	return NewSimulation(model, s.brownian, factory), nil
}
