package products

import (
	"fmt"

	"github.com/adjoint-fin/stochad/internal/montecarlo"
)

// DigitalDeltaLikelihood estimates the delta of a digital option with the
// likelihood-ratio method: the payoff is weighted by the derivative of the
// log transition density with respect to the initial value,
//
//	exp(-r T) * E[ 1{S(T) >= K} * (ln(S(T)/S0) - (r - sigma^2/2) T) / (S0 sigma^2 T) ].
//
// For a digital option this is the benchmark estimator; it involves no
// smoothing at all and its variance is what the AAD-with-regression method
// is measured against.
type DigitalDeltaLikelihood struct {
	Maturity float64
	Strike   float64
}

// Value returns the likelihood-ratio delta estimate.
func (o DigitalDeltaLikelihood) Value(sim *montecarlo.Simulation) (float64, error) {
	asset, err := sim.AssetValue(o.Maturity)
	if err != nil {
		return 0, fmt.Errorf("digital delta likelihood: %w", err)
	}
	model := sim.Model()

	s := asset.Value()
	s0 := model.InitialValue
	sigma := model.Volatility
	t := o.Maturity

	drift := (model.RiskFreeRate - 0.5*sigma*sigma) * t
	weight := s.DivScalar(s0).Log().SubScalar(drift).DivScalar(s0 * sigma * sigma * t)

	indicator := s.SubScalar(o.Strike).Choose(weight, weight.MultScalar(0))
	discount := sim.Numeraire(0) / sim.Numeraire(o.Maturity)
	return indicator.Average() * discount, nil
}
