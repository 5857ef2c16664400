package products

import (
	"fmt"

	"github.com/adjoint-fin/stochad/internal/montecarlo"
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// DeltaFiniteDifference estimates the option delta by central finite
// differences on the initial value, re-simulating on the same Brownian
// increments. The bump size is widthPerStdDev standard deviations of the
// trigger S(T) - K, matching the smoothing window of the AAD estimators so
// the methods are comparable.
//
// The returned random variable is the pathwise difference quotient; its
// average is the delta estimate.
func (o DigitalOption) DeltaFiniteDifference(sim *montecarlo.Simulation, widthPerStdDev float64) (*randvar.RandomVariable, error) {
	trigger, err := o.Trigger(sim)
	if err != nil {
		return nil, err
	}
	epsilon := widthPerStdDev * trigger.Value().StandardDeviation()
	if epsilon <= 0 {
		return nil, fmt.Errorf("finite difference: bump size must be positive, got %g", epsilon)
	}

	s0 := sim.Model().InitialValue

	simUp, err := sim.CloneWithInitialValue(s0 + epsilon/2)
	if err != nil {
		return nil, err
	}
	valueUp, err := o.Value(simUp)
	if err != nil {
		return nil, err
	}

	simDown, err := sim.CloneWithInitialValue(s0 - epsilon/2)
	if err != nil {
		return nil, err
	}
	valueDown, err := o.Value(simDown)
	if err != nil {
		return nil, err
	}

	return valueUp.Value().Sub(valueDown.Value()).DivScalar(epsilon), nil
}
