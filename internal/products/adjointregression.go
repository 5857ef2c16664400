package products

import (
	"fmt"
	"math"

	"github.com/adjoint-fin/stochad/internal/autodiff"
	"github.com/adjoint-fin/stochad/internal/montecarlo"
	"github.com/adjoint-fin/stochad/internal/randvar"
	"github.com/adjoint-fin/stochad/internal/regression"
)

// AdjointRegressionConfig controls the adjoint-regression delta estimator.
// The basis sets are explicit: there is no implied "correct" choice, and
// the defaults reproduce a constant-only sensitivity fit with a degree-one
// density fit.
type AdjointRegressionConfig struct {
	// LocalizationWidthPerStdDev is the width of the window around the
	// trigger level, in standard deviations, to which the sensitivity
	// regression is restricted.
	LocalizationWidthPerStdDev float64

	// DensityRegressionWidthPerStdDev is the sweep range for the density
	// samples, in standard deviations of the trigger.
	DensityRegressionWidthPerStdDev float64

	// DensityRegressionDegree is the polynomial degree of the density fit.
	DensityRegressionDegree int

	// SensitivityBasisDegrees lists the powers of the localized trigger
	// added to the sensitivity regression basis beyond the localizer
	// itself. Empty means a constant-only (localizer) fit.
	SensitivityBasisDegrees []int
}

// DefaultAdjointRegressionConfig mirrors DefaultConfig of the autodiff
// factory: a 0.05 standard deviation localizer and a degree-one density fit
// over half a standard deviation.
func DefaultAdjointRegressionConfig() AdjointRegressionConfig {
	return AdjointRegressionConfig{
		LocalizationWidthPerStdDev:      0.05,
		DensityRegressionWidthPerStdDev: 0.5,
		DensityRegressionDegree:         1,
	}
}

// DeltaAdjointRegression estimates the digital option delta by separating
// the discontinuous part of the pathwise sensitivity and replacing it with
// a regressed estimate:
//
//  1. run the reverse pass twice, once with a zero smoothing width (the
//     indicator contributes nothing) and once with an infinite width (the
//     indicator contributes its full adjoint mass); the difference A is the
//     adjoint carried through the discontinuity,
//  2. regress A against basis functions of the trigger X = S(T) - K,
//     localized to a window around zero,
//  3. estimate the density of X at zero by a polynomial fit of empirical
//     window masses,
//  4. recombine: delta = A0 + (regressed A at zero) * (density at zero).
//
// The returned random variable is pathwise; its average is the delta.
func (o DigitalOption) DeltaAdjointRegression(model montecarlo.BlackScholesModel, brownian *montecarlo.BrownianMotion, cfg AdjointRegressionConfig) (*randvar.RandomVariable, error) {
	zeroWidth, err := autodiff.NewFactory(autodiff.Config{DiracWidthPerStdDev: 0})
	if err != nil {
		return nil, err
	}
	inftyWidth, err := autodiff.NewFactory(autodiff.Config{DiracWidthPerStdDev: math.Inf(1)})
	if err != nil {
		return nil, err
	}

	simZero := montecarlo.NewSimulation(model, brownian, zeroWidth)
	simInfty := montecarlo.NewSimulation(model, brownian, inftyWidth)

	a0, err := o.DeltaAAD(simZero)
	if err != nil {
		return nil, err
	}
	a1, err := o.DeltaAAD(simInfty)
	if err != nil {
		return nil, err
	}
	adjoint := a1.Sub(a0)

	trigger, err := o.Trigger(simZero)
	if err != nil {
		return nil, err
	}
	x := trigger.Value()

	density, err := densityAtZero(x, cfg)
	if err != nil {
		return nil, err
	}

	// Localize the sensitivity regression to a window around the trigger
	// level.
	localizationSize := cfg.LocalizationWidthPerStdDev * x.StandardDeviation()
	if localizationSize <= 0 {
		return nil, fmt.Errorf("adjoint regression: localization window must be positive")
	}
	one := randvar.Scalar(1)
	zero := randvar.Scalar(0)
	localizer := x.AddScalar(localizationSize / 2).Choose(one, zero).
		Mult(x.SubScalar(localizationSize / 2).Choose(zero, one))

	localizedAdjoint := adjoint.Mult(localizer)
	localizedTrigger := x.Mult(localizer)

	basis := []*randvar.RandomVariable{localizer}
	for _, d := range cfg.SensitivityBasisDegrees {
		basis = append(basis, localizedTrigger.Pow(float64(d)))
	}
	// A singular fit degrades to zero coefficients; the estimate then falls
	// back to the zero-width delta instead of failing.
	coeffs, _ := regression.NewLinear(basis...).Coefficients(localizedAdjoint)

	alpha := coeffs[0] * density
	return a0.AddScalar(alpha), nil
}

// densityAtZero fits a polynomial through empirical one-sided window
// densities of x and returns its value at zero, i.e. the constant
// coefficient.
func densityAtZero(x *randvar.RandomVariable, cfg AdjointRegressionConfig) (float64, error) {
	sweepWidth := cfg.DensityRegressionWidthPerStdDev * x.StandardDeviation()
	if sweepWidth <= 0 {
		return 0, fmt.Errorf("adjoint regression: density sweep width must be positive")
	}

	one := randvar.Scalar(1)
	zero := randvar.Scalar(0)

	var sizes, densities []float64
	for factor := -0.5; factor < 0.505; factor += 0.01 {
		if math.Abs(factor) < 1e-10 {
			continue // zero-width window
		}
		m := factor * sweepWidth
		maskPos := x.AddScalar(math.Max(m, 0)).Choose(one, zero)
		maskNeg := x.AddScalar(math.Min(m, 0)).Choose(zero, one)
		density := maskPos.Mult(maskNeg).Average() / math.Abs(m)
		sizes = append(sizes, m)
		densities = append(densities, density)
	}

	sampleX := randvar.FromValues(sizes)
	sampleY := randvar.FromValues(densities)
	basis := regression.PolynomialBasis(sampleX, cfg.DensityRegressionDegree)
	coeffs, err := regression.NewLinear(basis...).Coefficients(sampleY)
	if err != nil {
		return 0, fmt.Errorf("adjoint regression: %w", err)
	}
	return coeffs[0], nil
}
