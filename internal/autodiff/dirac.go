package autodiff

import (
	"math"

	"github.com/adjoint-fin/stochad/internal/randvar"
	"github.com/adjoint-fin/stochad/internal/regression"
)

// Window-size sweep used by the density regression: symmetric fractions of
// the regression width, excluding the zero-width sample (paths-in-window /
// window-size is undefined there).
const (
	densitySweepHalfRange = 0.5
	densitySweepStep      = 0.01
)

// diracWeight returns the per-path weight substituted for the derivative of
// the indicator in choose(X, a, b). x is the trigger operand's primal.
func (f *Factory) diracWeight(x *randvar.RandomVariable) *randvar.RandomVariable {
	width := f.cfg.DiracWidthPerStdDev

	// Maximal smoothing: flat weight over the whole path set, no window.
	if math.IsInf(width, 1) {
		return randvar.Scalar(1)
	}
	// True derivative of the step function: zero almost everywhere.
	if width == 0 {
		return randvar.Scalar(0)
	}

	w := width * x.StandardDeviation()
	if w == 0 {
		// Degenerate trigger (all paths equal); nothing to localize.
		return randvar.Scalar(0)
	}

	localizer := window(x, w)

	switch f.cfg.DiracMethod {
	case DiracDeltaRegressionOnDistribution:
		mass := localizer.Average()
		if mass == 0 {
			// No path inside the window; the regression weight has no
			// support, and neither would the direct one.
			return localizer.MultScalar(0)
		}
		density, ok := f.densityRegression(x)
		if !ok {
			return localizer.DivScalar(w)
		}
		return localizer.Mult(density).DivScalar(mass)
	default:
		return localizer.DivScalar(w)
	}
}

// window returns the indicator of -w/2 <= x < w/2, built from the same
// choose primitive the payoffs use.
func window(x *randvar.RandomVariable, w float64) *randvar.RandomVariable {
	one := randvar.Scalar(1)
	zero := randvar.Scalar(0)
	above := x.AddScalar(w / 2).Choose(one, zero)
	below := x.SubScalar(w / 2).Choose(zero, one)
	return above.Mult(below)
}

// densityRegression estimates the distribution density of x near zero and
// returns it evaluated at every path's value of x. It samples one-sided
// windows of varying signed size m, records the empirical mass per unit
// size, and fits a polynomial through the samples.
func (f *Factory) densityRegression(x *randvar.RandomVariable) (*randvar.RandomVariable, bool) {
	sweepWidth := f.cfg.DensityRegressionWidthPerStdDev * x.StandardDeviation()
	if sweepWidth == 0 {
		return nil, false
	}

	one := randvar.Scalar(1)
	zero := randvar.Scalar(0)

	var sizes, densities []float64
	for factor := -densitySweepHalfRange; factor < densitySweepHalfRange+densitySweepStep/2; factor += densitySweepStep {
		if math.Abs(factor) < 1e-10 {
			continue // zero-width window
		}
		m := factor * sweepWidth
		// Indicator of the one-sided window of size |m| touching zero:
		// [-m, 0) for m > 0, [0, -m) for m < 0.
		maskPos := x.AddScalar(math.Max(m, 0)).Choose(one, zero)
		maskNeg := x.AddScalar(math.Min(m, 0)).Choose(zero, one)
		density := maskPos.Mult(maskNeg).Average() / math.Abs(m)
		sizes = append(sizes, m)
		densities = append(densities, density)
	}
	if len(sizes) == 0 {
		return nil, false
	}

	sampleX := randvar.FromValues(sizes)
	sampleY := randvar.FromValues(densities)
	basis := regression.PolynomialBasis(sampleX, f.cfg.DensityRegressionDegree)
	// A singular fit degrades to zero coefficients, which still yields a
	// defined (zero) weight rather than failing the gradient computation.
	coeffs, _ := regression.NewLinear(basis...).Coefficients(sampleY)
	return regression.Polynomial(coeffs, x), true
}
