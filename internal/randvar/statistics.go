package randvar

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Statistics are computed on demand and never cached; a RandomVariable is
// immutable so recomputation is always consistent.

// Average returns the arithmetic mean across paths.
func (x *RandomVariable) Average() float64 {
	if x.values == nil {
		return x.scalar
	}
	return stat.Mean(x.values, nil)
}

// Variance returns the sample variance across paths. A scalar has variance 0.
func (x *RandomVariable) Variance() float64 {
	if x.values == nil {
		return 0
	}
	return stat.Variance(x.values, nil)
}

// StandardDeviation returns the sample standard deviation across paths.
func (x *RandomVariable) StandardDeviation() float64 {
	if x.values == nil {
		return 0
	}
	return stat.StdDev(x.values, nil)
}

// Min returns the smallest value across paths.
func (x *RandomVariable) Min() float64 {
	if x.values == nil {
		return x.scalar
	}
	return floats.Min(x.values)
}

// Max returns the largest value across paths.
func (x *RandomVariable) Max() float64 {
	if x.values == nil {
		return x.scalar
	}
	return floats.Max(x.values)
}
