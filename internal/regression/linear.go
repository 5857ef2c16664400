// Package regression implements a plain least-squares solver over random
// variables. It performs no differentiation; the autodiff layer uses it as a
// numerical building block for the density regression, and callers can use
// it directly for diagnostic regressions.
package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/adjoint-fin/stochad/internal/randvar"
)

// ErrSingularRegression reports a design matrix that could not be factorized
// even for a pseudo-inverse solution. Coefficients still returns a
// best-effort (all-zero) solution alongside this error so a gradient
// computation can proceed degenerately instead of failing.
var ErrSingularRegression = errors.New("regression: design matrix could not be factorized")

// rank cutoff relative to the largest singular value.
const singularValueTolerance = 1e-12

// Linear is a least-squares regression over an ordered set of basis random
// variables. Given a target Y it finds coefficients c minimizing
//
//	sum over paths of (Y - sum_i c_i * basis_i)^2
//
// via the singular value decomposition of the design matrix, so
// near-singular bases (e.g. duplicated basis functions) yield a
// minimum-norm solution rather than an error.
type Linear struct {
	basis []*randvar.RandomVariable
}

// NewLinear creates a solver for the given ordered basis functions.
func NewLinear(basis ...*randvar.RandomVariable) *Linear {
	return &Linear{basis: basis}
}

// Coefficients returns the least-squares coefficients, one per basis
// function, for the given target. The target and every non-scalar basis
// variable must share the same path count.
func (l *Linear) Coefficients(target *randvar.RandomVariable) ([]float64, error) {
	if len(l.basis) == 0 {
		return nil, fmt.Errorf("regression: empty basis")
	}

	n := target.Size()
	for _, b := range l.basis {
		if err := randvar.Compatible(b, target); err != nil {
			return nil, fmt.Errorf("regression: %w", err)
		}
		if n == 0 {
			n = b.Size()
		}
	}
	if n == 0 {
		n = 1 // all operands scalar
	}

	design := mat.NewDense(n, len(l.basis), nil)
	for j, b := range l.basis {
		for i := 0; i < n; i++ {
			design.Set(i, j, b.Get(i))
		}
	}
	rhs := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		rhs.SetVec(i, target.Get(i))
	}

	coeffs := make([]float64, len(l.basis))

	var svd mat.SVD
	if !svd.Factorize(design, mat.SVDThin) {
		return coeffs, ErrSingularRegression
	}

	// Minimum-norm pseudo-inverse solve, truncating directions whose
	// singular value falls below the tolerance.
	values := svd.Values(nil)
	rank := 0
	for _, s := range values {
		if s > singularValueTolerance*values[0] {
			rank++
		}
	}
	if rank == 0 {
		return coeffs, ErrSingularRegression
	}

	var solution mat.VecDense
	svd.SolveVecTo(&solution, rhs, rank)
	for j := range coeffs {
		coeffs[j] = solution.AtVec(j)
	}
	return coeffs, nil
}

// Polynomial evaluates a fitted polynomial at x, reconstructing
// c[0] + c[1]*x + c[2]*x^2 + ... as a random variable.
func Polynomial(coeffs []float64, x *randvar.RandomVariable) *randvar.RandomVariable {
	fitted := randvar.Scalar(0)
	for i, c := range coeffs {
		if i == 0 {
			fitted = fitted.AddScalar(c)
			continue
		}
		fitted = fitted.Add(x.Pow(float64(i)).MultScalar(c))
	}
	return fitted
}

// PolynomialBasis returns the basis {1, x, x^2, ..., x^degree}.
func PolynomialBasis(x *randvar.RandomVariable, degree int) []*randvar.RandomVariable {
	basis := make([]*randvar.RandomVariable, 0, degree+1)
	basis = append(basis, x.MultScalar(0).AddScalar(1))
	for d := 1; d <= degree; d++ {
		basis = append(basis, x.Pow(float64(d)))
	}
	return basis
}
