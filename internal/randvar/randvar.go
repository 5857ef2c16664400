// Package randvar implements the vectorized random variable used throughout
// the Monte Carlo engine.
//
// A RandomVariable holds one value per simulated path, or a single scalar
// that broadcasts against any path count. All operations are pure: each
// returns a new RandomVariable and never mutates its operands, which is what
// allows the autodiff tape to keep references to intermediate values.
package randvar

import (
	"fmt"
	"math"
)

// ShapeError reports an operation between two non-scalar random variables
// with different path counts.
type ShapeError struct {
	Op    string
	SizeA int
	SizeB int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("randvar: %s: path count mismatch %d vs %d", e.Op, e.SizeA, e.SizeB)
}

// RandomVariable is an immutable vector of per-path values, or a scalar.
// The zero value is the scalar 0.
type RandomVariable struct {
	scalar float64
	values []float64 // nil for a scalar
}

// Scalar returns a random variable holding a single broadcast value.
func Scalar(v float64) *RandomVariable {
	return &RandomVariable{scalar: v}
}

// FromValues returns a random variable holding one value per path.
// The slice is copied.
func FromValues(values []float64) *RandomVariable {
	v := make([]float64, len(values))
	copy(v, values)
	return &RandomVariable{values: v}
}

// IsScalar reports whether the variable is a broadcast scalar.
func (x *RandomVariable) IsScalar() bool { return x.values == nil }

// Size returns the number of paths, or 0 for a scalar.
func (x *RandomVariable) Size() int { return len(x.values) }

// Get returns the value at path i. A scalar returns its value for any i.
func (x *RandomVariable) Get(i int) float64 {
	if x.values == nil {
		return x.scalar
	}
	return x.values[i]
}

// Values returns a copy of the per-path values. A scalar returns a
// single-element slice.
func (x *RandomVariable) Values() []float64 {
	if x.values == nil {
		return []float64{x.scalar}
	}
	out := make([]float64, len(x.values))
	copy(out, x.values)
	return out
}

// Compatible returns an error if a and b are both non-scalar with different
// path counts.
func Compatible(a, b *RandomVariable) error {
	if a.values != nil && b.values != nil && len(a.values) != len(b.values) {
		return &ShapeError{Op: "compatible", SizeA: len(a.values), SizeB: len(b.values)}
	}
	return nil
}

// size of the result of combining the receiver with ys; panics with a
// *ShapeError when two non-scalar operands disagree.
func resultSize(op string, xs ...*RandomVariable) int {
	n := 0
	for _, x := range xs {
		if x.values == nil {
			continue
		}
		if n == 0 {
			n = len(x.values)
		} else if len(x.values) != n {
			panic(&ShapeError{Op: op, SizeA: n, SizeB: len(x.values)})
		}
	}
	return n
}

// apply2 combines two random variables elementwise.
func apply2(op string, x, y *RandomVariable, f func(a, b float64) float64) *RandomVariable {
	n := resultSize(op, x, y)
	if n == 0 {
		return &RandomVariable{scalar: f(x.scalar, y.scalar)}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = f(x.Get(i), y.Get(i))
	}
	return &RandomVariable{values: out}
}

// apply1 maps f over the receiver.
func (x *RandomVariable) apply1(f func(a float64) float64) *RandomVariable {
	if x.values == nil {
		return &RandomVariable{scalar: f(x.scalar)}
	}
	out := make([]float64, len(x.values))
	for i, v := range x.values {
		out[i] = f(v)
	}
	return &RandomVariable{values: out}
}

// Add returns x + y elementwise.
func (x *RandomVariable) Add(y *RandomVariable) *RandomVariable {
	return apply2("add", x, y, func(a, b float64) float64 { return a + b })
}

// Sub returns x - y elementwise.
func (x *RandomVariable) Sub(y *RandomVariable) *RandomVariable {
	return apply2("sub", x, y, func(a, b float64) float64 { return a - b })
}

// Mult returns x * y elementwise.
func (x *RandomVariable) Mult(y *RandomVariable) *RandomVariable {
	return apply2("mult", x, y, func(a, b float64) float64 { return a * b })
}

// Div returns x / y elementwise.
func (x *RandomVariable) Div(y *RandomVariable) *RandomVariable {
	return apply2("div", x, y, func(a, b float64) float64 { return a / b })
}

// AddScalar returns x + c.
func (x *RandomVariable) AddScalar(c float64) *RandomVariable {
	return x.apply1(func(a float64) float64 { return a + c })
}

// SubScalar returns x - c.
func (x *RandomVariable) SubScalar(c float64) *RandomVariable {
	return x.apply1(func(a float64) float64 { return a - c })
}

// MultScalar returns x * c.
func (x *RandomVariable) MultScalar(c float64) *RandomVariable {
	return x.apply1(func(a float64) float64 { return a * c })
}

// DivScalar returns x / c.
func (x *RandomVariable) DivScalar(c float64) *RandomVariable {
	return x.apply1(func(a float64) float64 { return a / c })
}

// Pow returns x^p elementwise.
func (x *RandomVariable) Pow(p float64) *RandomVariable {
	return x.apply1(func(a float64) float64 { return math.Pow(a, p) })
}

// Squared returns x*x elementwise.
func (x *RandomVariable) Squared() *RandomVariable {
	return x.apply1(func(a float64) float64 { return a * a })
}

// Sqrt returns the elementwise square root.
func (x *RandomVariable) Sqrt() *RandomVariable {
	return x.apply1(math.Sqrt)
}

// Exp returns the elementwise exponential.
func (x *RandomVariable) Exp() *RandomVariable {
	return x.apply1(math.Exp)
}

// Log returns the elementwise natural logarithm.
func (x *RandomVariable) Log() *RandomVariable {
	return x.apply1(math.Log)
}

// Abs returns the elementwise absolute value.
func (x *RandomVariable) Abs() *RandomVariable {
	return x.apply1(math.Abs)
}

// Choose returns, per path, onTrue where x >= 0 and onFalse where x < 0.
// This is the indicator primitive: the primal is an exact step function,
// only its derivative is smoothed (by the autodiff layer, not here).
func (x *RandomVariable) Choose(onTrue, onFalse *RandomVariable) *RandomVariable {
	n := resultSize("choose", x, onTrue, onFalse)
	if n == 0 {
		if x.scalar >= 0 {
			return &RandomVariable{scalar: onTrue.scalar}
		}
		return &RandomVariable{scalar: onFalse.scalar}
	}
	out := make([]float64, n)
	for i := range out {
		if x.Get(i) >= 0 {
			out[i] = onTrue.Get(i)
		} else {
			out[i] = onFalse.Get(i)
		}
	}
	return &RandomVariable{values: out}
}
