package autodiff

import (
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// Variable is a differentiable random variable: a primal value together
// with the tape node that produced it. Every operation returns a new
// Variable and appends one node to the factory's tape; a Variable is never
// mutated after creation.
//
// Variables from different factories must not be mixed; the tape records
// operands by arena index and has no way to resolve a foreign id.
type Variable struct {
	f     *Factory
	id    int64
	value *randvar.RandomVariable
}

// FromScalar creates a differentiable leaf holding a broadcast scalar.
func (f *Factory) FromScalar(v float64) *Variable {
	return f.wrap(OpLeaf, nil, 0, randvar.Scalar(v))
}

// FromValues creates a differentiable leaf holding one value per path.
func (f *Factory) FromValues(values []float64) *Variable {
	return f.wrap(OpLeaf, nil, 0, randvar.FromValues(values))
}

// FromRandomVariable creates a differentiable leaf from an existing value.
func (f *Factory) FromRandomVariable(v *randvar.RandomVariable) *Variable {
	return f.wrap(OpLeaf, nil, 0, v)
}

// Constant records a scalar constant. Constants participate in the graph
// but carry no partial derivatives.
func (f *Factory) Constant(v float64) *Variable {
	return f.wrap(OpConst, nil, 0, randvar.Scalar(v))
}

// ConstantValues records a per-path constant, e.g. a simulated increment
// that does not depend on any differentiable input.
func (f *Factory) ConstantValues(v *randvar.RandomVariable) *Variable {
	return f.wrap(OpConst, nil, 0, v)
}

func (f *Factory) wrap(kind OpKind, operands []int64, exponent float64, value *randvar.RandomVariable) *Variable {
	id := f.tape.record(kind, operands, exponent, value)
	return &Variable{f: f, id: id, value: value}
}

// ID returns the tape id of the variable. Ids are unique and monotonically
// increasing within one factory.
func (v *Variable) ID() int64 { return v.id }

// Value returns the primal value.
func (v *Variable) Value() *randvar.RandomVariable { return v.value }

// Add returns v + w.
func (v *Variable) Add(w *Variable) *Variable {
	return v.f.wrap(OpAdd, []int64{v.id, w.id}, 0, v.value.Add(w.value))
}

// Sub returns v - w.
func (v *Variable) Sub(w *Variable) *Variable {
	return v.f.wrap(OpSub, []int64{v.id, w.id}, 0, v.value.Sub(w.value))
}

// Mult returns v * w.
func (v *Variable) Mult(w *Variable) *Variable {
	return v.f.wrap(OpMult, []int64{v.id, w.id}, 0, v.value.Mult(w.value))
}

// Div returns v / w.
func (v *Variable) Div(w *Variable) *Variable {
	return v.f.wrap(OpDiv, []int64{v.id, w.id}, 0, v.value.Div(w.value))
}

// AddScalar returns v + c, recording c as a constant node.
func (v *Variable) AddScalar(c float64) *Variable {
	return v.Add(v.f.Constant(c))
}

// SubScalar returns v - c, recording c as a constant node.
func (v *Variable) SubScalar(c float64) *Variable {
	return v.Sub(v.f.Constant(c))
}

// MultScalar returns v * c, recording c as a constant node.
func (v *Variable) MultScalar(c float64) *Variable {
	return v.Mult(v.f.Constant(c))
}

// DivScalar returns v / c, recording c as a constant node.
func (v *Variable) DivScalar(c float64) *Variable {
	return v.Div(v.f.Constant(c))
}

// Pow returns v^p.
func (v *Variable) Pow(p float64) *Variable {
	return v.f.wrap(OpPow, []int64{v.id}, p, v.value.Pow(p))
}

// Squared returns v*v.
func (v *Variable) Squared() *Variable {
	return v.f.wrap(OpSquared, []int64{v.id}, 0, v.value.Squared())
}

// Sqrt returns the square root of v.
func (v *Variable) Sqrt() *Variable {
	return v.f.wrap(OpSqrt, []int64{v.id}, 0, v.value.Sqrt())
}

// Exp returns the exponential of v.
func (v *Variable) Exp() *Variable {
	return v.f.wrap(OpExp, []int64{v.id}, 0, v.value.Exp())
}

// Log returns the natural logarithm of v.
func (v *Variable) Log() *Variable {
	return v.f.wrap(OpLog, []int64{v.id}, 0, v.value.Log())
}

// Choose returns, per path, onTrue where v >= 0 and onFalse where v < 0.
// The primal is the exact step function; only the reverse pass substitutes
// a Dirac-delta approximation for the derivative with respect to v.
func (v *Variable) Choose(onTrue, onFalse *Variable) *Variable {
	return v.f.wrap(OpChoose, []int64{v.id, onTrue.id, onFalse.id}, 0,
		v.value.Choose(onTrue.value, onFalse.value))
}

// Average returns the arithmetic mean of the primal across paths.
func (v *Variable) Average() float64 { return v.value.Average() }

// StandardDeviation returns the standard deviation of the primal across
// paths.
func (v *Variable) StandardDeviation() float64 { return v.value.StandardDeviation() }
