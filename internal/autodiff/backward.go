package autodiff

import (
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// Gradient maps tape node ids to their accumulated adjoints after one
// reverse pass.
type Gradient struct {
	adjoints map[int64]*randvar.RandomVariable
}

// Of returns the adjoint of the node with the given id. An id that was not
// reached by the reverse pass (or never existed) has zero sensitivity; this
// is a defined result, not an error.
func (g *Gradient) Of(id int64) *randvar.RandomVariable {
	if adj, ok := g.adjoints[id]; ok {
		return adj
	}
	return randvar.Scalar(0)
}

// Len returns the number of nodes that received an adjoint.
func (g *Gradient) Len() int { return len(g.adjoints) }

// Gradient runs a reverse pass from v over the DAG reachable from it and
// returns the adjoint of every ancestor. The optional seed is the adjoint
// of v itself; it defaults to the all-ones scalar.
//
// The tape is a topological order (operand ids are always smaller than the
// consuming node's id), so a single descending scan visits each node after
// all of its consumers have contributed. Nodes without an adjoint entry are
// not reachable from v and are skipped.
func (v *Variable) Gradient(seed ...*randvar.RandomVariable) *Gradient {
	tape := v.f.tape

	adjoints := make(map[int64]*randvar.RandomVariable)
	if len(seed) > 0 {
		adjoints[v.id] = seed[0]
	} else {
		adjoints[v.id] = randvar.Scalar(1)
	}

	for id := v.id; id >= 0; id-- {
		adj, ok := adjoints[id]
		if !ok {
			continue
		}
		n := tape.at(id)
		v.f.propagate(n, adj, adjoints)
	}

	return &Gradient{adjoints: adjoints}
}

// propagate applies the operator's local partial-derivative rule, adding
// each operand's contribution into the adjoint map.
func (f *Factory) propagate(n *node, adj *randvar.RandomVariable, adjoints map[int64]*randvar.RandomVariable) {
	tape := f.tape

	switch n.kind {
	case OpLeaf, OpConst:
		// No ancestors.

	case OpAdd:
		accumulate(adjoints, n.operands[0], adj)
		accumulate(adjoints, n.operands[1], adj)

	case OpSub:
		accumulate(adjoints, n.operands[0], adj)
		accumulate(adjoints, n.operands[1], adj.MultScalar(-1))

	case OpMult:
		a := tape.Value(n.operands[0])
		b := tape.Value(n.operands[1])
		accumulate(adjoints, n.operands[0], adj.Mult(b))
		accumulate(adjoints, n.operands[1], adj.Mult(a))

	case OpDiv:
		a := tape.Value(n.operands[0])
		b := tape.Value(n.operands[1])
		accumulate(adjoints, n.operands[0], adj.Div(b))
		accumulate(adjoints, n.operands[1], adj.Mult(a).Div(b.Squared()).MultScalar(-1))

	case OpPow:
		x := tape.Value(n.operands[0])
		accumulate(adjoints, n.operands[0], adj.Mult(x.Pow(n.exponent-1).MultScalar(n.exponent)))

	case OpSquared:
		x := tape.Value(n.operands[0])
		accumulate(adjoints, n.operands[0], adj.Mult(x.MultScalar(2)))

	case OpSqrt:
		y := n.value
		accumulate(adjoints, n.operands[0], adj.Div(y.MultScalar(2)))

	case OpExp:
		accumulate(adjoints, n.operands[0], adj.Mult(n.value))

	case OpLog:
		x := tape.Value(n.operands[0])
		accumulate(adjoints, n.operands[0], adj.Div(x))

	case OpChoose:
		x := tape.Value(n.operands[0])
		onTrue := tape.Value(n.operands[1])
		onFalse := tape.Value(n.operands[2])
		one := randvar.Scalar(1)
		zero := randvar.Scalar(0)

		// The true derivative with respect to the trigger is
		// (onTrue - onFalse) * delta(x); the configured strategy supplies
		// the smoothed stand-in for delta(x).
		weight := f.diracWeight(x)
		accumulate(adjoints, n.operands[0], adj.Mult(onTrue.Sub(onFalse)).Mult(weight))

		// The branch operands only receive adjoint where they were
		// selected; the discontinuity needs no special treatment here.
		accumulate(adjoints, n.operands[1], adj.Mult(x.Choose(one, zero)))
		accumulate(adjoints, n.operands[2], adj.Mult(x.Choose(zero, one)))
	}
}

// accumulate adds a contribution to the adjoint of the given node, summing
// over all operations that consumed it.
func accumulate(adjoints map[int64]*randvar.RandomVariable, id int64, contribution *randvar.RandomVariable) {
	if existing, ok := adjoints[id]; ok {
		adjoints[id] = existing.Add(contribution)
	} else {
		adjoints[id] = contribution
	}
}
