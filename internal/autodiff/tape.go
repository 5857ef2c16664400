// Package autodiff implements reverse-mode algorithmic differentiation over
// vectorized random variables.
//
// Operations on a Variable are recorded onto an append-only tape as the
// simulation executes; a single reverse traversal of the tape then yields
// the adjoint (pathwise sensitivity) of an output with respect to every
// ancestor node. Discontinuous choose operations are differentiated by
// substituting a configurable Dirac-delta approximation for the derivative
// of the indicator.
package autodiff

import (
	"github.com/adjoint-fin/stochad/internal/randvar"
)

// OpKind tags the operation that produced a node. The reverse pass switches
// exhaustively over these kinds; there is no runtime type inspection.
type OpKind int

const (
	OpLeaf  OpKind = iota // differentiable input, no operands
	OpConst               // recorded constant, no operands, no partials
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpPow
	OpSquared
	OpSqrt
	OpExp
	OpLog
	OpChoose // operands: [trigger, onTrue, onFalse]
)

// String returns the operator name.
func (k OpKind) String() string {
	switch k {
	case OpLeaf:
		return "leaf"
	case OpConst:
		return "const"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMult:
		return "mult"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	case OpSquared:
		return "squared"
	case OpSqrt:
		return "sqrt"
	case OpExp:
		return "exp"
	case OpLog:
		return "log"
	case OpChoose:
		return "choose"
	default:
		return "unknown"
	}
}

// node is one entry of the tape. Operands are arena indices into the same
// tape; an operand's id is always smaller than the node's own id, so tape
// order is a topological order of the DAG.
type node struct {
	kind     OpKind
	operands []int64
	exponent float64 // OpPow only
	value    *randvar.RandomVariable
}

// Tape is the append-only arena of nodes built while a simulation runs.
// A node's id is its arena index; ids are monotonically increasing and never
// reused. The tape is never pruned mid-simulation; it is discarded as a
// whole together with its factory.
type Tape struct {
	nodes []node
}

func newTape() *Tape {
	return &Tape{nodes: make([]node, 0, 64)}
}

// record appends a node and returns its id.
func (t *Tape) record(kind OpKind, operands []int64, exponent float64, value *randvar.RandomVariable) int64 {
	id := int64(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:     kind,
		operands: operands,
		exponent: exponent,
		value:    value,
	})
	return id
}

// at returns the node with the given id.
func (t *Tape) at(id int64) *node {
	return &t.nodes[id]
}

// Len returns the number of recorded nodes.
func (t *Tape) Len() int { return len(t.nodes) }

// Value returns the primal value of the node with the given id.
func (t *Tape) Value(id int64) *randvar.RandomVariable {
	return t.nodes[id].value
}

// Kind returns the operator kind of the node with the given id.
func (t *Tape) Kind(id int64) OpKind {
	return t.nodes[id].kind
}
