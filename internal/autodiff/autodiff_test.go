package autodiff_test

import (
	"math"
	"testing"

	"github.com/adjoint-fin/stochad/internal/autodiff"
	"github.com/adjoint-fin/stochad/internal/randvar"
)

func newFactory(t *testing.T) *autodiff.Factory {
	t.Helper()
	f, err := autodiff.NewFactory(autodiff.DefaultConfig())
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	return f
}

func TestFactory_ConfigValidation(t *testing.T) {
	if _, err := autodiff.NewFactory(autodiff.Config{DiracWidthPerStdDev: -1}); err == nil {
		t.Error("negative width should be rejected")
	}
	if _, err := autodiff.NewFactory(autodiff.Config{DiracMethod: autodiff.DiracDeltaMethod(42)}); err == nil {
		t.Error("unknown method should be rejected")
	}
	if _, err := autodiff.NewFactory(autodiff.Config{
		DiracMethod:                     autodiff.DiracDeltaRegressionOnDistribution,
		DensityRegressionWidthPerStdDev: 0,
		DensityRegressionDegree:         1,
	}); err == nil {
		t.Error("zero density regression width should be rejected")
	}
	if _, err := autodiff.NewFactory(autodiff.Config{DiracWidthPerStdDev: math.Inf(1)}); err != nil {
		t.Errorf("infinite width is valid, got error %v", err)
	}
}

func TestTape_IDsAreMonotonic(t *testing.T) {
	f := newFactory(t)

	a := f.FromScalar(1)
	b := f.FromScalar(2)
	c := a.Add(b)

	if a.ID() >= b.ID() || b.ID() >= c.ID() {
		t.Errorf("ids not monotonically increasing: %d, %d, %d", a.ID(), b.ID(), c.ID())
	}
	if f.Tape().Len() != 3 {
		t.Errorf("Tape().Len() = %d, want 3", f.Tape().Len())
	}
}

func TestTape_RecordsEveryOperation(t *testing.T) {
	f := newFactory(t)

	x := f.FromValues([]float64{1, 2, 3})
	before := f.Tape().Len()
	_ = x.Squared().AddScalar(1).Sqrt()
	// Squared, Constant(1), Add, Sqrt
	if got := f.Tape().Len() - before; got != 4 {
		t.Errorf("recorded %d nodes, want 4", got)
	}
}

// The adjoint of an addition input must equal the seed unchanged.
func TestGradient_AddPassesSeedThrough(t *testing.T) {
	f := newFactory(t)

	a := f.FromValues([]float64{1, 2})
	b := f.FromValues([]float64{3, 4})
	c := a.Add(b)

	grad := c.Gradient()
	for _, v := range []*autodiff.Variable{a, b} {
		adj := grad.Of(v.ID())
		for i := 0; i < 2; i++ {
			if got := adj.Get(i); got != 1 {
				t.Errorf("adjoint[%d] = %v, want 1", i, got)
			}
		}
	}
}

func TestGradient_SeedIsRespected(t *testing.T) {
	f := newFactory(t)

	a := f.FromValues([]float64{1, 2})
	b := f.FromValues([]float64{3, 4})
	c := a.Add(b)

	seed := randvar.FromValues([]float64{10, 20})
	grad := c.Gradient(seed)
	adj := grad.Of(a.ID())
	if adj.Get(0) != 10 || adj.Get(1) != 20 {
		t.Errorf("seeded adjoint = [%v, %v], want [10, 20]", adj.Get(0), adj.Get(1))
	}
}

func TestGradient_SubFlipsSecondOperand(t *testing.T) {
	f := newFactory(t)

	a := f.FromScalar(5)
	b := f.FromScalar(3)
	c := a.Sub(b)

	grad := c.Gradient()
	if got := grad.Of(a.ID()).Get(0); got != 1 {
		t.Errorf("d(a-b)/da = %v, want 1", got)
	}
	if got := grad.Of(b.ID()).Get(0); got != -1 {
		t.Errorf("d(a-b)/db = %v, want -1", got)
	}
}

func TestGradient_MultRule(t *testing.T) {
	f := newFactory(t)

	a := f.FromValues([]float64{2, 3})
	b := f.FromValues([]float64{5, 7})
	c := a.Mult(b)

	grad := c.Gradient()
	gradA := grad.Of(a.ID())
	gradB := grad.Of(b.ID())
	for i := 0; i < 2; i++ {
		if gradA.Get(i) != b.Value().Get(i) {
			t.Errorf("d(ab)/da[%d] = %v, want %v", i, gradA.Get(i), b.Value().Get(i))
		}
		if gradB.Get(i) != a.Value().Get(i) {
			t.Errorf("d(ab)/db[%d] = %v, want %v", i, gradB.Get(i), a.Value().Get(i))
		}
	}
}

func TestGradient_DivQuotientRule(t *testing.T) {
	f := newFactory(t)

	a := f.FromScalar(6)
	b := f.FromScalar(3)
	c := a.Div(b)

	grad := c.Gradient()
	if got := grad.Of(a.ID()).Get(0); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("d(a/b)/da = %v, want 1/3", got)
	}
	if got := grad.Of(b.ID()).Get(0); math.Abs(got-(-6.0/9.0)) > 1e-12 {
		t.Errorf("d(a/b)/db = %v, want -2/3", got)
	}
}

func TestGradient_PowRule(t *testing.T) {
	f := newFactory(t)

	x := f.FromScalar(2)
	y := x.Pow(3)

	grad := y.Gradient()
	if got := grad.Of(x.ID()).Get(0); math.Abs(got-12) > 1e-12 {
		t.Errorf("d(x^3)/dx at 2 = %v, want 12", got)
	}
}

func TestGradient_ElementaryFunctions(t *testing.T) {
	f := newFactory(t)

	x := f.FromScalar(2)

	if got := x.Squared().Gradient().Of(x.ID()).Get(0); got != 4 {
		t.Errorf("d(x^2)/dx at 2 = %v, want 4", got)
	}
	if got := x.Sqrt().Gradient().Of(x.ID()).Get(0); math.Abs(got-1/(2*math.Sqrt2)) > 1e-12 {
		t.Errorf("d(sqrt x)/dx at 2 = %v, want %v", got, 1/(2*math.Sqrt2))
	}
	if got := x.Exp().Gradient().Of(x.ID()).Get(0); math.Abs(got-math.Exp(2)) > 1e-12 {
		t.Errorf("d(e^x)/dx at 2 = %v, want e^2", got)
	}
	if got := x.Log().Gradient().Of(x.ID()).Get(0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("d(ln x)/dx at 2 = %v, want 0.5", got)
	}
}

// A node consumed by several operations must accumulate the sum of all
// consumer contributions: d/dx (x*x + x) = 2x + 1.
func TestGradient_SharedAncestorAccumulates(t *testing.T) {
	f := newFactory(t)

	x := f.FromScalar(3)
	y := x.Mult(x).Add(x)

	grad := y.Gradient()
	if got := grad.Of(x.ID()).Get(0); got != 7 {
		t.Errorf("d(x^2+x)/dx at 3 = %v, want 7", got)
	}
}

// Requesting the adjoint of a node the output never depended on is a
// defined zero, not an error; same for an id the tape never issued.
func TestGradient_UnknownNodeIsZero(t *testing.T) {
	f := newFactory(t)

	x := f.FromScalar(1)
	unrelated := f.FromScalar(2)
	y := x.MultScalar(3)

	grad := y.Gradient()
	if got := grad.Of(unrelated.ID()); !got.IsScalar() || got.Get(0) != 0 {
		t.Errorf("adjoint of unrelated node = %v, want scalar 0", got.Get(0))
	}
	if got := grad.Of(123456); !got.IsScalar() || got.Get(0) != 0 {
		t.Errorf("adjoint of unknown id = %v, want scalar 0", got.Get(0))
	}
}

func TestGradient_ConstantsCarryNoPartials(t *testing.T) {
	f := newFactory(t)

	x := f.FromScalar(2)
	y := x.MultScalar(3).AddScalar(1)

	grad := y.Gradient()
	if got := grad.Of(x.ID()).Get(0); got != 3 {
		t.Errorf("d(3x+1)/dx = %v, want 3", got)
	}
}

// Gradients of a deeper composite: f(x) = (x^2 + 1) * exp(-x).
func TestGradient_Composite(t *testing.T) {
	f := newFactory(t)

	x0 := 1.3
	x := f.FromScalar(x0)
	y := x.Squared().AddScalar(1).Mult(x.MultScalar(-1).Exp())

	want := 2*x0*math.Exp(-x0) - (x0*x0+1)*math.Exp(-x0)
	if got := y.Gradient().Of(x.ID()).Get(0); math.Abs(got-want) > 1e-12 {
		t.Errorf("composite gradient = %v, want %v", got, want)
	}
}

func TestChoose_PrimalIsExact(t *testing.T) {
	f := newFactory(t)

	x := f.FromValues([]float64{-1, -0.001, 0, 0.001, 1})
	chosen := x.Choose(f.Constant(1), f.Constant(0))

	want := []float64{0, 0, 1, 1, 1}
	for i := range want {
		if got := chosen.Value().Get(i); got != want[i] {
			t.Errorf("choose primal[%d] = %v, want %v", i, got, want[i])
		}
	}
}

// The branch operands of a choose receive the adjoint masked by the
// indicator, with no smoothing.
func TestGradient_ChooseBranchOperands(t *testing.T) {
	f := newFactory(t)

	x := f.FromValues([]float64{1, -1})
	a := f.FromValues([]float64{10, 20})
	b := f.FromValues([]float64{30, 40})
	y := x.Choose(a, b)

	grad := y.Gradient()
	gradA := grad.Of(a.ID())
	gradB := grad.Of(b.ID())

	if gradA.Get(0) != 1 || gradA.Get(1) != 0 {
		t.Errorf("onTrue adjoint = [%v, %v], want [1, 0]", gradA.Get(0), gradA.Get(1))
	}
	if gradB.Get(0) != 0 || gradB.Get(1) != 1 {
		t.Errorf("onFalse adjoint = [%v, %v], want [0, 1]", gradB.Get(0), gradB.Get(1))
	}
}
