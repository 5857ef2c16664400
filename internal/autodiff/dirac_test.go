package autodiff_test

import (
	"math"
	"testing"

	"github.com/adjoint-fin/stochad/internal/autodiff"
)

// uniformGrid returns an equidistant grid on (-1, 1), a deterministic
// stand-in for a uniform sample with density 1/2.
func uniformGrid(n int) []float64 {
	values := make([]float64, n)
	step := 2.0 / float64(n)
	for i := range values {
		values[i] = -1 + (float64(i)+0.5)*step
	}
	return values
}

// digitalDelta builds choose(x, 1, 0) and returns the pathwise adjoint of
// the trigger leaf.
func digitalDelta(t *testing.T, cfg autodiff.Config, values []float64) []float64 {
	t.Helper()
	f, err := autodiff.NewFactory(cfg)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	x := f.FromValues(values)
	y := x.Choose(f.Constant(1), f.Constant(0))
	return y.Gradient().Of(x.ID()).Values()
}

// Width 0 keeps the true derivative of the step function: zero everywhere.
func TestDiracWeight_ZeroWidth(t *testing.T) {
	adj := digitalDelta(t, autodiff.Config{DiracWidthPerStdDev: 0}, uniformGrid(1000))
	for i, v := range adj {
		if v != 0 {
			t.Fatalf("adjoint[%d] = %v, want 0 for zero width", i, v)
		}
	}
}

// Width +Inf short-circuits to a flat weight of one on every path.
func TestDiracWeight_InfiniteWidth(t *testing.T) {
	adj := digitalDelta(t, autodiff.Config{DiracWidthPerStdDev: math.Inf(1)}, uniformGrid(1000))
	for i, v := range adj {
		if v != 1 {
			t.Fatalf("adjoint[%d] = %v, want 1 for infinite width", i, v)
		}
	}
}

// The direct method weights exactly the paths inside the window, by the
// reciprocal window width.
func TestDiracWeight_DirectWindow(t *testing.T) {
	values := uniformGrid(2000)
	cfg := autodiff.Config{DiracWidthPerStdDev: 0.05, DiracMethod: autodiff.DiracDeltaDirect}

	adj := digitalDelta(t, cfg, values)

	// Reconstruct the window from the sample itself.
	sigma := stdDev(values)
	w := 0.05 * sigma

	for i, x := range values {
		inside := -w/2 <= x && x < w/2
		if inside {
			if math.Abs(adj[i]-1/w) > 1e-9 {
				t.Errorf("adjoint[%d] = %v inside window, want %v", i, adj[i], 1/w)
			}
		} else if adj[i] != 0 {
			t.Errorf("adjoint[%d] = %v outside window, want 0", i, adj[i])
		}
	}
}

// On a uniform sample both methods must estimate the density at zero (1/2):
// the average of the pathwise delta is the density estimate.
func TestDiracWeight_MethodsConsistent(t *testing.T) {
	values := uniformGrid(20000)

	direct := digitalDelta(t, autodiff.Config{
		DiracWidthPerStdDev: 0.05,
		DiracMethod:         autodiff.DiracDeltaDirect,
	}, values)

	regr := digitalDelta(t, autodiff.Config{
		DiracWidthPerStdDev:             0.05,
		DiracMethod:                     autodiff.DiracDeltaRegressionOnDistribution,
		DensityRegressionWidthPerStdDev: 0.5,
		DensityRegressionDegree:         1,
	}, values)

	directDelta := mean(direct)
	regrDelta := mean(regr)

	if math.Abs(directDelta-0.5) > 0.05 {
		t.Errorf("direct delta = %v, want 0.5 within 0.05", directDelta)
	}
	if math.Abs(regrDelta-0.5) > 0.05 {
		t.Errorf("regression delta = %v, want 0.5 within 0.05", regrDelta)
	}
	if math.Abs(directDelta-regrDelta) > 0.05 {
		t.Errorf("methods disagree: direct %v vs regression %v", directDelta, regrDelta)
	}
}

// The regression weight has no support outside the smoothing window.
func TestDiracWeight_RegressionIsLocalized(t *testing.T) {
	values := uniformGrid(2000)
	adj := digitalDelta(t, autodiff.Config{
		DiracWidthPerStdDev:             0.05,
		DiracMethod:                     autodiff.DiracDeltaRegressionOnDistribution,
		DensityRegressionWidthPerStdDev: 0.5,
		DensityRegressionDegree:         1,
	}, values)

	sigma := stdDev(values)
	w := 0.05 * sigma
	for i, x := range values {
		if (x < -w/2 || x >= w/2) && adj[i] != 0 {
			t.Errorf("adjoint[%d] = %v outside window at x=%v, want 0", i, adj[i], x)
		}
	}
}

// A choose whose branches differ by more than one scales the Dirac weight
// by the branch difference.
func TestDiracWeight_ScalesWithBranchDifference(t *testing.T) {
	values := uniformGrid(2000)
	cfg := autodiff.Config{DiracWidthPerStdDev: math.Inf(1)}

	f, err := autodiff.NewFactory(cfg)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	x := f.FromValues(values)
	y := x.Choose(f.Constant(5), f.Constant(2))

	adj := y.Gradient().Of(x.ID())
	for i := 0; i < adj.Size(); i++ {
		if adj.Get(i) != 3 {
			t.Fatalf("adjoint[%d] = %v, want onTrue-onFalse = 3", i, adj.Get(i))
		}
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stdDev(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
