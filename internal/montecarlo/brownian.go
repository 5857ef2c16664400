package montecarlo

import (
	"math"
	"math/rand"

	"github.com/adjoint-fin/stochad/internal/randvar"
)

// BrownianMotion holds pre-generated Brownian increments, one random
// variable per time step with one value per path. Increments are generated
// eagerly from the seed, so two simulations built on the same BrownianMotion
// see identical noise (which is what makes finite-difference and pathwise
// estimators comparable).
type BrownianMotion struct {
	td            *TimeDiscretization
	numberOfPaths int
	seed          int64
	increments    []*randvar.RandomVariable
}

// NewBrownianMotion generates a one-factor Brownian motion on the given
// grid with the given path count and seed.
func NewBrownianMotion(td *TimeDiscretization, numberOfPaths int, seed int64) *BrownianMotion {
	rng := rand.New(rand.NewSource(seed))

	increments := make([]*randvar.RandomVariable, td.NumberOfSteps())
	for i := range increments {
		sqrtDt := math.Sqrt(td.StepSize(i))
		values := make([]float64, numberOfPaths)
		for p := range values {
			values[p] = rng.NormFloat64() * sqrtDt
		}
		increments[i] = randvar.FromValues(values)
	}

	return &BrownianMotion{
		td:            td,
		numberOfPaths: numberOfPaths,
		seed:          seed,
		increments:    increments,
	}
}

// TimeDiscretization returns the grid the motion lives on.
func (b *BrownianMotion) TimeDiscretization() *TimeDiscretization { return b.td }

// NumberOfPaths returns the path count.
func (b *BrownianMotion) NumberOfPaths() int { return b.numberOfPaths }

// Seed returns the seed the increments were generated from.
func (b *BrownianMotion) Seed() int64 { return b.seed }

// Increment returns the Brownian increment of step i.
func (b *BrownianMotion) Increment(i int) *randvar.RandomVariable { return b.increments[i] }
