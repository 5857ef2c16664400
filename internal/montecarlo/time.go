// Package montecarlo implements the path simulator the sensitivity engine
// consumes: a time grid, a seeded Brownian motion, and a Black-Scholes
// model advanced by a log-Euler scheme. The random variable factory is
// injected, so the same simulation code runs with or without algorithmic
// differentiation enabled.
package montecarlo

import (
	"fmt"
	"math"
)

// TimeDiscretization is an equidistant time grid t0, t0+dt, ..., t0+n*dt.
type TimeDiscretization struct {
	times []float64
}

// NewTimeDiscretization creates a grid starting at initial with
// numberOfSteps steps of size deltaT.
func NewTimeDiscretization(initial float64, numberOfSteps int, deltaT float64) *TimeDiscretization {
	times := make([]float64, numberOfSteps+1)
	for i := range times {
		times[i] = initial + float64(i)*deltaT
	}
	return &TimeDiscretization{times: times}
}

// NumberOfSteps returns the number of intervals in the grid.
func (td *TimeDiscretization) NumberOfSteps() int { return len(td.times) - 1 }

// Time returns the grid time at index i.
func (td *TimeDiscretization) Time(i int) float64 { return td.times[i] }

// StepSize returns the length of the interval starting at index i.
func (td *TimeDiscretization) StepSize(i int) float64 { return td.times[i+1] - td.times[i] }

// TimeIndex returns the grid index of the given time.
func (td *TimeDiscretization) TimeIndex(t float64) (int, error) {
	for i, ti := range td.times {
		if math.Abs(ti-t) < 1e-10 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("montecarlo: time %g is not on the discretization grid", t)
}
