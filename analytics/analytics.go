// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package analytics provides Black-Scholes closed-form values and deltas,
// the correctness oracle for the Monte Carlo estimators.
package analytics

import (
	"github.com/adjoint-fin/stochad/internal/analytics"
)

// BlackScholesOptionValue returns the value of a European call.
func BlackScholesOptionValue(spot, rate, volatility, maturity, strike float64) float64 {
	return analytics.BlackScholesOptionValue(spot, rate, volatility, maturity, strike)
}

// BlackScholesOptionDelta returns the delta of a European call.
func BlackScholesOptionDelta(spot, rate, volatility, maturity, strike float64) float64 {
	return analytics.BlackScholesOptionDelta(spot, rate, volatility, maturity, strike)
}

// BlackScholesDigitalOptionValue returns the value of a cash-or-nothing
// digital call.
func BlackScholesDigitalOptionValue(spot, rate, volatility, maturity, strike float64) float64 {
	return analytics.BlackScholesDigitalOptionValue(spot, rate, volatility, maturity, strike)
}

// BlackScholesDigitalOptionDelta returns the delta of the digital call.
func BlackScholesDigitalOptionDelta(spot, rate, volatility, maturity, strike float64) float64 {
	return analytics.BlackScholesDigitalOptionDelta(spot, rate, volatility, maturity, strike)
}
