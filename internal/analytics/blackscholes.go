// Package analytics provides Black-Scholes closed-form values and deltas,
// used as the correctness oracle for the Monte Carlo estimators.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// dPlus and dMinus are the standard Black-Scholes arguments.
func dPlus(spot, rate, volatility, maturity, strike float64) float64 {
	return (math.Log(spot/strike) + (rate+0.5*volatility*volatility)*maturity) /
		(volatility * math.Sqrt(maturity))
}

func dMinus(spot, rate, volatility, maturity, strike float64) float64 {
	return dPlus(spot, rate, volatility, maturity, strike) - volatility*math.Sqrt(maturity)
}

// BlackScholesOptionValue returns the value of a European call.
func BlackScholesOptionValue(spot, rate, volatility, maturity, strike float64) float64 {
	d1 := dPlus(spot, rate, volatility, maturity, strike)
	d2 := dMinus(spot, rate, volatility, maturity, strike)
	return spot*distuv.UnitNormal.CDF(d1) -
		strike*math.Exp(-rate*maturity)*distuv.UnitNormal.CDF(d2)
}

// BlackScholesOptionDelta returns the delta of a European call.
func BlackScholesOptionDelta(spot, rate, volatility, maturity, strike float64) float64 {
	return distuv.UnitNormal.CDF(dPlus(spot, rate, volatility, maturity, strike))
}

// BlackScholesDigitalOptionValue returns the value of a cash-or-nothing
// digital call paying one unit at maturity if the asset is at or above the
// strike.
func BlackScholesDigitalOptionValue(spot, rate, volatility, maturity, strike float64) float64 {
	d2 := dMinus(spot, rate, volatility, maturity, strike)
	return math.Exp(-rate*maturity) * distuv.UnitNormal.CDF(d2)
}

// BlackScholesDigitalOptionDelta returns the delta of the digital call.
func BlackScholesDigitalOptionDelta(spot, rate, volatility, maturity, strike float64) float64 {
	d2 := dMinus(spot, rate, volatility, maturity, strike)
	return math.Exp(-rate*maturity) * distuv.UnitNormal.Prob(d2) /
		(spot * volatility * math.Sqrt(maturity))
}
