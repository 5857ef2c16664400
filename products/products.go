// Copyright 2026 the stochad authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package products provides the public API for payoffs and delta
// estimators: the digital option with its AAD, finite-difference and
// adjoint-regression deltas, and the likelihood-ratio benchmark.
package products

import (
	"github.com/adjoint-fin/stochad/internal/products"
)

// DigitalOption pays one unit at maturity if the asset is at or above the
// strike.
type DigitalOption = products.DigitalOption

// DigitalDeltaLikelihood estimates the digital delta with the
// likelihood-ratio method.
type DigitalDeltaLikelihood = products.DigitalDeltaLikelihood

// AdjointRegressionConfig controls the adjoint-regression delta estimator.
type AdjointRegressionConfig = products.AdjointRegressionConfig

// DefaultAdjointRegressionConfig returns the default estimator settings.
func DefaultAdjointRegressionConfig() AdjointRegressionConfig {
	return products.DefaultAdjointRegressionConfig()
}
