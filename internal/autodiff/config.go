package autodiff

import (
	"fmt"
	"math"
)

// DiracDeltaMethod selects how the reverse pass approximates the derivative
// of the indicator inside a Choose operation.
type DiracDeltaMethod int

const (
	// DiracDeltaDirect weights the adjoint with a rectangular window around
	// the trigger level, divided by the window width.
	DiracDeltaDirect DiracDeltaMethod = iota

	// DiracDeltaRegressionOnDistribution fits a polynomial to empirical
	// local densities sampled at several window sizes and uses the fitted
	// density at each path's trigger value as the weight.
	DiracDeltaRegressionOnDistribution
)

// String returns a human-readable method name.
func (m DiracDeltaMethod) String() string {
	switch m {
	case DiracDeltaDirect:
		return "Direct"
	case DiracDeltaRegressionOnDistribution:
		return "RegressionOnDistribution"
	default:
		return "Unknown"
	}
}

// ConfigError reports an invalid factory configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("autodiff: invalid config: %s: %s", e.Field, e.Reason)
}

// Config controls how a Factory differentiates Choose operations.
type Config struct {
	// DiracWidthPerStdDev is the width of the smoothing window in multiples
	// of the trigger's standard deviation. 0 keeps the true (everywhere
	// zero) derivative of the step function; +Inf short-circuits to a flat
	// weight of one over the whole path set.
	DiracWidthPerStdDev float64

	// DiracMethod selects the Dirac-delta approximation strategy.
	DiracMethod DiracDeltaMethod

	// DensityRegressionWidthPerStdDev is the half-range, in multiples of
	// the trigger's standard deviation, over which window sizes are sampled
	// when DiracMethod is DiracDeltaRegressionOnDistribution.
	DensityRegressionWidthPerStdDev float64

	// DensityRegressionDegree is the degree of the polynomial fitted to the
	// sampled densities. The basis is {1, m, ..., m^degree}; there is no
	// hard-wired "correct" basis beyond this explicit choice.
	DensityRegressionDegree int
}

// DefaultConfig returns the configuration used when none is given: the
// direct method with a window of 0.05 standard deviations and a degree-one
// density fit over half a standard deviation.
func DefaultConfig() Config {
	return Config{
		DiracWidthPerStdDev:             0.05,
		DiracMethod:                     DiracDeltaDirect,
		DensityRegressionWidthPerStdDev: 0.5,
		DensityRegressionDegree:         1,
	}
}

func (c Config) validate() error {
	if c.DiracWidthPerStdDev < 0 || math.IsNaN(c.DiracWidthPerStdDev) {
		return &ConfigError{Field: "DiracWidthPerStdDev", Reason: "must be >= 0 (or +Inf)"}
	}
	switch c.DiracMethod {
	case DiracDeltaDirect, DiracDeltaRegressionOnDistribution:
	default:
		return &ConfigError{Field: "DiracMethod", Reason: fmt.Sprintf("unknown method %d", c.DiracMethod)}
	}
	if c.DiracMethod == DiracDeltaRegressionOnDistribution {
		if c.DensityRegressionWidthPerStdDev <= 0 || math.IsInf(c.DensityRegressionWidthPerStdDev, 0) {
			return &ConfigError{Field: "DensityRegressionWidthPerStdDev", Reason: "must be finite and > 0"}
		}
		if c.DensityRegressionDegree < 1 {
			return &ConfigError{Field: "DensityRegressionDegree", Reason: "must be >= 1"}
		}
	}
	return nil
}

// Factory creates differentiable random variables and owns the tape they
// record onto. One factory corresponds to one simulation run; discard the
// factory to discard the tape.
type Factory struct {
	cfg  Config
	tape *Tape
}

// NewFactory creates a factory with a validated configuration.
func NewFactory(cfg Config) (*Factory, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Factory{cfg: cfg, tape: newTape()}, nil
}

// MustNewFactory is NewFactory for configurations known to be valid.
func MustNewFactory(cfg Config) *Factory {
	f, err := NewFactory(cfg)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the factory configuration.
func (f *Factory) Config() Config { return f.cfg }

// Tape returns the factory's tape.
func (f *Factory) Tape() *Tape { return f.tape }
