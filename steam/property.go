package steam

import "fmt"

// Property names a thermodynamic property used to pin down a state.
type Property int

const (
	Pressure Property = iota
	Quality
	Temperature
	Entropy
	Enthalpy
)

func (p Property) String() string {
	switch p {
	case Pressure:
		return "pressure"
	case Quality:
		return "quality"
	case Temperature:
		return "temperature"
	case Entropy:
		return "entropy"
	case Enthalpy:
		return "enthalpy"
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// Given is the auxiliary property handed to Resolve next to the pressure.
type Given struct {
	Property Property
	Value    float64
}

func WithQuality(x float64) Given     { return Given{Quality, x} }
func WithTemperature(t float64) Given { return Given{Temperature, t} }
func WithEntropy(s float64) Given     { return Given{Entropy, s} }
func WithEnthalpy(h float64) Given    { return Given{Enthalpy, h} }

// Options tunes the numeric behaviour of the evaluator and resolver.
type Options struct {
	// Tolerance is relative: the inverse search stops once the temperature bracket is
	// narrower than Tolerance·max(1, |T|).
	Tolerance     float64
	MaxIterations int
	// SaturationTolerance decides when a temperature equals Tsat (relative to Tsat).
	SaturationTolerance float64
}

func DefaultOptions() Options {
	return Options{
		Tolerance:           1e-6,
		MaxIterations:       200,
		SaturationTolerance: 1e-6,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.SaturationTolerance <= 0 {
		o.SaturationTolerance = d.SaturationTolerance
	}
	return o
}
