package steam

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSpecification: zero or several auxiliary properties, or a bad value.
	ErrInvalidSpecification = errors.New("steam: invalid state specification")
	// ErrOutOfRange: pressure or temperature outside the tabulated domain.
	ErrOutOfRange = errors.New("steam: value outside tabulated range")
	// ErrConvergence: an inverse lookup could not be bracketed or did not converge.
	ErrConvergence = errors.New("steam: inverse lookup did not converge")
)

type InvalidSpecificationError struct {
	Pressure float64
	Given    []Property
	Reason   string
}

func (e *InvalidSpecificationError) Error() string {
	return fmt.Sprintf("steam: invalid specification at p=%g kPa (given %v): %s", e.Pressure, e.Given, e.Reason)
}

func (e *InvalidSpecificationError) Is(target error) bool { return target == ErrInvalidSpecification }

type OutOfRangeError struct {
	Property Property
	Value    float64
	Min, Max float64
	Pressure float64
}

func (e *OutOfRangeError) Error() string {
	if e.Property == Pressure {
		return fmt.Sprintf("steam: pressure %g kPa outside table range [%g, %g]", e.Value, e.Min, e.Max)
	}
	if math.IsNaN(e.Pressure) {
		return fmt.Sprintf("steam: %s %g outside table range [%g, %g]", e.Property, e.Value, e.Min, e.Max)
	}
	return fmt.Sprintf("steam: %s %g outside table range [%g, %g] at p=%g kPa",
		e.Property, e.Value, e.Min, e.Max, e.Pressure)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

type ConvergenceError struct {
	Property   Property
	Value      float64
	Pressure   float64
	Iterations int
	Reason     string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("steam: cannot solve for temperature from %s=%g at p=%g kPa after %d iterations: %s",
		e.Property, e.Value, e.Pressure, e.Iterations, e.Reason)
}

func (e *ConvergenceError) Is(target error) bool { return target == ErrConvergence }
