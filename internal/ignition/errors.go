package ignition

import (
	"errors"
	"fmt"
)

// Domain errors for ignition runs.
var (
	// ErrInvalidConditions indicates non-positive pressure or temperature input.
	ErrInvalidConditions = errors.New("ignition: invalid conditions")

	// ErrInvalidParams indicates a rate-law or step parameter outside its valid range.
	ErrInvalidParams = errors.New("ignition: invalid parameters")

	// ErrNonPositiveTemperature indicates a concentration update at T <= 0.
	ErrNonPositiveTemperature = errors.New("ignition: non-positive absolute temperature")

	// ErrHeatCapacityCollapse indicates the mixture heat capacity sum reached zero.
	ErrHeatCapacityCollapse = errors.New("ignition: mixture heat capacity collapsed to zero")

	// ErrNegativeConcentration indicates a species concentration went below zero,
	// normally because the step size is too large for the reaction timescale.
	ErrNegativeConcentration = errors.New("ignition: negative molar concentration")

	// ErrUnstable indicates the state diverged (NaN or Inf).
	ErrUnstable = errors.New("ignition: simulation unstable (state diverged)")
)

// StepError wraps an error with the step at which it happened.
type StepError struct {
	Step    int
	Time    float64
	Species string
	Value   float64
	Wrapped error
}

func (e *StepError) Error() string {
	if e.Species != "" {
		return fmt.Sprintf("step %d (t=%.4e): %s=%.6e: %v", e.Step, e.Time, e.Species, e.Value, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4e): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
