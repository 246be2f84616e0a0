package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a body collection holding NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidBody indicates a body violating mass > 0 or radius > 0.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrContextCanceled indicates the simulation was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrUnknownPreset indicates a preset name with no registered config.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// BodyError reports which entry of a collection failed validation.
type BodyError struct {
	Index  int
	Reason string
}

func (e *BodyError) Error() string {
	return fmt.Sprintf("body %d: %s", e.Index, e.Reason)
}

func (e *BodyError) Unwrap() error {
	return ErrInvalidBody
}
