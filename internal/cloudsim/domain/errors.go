package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSimulationNotFound is returned when a simulation does not exist or
	// belongs to a different owner. The two cases are deliberately
	// indistinguishable so ids never leak across owners.
	ErrSimulationNotFound = errors.New("simulation not found")

	ErrAlreadyRunning = errors.New("simulation is already running")
	ErrAlreadyStopped = errors.New("simulation is already stopped")
	ErrNotRunning     = errors.New("can only pause running simulations")
	ErrInvalidAction  = errors.New("invalid action")

	// ErrSimulationRunning blocks deletion of a RUNNING simulation.
	ErrSimulationRunning = errors.New("cannot delete a running simulation, stop it first")
)

// FieldError describes a single invalid field in a create/update payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError rejects a payload before any mutation, carrying a
// field-level detail list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// IsIllegalTransition reports whether err is a lifecycle precondition failure.
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrAlreadyRunning) ||
		errors.Is(err, ErrAlreadyStopped) ||
		errors.Is(err, ErrNotRunning)
}
