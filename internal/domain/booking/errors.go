package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError names the first request field that violated policy.
// Checks short-circuit, so a request never carries more than one.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Constraint)
}

func newValidationError(field, constraint string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint}
}

// InvalidTransitionError reports a workflow action the state machine
// refuses: acting on a terminal booking, acting out of step order, or
// cancelling a booking that is no longer pending.
type InvalidTransitionError struct {
	BookingID   uuid.UUID
	Status      Status
	CurrentStep int
	Reason      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition for booking %s (status=%s, step=%d): %s",
		e.BookingID, e.Status, e.CurrentStep, e.Reason)
}

// RoleMismatchError is returned when the acting party does not hold the
// role the transition requires.
type RoleMismatchError struct {
	BookingID    uuid.UUID
	RequiredRole string
	ActorRole    string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("role %q cannot act on booking %s: requires %q",
		e.ActorRole, e.BookingID, e.RequiredRole)
}
