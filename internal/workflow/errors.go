package workflow

import (
	"fmt"

	"github.com/marcus/bookmodal/internal/models"
)

// TransitionError represents an error when a transition is not allowed
type TransitionError struct {
	Event  Event
	From   models.Step
	To     models.Step
	Reason string
}

func (e *TransitionError) Error() string {
	if e.To == e.From && e.Event != EventReset {
		return fmt.Sprintf("cannot %s from %s: %s", e.Event, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s from %s to %s: %s", e.Event, e.From, e.To, e.Reason)
}

// GuardError represents an error when a guard check fails
type GuardError struct {
	GuardName string
	Reason    string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("guard %s failed: %s", e.GuardName, e.Reason)
}

// ValidationError wraps multiple guard failures
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d validation errors", len(e.Errors))
}

// Add adds an error to the validation error
func (e *ValidationError) Add(err error) {
	e.Errors = append(e.Errors, err)
}

// HasErrors returns true if there are validation errors
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// Unwrap exposes the individual guard failures to errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Errors
}
