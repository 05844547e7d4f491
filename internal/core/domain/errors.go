package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")

	// ErrBedTaken is returned when the compare-and-set reservation loses the
	// race for a bed. Callers retry selection against a fresh candidate pool.
	ErrBedTaken = errors.New("bed was taken by another booking")
)

// TransitionError reports a booking state machine guard violation.
type TransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal booking transition from %q to %q", e.From, e.To)
}

// RefundTransitionError reports a refund sub-state machine guard violation.
type RefundTransitionError struct {
	From RefundStatus
	To   RefundStatus
}

func (e *RefundTransitionError) Error() string {
	return fmt.Sprintf("illegal refund transition from %q to %q", e.From, e.To)
}

// StepError wraps a failure from a required onboarding step.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("onboarding step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
