package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrGuardRejected     = errors.New("guard rejected transition")
	ErrCancelled         = errors.New("advance cancelled")
	ErrAwaitTimeout      = errors.New("timed out waiting for advance to complete")
)

// ErrNoTransitionAvailable indicates no transition is registered for the given state/event combination.
type ErrNoTransitionAvailable struct {
	StateName string
	EventName string
}

func (e *ErrNoTransitionAvailable) Error() string {
	return fmt.Sprintf("no transition defined from state '%s' on event '%s'", e.StateName, e.EventName)
}

func (e *ErrNoTransitionAvailable) Unwrap() error {
	return ErrInvalidTransition
}

func NewErrNoTransitionAvailable(stateName, eventName string) *ErrNoTransitionAvailable {
	return &ErrNoTransitionAvailable{
		StateName: stateName,
		EventName: eventName,
	}
}

// ErrTransitionRejected indicates the guard of the matching transition evaluated to false.
type ErrTransitionRejected struct {
	StateName string
	EventName string
}

func (e *ErrTransitionRejected) Error() string {
	return fmt.Sprintf("guard failed for transition from state '%s' on event '%s'", e.StateName, e.EventName)
}

func (e *ErrTransitionRejected) Unwrap() error {
	return ErrGuardRejected
}

func NewErrTransitionRejected(stateName, eventName string) *ErrTransitionRejected {
	return &ErrTransitionRejected{
		StateName: stateName,
		EventName: eventName,
	}
}

// ErrDuplicateTransition indicates the (state, event) key is already occupied in the table.
type ErrDuplicateTransition struct {
	StateName string
	EventName string
	// ExistingTarget is the destination of the transition already registered for the key.
	ExistingTarget string
}

func (e *ErrDuplicateTransition) Error() string {
	return fmt.Sprintf("transition from state '%s' on event '%s' already registered (to '%s')",
		e.StateName, e.EventName, e.ExistingTarget)
}

func (e *ErrDuplicateTransition) Unwrap() error {
	return ErrInvalidOperation
}

func NewErrDuplicateTransition(stateName, eventName, existingTarget string) *ErrDuplicateTransition {
	return &ErrDuplicateTransition{
		StateName:      stateName,
		EventName:      eventName,
		ExistingTarget: existingTarget,
	}
}

func IsNoTransitionAvailableError(err error) bool {
	var e *ErrNoTransitionAvailable
	return errors.As(err, &e)
}

func IsTransitionRejectedError(err error) bool {
	var e *ErrTransitionRejected
	return errors.As(err, &e)
}

func IsDuplicateTransitionError(err error) bool {
	var e *ErrDuplicateTransition
	return errors.As(err, &e)
}

func IsCancelledError(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// cancelled joins ErrCancelled with the context cause so both remain matchable with errors.Is.
func cancelled(cause error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, cause)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
