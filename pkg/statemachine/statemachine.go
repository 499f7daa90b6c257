package statemachine

import (
	"context"
	"fmt"
	"slices"
)

// Enum is satisfied by finite, caller-declared value sets.
// Values must return every declared value in declaration order and must not
// depend on the receiver, so it can be called on the zero value.
type Enum[T any] interface {
	comparable
	Values() []T
}

// Action executes the side effect of a transition. Returning an error prevents the transition.
// The context is the cancellation signal for the in-flight call.
type Action[D any] func(ctx context.Context, data D) error

// Guard decides whether a transition may proceed for the given payload.
// Guards run synchronously while the machine is locked and should be free of side effects.
type Guard[D any] func(data D) bool

// TransitionKey is the composite key of the transition table.
type TransitionKey[S, E comparable] struct {
	State S
	Event E
}

func (k TransitionKey[S, E]) String() string {
	return fmt.Sprintf("(%v, %v)", k.State, k.Event)
}

// declared reports whether v is one of the values declared by its enumeration.
func declared[T Enum[T]](v T) bool {
	var zero T
	return slices.Contains(zero.Values(), v)
}

func nameOf(v any) string {
	return fmt.Sprint(v)
}
