package statemachine

import "log/slog"

// Builder provides a fluent API for building state machines.
//
//	m, err := statemachine.NewBuilder[State, Event, *Order](Draft, log).
//		From(Draft).When(Submit).To(InReview).Do(notify).Add().
//		From(InReview).When(Approve).To(Approved).Guard(isOwner).Do(publish).Add().
//		Build()
//
// The first invalid step is remembered and returned by Build.
type Builder[S Enum[S], E Enum[E], D any] struct {
	initial S
	log     *slog.Logger
	defs    []TransitionDef[S, E, D]
	err     error

	current  TransitionDef[S, E, D]
	hasFrom  bool
	hasEvent bool
	hasTo    bool
	guards   []Guard[D]
}

// NewBuilder creates a new state machine builder.
func NewBuilder[S Enum[S], E Enum[E], D any](initial S, log *slog.Logger) *Builder[S, E, D] {
	return &Builder[S, E, D]{initial: initial, log: log}
}

// From sets the source state and starts a new transition.
func (b *Builder[S, E, D]) From(state S) *Builder[S, E, D] {
	b.reset()
	b.current.From = state
	b.hasFrom = true
	return b
}

// When sets the event that triggers the transition.
func (b *Builder[S, E, D]) When(event E) *Builder[S, E, D] {
	b.current.Event = event
	b.hasEvent = true
	return b
}

// To sets the target state.
func (b *Builder[S, E, D]) To(state S) *Builder[S, E, D] {
	b.current.To = state
	b.hasTo = true
	return b
}

// Guard adds a guard; multiple guards must all pass.
func (b *Builder[S, E, D]) Guard(guard Guard[D]) *Builder[S, E, D] {
	b.guards = append(b.guards, guard)
	return b
}

// Do sets the action.
func (b *Builder[S, E, D]) Do(action Action[D]) *Builder[S, E, D] {
	b.current.Action = action
	return b
}

// Add finalizes the current transition.
func (b *Builder[S, E, D]) Add() *Builder[S, E, D] {
	if b.err == nil {
		switch {
		case !b.hasFrom:
			b.err = invalidArgument("builder transition #%d has no source state", len(b.defs))
		case !b.hasEvent:
			b.err = invalidArgument("builder transition #%d has no event", len(b.defs))
		case !b.hasTo:
			b.err = invalidArgument("builder transition #%d has no target state", len(b.defs))
		default:
			cfg := transitionConfig[D]{}
			WithGuards(b.guards...)(&cfg)
			b.current.Guard = cfg.guard()
			b.defs = append(b.defs, b.current)
		}
	}
	b.reset()
	return b
}

// Build creates the machine with every added transition.
func (b *Builder[S, E, D]) Build() (*Machine[S, E, D], error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.initial, b.log, WithTransitions(b.defs))
}

// reset clears the current transition configuration.
func (b *Builder[S, E, D]) reset() {
	b.current = TransitionDef[S, E, D]{}
	b.hasFrom = false
	b.hasEvent = false
	b.hasTo = false
	b.guards = nil
}
