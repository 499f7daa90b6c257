package statemachine

// Transition is an immutable (from, event) -> to edge with its action and optional guard.
// Build one with NewTransition; the zero value is rejected by the machine.
type Transition[S Enum[S], E Enum[E], D any] struct {
	from   S
	event  E
	to     S
	action Action[D]
	guard  Guard[D]
}

// NewTransition creates a transition. The action is required, the guard may be nil.
func NewTransition[S Enum[S], E Enum[E], D any](from S, event E, to S, action Action[D], guard Guard[D]) (*Transition[S, E, D], error) {
	if action == nil {
		return nil, invalidArgument("action is required for transition %v -> %v on %v", from, to, event)
	}
	return &Transition[S, E, D]{
		from:   from,
		event:  event,
		to:     to,
		action: action,
		guard:  guard,
	}, nil
}

func (t *Transition[S, E, D]) From() S { return t.from }
func (t *Transition[S, E, D]) Event() E { return t.event }
func (t *Transition[S, E, D]) To() S { return t.to }

// Guarded reports whether the transition carries a guard.
func (t *Transition[S, E, D]) Guarded() bool { return t.guard != nil }

// Key returns the table key the transition is registered under.
func (t *Transition[S, E, D]) Key() TransitionKey[S, E] {
	return TransitionKey[S, E]{State: t.from, Event: t.event}
}

// Equal compares transitions by (from, event, to). Action and guard are ignored.
func (t *Transition[S, E, D]) Equal(other *Transition[S, E, D]) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.from == other.from && t.event == other.event && t.to == other.to
}

// allows evaluates the guard; transitions without a guard always pass.
func (t *Transition[S, E, D]) allows(data D) bool {
	return t.guard == nil || t.guard(data)
}
