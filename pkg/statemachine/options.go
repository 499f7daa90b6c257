package statemachine

import "fmt"

// Option configures a state machine during construction.
type Option[S Enum[S], E Enum[E], D any] func(*Machine[S, E, D]) error

// TransitionOption configures a single transition registered through WithTransition.
type TransitionOption[D any] func(*transitionConfig[D])

// TransitionDef defines a transition for bulk registration.
type TransitionDef[S Enum[S], E Enum[E], D any] struct {
	From   S
	Event  E
	To     S
	Action Action[D]
	Guard  Guard[D]
}

type transitionConfig[D any] struct {
	guards []Guard[D]
}

// guard folds the configured guards into one; nil when none were configured.
func (c *transitionConfig[D]) guard() Guard[D] {
	switch len(c.guards) {
	case 0:
		return nil
	case 1:
		return c.guards[0]
	}
	guards := c.guards
	return func(data D) bool {
		for _, g := range guards {
			if !g(data) {
				return false
			}
		}
		return true
	}
}

// WithTransition adds a single transition to the state machine.
func WithTransition[S Enum[S], E Enum[E], D any](from S, event E, to S, action Action[D], opts ...TransitionOption[D]) Option[S, E, D] {
	return func(m *Machine[S, E, D]) error {
		cfg := &transitionConfig[D]{}
		for _, opt := range opts {
			opt(cfg)
		}

		return m.Add(from, event, to, action, cfg.guard())
	}
}

// WithTransitions adds multiple transitions to the state machine at once.
// The first failing definition aborts construction.
func WithTransitions[S Enum[S], E Enum[E], D any](defs []TransitionDef[S, E, D]) Option[S, E, D] {
	return func(m *Machine[S, E, D]) error {
		for i, d := range defs {
			if err := m.Add(d.From, d.Event, d.To, d.Action, d.Guard); err != nil {
				return fmt.Errorf("failed to add transition[%d] %v->%v on %v: %w",
					i, d.From, d.To, d.Event, err)
			}
		}
		return nil
	}
}

// WithGuard sets the guard of a transition. Nil guards are ignored.
func WithGuard[D any](guard Guard[D]) TransitionOption[D] {
	return func(cfg *transitionConfig[D]) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithGuards combines guards into a single guard that passes only when all of them pass.
func WithGuards[D any](guards ...Guard[D]) TransitionOption[D] {
	return func(cfg *transitionConfig[D]) {
		for _, guard := range guards {
			if guard != nil {
				cfg.guards = append(cfg.guards, guard)
			}
		}
	}
}
