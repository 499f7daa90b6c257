// Package statemachine provides a generic, concurrency-safe finite-state-machine
// engine with guarded, cancellable transitions.
//
// Callers declare the states and events as their own enumeration types and
// register (state, event) -> state transitions, each carrying an Action and an
// optional Guard. The engine handles:
//  1. Table determinism: at most one transition per (state, event) pair
//  2. Guard evaluation to accept or reject a transition for a payload
//  3. Execution of the side-effect Action under a per-machine exclusive section
//  4. Cooperative cancellation through context.Context
//
// # Declaring enumerations
//
// State and event types satisfy Enum by listing their declared values. The
// list backs the "is this a real state" check in New and the
// "first declared value is initial" convention of NewFromEnums:
//
//	type Phase int
//
//	const (
//	    Draft Phase = iota
//	    InReview
//	    Approved
//	)
//
//	func (Phase) Values() []Phase { return []Phase{Draft, InReview, Approved} }
//
// # Usage
//
//	m, err := statemachine.New[Phase, Step, *Document](Draft, log)
//	if err != nil {
//	    return err
//	}
//
//	_ = m.Add(Draft, Submit, InReview, notifyReviewers, nil)
//	_ = m.Add(InReview, Approve, Approved, publish, isOwner)
//
//	next, err := m.Advance(ctx, Submit, doc)
//
// Functional options (WithTransition, WithGuard) and the fluent Builder are
// available for declaring a table up front.
//
// # Execution
//
// Advance acquires the machine's exclusive section, looks up the transition for
// (Current(), event), evaluates its guard, logs the intended transition at info
// level, runs the action and commits the destination state only if the action
// succeeds. The section is released on every path. Waiting for the section
// honours ctx, so a caller stuck behind a slow action can give up.
//
// Go runs Advance in the background and returns a Pending future.
//
// # Error Handling
//
// Every failure leaves the state unchanged:
//
//	if statemachine.IsNoTransitionAvailableError(err) { /* ErrInvalidTransition */ }
//	if statemachine.IsTransitionRejectedError(err)    { /* ErrGuardRejected */ }
//	if statemachine.IsCancelledError(err)             { /* ErrCancelled */ }
//
// Errors returned by an action are passed through untouched, unless they wrap
// the error of a ctx that is already done; those become ErrCancelled.
// Registration failures unwrap to ErrInvalidArgument or, for an occupied
// (state, event) key, ErrInvalidOperation via ErrDuplicateTransition.
//
// # Logging
//
// The logger passed to New receives a warning for unknown transitions and
// rejected guards, and an info record before each action runs. Records carry
// component, machine_id, from_state, to_state and event attributes.
package statemachine
