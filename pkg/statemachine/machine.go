package statemachine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/fsmkit/pkg/logger"
)

// Machine is a deterministic state machine over caller-declared states S, events E and payload D.
//
// Advance calls are serialized by a weighted semaphore of size one so at most one
// transition action runs at a time. The table and the current state are
// additionally guarded by an RWMutex so Current, CanAdvance and friends never wait
// behind a running action.
type Machine[S Enum[S], E Enum[E], D any] struct {
	id  string
	log *slog.Logger
	sem *semaphore.Weighted

	mu          sync.RWMutex
	current     S
	transitions map[TransitionKey[S, E]]*Transition[S, E, D]
	onChange    func(from, to S)
}

// New creates a machine starting in initial. The logger is required and the
// initial state must be one of the values declared by S.
func New[S Enum[S], E Enum[E], D any](initial S, log *slog.Logger, opts ...Option[S, E, D]) (*Machine[S, E, D], error) {
	if log == nil {
		return nil, invalidArgument("logger cannot be nil")
	}
	if !declared(initial) {
		return nil, invalidArgument("initial state %v is not a declared %T value", initial, initial)
	}

	id := uuid.NewString()
	m := &Machine[S, E, D]{
		id:          id,
		log:         log.With(logger.Component("statemachine"), logger.MachineID(id)),
		sem:         semaphore.NewWeighted(1),
		current:     initial,
		transitions: make(map[TransitionKey[S, E]]*Transition[S, E, D]),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// NewFromEnums creates a machine whose initial state is the first value declared by S.
// S must declare at least two values and E at least one.
func NewFromEnums[S Enum[S], E Enum[E], D any](log *slog.Logger, opts ...Option[S, E, D]) (*Machine[S, E, D], error) {
	var s S
	states := s.Values()
	if len(states) < 2 {
		return nil, invalidArgument("state enumeration %T must declare at least two values, got %d", s, len(states))
	}

	var e E
	if events := e.Values(); len(events) < 1 {
		return nil, invalidArgument("event enumeration %T must declare at least one value", e)
	}

	return New(states[0], log, opts...)
}

// MustNew works like New but panics on error, for machines defined at package init.
func MustNew[S Enum[S], E Enum[E], D any](initial S, log *slog.Logger, opts ...Option[S, E, D]) *Machine[S, E, D] {
	m, err := New(initial, log, opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state machine: %v", err))
	}
	return m
}

// ID returns the identifier attached to every log record of this machine.
func (m *Machine[S, E, D]) ID() string {
	return m.id
}

// Current returns a snapshot of the current state without waiting on the exclusive section.
func (m *Machine[S, E, D]) Current() S {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// OnStateChange registers a callback invoked after each committed transition.
// The callback runs inside the exclusive section and must not call Advance on the same machine.
func (m *Machine[S, E, D]) OnStateChange(fn func(from, to S)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// AddTransition registers t under (t.From(), t.Event()).
// Registration is expected to finish before the machine receives concurrent traffic.
func (m *Machine[S, E, D]) AddTransition(t *Transition[S, E, D]) error {
	if t == nil {
		return invalidArgument("transition cannot be nil")
	}
	if t.action == nil {
		return invalidArgument("transition %v has no action", t.Key())
	}
	if !declared(t.from) || !declared(t.to) {
		return invalidArgument("transition %v -> %v uses an undeclared state", t.from, t.to)
	}
	if !declared(t.event) {
		return invalidArgument("transition %v uses an undeclared event", t.Key())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := t.Key()
	if existing, ok := m.transitions[key]; ok {
		return NewErrDuplicateTransition(nameOf(key.State), nameOf(key.Event), nameOf(existing.to))
	}
	m.transitions[key] = t
	return nil
}

// Add builds a transition from its parts and registers it. guard may be nil.
func (m *Machine[S, E, D]) Add(from S, event E, to S, action Action[D], guard Guard[D]) error {
	t, err := NewTransition(from, event, to, action, guard)
	if err != nil {
		return err
	}
	return m.AddTransition(t)
}

// Advance fires event with data against the current state.
//
// Calls are serialized; a caller waiting for another Advance to finish gives up
// with ErrCancelled when ctx is done. On success the new state is returned. On
// any failure the state is left unchanged and the zero S is returned: lookup
// misses yield ErrNoTransitionAvailable, guard rejections ErrTransitionRejected,
// cancellation ErrCancelled, and action errors are returned as is.
// ctx must be non-nil; pass context.Background() when no cancellation is needed.
func (m *Machine[S, E, D]) Advance(ctx context.Context, event E, data D) (S, error) {
	var zero S

	if err := m.sem.Acquire(ctx, 1); err != nil {
		return zero, cancelled(err)
	}
	defer m.sem.Release(1)

	m.mu.RLock()
	from := m.current
	t, ok := m.transitions[TransitionKey[S, E]{State: from, Event: event}]
	m.mu.RUnlock()

	if !ok {
		m.log.WarnContext(ctx, fmt.Sprintf("no transition defined from %v on event %v", from, event),
			logger.FromState(nameOf(from)),
			logger.Event(nameOf(event)),
		)
		return zero, NewErrNoTransitionAvailable(nameOf(from), nameOf(event))
	}

	if !t.allows(data) {
		m.log.WarnContext(ctx, fmt.Sprintf("guard failed for transition from %v on event %v", from, event),
			logger.FromState(nameOf(from)),
			logger.Event(nameOf(event)),
		)
		return zero, NewErrTransitionRejected(nameOf(from), nameOf(event))
	}

	if err := ctx.Err(); err != nil {
		return zero, cancelled(err)
	}

	m.log.InfoContext(ctx, fmt.Sprintf("transitioning from %v to %v on event %v", from, t.to, event),
		logger.FromState(nameOf(from)),
		logger.ToState(nameOf(t.to)),
		logger.Event(nameOf(event)),
	)

	if err := t.action(ctx, data); err != nil {
		// Only an action that returned the context's own error is a cancellation.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return zero, cancelled(err)
		}
		return zero, err
	}

	m.mu.Lock()
	m.current = t.to
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(from, t.to)
	}

	return t.to, nil
}

// CanAdvance reports whether Advance would find a transition for event from the
// current state and pass its guard. The action is not run.
func (m *Machine[S, E, D]) CanAdvance(event E, data D) bool {
	m.mu.RLock()
	t, ok := m.transitions[TransitionKey[S, E]{State: m.current, Event: event}]
	m.mu.RUnlock()

	return ok && t.allows(data)
}

// PermittedEvents lists events with a registered transition from the current
// state, in declaration order. Guards are not evaluated.
func (m *Machine[S, E, D]) PermittedEvents() []E {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var e E
	var events []E
	for _, ev := range e.Values() {
		if _, ok := m.transitions[TransitionKey[S, E]{State: m.current, Event: ev}]; ok {
			events = append(events, ev)
		}
	}
	return events
}

// Transitions returns the registered transitions ordered by source state, then event,
// following declaration order.
func (m *Machine[S, E, D]) Transitions() []*Transition[S, E, D] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s S
	var e E
	result := make([]*Transition[S, E, D], 0, len(m.transitions))
	for _, st := range s.Values() {
		for _, ev := range e.Values() {
			if t, ok := m.transitions[TransitionKey[S, E]{State: st, Event: ev}]; ok {
				result = append(result, t)
			}
		}
	}
	return result
}
