package statemachine_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

type State int

const (
	Initial State = iota
	Middle
	Done
	Orphan
)

func (State) Values() []State { return []State{Initial, Middle, Done, Orphan} }

var stateNames = []string{"Initial", "Middle", "Done", "Orphan"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

type Event int

const (
	Go Event = iota
	Stop
	Unused
)

func (Event) Values() []Event { return []Event{Go, Stop, Unused} }

var eventNames = []string{"Go", "Stop", "Unused"}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

type payload struct {
	N int
}

// singleState declares fewer values than NewFromEnums requires.
type singleState int

func (singleState) Values() []singleState { return []singleState{0} }

// noEvents declares no values at all.
type noEvents int

func (noEvents) Values() []noEvents { return nil }

type machine = statemachine.Machine[State, Event, *payload]

func newMachine(t testing.TB) *machine {
	t.Helper()
	m, err := statemachine.New[State, Event, *payload](Initial, logger.Discard())
	require.NoError(t, err)
	return m
}

// recorder is an action that records the payloads it was called with.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) action(name string) statemachine.Action[*payload] {
	return func(_ context.Context, p *payload) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		if p == nil {
			r.calls = append(r.calls, name+":nil")
			return nil
		}
		r.calls = append(r.calls, fmt.Sprintf("%s:%d", name, p.N))
		return nil
	}
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func noop(context.Context, *payload) error { return nil }

// syncBuffer lets the JSON handler write while tests read.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) records(t testing.TB) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(b.buf.Bytes()))
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

func newLoggedMachine(t testing.TB) (*machine, *syncBuffer) {
	t.Helper()
	buf := &syncBuffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(slog.LevelDebug))
	m, err := statemachine.New[State, Event, *payload](Initial, log)
	require.NoError(t, err)
	return m, buf
}
