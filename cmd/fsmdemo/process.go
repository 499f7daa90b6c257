package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// ProcessState is the lifecycle of a supervised process.
type ProcessState int

const (
	Inactive ProcessState = iota
	Active
	Paused
	Terminated
)

func (ProcessState) Values() []ProcessState {
	return []ProcessState{Inactive, Active, Paused, Terminated}
}

func (s ProcessState) String() string {
	switch s {
	case Inactive:
		return "Inactive"
	case Active:
		return "Active"
	case Paused:
		return "Paused"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("ProcessState(%d)", int(s))
}

// Command drives ProcessState transitions.
type Command int

const (
	Exit Command = iota
	Begin
	End
	Pause
	Resume
)

func (Command) Values() []Command {
	return []Command{Exit, Begin, End, Pause, Resume}
}

func (c Command) String() string {
	switch c {
	case Exit:
		return "Exit"
	case Begin:
		return "Begin"
	case End:
		return "End"
	case Pause:
		return "Pause"
	case Resume:
		return "Resume"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Job is the payload handed to every transition action.
type Job struct {
	ID   int
	Work time.Duration
}

type ProcessMachine = statemachine.Machine[ProcessState, Command, *Job]

// hasJob rejects transitions that would start or resume work without a job.
func hasJob(j *Job) bool {
	return j != nil && j.ID > 0
}

// simulate sleeps for the job's work duration or until ctx is done.
func simulate(ctx context.Context, j *Job) error {
	if j == nil || j.Work <= 0 {
		return nil
	}
	timer := time.NewTimer(j.Work)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func noop(context.Context, *Job) error { return nil }

// newProcessMachine wires the process lifecycle table.
// The initial state is the first declared ProcessState.
func newProcessMachine(log *slog.Logger) (*ProcessMachine, error) {
	return statemachine.NewBuilder[ProcessState, Command, *Job](Inactive, log).
		From(Inactive).When(Begin).To(Active).Guard(hasJob).Do(simulate).Add().
		From(Inactive).When(Exit).To(Terminated).Do(noop).Add().
		From(Active).When(Pause).To(Paused).Do(noop).Add().
		From(Active).When(End).To(Inactive).Do(noop).Add().
		From(Paused).When(Resume).To(Active).Guard(hasJob).Do(simulate).Add().
		From(Paused).When(End).To(Inactive).Do(noop).Add().
		Build()
}
