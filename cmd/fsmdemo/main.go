package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/fsmkit/pkg/config"
	"github.com/dmitrymomot/fsmkit/pkg/logger"
	"github.com/dmitrymomot/fsmkit/pkg/statemachine"
)

// Settings is read from the environment (and an optional .env file).
type Settings struct {
	Service       string        `env:"FSM_SERVICE_NAME" envDefault:"fsmdemo"`
	Env           string        `env:"APP_ENV" envDefault:"development"`
	LogFormat     string        `env:"FSM_LOG_FORMAT"`
	LogLevel      string        `env:"FSM_LOG_LEVEL"`
	ActionTimeout time.Duration `env:"FSM_ACTION_TIMEOUT" envDefault:"2s"`
}

// step is one scripted command of the demo run.
type step struct {
	cmd Command
	job *Job
}

func main() {
	var s Settings
	if err := config.Load(&s); err != nil {
		fmt.Fprintf(os.Stderr, "load settings: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, s.ActionTimeout, demoScript()); err != nil {
		log.Error("demo failed", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(s Settings) (*slog.Logger, error) {
	opts := []logger.Option{logger.WithEnvironment(s.Env, s.Service)}
	if s.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(s.LogFormat)))
	}
	if s.LogLevel != "" {
		level, err := logger.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	return logger.New(opts...), nil
}

func demoScript() []step {
	job := &Job{ID: 1, Work: 50 * time.Millisecond}
	return []step{
		{cmd: Begin, job: nil},
		{cmd: Begin, job: job},
		{cmd: Resume, job: job},
		{cmd: Pause, job: job},
		{cmd: Resume, job: job},
		{cmd: End, job: job},
		{cmd: Exit, job: nil},
	}
}

// run feeds the script to a fresh process machine. Rejected commands are
// logged and skipped; cancellation of ctx and action errors stop the run.
func run(ctx context.Context, log *slog.Logger, timeout time.Duration, script []step) error {
	m, err := newProcessMachine(log)
	if err != nil {
		return err
	}
	m.OnStateChange(func(from, to ProcessState) {
		log.Debug("process state changed", logger.FromState(from.String()), logger.ToState(to.String()))
	})

	for _, st := range script {
		next, err := advance(ctx, m, timeout, st)
		switch {
		case err == nil:
			log.Info("command applied", logger.Event(st.cmd.String()), logger.State(next.String()))
		case statemachine.IsNoTransitionAvailableError(err), statemachine.IsTransitionRejectedError(err):
			log.Info("command skipped", logger.Event(st.cmd.String()), logger.State(m.Current().String()), logger.Error(err))
		case statemachine.IsCancelledError(err) && ctx.Err() == nil:
			log.Warn("command timed out", logger.Event(st.cmd.String()), logger.Duration(timeout))
		default:
			return err
		}
	}

	if m.Current() != Terminated {
		return errors.New("process did not terminate")
	}
	return nil
}

func advance(ctx context.Context, m *ProcessMachine, timeout time.Duration, st step) (ProcessState, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return m.Advance(ctx, st.cmd, st.job)
}
