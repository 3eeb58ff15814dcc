package evaluator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"
)

// DefaultPath is where the simulation build drops the evaluator binary.
const DefaultPath = "./build/bin/evaluate"

// waitDelay bounds how long Run waits for stdout to close after the
// evaluator has been killed.
const waitDelay = 2 * time.Second

type Output struct {
	Stdout   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// Failed reports whether the evaluator exited unsuccessfully.
func (o *Output) Failed() bool {
	return o.ExitCode != 0 || o.TimedOut
}

// Executor runs one evaluator invocation. A non-zero exit status is reported
// through Output, not as an error; errors mean the process could not be run.
type Executor interface {
	Run(ctx context.Context, argv []string) (*Output, error)
}

// PoseCommand builds the argv used to generate pose files for one configuration.
func PoseCommand(bin, config, params string, trials int) []string {
	return []string{bin, config, params, "-t", strconv.Itoa(trials)}
}

// CostCommand builds the argv used to score one configuration with a loop
// function library.
func CostCommand(bin, config, library, params string, trials int) []string {
	return []string{bin, "-t", strconv.Itoa(trials), config, library, params}
}

type LocalExecutor struct {
	Dir     string
	Timeout time.Duration
	// Env is added to the inherited environment.
	Env []string
}

func (e *LocalExecutor) Run(ctx context.Context, argv []string) (*Output, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = e.Dir
	cmd.Stderr = os.Stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.Env...)
	}

	start := time.Now()
	out, err := cmd.Output()
	res := &Output{Stdout: string(out), Duration: time.Since(start)}
	if err == nil {
		return res, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else if ctx.Err() == nil {
		return nil, fmt.Errorf("running %s: %w", argv[0], err)
	}
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.TimedOut = true
	case ctx.Err() != nil:
		return res, ctx.Err()
	}
	return res, nil
}
