package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/signalnine/swarmeval/internal/evaluator"
	"github.com/signalnine/swarmeval/internal/result"
	"go.uber.org/zap"
)

// CostTask is one configuration to score.
type CostTask struct {
	Params  string
	Config  string
	Library string
	Trials  int
	Verbose bool
}

type BatchOpts struct {
	Evaluator  string
	PoolSize   int
	LaunchRate float64
	FailFast   bool
	Exec       evaluator.Executor
	Logger     *zap.Logger
}

// BuildTasks makes one task per configuration, in input order.
func BuildTasks(configs []string, library, params string, trials int, verbose bool) []CostTask {
	tasks := make([]CostTask, 0, len(configs))
	for _, cfg := range configs {
		tasks = append(tasks, CostTask{
			Params:  params,
			Config:  cfg,
			Library: library,
			Trials:  trials,
			Verbose: verbose,
		})
	}
	return tasks
}

// EvaluateCosts runs the evaluator for one task. Evaluator failures are
// returned as a failed result, never as an error.
func EvaluateCosts(ctx context.Context, exec evaluator.Executor, bin string, task CostTask, log *zap.Logger) result.CostResult {
	argv := evaluator.CostCommand(bin, task.Config, task.Library, task.Params, task.Trials)
	cmdline := strings.Join(argv, " ")

	out, err := exec.Run(ctx, argv)
	if err != nil {
		log.Error("subprocess failed", zap.String("command", cmdline), zap.Error(err))
		return result.Failure(err.Error())
	}
	if out.Failed() {
		log.Error("subprocess failed",
			zap.String("command", cmdline),
			zap.Int("exit_code", out.ExitCode),
			zap.Bool("timed_out", out.TimedOut),
			zap.String("stdout", out.Stdout))
		if out.TimedOut {
			return result.Failure(fmt.Sprintf("timed out after %s", out.Duration.Round(time.Second)))
		}
		return result.Failure(fmt.Sprintf("exit status %d", out.ExitCode))
	}

	costs := evaluator.ParseCosts(out.Stdout)
	if task.Verbose {
		log.Info("evaluated", zap.String("command", cmdline), zap.Float64s("costs", costs))
	}
	return result.Success(costs)
}

// EvaluateAll scores every task on a bounded pool and returns one row per
// task in input order.
func EvaluateAll(ctx context.Context, tasks []CostTask, opts *BatchOpts) []result.CostRow {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	errFailed := errors.New("evaluation failed")
	jobs := make([]Job[result.CostResult], len(tasks))
	for i, task := range tasks {
		jobs[i] = func(ctx context.Context) (result.CostResult, error) {
			fmt.Printf("Evaluating %s (%d trials)...\n", task.Config, task.Trials)
			res := EvaluateCosts(ctx, opts.Exec, opts.Evaluator, task, log)
			if !res.Ok() {
				return res, errFailed
			}
			return res, nil
		}
	}

	results, errs := RunPool(ctx, opts.PoolSize, jobs, PoolOpts{
		LaunchRate: opts.LaunchRate,
		FailFast:   opts.FailFast,
	})

	rows := make([]result.CostRow, len(tasks))
	for i, task := range tasks {
		res := results[i]
		if errs[i] != nil && res.Ok() {
			// Never started.
			res = result.Failure(fmt.Sprintf("cancelled: %v", errs[i]))
		}
		rows[i] = result.CostRow{Config: task.Config, CostResult: res}
	}
	return rows
}

// CountFailures returns how many rows carry a failure marker.
func CountFailures(rows []result.CostRow) int {
	n := 0
	for _, r := range rows {
		if !r.Ok() {
			n++
		}
	}
	return n
}
