package runner

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Job runs one unit of work. A returned error counts as a failure for
// fail-fast pools; the job's own result is carried in T.
type Job[T any] func(ctx context.Context) (T, error)

type PoolOpts struct {
	// LaunchRate caps job starts per second; zero means unlimited.
	LaunchRate float64
	// FailFast stops launching new jobs after the first error.
	FailFast bool
}

// RunPool executes jobs with at most maxWorkers concurrently. Results and
// errors are indexed like jobs regardless of completion order. Jobs that were
// never started because ctx ended (or a fail-fast pool tripped) get the
// context's error.
func RunPool[T any](ctx context.Context, maxWorkers int, jobs []Job[T], opts PoolOpts) ([]T, []error) {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	results := make([]T, len(jobs))
	errs := make([]error, len(jobs))

	var limiter *rate.Limiter
	if opts.LaunchRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.LaunchRate), 1)
	}

	poolCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := poolCtx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			if limiter != nil {
				if err := limiter.Wait(poolCtx); err != nil {
					errs[i] = err
					return nil
				}
			}
			res, err := job(poolCtx)
			results[i] = res
			errs[i] = err
			if err != nil && opts.FailFast {
				cancel()
			}
			return nil
		})
	}
	g.Wait()
	return results, errs
}
