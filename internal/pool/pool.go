// Package pool provides bounded concurrent fan-out for column evaluation
// and windowed sub-evaluation, adapting the worker-pool/job/result shape
// sentra's concurrency module used for scan fan-out to tada's evaluation
// fan-out instead.
package pool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the minimum job count below which Run serializes
// rather than spinning up goroutines, per the "par is a hint, not a
// guarantee" design note: scheduling overhead dominates small fan-outs.
const parallelThreshold = 4

// Job is one unit of fan-out work: evaluate a single column expression,
// a single group's aggregation, or a single rolling-by-startidx step.
type Job struct {
	ID  string
	Run func(ctx context.Context) (any, error)
}

// JobResult carries a Job's outcome back to the caller in submission
// order, so that column order (spec §3.6 "ordered Expr vector") and
// group order are preserved regardless of completion order.
type JobResult struct {
	ID     string
	Value  any
	Err    error
}

// Run executes jobs with bounded parallelism and returns their results
// in the same order as jobs. par is a hint (spec §9 "Parallelism
// discipline"): when false, or when there are too few jobs to be worth
// scheduling, Run executes them sequentially on the calling goroutine.
// The first job error cancels the remaining jobs and is returned.
func Run(ctx context.Context, jobs []Job, par bool) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))
	if !par || len(jobs) < parallelThreshold {
		for i, j := range jobs {
			v, err := j.Run(ctx)
			results[i] = JobResult{ID: j.ID, Value: v, Err: err}
			if err != nil {
				return results, err
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(len(jobs)))
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			v, err := j.Run(gctx)
			results[i] = JobResult{ID: j.ID, Value: v, Err: err}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// workerLimit caps concurrency at the number of jobs or the machine's
// CPU count, whichever is smaller, so a handful of columns never
// oversubscribes the scheduler.
func workerLimit(jobs int) int {
	n := runtime.GOMAXPROCS(0)
	if jobs < n {
		return jobs
	}
	return n
}
