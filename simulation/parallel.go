package simulation

import (
	"context"
	"runtime"
	"sync"

	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
)

// chunkSize is how many consecutive trials a worker takes per job.
const chunkSize = 1024

// TrialJob is a range of trial indices [Start, End).
type TrialJob struct {
	Start int
	End   int
}

type workerResult struct {
	stats Stats
	err   error
}

// runParallel executes a batch on a worker pool. Every worker aggregates into
// its own Stats; they are merged once all jobs are done.
func runParallel(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, base uint64, trials, numWorkers int) (Stats, error) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numJobs := (trials + chunkSize - 1) / chunkSize
	numWorkers = min(numWorkers, numJobs)

	jobs := make(chan TrialJob, numJobs)
	results := make(chan workerResult, numWorkers)

	var wg sync.WaitGroup

	// Start workers
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(ctx, &wg, jobs, results, rules, s, base)
	}

	for start := 0; start < trials; start += chunkSize {
		jobs <- TrialJob{Start: start, End: min(start+chunkSize, trials)}
	}
	close(jobs)

	// Wait for all workers to complete, then close results
	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		total    Stats
		firstErr error
	)
	for r := range results {
		total.Merge(r.stats)
		if r.err != nil && firstErr == nil {
			firstErr = r.err
		}
	}
	return total, firstErr
}

// worker plays jobs until the channel is drained or the context is done.
func worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan TrialJob, results chan<- workerResult, rules *ruleset.RuleSet, s engine.Strategy, base uint64) {
	defer wg.Done()

	var stats Stats
	for job := range jobs {
		part, err := runRange(ctx, rules, s, base, job.Start, job.End)
		stats.Merge(part)
		if err != nil {
			results <- workerResult{stats: stats, err: err}
			return
		}
	}
	results <- workerResult{stats: stats}
}
