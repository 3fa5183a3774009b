// Package simulation runs Monte Carlo batches of games and aggregates their outcomes.
package simulation

import (
	"context"
	"fmt"

	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
)

// Options configures one batch.
type Options struct {
	Trials int
	// Seed is the harness seed; it is only used when Seeded is set, otherwise
	// a seed is drawn from crypto/rand.
	Seed   uint64
	Seeded bool
	// Workers is the number of goroutines playing trials. 0 uses every CPU,
	// 1 runs serially on the calling goroutine.
	Workers int
}

func (o Options) baseSeed() (uint64, error) {
	if o.Seeded {
		return o.Seed, nil
	}
	return dice.NewSeed()
}

// Run plays opts.Trials games of rules under s and aggregates them. Results
// are identical for any worker count given the same seed.
//
// Cancellation is checked between trials. A cancelled run returns the stats of
// the trials that finished along with the context error.
func Run(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, opts Options) (Stats, error) {
	if err := checkConfig(rules, []engine.Strategy{s}, opts.Trials); err != nil {
		return Stats{}, err
	}
	base, err := opts.baseSeed()
	if err != nil {
		return Stats{}, err
	}
	return run(ctx, rules, s, base, opts.Trials, opts.Workers)
}

func run(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, base uint64, trials, workers int) (Stats, error) {
	if workers == 1 || trials <= chunkSize {
		return runRange(ctx, rules, s, base, 0, trials)
	}
	return runParallel(ctx, rules, s, base, trials, workers)
}

// RunSingleGame plays the game of one trial seed.
func RunSingleGame(rules *ruleset.RuleSet, s engine.Strategy, seed uint64) engine.TrialOutcome {
	return engine.Play(rules, s, dice.NewSource(seed))
}

// runRange plays trials [start, end) and aggregates them.
func runRange(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, base uint64, start, end int) (Stats, error) {
	var stats Stats
	src := dice.NewSource(0)
	done := ctx.Done()

	for i := start; i < end; i++ {
		select {
		case <-done:
			return stats, ctx.Err()
		default:
		}
		src.Reseed(TrialSeed(base, i))
		stats.Update(engine.Play(rules, s, src))
	}
	return stats, nil
}

// checkConfig rejects a batch before any trial runs.
func checkConfig(rules *ruleset.RuleSet, strategies []engine.Strategy, trials int) error {
	var errs []ruleset.ValidationError

	if rules == nil {
		errs = append(errs, ruleset.ValidationError{Field: "rules", Message: "no rule set"})
	} else {
		errs = append(errs, rules.Validate()...)
	}
	if trials <= 0 {
		errs = append(errs, ruleset.ValidationError{Field: "trials", Message: "must be positive"})
	}
	if len(strategies) == 0 {
		errs = append(errs, ruleset.ValidationError{Field: "strategies", Message: "no strategies to simulate"})
	}
	for i, s := range strategies {
		if s == nil {
			errs = append(errs, ruleset.ValidationError{Field: "strategies", Message: fmt.Sprintf("nil strategy at position %d", i)})
		}
	}
	return ruleset.NewConfigError(errs)
}
