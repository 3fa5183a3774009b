package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"golang.org/x/sync/errgroup"

	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/logging"
	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/telemetry"
)

// BatchOptions configures RunAll.
type BatchOptions struct {
	Options
	// Parallel is how many strategy batches run at once; values below 1 mean 1.
	Parallel int
}

// Runner runs strategy batches with logging and telemetry.
type Runner struct {
	logger  *bolt.Logger
	metrics telemetry.Metrics
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger. Batches are logged once each, never per trial.
func WithLogger(l *bolt.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m telemetry.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner creates a runner. Without options it logs nothing and records no metrics.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger:  logging.Nop(),
		metrics: telemetry.NoopMetricsProvider{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunAll runs every strategy against rules with NewRunner defaults.
func RunAll(ctx context.Context, rules *ruleset.RuleSet, strategies []engine.Strategy, opts BatchOptions) ([]Summary, error) {
	return NewRunner().RunAll(ctx, rules, strategies, opts)
}

// RunAll runs one batch per strategy and returns their summaries ranked best
// first. Every batch uses the same harness seed, so trial i deals the same
// opening roll to each strategy.
func (r *Runner) RunAll(ctx context.Context, rules *ruleset.RuleSet, strategies []engine.Strategy, opts BatchOptions) ([]Summary, error) {
	if err := checkConfig(rules, strategies, opts.Trials); err != nil {
		r.metrics.RecordError(ctx, "configuration")
		logging.NewEvent(r.logger.Error()).Add(logging.Component("simulation"), logging.ErrorField(err)).Msg("invalid simulation config")
		return nil, err
	}
	base, err := opts.baseSeed()
	if err != nil {
		return nil, fmt.Errorf("failed to seed simulation: %w", err)
	}

	logging.NewEvent(r.logger.Info()).Add(
		logging.Component("simulation"),
		logging.Rules(rules.Name),
		logging.Trials(opts.Trials),
		logging.Seed(base),
		logging.Workers(opts.Workers),
		logging.Count("strategies", int64(len(strategies))),
	).Msg("starting simulation")

	summaries := make([]Summary, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Parallel))

	for i, s := range strategies {
		g.Go(func() error {
			sum, err := r.runBatch(gctx, rules, s, base, opts.Options)
			if err != nil {
				return fmt.Errorf("strategy %s: %w", s.Name(), err)
			}
			summaries[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	Rank(summaries)
	return summaries, nil
}

func (r *Runner) runBatch(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, base uint64, opts Options) (Summary, error) {
	ctx, end := r.metrics.StartBatch(ctx, rules.Name, s.Name(), opts.Trials)

	start := time.Now()
	stats, err := run(ctx, rules, s, base, opts.Trials, opts.Workers)
	elapsed := time.Since(start)

	if err == nil {
		var sum Summary
		sum, err = stats.Finalize()
		if err == nil {
			end(nil)
			return r.finish(ctx, rules, s, sum, base, elapsed), nil
		}
	}

	end(err)
	r.metrics.RecordError(ctx, "batch")
	logging.NewEvent(r.logger.Warn()).Add(
		logging.Strategy(s.Name()),
		logging.Count("completed", stats.Count),
		logging.ErrorField(err),
	).Msg("batch aborted")
	return Summary{}, err
}

func (r *Runner) finish(ctx context.Context, rules *ruleset.RuleSet, s engine.Strategy, sum Summary, base uint64, elapsed time.Duration) Summary {
	sum.Strategy = s.Name()
	sum.Rules = rules.Name
	sum.Elapsed = elapsed
	sum.Seed = base
	sum.Ceiling = rules.Ceiling
	sum.LowScoreWins = rules.LowScoreWins

	r.metrics.RecordBatch(ctx, telemetry.Batch{
		Rules:    rules.Name,
		Strategy: sum.Strategy,
		Trials:   sum.Trials,
		Gravies:  sum.Gravies,
		Busts:    sum.Busts,
		Suspect:  sum.Suspect,
		Duration: elapsed,
	})

	if sum.Suspect > 0 {
		logging.NewEvent(r.logger.Warn()).Add(
			logging.Strategy(sum.Strategy),
			logging.Count("suspect", sum.Suspect),
		).Msg("strategy returned invalid actions, games were stopped early")
	}

	reported := sum.Reported()
	logging.NewEvent(r.logger.Debug()).Add(
		logging.Strategy(sum.Strategy),
		logging.Float("avg", reported.Avg),
		logging.Count("gravies", sum.Gravies),
		logging.Duration(elapsed),
	).Msg("batch finished")
	return sum
}
