package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/config"
	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/history"
	"github.com/signalnine/biscuits/logging"
	"github.com/signalnine/biscuits/report"
	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/simulation"
	"github.com/signalnine/biscuits/strategy"
	"github.com/signalnine/biscuits/telemetry"
)

// runOptions holds options for the run command.
type runOptions struct {
	trials     int
	seed       string
	workers    int
	parallel   int
	rules      string
	strategies []string
	format     string
	output     string
	history    string
	logLevel   string
	logFormat  string
	trace      bool
	detail     bool
	verbose    bool
}

func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate every strategy and print a comparison table",
		Long: `Run N games per strategy against a rule set and rank the strategies.

Flags default to the BISCUITS_* environment variables.

Examples:
  # The original comparison: 100,000 Biscuits games per strategy
  biscuits run

  # Reproducible push-your-luck comparison on five dice
  biscuits run --rules zero-run --seed 2024 --trials 1000000

  # Selected strategies on a custom rule set, exported as JSON
  biscuits run --rules my-game.yaml -s stop-first,stay-at-15 -o out/run.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSimulation(cmd.Context(), opts)
		},
	}

	env := a.env
	cmd.Flags().IntVarP(&opts.trials, "trials", "n", env.Trials, "Games per strategy")
	cmd.Flags().StringVar(&opts.seed, "seed", env.Seed, "Harness seed (decimal or 0x hex); random when empty")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", env.Workers, "Goroutines per strategy batch (0=all CPUs)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", env.Parallel, "Strategy batches run at once")
	cmd.Flags().StringVarP(&opts.rules, "rules", "r", env.Rules, "Preset name or rule set file")
	cmd.Flags().StringSliceVarP(&opts.strategies, "strategies", "s", env.Strategies, "Strategies to compare (default: every strategy of the rule set's family)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(report.FormatTable), "Output format: table, json or fb")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Also export results to this .json or .fb file")
	cmd.Flags().StringVar(&opts.history, "history", env.HistoryDB, "Record the run in this SQLite database")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", env.LogLevel, "Log level: trace, debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", env.LogFormat, "Log format: console or json")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "Write a span per strategy batch to stderr")
	cmd.Flags().BoolVar(&opts.detail, "detail", false, "Add spread, bust and turn statistics to the table")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print the configuration before running")

	return cmd
}

func (o *runOptions) config() config.Config {
	return config.Config{
		Trials:     o.trials,
		Seed:       o.seed,
		Workers:    o.workers,
		Parallel:   o.parallel,
		Rules:      o.rules,
		Strategies: o.strategies,
		LogLevel:   o.logLevel,
		LogFormat:  o.logFormat,
		HistoryDB:  o.history,
	}
}

// runSimulation resolves the rule set and strategies, runs every batch and
// writes the ranked results.
func (a *App) runSimulation(ctx context.Context, opts *runOptions) error {
	if a.envErr != nil {
		return a.envErr
	}
	cfg := opts.config()
	batch, err := cfg.BatchOptions()
	if err != nil {
		return err
	}
	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	logCfg := cfg.Logging()
	logCfg.Output = a.stderr
	logger := logging.New(logCfg)

	rules, err := ruleset.Resolve(cfg.Rules)
	if err != nil {
		return fmt.Errorf("failed to load rule set: %w", err)
	}
	strategies, err := a.buildStrategies(rules, cfg.Strategies)
	if err != nil {
		return err
	}

	metrics, shutdown, err := a.metrics(opts.trace)
	if err != nil {
		return err
	}
	defer shutdown()

	if opts.verbose {
		a.printConfig(rules, strategies, batch)
	}
	if format == report.FormatTable {
		if err := report.WriteBanner(a.stdout, batch.Trials); err != nil {
			return err
		}
	}

	runID := history.NewRunID()
	start := time.Now()
	runner := simulation.NewRunner(simulation.WithLogger(logger), simulation.WithMetrics(metrics))
	summaries, err := runner.RunAll(ctx, rules, strategies, batch)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logging.NewEvent(logger.Warn()).Add(logging.RunID(runID)).Msg("run interrupted")
		}
		return err
	}
	logging.NewEvent(logger.Info()).Add(
		logging.RunID(runID),
		logging.Rules(rules.Name),
		logging.Duration(time.Since(start)),
	).Msg("run complete")

	results := report.NewResults(runID, summaries)
	if err := report.Write(a.stdout, results, format); err != nil {
		return err
	}
	if opts.detail && format == report.FormatTable {
		if err := report.WriteDetail(a.stdout, results); err != nil {
			return err
		}
	}

	if opts.output != "" {
		if err := exportResults(opts.output, results); err != nil {
			return err
		}
	}
	if cfg.HistoryDB != "" {
		if err := a.recordRun(ctx, logger, cfg.HistoryDB, runID, summaries); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) buildStrategies(rules *ruleset.RuleSet, names []string) ([]engine.Strategy, error) {
	if len(names) == 0 {
		return a.registry.Defaults(rules), nil
	}
	return a.registry.Build(rules, names)
}

// metrics returns the batch recorder. With trace set, spans are exported to
// stderr; otherwise instruments go to the global (no-op) providers.
func (a *App) metrics(trace bool) (telemetry.Metrics, func(), error) {
	if !trace {
		return telemetry.NewMetricsProvider(telemetry.DefaultMetricsConfig()), func() {}, nil
	}
	tp, shutdown, err := telemetry.StdoutTracing(a.stderr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start tracing: %w", err)
	}
	cfg := telemetry.DefaultMetricsConfig()
	cfg.MeterVersion = Version
	cfg.TracerProvider = tp
	return telemetry.NewMetricsProvider(cfg), func() { _ = shutdown(context.Background()) }, nil
}

func exportResults(path string, results report.Results) error {
	format := report.FormatFlatBuffers
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = report.FormatJSON
	}
	if err := report.WriteFile(path, results, format); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}
	return nil
}

func (a *App) recordRun(ctx context.Context, logger *bolt.Logger, path, runID string, summaries []simulation.Summary) error {
	store, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	run := history.NewRun(summaries)
	run.ID = runID
	if err := store.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	logging.NewEvent(logger.Debug()).Add(logging.RunID(runID), logging.Str("history", path)).Msg("run recorded")
	return nil
}

func (a *App) printConfig(rules *ruleset.RuleSet, strategies []engine.Strategy, opts simulation.BatchOptions) {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	seed := "random"
	if opts.Seeded {
		seed = strconv.FormatUint(opts.Seed, 10)
	}

	fmt.Fprintln(a.stdout)
	fmt.Fprintln(a.stdout, "╔════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(a.stdout, "║              Biscuits Strategy Simulator                   ║")
	fmt.Fprintln(a.stdout, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(a.stdout)
	fmt.Fprintf(a.stdout, "Configuration:\n")
	fmt.Fprintf(a.stdout, "  Rules:          %s (%d dice, ceiling %d)\n", rules.Name, rules.DiceCount(), rules.Ceiling)
	fmt.Fprintf(a.stdout, "  Strategies:     %s\n", strings.Join(names, ", "))
	fmt.Fprintf(a.stdout, "  Trials:         %d\n", opts.Trials)
	fmt.Fprintf(a.stdout, "  Seed:           %s\n", seed)
	fmt.Fprintf(a.stdout, "  Workers:        %d (0=auto)\n", opts.Workers)
	fmt.Fprintf(a.stdout, "  Parallel:       %d\n", max(1, opts.Parallel))
	fmt.Fprintln(a.stdout)
}
