package simulation

import (
	"context"
	"runtime"
	"testing"

	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/strategy"
)

// ===================================================================
// SERIAL BASELINE BENCHMARKS
// ===================================================================

func BenchmarkSerial_Biscuits1000(b *testing.B) {
	rules := ruleset.MustCompile(ruleset.BiscuitsSpec())
	s := strategy.AllBigZeroOrOneZeroOrBigMin()
	opts := seeded(1000, 42, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), rules, s, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSerial_Pig1000(b *testing.B) {
	rules := ruleset.MustCompile(ruleset.PigSpec())
	s := strategy.StayAt(rules, 20)
	opts := seeded(1000, 42, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), rules, s, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// ===================================================================
// PARALLEL BENCHMARKS
// ===================================================================

func BenchmarkParallel_Biscuits100000(b *testing.B) {
	rules := ruleset.MustCompile(ruleset.BiscuitsSpec())
	s := strategy.AllBigZeroOrOneZeroOrBigMin()
	opts := seeded(100000, 42, runtime.NumCPU())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Run(context.Background(), rules, s, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunAll_BiscuitsDefaults(b *testing.B) {
	rules := ruleset.MustCompile(ruleset.BiscuitsSpec())
	strategies := strategy.Builtins().Defaults(rules)
	opts := BatchOptions{Options: seeded(10000, 42, 0), Parallel: 2}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RunAll(context.Background(), rules, strategies, opts); err != nil {
			b.Fatal(err)
		}
	}
}
