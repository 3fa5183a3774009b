package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/signalnine/biscuits/engine"
)

func outcome(score int, cause engine.Cause) engine.TrialOutcome {
	return engine.TrialOutcome{Score: score, Cause: cause, Turns: 2}
}

func TestFinalizeEmpty(t *testing.T) {
	var s Stats
	if _, err := s.Finalize(); !errors.Is(err, ErrEmptyAggregate) {
		t.Errorf("Finalize() error = %v, want ErrEmptyAggregate", err)
	}
}

func TestStatsUpdate(t *testing.T) {
	var s Stats
	s.Update(outcome(10, engine.StrategyStopped))
	s.Update(outcome(0, engine.Busted))
	s.Update(outcome(30, engine.CeilingReached))
	s.Update(engine.TrialOutcome{Score: 20, Cause: engine.StrategyStopped, Turns: 1, Suspect: true})

	sum, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sum.Trials != 4 {
		t.Errorf("Trials = %d, want 4", sum.Trials)
	}
	if sum.Avg != 15 {
		t.Errorf("Avg = %f, want 15", sum.Avg)
	}
	if sum.Min != 0 || sum.Max != 30 {
		t.Errorf("Min/Max = %d/%d, want 0/30", sum.Min, sum.Max)
	}
	if sum.Gravies != 1 || sum.Busts != 1 || sum.Stops != 2 || sum.Suspect != 1 {
		t.Errorf("counts = %+v", sum)
	}
	if sum.AvgTurns != 1.75 {
		t.Errorf("AvgTurns = %f, want 1.75", sum.AvgTurns)
	}
	// population stddev of 10, 0, 30, 20
	if want := math.Sqrt(125); math.Abs(sum.StdDev-want) > 1e-9 {
		t.Errorf("StdDev = %f, want %f", sum.StdDev, want)
	}
	if sum.GravyRate() != 0.25 || sum.BustRate() != 0.25 {
		t.Errorf("rates = %f/%f, want 0.25/0.25", sum.GravyRate(), sum.BustRate())
	}
}

func TestStatsSingleUpdate(t *testing.T) {
	var s Stats
	s.Update(outcome(7, engine.StrategyStopped))

	sum, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sum.Min != 7 || sum.Max != 7 || sum.Avg != 7 || sum.StdDev != 0 {
		t.Errorf("single outcome summary = %+v", sum)
	}
}

func TestStatsMerge(t *testing.T) {
	scores := []int{5, 12, 0, 30, 8, 8, 19}

	var whole Stats
	for _, sc := range scores {
		whole.Update(outcome(sc, engine.StrategyStopped))
	}

	var a, b, merged Stats
	for i, sc := range scores {
		if i%2 == 0 {
			a.Update(outcome(sc, engine.StrategyStopped))
		} else {
			b.Update(outcome(sc, engine.StrategyStopped))
		}
	}
	merged.Merge(Stats{})
	merged.Merge(b)
	merged.Merge(a)
	merged.Merge(Stats{})

	if merged != whole {
		t.Errorf("merged = %+v, want %+v", merged, whole)
	}
}

func TestSummaryReported(t *testing.T) {
	sum := Summary{Avg: 60.5, Min: 40, Max: 87, Ceiling: 87}
	if got := sum.Reported(); got != sum {
		t.Errorf("high-score-wins summary changed: %+v", got)
	}

	sum.LowScoreWins = true
	got := sum.Reported()
	if got.Avg != 26.5 || got.Min != 0 || got.Max != 47 {
		t.Errorf("Reported() = avg %f min %d max %d, want 26.5/0/47", got.Avg, got.Min, got.Max)
	}
}

func TestRank(t *testing.T) {
	sums := []Summary{
		{Strategy: "b", Avg: 10},
		{Strategy: "c", Avg: 30},
		{Strategy: "a", Avg: 10},
		{Strategy: "d", Avg: 20},
	}
	Rank(sums)

	want := []string{"c", "d", "a", "b"}
	for i, s := range sums {
		if s.Strategy != want[i] {
			t.Errorf("rank %d = %s, want %s", i, s.Strategy, want[i])
		}
	}
}
