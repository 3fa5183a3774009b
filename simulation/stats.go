package simulation

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/signalnine/biscuits/engine"
)

// ErrEmptyAggregate is returned when finalizing stats that saw no outcomes.
var ErrEmptyAggregate = errors.New("no outcomes to aggregate")

// Stats accumulates trial outcomes. Every field is an exact integer, so merging
// per-worker stats in any order gives the same result.
type Stats struct {
	Count   int64
	Sum     int64
	SumSq   int64
	Min     int
	Max     int
	Gravies int64
	Busts   int64
	Stops   int64
	Suspect int64
	Turns   int64
}

// Update folds one outcome in.
func (s *Stats) Update(o engine.TrialOutcome) {
	if s.Count == 0 || o.Score < s.Min {
		s.Min = o.Score
	}
	if s.Count == 0 || o.Score > s.Max {
		s.Max = o.Score
	}
	s.Count++
	score := int64(o.Score)
	s.Sum += score
	s.SumSq += score * score
	s.Turns += int64(o.Turns)

	switch o.Cause {
	case engine.CeilingReached:
		s.Gravies++
	case engine.Busted:
		s.Busts++
	case engine.StrategyStopped:
		s.Stops++
	}
	if o.Suspect {
		s.Suspect++
	}
}

// Merge adds other into s.
func (s *Stats) Merge(other Stats) {
	if other.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = other
		return
	}
	s.Min = min(s.Min, other.Min)
	s.Max = max(s.Max, other.Max)
	s.Count += other.Count
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Gravies += other.Gravies
	s.Busts += other.Busts
	s.Stops += other.Stops
	s.Suspect += other.Suspect
	s.Turns += other.Turns
}

// Finalize computes the summary statistics.
func (s Stats) Finalize() (Summary, error) {
	if s.Count == 0 {
		return Summary{}, ErrEmptyAggregate
	}
	n := float64(s.Count)
	avg := float64(s.Sum) / n
	variance := float64(s.SumSq)/n - avg*avg

	return Summary{
		Trials:   s.Count,
		Avg:      avg,
		StdDev:   math.Sqrt(max(variance, 0)),
		Min:      s.Min,
		Max:      s.Max,
		Gravies:  s.Gravies,
		Busts:    s.Busts,
		Stops:    s.Stops,
		Suspect:  s.Suspect,
		AvgTurns: float64(s.Turns) / n,
	}, nil
}

// Summary is the result of one strategy batch. Scores are in the engine's
// score space; Reported converts them for low-score-wins rule sets.
type Summary struct {
	Strategy     string        `json:"strategy"`
	Rules        string        `json:"rules"`
	Trials       int64         `json:"trials"`
	Avg          float64       `json:"avg"`
	StdDev       float64       `json:"stddev"`
	Min          int           `json:"min"`
	Max          int           `json:"max"`
	Gravies      int64         `json:"gravies"`
	Busts        int64         `json:"busts"`
	Stops        int64         `json:"stops"`
	Suspect      int64         `json:"suspect"`
	AvgTurns     float64       `json:"avg_turns"`
	Elapsed      time.Duration `json:"elapsed_ns"`
	Seed         uint64        `json:"seed"`
	Ceiling      int           `json:"ceiling"`
	LowScoreWins bool          `json:"low_score_wins"`
}

// GravyRate is the fraction of games that reached the ceiling.
func (s Summary) GravyRate() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Gravies) / float64(s.Trials)
}

// BustRate is the fraction of games that busted.
func (s Summary) BustRate() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Busts) / float64(s.Trials)
}

// Reported returns the summary as players read it: penalty points
// (ceiling - score) for low-score-wins rule sets, unchanged otherwise.
func (s Summary) Reported() Summary {
	if !s.LowScoreWins {
		return s
	}
	out := s
	out.Avg = float64(s.Ceiling) - s.Avg
	out.Min = s.Ceiling - s.Max
	out.Max = s.Ceiling - s.Min
	return out
}

// Rank sorts summaries best first: highest average score, then name.
// For low-score-wins rule sets that is the lowest average penalty.
func Rank(summaries []Summary) {
	slices.SortStableFunc(summaries, func(a, b Summary) int {
		if c := cmp.Compare(b.Avg, a.Avg); c != 0 {
			return c
		}
		return cmp.Compare(a.Strategy, b.Strategy)
	})
}
