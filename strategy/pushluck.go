package strategy

import (
	"fmt"

	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
)

var (
	cont = engine.Action{Kind: engine.Continue}
	stop = engine.Action{Kind: engine.Stop}
)

// estimateSamples and estimateSeed fix the rolls used to size up a rule set,
// so a strategy built twice for the same rules decides identically.
const (
	estimateSamples = 20000
	estimateSeed    = 0x5eed
)

type stopFirst struct{}

// StopFirst banks the first roll that does not bust.
func StopFirst() engine.Strategy { return stopFirst{} }

func (stopFirst) Name() string { return NameStopFirst }

func (stopFirst) Decide(engine.View, dice.Roll) engine.Action { return stop }

type gravyChaser struct{}

// GravyChaser never stops voluntarily.
func GravyChaser() engine.Strategy { return gravyChaser{} }

func (gravyChaser) Name() string { return NameGravyChaser }

func (gravyChaser) Decide(_ engine.View, roll dice.Roll) engine.Action {
	if len(roll) == 0 {
		return stop
	}
	return cont
}

type stayAt struct {
	name   string
	score  ruleset.ScoreFunc
	target int
}

// StayAt stops on the roll that brings the score to target or beyond.
func StayAt(rules *ruleset.RuleSet, target int) engine.Strategy {
	return stayAt{name: fmt.Sprintf("stay-at-%d", target), score: rules.Score, target: target}
}

// GuaranteedMin stops once a floor of fraction*ceiling points is banked.
func GuaranteedMin(rules *ruleset.RuleSet, fraction float64) engine.Strategy {
	floor := int(fraction*float64(rules.Ceiling) + 0.5)
	floor = max(1, min(floor, rules.Ceiling))
	return stayAt{name: NameGuaranteedMin, score: rules.Score, target: floor}
}

func (s stayAt) Name() string { return s.name }

func (s stayAt) Decide(view engine.View, roll dice.Roll) engine.Action {
	if len(roll) == 0 || view.Score+s.score(roll, nil, view.Score) >= s.target {
		return stop
	}
	return cont
}

// Odds summarizes one roll of a fresh pool.
type Odds struct {
	BustChance float64
	// MeanGain is the average points of a roll that does not bust.
	MeanGain float64
}

// EstimateOdds samples the full pool of rules with a fixed seed.
func EstimateOdds(rules *ruleset.RuleSet) Odds {
	src := dice.NewSource(estimateSeed)
	var roll dice.Roll
	busts, gain := 0, 0
	for i := 0; i < estimateSamples; i++ {
		roll = src.RollInto(roll, rules.Pool, rules.MinFace)
		if rules.Bust != nil && rules.Bust(roll) {
			busts++
			continue
		}
		gain += rules.Score(roll, nil, 0)
	}

	odds := Odds{BustChance: float64(busts) / estimateSamples}
	if kept := estimateSamples - busts; kept > 0 {
		odds.MeanGain = float64(gain) / float64(kept)
	}
	return odds
}

type riskAverse struct {
	score ruleset.ScoreFunc
	odds  Odds
}

// RiskAverse stops once the points a bust would cost on the next roll outweigh
// the points that roll is expected to add.
func RiskAverse(rules *ruleset.RuleSet) engine.Strategy {
	return riskAverse{score: rules.Score, odds: EstimateOdds(rules)}
}

func (r riskAverse) Name() string { return NameRiskAverse }

func (r riskAverse) Decide(view engine.View, roll dice.Roll) engine.Action {
	if len(roll) == 0 {
		return stop
	}
	banked := min(view.Score+r.score(roll, nil, view.Score), view.Ceiling)
	if banked >= view.Ceiling {
		return stop
	}

	var atRisk float64
	if view.BustPolicy != ruleset.BustTurn {
		atRisk = float64(banked)
	}
	gain := min(r.odds.MeanGain, float64(view.Ceiling-banked))

	if r.odds.BustChance*atRisk > (1-r.odds.BustChance)*gain {
		return stop
	}
	return cont
}
