package ruleset

import (
	"fmt"

	"github.com/signalnine/biscuits/dice"
)

// Compile validates a spec and turns it into an immutable RuleSet.
func Compile(spec Spec) (*RuleSet, error) {
	if err := NewConfigError(spec.Validate()); err != nil {
		return nil, err
	}

	pool, err := dice.Expand(spec.Dice)
	if err != nil {
		return nil, NewConfigError([]ValidationError{{Field: "dice", Message: err.Error()}})
	}

	minFace := spec.minFace()
	policy := spec.BustPolicy
	if policy == "" {
		policy = BustGame
	}

	points := facePoints(spec.Scoring, minFace)
	busts := bustFaces(spec.Bust, minFace, pool)

	rs := &RuleSet{
		Name:         spec.Name,
		Description:  spec.Description,
		Pool:         pool,
		MinFace:      minFace,
		Ceiling:      spec.Ceiling,
		MaxTurns:     spec.MaxTurns,
		BustPolicy:   policy,
		SetAside:     spec.SetAside,
		LowScoreWins: spec.LowScoreWins,
		Score:        scoreFunc(points, spec.SetAside),
		Bust:         bustFunc(busts, minFace, spec.Bust),
	}

	// Faces that bust on their own can never score.
	alwaysBusts := spec.Bust != nil && spec.Bust.MinCount == 1
	for _, d := range pool {
		best := 0
		for v := minFace; v < minFace+d.Faces; v++ {
			if alwaysBusts && busts[v-minFace] {
				continue
			}
			best = max(best, points(dice.Face{Faces: d.Faces, Value: v}))
		}
		rs.MaxTurnDelta += best
	}
	if rs.MaxTurnDelta == 0 {
		return nil, NewConfigError([]ValidationError{{
			Field:   "ceiling",
			Message: fmt.Sprintf("ceiling %d is unreachable, no face scores any points", spec.Ceiling),
		}})
	}
	if spec.SetAside {
		rs.MaxAttainable = rs.MaxTurnDelta
	} else {
		rs.MaxAttainable = rs.MaxTurnDelta * spec.MaxTurns
	}

	if err := NewConfigError(rs.Validate()); err != nil {
		return nil, err
	}
	return rs, nil
}

// MustCompile is Compile for built-in specs; it panics on an invalid spec.
func MustCompile(spec Spec) *RuleSet {
	rs, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return rs
}

func facePoints(rule ScoringRule, minFace int) func(dice.Face) int {
	switch rule.Mode {
	case ScorePips:
		return func(f dice.Face) int { return f.Value - minFace }
	case ScoreTable:
		table := make(map[int]int, len(rule.Table))
		for k, v := range rule.Table {
			table[k] = v
		}
		return func(f dice.Face) int { return table[f.Value] }
	default:
		return func(f dice.Face) int { return f.Value }
	}
}

func scoreFunc(points func(dice.Face) int, setAside bool) ScoreFunc {
	if setAside {
		return func(roll dice.Roll, chosen []int, _ int) int {
			delta := 0
			for _, i := range chosen {
				delta += points(roll[i])
			}
			return delta
		}
	}
	return func(roll dice.Roll, _ []int, _ int) int {
		delta := 0
		for _, f := range roll {
			delta += points(f)
		}
		return delta
	}
}

// bustFaces returns a lookup indexed by value - minFace.
func bustFaces(rule *BustRule, minFace int, pool []dice.Die) []bool {
	widest := 0
	for _, d := range pool {
		widest = max(widest, d.Faces)
	}
	busts := make([]bool, widest)
	if rule == nil {
		return busts
	}
	for _, f := range rule.Faces {
		busts[f-minFace] = true
	}
	return busts
}

func bustFunc(busts []bool, minFace int, rule *BustRule) BustFunc {
	if rule == nil || len(rule.Faces) == 0 {
		return nil
	}
	need := rule.MinCount
	return func(roll dice.Roll) bool {
		n := 0
		for _, f := range roll {
			if busts[f.Value-minFace] {
				n++
				if n >= need {
					return true
				}
			}
		}
		return false
	}
}
