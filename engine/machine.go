package engine

import (
	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/ruleset"
)

// Play runs one game of rules under strategy s, drawing every roll from src.
//
// Each turn rolls the pool, checks for a bust, asks the strategy for an action,
// scores the turn and then checks the ceiling before honoring a stop. A game
// also stops once the pool is empty or the turn cap is reached.
func Play(rules *ruleset.RuleSet, s Strategy, src *dice.Source) TrialOutcome {
	return play(rules, s, src, nil)
}

// Trace is Play with a callback after every resolved turn.
func Trace(rules *ruleset.RuleSet, s Strategy, src *dice.Source, fn func(TurnRecord)) TrialOutcome {
	return play(rules, s, src, fn)
}

func play(rules *ruleset.RuleSet, s Strategy, src *dice.Source, hook func(TurnRecord)) TrialOutcome {
	state := GetState()
	defer PutState(state)
	state.Reset(rules)

	suspect := false
	for !state.Terminal() {
		if len(state.pool) == 0 || (rules.MaxTurns > 0 && state.Turn >= rules.MaxTurns) {
			state.Cause = StrategyStopped
			break
		}

		state.roll = src.RollInto(state.roll, state.pool, rules.MinFace)
		state.Turn++
		before := state.Score

		if rules.Bust != nil && rules.Bust(state.roll) {
			if rules.BustPolicy != ruleset.BustTurn {
				state.Score = 0
			}
			state.Cause = Busted
			emit(hook, state, Action{Kind: Stop}, state.Score-before)
			break
		}

		action := s.Decide(state.view(rules), state.roll)

		kindOK := action.Kind == Continue || action.Kind == Stop
		selectionOK := !rules.SetAside || state.validSelection(action.SetAside)
		if !kindOK || !selectionOK {
			suspect = true
		}

		if selectionOK {
			state.Score = clamp(state.Score+rules.Score(state.roll, action.SetAside, state.Score), rules.Ceiling)
			if rules.SetAside {
				state.removeSelected()
			}
		}

		switch {
		case state.Score == rules.Ceiling:
			state.Cause = CeilingReached
		case !kindOK || !selectionOK || action.Kind == Stop:
			state.Cause = StrategyStopped
		}
		emit(hook, state, action, state.Score-before)
	}

	return TrialOutcome{
		Score:   state.Score,
		Cause:   state.Cause,
		Turns:   state.Turn,
		Suspect: suspect,
	}
}

func clamp(score, ceiling int) int {
	if score < 0 {
		return 0
	}
	if score > ceiling {
		return ceiling
	}
	return score
}

func emit(hook func(TurnRecord), state *GameState, action Action, delta int) {
	if hook == nil {
		return
	}
	hook(TurnRecord{
		Turn:   state.Turn,
		Roll:   append(dice.Roll(nil), state.roll...),
		Action: action,
		Delta:  delta,
		Score:  state.Score,
		Cause:  state.Cause,
	})
}
