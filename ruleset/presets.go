package ruleset

import (
	"fmt"

	"github.com/signalnine/biscuits/dice"
)

// Preset names.
const (
	PresetBiscuits = "biscuits"
	PresetZeroRun  = "zero-run"
	PresetPig      = "pig"
)

// BiscuitsSpec is the standard Biscuits table: twelve d6 plus a d8, d10 and d12.
// Every roll at least one die is set aside and each set-aside die counts the
// faces it fell short of its maximum. Lowest total wins; a 0 is a gravy.
// Scores are tracked as pips saved (face - 1), so a gravy is the 87 ceiling.
func BiscuitsSpec() Spec {
	return Spec{
		Name:        PresetBiscuits,
		Description: "12d6 + d8 + d10 + d12, set aside at least one die per roll, lowest total wins",
		Dice: []dice.Spec{
			{Faces: 6, Count: 12},
			{Faces: 8, Count: 1},
			{Faces: 10, Count: 1},
			{Faces: 12, Count: 1},
		},
		Ceiling:      12*5 + 7 + 9 + 11,
		BustPolicy:   BustGame,
		Scoring:      ScoringRule{Mode: ScorePips},
		SetAside:     true,
		LowScoreWins: true,
	}
}

// ZeroRunSpec is a five dice push-your-luck game: any 1 zeroes the game.
func ZeroRunSpec() Spec {
	return Spec{
		Name:        PresetZeroRun,
		Description: "5d6 summed each roll, any 1 busts the game, 30 is a gravy",
		Dice:        []dice.Spec{{Faces: 6, Count: 5}},
		Ceiling:     30,
		MaxTurns:    20,
		BustPolicy:  BustGame,
		Bust:        &BustRule{Faces: []int{1}, MinCount: 1},
		Scoring:     ScoringRule{Mode: ScoreSum},
	}
}

// PigSpec is solitaire Pig: a 1 loses only the current turn.
func PigSpec() Spec {
	return Spec{
		Name:        PresetPig,
		Description: "1d6 per roll, a 1 loses the roll, race to 100",
		Dice:        []dice.Spec{{Faces: 6, Count: 1}},
		Ceiling:     100,
		MaxTurns:    100,
		BustPolicy:  BustTurn,
		Bust:        &BustRule{Faces: []int{1}, MinCount: 1},
		Scoring:     ScoringRule{Mode: ScoreSum},
	}
}

// Presets returns the built-in specs in display order.
func Presets() []Spec {
	return []Spec{BiscuitsSpec(), ZeroRunSpec(), PigSpec()}
}

// Lookup compiles a built-in rule set by name.
func Lookup(name string) (*RuleSet, error) {
	for _, spec := range Presets() {
		if spec.Name == name {
			return Compile(spec)
		}
	}
	return nil, NewConfigError([]ValidationError{{
		Field:   "rules",
		Message: fmt.Sprintf("unknown rule set %q", name),
	}})
}
