// Package ruleset describes dice game variants as data and compiles them into
// the immutable RuleSet consumed by the game engine.
package ruleset

import (
	"github.com/signalnine/biscuits/dice"
)

// BustPolicy decides how much score a bust wipes out.
type BustPolicy string

const (
	// BustGame resets the whole game's score to zero.
	BustGame BustPolicy = "game"
	// BustTurn only discards the busting turn; the pre-turn score is kept.
	BustTurn BustPolicy = "turn"
)

// ScoringMode selects how scoring dice turn into points.
type ScoringMode string

const (
	// ScoreSum adds the face values.
	ScoreSum ScoringMode = "sum"
	// ScorePips adds face - min_face per die, so the lowest face is worth nothing.
	ScorePips ScoringMode = "pips"
	// ScoreTable looks every face up in Scoring.Table; missing faces score 0.
	ScoreTable ScoringMode = "table"
)

// BustRule busts a turn when at least MinCount dice show one of Faces.
type BustRule struct {
	Faces    []int `yaml:"faces" json:"faces"`
	MinCount int   `yaml:"min_count" json:"min_count"`
}

// ScoringRule is the scoring table of a variant.
type ScoringRule struct {
	Mode  ScoringMode `yaml:"mode" json:"mode"`
	Table map[int]int `yaml:"table,omitempty" json:"table,omitempty"`
}

// Spec is the data description of a variant, as written in rule-set files.
type Spec struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Dice        []dice.Spec `yaml:"dice" json:"dice"`
	// MinFace is the value of the lowest face. nil means 1.
	MinFace    *int        `yaml:"min_face,omitempty" json:"min_face,omitempty"`
	Ceiling    int         `yaml:"ceiling" json:"ceiling"`
	MaxTurns   int         `yaml:"max_turns,omitempty" json:"max_turns,omitempty"`
	BustPolicy BustPolicy  `yaml:"bust_policy,omitempty" json:"bust_policy,omitempty"`
	Bust       *BustRule   `yaml:"bust,omitempty" json:"bust,omitempty"`
	Scoring    ScoringRule `yaml:"scoring" json:"scoring"`
	// SetAside makes every turn move the chosen scoring dice out of the pool.
	// The game ends when the pool is empty.
	SetAside bool `yaml:"set_aside,omitempty" json:"set_aside,omitempty"`
	// LowScoreWins reports results as penalty points (ceiling - score).
	LowScoreWins bool `yaml:"low_score_wins,omitempty" json:"low_score_wins,omitempty"`
}

// minFace returns the configured lowest face, defaulting to 1.
func (s *Spec) minFace() int {
	if s.MinFace == nil {
		return 1
	}
	return *s.MinFace
}

// ScoreFunc returns the points a turn adds. roll is every die rolled this turn,
// setAside the indices the strategy chose (nil unless the variant sets dice aside),
// total the score before the turn.
type ScoreFunc func(roll dice.Roll, setAside []int, total int) int

// BustFunc reports whether a roll busts.
type BustFunc func(roll dice.Roll) bool

// RuleSet is a compiled, immutable variant. It is shared read-only by every trial.
type RuleSet struct {
	Name         string
	Description  string
	Pool         []dice.Die
	MinFace      int
	Ceiling      int
	MaxTurns     int // 0 means unlimited, only valid for set-aside variants
	BustPolicy   BustPolicy
	SetAside     bool
	LowScoreWins bool
	Score        ScoreFunc
	Bust         BustFunc // nil never busts

	// MaxTurnDelta is the most a single turn can add; 0 skips the ceiling checks.
	MaxTurnDelta int
	// MaxAttainable is the most a whole game can score; 0 means unknown.
	MaxAttainable int
}

// DiceCount returns the number of dice in a fresh pool.
func (r *RuleSet) DiceCount() int {
	return len(r.Pool)
}

// Penalty converts a score into penalty points for low-score-wins variants.
func (r *RuleSet) Penalty(score int) int {
	return r.Ceiling - score
}
