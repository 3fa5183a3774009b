// Package engine resolves single playthroughs of a dice rule set under a strategy.
package engine

import (
	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/ruleset"
)

// ActionKind is what a strategy wants to do after seeing a roll.
type ActionKind uint8

const (
	// Continue keeps rolling.
	Continue ActionKind = iota
	// Stop banks the current score and ends the game.
	Stop
)

func (k ActionKind) String() string {
	switch k {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "invalid"
	}
}

// Action is a strategy decision. SetAside lists roll indices to score and remove
// from the pool; the engine hands it to the rule set unmodified and only
// set-aside rule sets read it.
type Action struct {
	Kind     ActionKind
	SetAside []int
}

// Cause is the state of a game; every state except InProgress is terminal.
type Cause uint8

const (
	InProgress Cause = iota
	Busted
	CeilingReached
	StrategyStopped
)

func (c Cause) String() string {
	switch c {
	case InProgress:
		return "in_progress"
	case Busted:
		return "busted"
	case CeilingReached:
		return "ceiling"
	case StrategyStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// View is the read-only game state a strategy decides on.
type View struct {
	Score      int
	Turn       int // 1-based index of the turn that produced the roll
	Ceiling    int
	MinFace    int
	DiceLeft   int
	MaxTurns   int
	BustPolicy ruleset.BustPolicy
}

// Strategy chooses an action for a roll. Implementations must be safe to share
// between goroutines: a decision may only depend on the view, the roll and
// immutable strategy parameters.
type Strategy interface {
	Name() string
	Decide(view View, roll dice.Roll) Action
}

// TrialOutcome is the immutable result of one finished game.
type TrialOutcome struct {
	Score int
	Cause Cause
	Turns int
	// Suspect marks games where the strategy broke its contract and the engine
	// stopped the game on its behalf.
	Suspect bool
}

// Busted reports whether the game ended on a bust.
func (o TrialOutcome) Busted() bool { return o.Cause == Busted }

// CeilingHit reports whether the game reached the ceiling (a gravy).
func (o TrialOutcome) CeilingHit() bool { return o.Cause == CeilingReached }

// Stopped reports whether the game ended by a voluntary or implicit stop.
func (o TrialOutcome) Stopped() bool { return o.Cause == StrategyStopped }

// TurnRecord describes one resolved turn, for tracing single games.
type TurnRecord struct {
	Turn   int
	Roll   dice.Roll // copy, safe to keep
	Action Action
	Delta  int
	Score  int
	Cause  Cause
}
