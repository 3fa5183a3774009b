package engine

import (
	"slices"
	"sync"

	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/ruleset"
)

// GameState is mutable and pooled. It is owned by exactly one game at a time.
type GameState struct {
	Score int
	Turn  int
	Cause Cause

	pool    []dice.Die
	roll    dice.Roll
	scratch []int
}

// StatePool manages GameState memory
var StatePool = sync.Pool{
	New: func() interface{} {
		return &GameState{
			pool:    make([]dice.Die, 0, 16),
			roll:    make(dice.Roll, 0, 16),
			scratch: make([]int, 0, 16),
		}
	},
}

// GetState acquires a GameState from pool
func GetState() *GameState {
	return StatePool.Get().(*GameState)
}

// PutState returns a GameState to pool
func PutState(state *GameState) {
	StatePool.Put(state)
}

// Reset prepares the state for a new game under rules.
func (s *GameState) Reset(rules *ruleset.RuleSet) {
	s.Score = 0
	s.Turn = 0
	s.Cause = InProgress
	s.pool = append(s.pool[:0], rules.Pool...)
	s.roll = s.roll[:0]
	s.scratch = s.scratch[:0]
}

// DiceLeft returns how many dice are still in play.
func (s *GameState) DiceLeft() int {
	return len(s.pool)
}

// Terminal reports whether the game is over.
func (s *GameState) Terminal() bool {
	return s.Cause != InProgress
}

func (s *GameState) view(rules *ruleset.RuleSet) View {
	return View{
		Score:      s.Score,
		Turn:       s.Turn,
		Ceiling:    rules.Ceiling,
		MinFace:    rules.MinFace,
		DiceLeft:   len(s.pool),
		MaxTurns:   rules.MaxTurns,
		BustPolicy: rules.BustPolicy,
	}
}

// validSelection reports whether chosen is a non-empty set of distinct roll indices.
func (s *GameState) validSelection(chosen []int) bool {
	if len(chosen) == 0 || len(chosen) > len(s.roll) {
		return false
	}
	s.scratch = append(s.scratch[:0], chosen...)
	slices.Sort(s.scratch)
	for i, idx := range s.scratch {
		if idx < 0 || idx >= len(s.roll) {
			return false
		}
		if i > 0 && s.scratch[i-1] == idx {
			return false
		}
	}
	return true
}

// removeSelected swap-removes the dice picked by the last validSelection,
// highest index first so earlier indices stay valid.
func (s *GameState) removeSelected() {
	for i := len(s.scratch) - 1; i >= 0; i-- {
		idx := s.scratch[i]
		last := len(s.pool) - 1
		s.pool[idx] = s.pool[last]
		s.pool = s.pool[:last]
	}
}
