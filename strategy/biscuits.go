// Package strategy implements the decision heuristics compared by the simulator.
package strategy

import (
	"math"

	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/engine"
)

// smallFaces is the die size that does not count as a "big" die.
const smallFaces = 6

// points is what a die costs when set aside in a low-score-wins game: 0 when it
// shows its highest face, Faces-1 when it shows its lowest.
func points(f dice.Face, minFace int) int {
	return minFace + f.Faces - 1 - f.Value
}

func isBig(f dice.Face) bool {
	return f.Faces > smallFaces
}

func zeroDice(roll dice.Roll, minFace int) []int {
	var idx []int
	for i, f := range roll {
		if points(f, minFace) == 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// minPointsDie returns the first die with the fewest points.
func minPointsDie(roll dice.Roll, minFace int) int {
	best, bestPoints := -1, math.MaxInt
	for i, f := range roll {
		if p := points(f, minFace); p < bestPoints {
			best, bestPoints = i, p
		}
	}
	return best
}

// bigMinDie returns the die with the fewest points, preferring more faces on ties.
func bigMinDie(roll dice.Roll, minFace int) int {
	best := -1
	for i, f := range roll {
		if best < 0 {
			best = i
			continue
		}
		p, bp := points(f, minFace), points(roll[best], minFace)
		if p < bp || (p == bp && f.Faces > roll[best].Faces) {
			best = i
		}
	}
	return best
}

// prioMinDie weighs a die's size against its points at four to one.
func prioMinDie(roll dice.Roll, minFace int) int {
	best, bestScore, bestFaces := -1, math.MinInt, 0
	for i, f := range roll {
		score := f.Faces - 4*points(f, minFace)
		if score > bestScore || (score == bestScore && f.Faces > bestFaces) {
			best, bestScore, bestFaces = i, score, f.Faces
		}
	}
	return best
}

func keep(idx ...int) engine.Action {
	return engine.Action{Kind: engine.Continue, SetAside: idx}
}

// setAsideFunc adapts a picker to engine.Strategy.
type setAsideFunc struct {
	name string
	pick func(roll dice.Roll, minFace int) []int
}

func (s setAsideFunc) Name() string { return s.name }

func (s setAsideFunc) Decide(view engine.View, roll dice.Roll) engine.Action {
	if len(roll) == 0 {
		return engine.Action{Kind: engine.Stop}
	}
	return keep(s.pick(roll, view.MinFace)...)
}

// OneMin sets aside the single cheapest die every roll.
func OneMin() engine.Strategy {
	return setAsideFunc{name: NameOneMin, pick: func(roll dice.Roll, minFace int) []int {
		return []int{minPointsDie(roll, minFace)}
	}}
}

// AllZeroOrOneMin takes every free die, or else the single cheapest one.
func AllZeroOrOneMin() engine.Strategy {
	return setAsideFunc{name: NameAllZeroOneMin, pick: func(roll dice.Roll, minFace int) []int {
		if zeros := zeroDice(roll, minFace); len(zeros) > 0 {
			return zeros
		}
		return []int{minPointsDie(roll, minFace)}
	}}
}

// AllZeroOrPrioMin takes every free die, or else the die with the best
// size-to-points priority.
func AllZeroOrPrioMin() engine.Strategy {
	return setAsideFunc{name: NameAllZeroPrioMin, pick: func(roll dice.Roll, minFace int) []int {
		if zeros := zeroDice(roll, minFace); len(zeros) > 0 {
			return zeros
		}
		return []int{prioMinDie(roll, minFace)}
	}}
}

// AllZeroOrBigMin takes every free die, or else the cheapest die, biggest first.
func AllZeroOrBigMin() engine.Strategy {
	return setAsideFunc{name: NameAllZeroBigMin, pick: func(roll dice.Roll, minFace int) []int {
		if zeros := zeroDice(roll, minFace); len(zeros) > 0 {
			return zeros
		}
		return []int{bigMinDie(roll, minFace)}
	}}
}

// AllBigZeroOrOneZeroOrBigMin keeps small free dice back while big dice are
// still rolling, so the big dice get more chances to come up free.
func AllBigZeroOrOneZeroOrBigMin() engine.Strategy {
	return setAsideFunc{name: NameAllBigZeroOneZeroBigMin, pick: pickBigZeroFirst}
}

func pickBigZeroFirst(roll dice.Roll, minFace int) []int {
	zeros := zeroDice(roll, minFace)
	big := 0
	for _, f := range roll {
		if isBig(f) {
			big++
		}
	}

	var bigZeros []int
	for _, i := range zeros {
		if isBig(roll[i]) {
			bigZeros = append(bigZeros, i)
		}
	}

	switch {
	case len(bigZeros) > 0:
		// every big die came up free: clear the small ones too
		if len(bigZeros) == big {
			return zeros
		}
		return bigZeros
	case len(zeros) > 0:
		if big == 0 {
			return zeros
		}
		return zeros[:1]
	default:
		return []int{bigMinDie(roll, minFace)}
	}
}
