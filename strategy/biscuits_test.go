package strategy

import (
	"slices"
	"testing"

	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
)

// die returns a face worth pts penalty points with min face 1.
func die(faces, pts int) dice.Face {
	return dice.Face{Faces: faces, Value: faces - pts}
}

func remove(roll dice.Roll, i int) dice.Roll {
	return append(roll[:i:i], roll[i+1:]...)
}

func TestPoints(t *testing.T) {
	if got := points(dice.Face{Faces: 6, Value: 4}, 1); got != 2 {
		t.Errorf("points(d6=4) = %d, want 2", got)
	}
	if got := points(dice.Face{Faces: 6, Value: 6}, 1); got != 0 {
		t.Errorf("points(d6=6) = %d, want 0", got)
	}
	if got := points(dice.Face{Faces: 6, Value: 0}, 0); got != 5 {
		t.Errorf("points(d6=0, min 0) = %d, want 5", got)
	}
}

func TestZeroDice(t *testing.T) {
	roll := dice.Roll{die(6, 0), die(6, 3), die(8, 0), die(10, 1)}
	if got := zeroDice(roll, 1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("zeroDice = %v, want [0 2]", got)
	}
}

func TestMinPointsDie(t *testing.T) {
	roll := dice.Roll{die(6, 3), die(8, 1), die(10, 4), die(12, 2)}
	if got := minPointsDie(roll, 1); got != 1 {
		t.Errorf("minPointsDie = %d, want 1", got)
	}

	tie := dice.Roll{die(6, 1), die(12, 1)}
	if got := minPointsDie(tie, 1); got != 0 {
		t.Errorf("minPointsDie on a tie = %d, want first (0)", got)
	}
}

func TestBigMinDie(t *testing.T) {
	roll := dice.Roll{die(6, 1), die(10, 1)}
	if got := bigMinDie(roll, 1); got != 1 {
		t.Errorf("bigMinDie = %d, want 1", got)
	}
	slices.Reverse(roll)
	if got := bigMinDie(roll, 1); got != 0 {
		t.Errorf("bigMinDie reversed = %d, want 0", got)
	}

	// fewer points beats more faces
	roll = dice.Roll{die(12, 2), die(6, 1)}
	if got := bigMinDie(roll, 1); got != 1 {
		t.Errorf("bigMinDie = %d, want 1", got)
	}
}

func TestAllZeroOrPrioMin(t *testing.T) {
	s := AllZeroOrPrioMin()
	view := engine.View{MinFace: 1}
	roll := dice.Roll{die(6, 3), die(8, 1), die(10, 4), die(12, 2)}

	// 12-4*2 = 4 ties 8-4*1 = 4, the bigger die wins
	for _, want := range []int{3, 1, 1, 0} {
		got := s.Decide(view, roll).SetAside
		if !slices.Equal(got, []int{want}) {
			t.Fatalf("roll %v: SetAside = %v, want [%d]", roll, got, want)
		}
		roll = remove(roll, want)
	}
}

func TestAllZeroOrPrioMinSmallDieFirst(t *testing.T) {
	s := AllZeroOrPrioMin()
	view := engine.View{MinFace: 1}
	roll := dice.Roll{die(6, 1), die(12, 3)}

	if got := s.Decide(view, roll).SetAside; !slices.Equal(got, []int{0}) {
		t.Errorf("SetAside = %v, want [0]", got)
	}
}

func TestAllZeroOrPrioMinTieBreak(t *testing.T) {
	s := AllZeroOrPrioMin()
	view := engine.View{MinFace: 1}
	roll := dice.Roll{die(8, 1), die(12, 2)}

	for i := 0; i < 2; i++ {
		got := s.Decide(view, roll).SetAside
		if len(got) != 1 || roll[got[0]].Faces != 12 {
			t.Errorf("pass %d: picked %v from %v, want the d12", i, got, roll)
		}
		slices.Reverse(roll)
	}
}

func TestAllZeroStrategiesTakeEveryZero(t *testing.T) {
	view := engine.View{MinFace: 1}
	roll := dice.Roll{die(6, 2), die(6, 0), die(8, 3), die(12, 0)}

	for _, s := range []engine.Strategy{AllZeroOrOneMin(), AllZeroOrPrioMin(), AllZeroOrBigMin()} {
		if got := s.Decide(view, roll).SetAside; !slices.Equal(got, []int{1, 3}) {
			t.Errorf("%s: SetAside = %v, want [1 3]", s.Name(), got)
		}
	}

	if got := OneMin().Decide(view, roll).SetAside; !slices.Equal(got, []int{1}) {
		t.Errorf("one-min: SetAside = %v, want [1]", got)
	}
}

func TestAllBigZeroOrOneZeroOrBigMin(t *testing.T) {
	s := AllBigZeroOrOneZeroOrBigMin()
	view := engine.View{MinFace: 1}

	tests := []struct {
		name string
		roll dice.Roll
		want []int
	}{
		{
			name: "some big zeros, other big dice still rolling",
			roll: dice.Roll{die(6, 0), die(8, 0), die(10, 3), die(12, 0)},
			want: []int{1, 3},
		},
		{
			name: "every big die is zero",
			roll: dice.Roll{die(6, 0), die(8, 0), die(6, 2), die(12, 0)},
			want: []int{0, 1, 3},
		},
		{
			name: "small zeros while big dice roll",
			roll: dice.Roll{die(6, 4), die(6, 0), die(6, 0), die(10, 2)},
			want: []int{1},
		},
		{
			name: "small zeros, no big dice left",
			roll: dice.Roll{die(6, 0), die(6, 1), die(6, 0)},
			want: []int{0, 2},
		},
		{
			name: "no zeros",
			roll: dice.Roll{die(6, 1), die(8, 1), die(12, 4)},
			want: []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Decide(view, tt.roll)
			if got.Kind != engine.Continue {
				t.Errorf("Kind = %s, want continue", got.Kind)
			}
			if !slices.Equal(got.SetAside, tt.want) {
				t.Errorf("SetAside = %v, want %v", got.SetAside, tt.want)
			}
		})
	}
}

func TestSetAsideStrategiesStopOnEmptyRoll(t *testing.T) {
	for _, e := range Builtins().Family(FamilySetAside) {
		s := e.New(nil)
		if got := s.Decide(engine.View{MinFace: 1}, nil); got.Kind != engine.Stop {
			t.Errorf("%s: empty roll Kind = %s, want stop", e.Name, got.Kind)
		}
	}
}

func TestSetAsideStrategiesPlayCleanGames(t *testing.T) {
	rules := ruleset.MustCompile(ruleset.BiscuitsSpec())

	for _, e := range Builtins().Family(FamilySetAside) {
		s := e.New(rules)
		t.Run(e.Name, func(t *testing.T) {
			for seed := uint64(0); seed < 500; seed++ {
				out := engine.Play(rules, s, dice.NewSource(seed))
				if out.Suspect {
					t.Fatalf("seed %d: strategy broke the set-aside contract", seed)
				}
				if out.Score < 0 || out.Score > rules.Ceiling {
					t.Fatalf("seed %d: score %d out of range", seed, out.Score)
				}
				if out.Turns < 1 || out.Turns > rules.DiceCount() {
					t.Fatalf("seed %d: %d turns", seed, out.Turns)
				}
			}
		})
	}
}

func BenchmarkAllBigZeroOrOneZeroOrBigMin(b *testing.B) {
	rules := ruleset.MustCompile(ruleset.BiscuitsSpec())
	s := AllBigZeroOrOneZeroOrBigMin()
	src := dice.NewSource(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Play(rules, s, src)
	}
}
