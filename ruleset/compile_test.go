package ruleset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signalnine/biscuits/dice"
)

func d6(values ...int) dice.Roll {
	roll := make(dice.Roll, len(values))
	for i, v := range values {
		roll[i] = dice.Face{Faces: 6, Value: v}
	}
	return roll
}

func TestCompileBiscuits(t *testing.T) {
	rs := MustCompile(BiscuitsSpec())

	if rs.DiceCount() != 15 {
		t.Errorf("DiceCount() = %d, want 15", rs.DiceCount())
	}
	if rs.Ceiling != 87 {
		t.Errorf("Ceiling = %d, want 87", rs.Ceiling)
	}
	if rs.MaxTurnDelta != 87 || rs.MaxAttainable != 87 {
		t.Errorf("MaxTurnDelta/MaxAttainable = %d/%d, want 87/87", rs.MaxTurnDelta, rs.MaxAttainable)
	}
	if rs.Bust != nil {
		t.Error("biscuits never busts")
	}
	if !rs.SetAside || !rs.LowScoreWins {
		t.Error("biscuits sets dice aside and low score wins")
	}

	roll := dice.Roll{
		{Faces: 6, Value: 4},
		{Faces: 8, Value: 8},
		{Faces: 10, Value: 1},
		{Faces: 12, Value: 12},
	}
	// pips saved: (8-1) + (12-1)
	if got := rs.Score(roll, []int{1, 3}, 0); got != 18 {
		t.Errorf("Score = %d, want 18", got)
	}
	if got := rs.Score(roll, []int{2}, 50); got != 0 {
		t.Errorf("Score of a rolled 1 = %d, want 0", got)
	}
	if got := rs.Penalty(87); got != 0 {
		t.Errorf("Penalty(87) = %d, want 0", got)
	}
}

func TestCompileZeroRun(t *testing.T) {
	rs := MustCompile(ZeroRunSpec())

	if got := rs.Score(d6(2, 3, 4, 5, 6), nil, 0); got != 20 {
		t.Errorf("Score = %d, want 20", got)
	}
	// the payload is ignored when dice are not set aside
	if got := rs.Score(d6(2, 3, 4, 5, 6), []int{0}, 0); got != 20 {
		t.Errorf("Score with payload = %d, want 20", got)
	}
	if !rs.Bust(d6(2, 2, 1, 6, 6)) {
		t.Error("a single 1 should bust")
	}
	if rs.Bust(d6(2, 2, 3, 6, 6)) {
		t.Error("no 1s should not bust")
	}
	if rs.BustPolicy != BustGame {
		t.Errorf("BustPolicy = %s, want game", rs.BustPolicy)
	}
}

func TestCompileBustMinCount(t *testing.T) {
	spec := ZeroRunSpec()
	spec.Bust = &BustRule{Faces: []int{1, 2}, MinCount: 3}
	spec.Ceiling = 60
	rs := MustCompile(spec)

	if rs.Bust(d6(1, 2, 5, 5, 5)) {
		t.Error("two bust faces should not bust with min_count 3")
	}
	if !rs.Bust(d6(1, 2, 2, 5, 5)) {
		t.Error("three bust faces should bust")
	}
	// 1 and 2 only bust in threes, so a 6 is still the best face
	if rs.MaxTurnDelta != 30 {
		t.Errorf("MaxTurnDelta = %d, want 30", rs.MaxTurnDelta)
	}
}

func TestCompileTableScoring(t *testing.T) {
	zero := 0
	spec := Spec{
		Name:     "farkle-ish",
		Dice:     []dice.Spec{{Faces: 6, Count: 3}},
		MinFace:  &zero,
		Ceiling:  300,
		MaxTurns: 10,
		Scoring:  ScoringRule{Mode: ScoreTable, Table: map[int]int{0: 100, 4: 50}},
	}
	rs := MustCompile(spec)

	roll := dice.Roll{{Faces: 6, Value: 0}, {Faces: 6, Value: 4}, {Faces: 6, Value: 3}}
	if got := rs.Score(roll, nil, 0); got != 150 {
		t.Errorf("Score = %d, want 150", got)
	}
	if rs.MaxTurnDelta != 300 {
		t.Errorf("MaxTurnDelta = %d, want 300", rs.MaxTurnDelta)
	}
}

func TestCompileNoScoringFace(t *testing.T) {
	spec := ZeroRunSpec()
	spec.Scoring = ScoringRule{Mode: ScoreTable, Table: map[int]int{1: 10}}

	_, err := Compile(spec)
	if !errors.Is(err, ErrConfiguration) {
		t.Errorf("Compile() error = %v, want ErrConfiguration", err)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{PresetBiscuits, PresetZeroRun, PresetPig} {
		rs, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if rs.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, rs.Name)
		}
	}

	if _, err := Lookup("yahtzee"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Lookup(unknown) error = %v, want ErrConfiguration", err)
	}
}

func TestLoadFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "turn.yaml")
	content := `name: soft-pig
dice:
  - {faces: 6, count: 2}
ceiling: 50
max_turns: 40
bust_policy: turn
bust:
  faces: [1]
  min_count: 2
scoring:
  mode: sum
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if rs.Name != "soft-pig" || rs.BustPolicy != BustTurn || rs.DiceCount() != 2 {
		t.Errorf("unexpected rule set: %+v", rs)
	}
	if rs.Bust(d6(1, 6)) {
		t.Error("one 1 should not bust with min_count 2")
	}
	if !rs.Bust(d6(1, 1)) {
		t.Error("snake eyes should bust")
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrRulesNotFound) {
		t.Errorf("missing file error = %v, want ErrRulesNotFound", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "rules.toml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("toml error = %v, want ErrUnsupportedFormat", err)
	}

	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("name: x\nsides: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(unknown); err == nil {
		t.Error("unknown field should fail to parse")
	}

	zeroCeiling := filepath.Join(dir, "zero.json")
	if err := os.WriteFile(zeroCeiling, []byte(`{"name":"z","dice":[{"faces":6,"count":5}],"ceiling":0,"max_turns":3,"scoring":{"mode":"sum"}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(zeroCeiling); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero ceiling error = %v, want ErrConfiguration", err)
	}
}

func TestMarshalSpecRoundTrip(t *testing.T) {
	data, err := MarshalSpec(PigSpec(), FormatYAML)
	if err != nil {
		t.Fatalf("MarshalSpec: %v", err)
	}
	spec, err := ParseSpec(data, FormatYAML)
	if err != nil {
		t.Fatalf("ParseSpec: %v", err)
	}
	if _, err := Compile(spec); err != nil {
		t.Errorf("re-parsed pig spec does not compile: %v", err)
	}
}

func TestResolve(t *testing.T) {
	rs, err := Resolve(PresetPig)
	if err != nil || rs.Name != PresetPig {
		t.Fatalf("Resolve(pig) = %v, %v", rs, err)
	}
	if _, err := Resolve("nope"); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Resolve(nope) error = %v, want ErrConfiguration", err)
	}
}
