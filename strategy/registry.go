package strategy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
)

// Strategy names.
const (
	NameOneMin                  = "one-min"
	NameAllZeroOneMin           = "all-zero-one-min"
	NameAllZeroPrioMin          = "all-zero-prio-min"
	NameAllZeroBigMin           = "all-zero-big-min"
	NameAllBigZeroOneZeroBigMin = "all-big-zero-one-zero-big-min"

	NameStopFirst     = "stop-first"
	NameStayAt        = "stay-at-20"
	NameRiskAverse    = "risk-averse"
	NameGravyChaser   = "gravy-chaser"
	NameGuaranteedMin = "guaranteed-min"

	stayAtPrefix = "stay-at-"
)

// Family groups strategies by the kind of rule set they are written for.
type Family string

const (
	// FamilySetAside strategies pick dice to set aside every roll.
	FamilySetAside Family = "set-aside"
	// FamilyPushLuck strategies only choose between rolling again and stopping.
	FamilyPushLuck Family = "push-your-luck"
)

// Factory builds a strategy for a compiled rule set.
type Factory func(rules *ruleset.RuleSet) engine.Strategy

// Entry is a registered strategy.
type Entry struct {
	Name        string
	Title       string
	Description string
	Family      Family
	New         Factory
}

// Registry keeps strategies in registration order.
type Registry struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.NewOrderedMap[string, Entry]()}
}

// Register adds an entry. Names must be unique.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.New == nil {
		return fmt.Errorf("strategy entry needs a name and a factory")
	}
	if _, ok := r.entries.Get(e.Name); ok {
		return fmt.Errorf("strategy %q already registered", e.Name)
	}
	r.entries.Set(e.Name, e)
	return nil
}

// Lookup finds an entry by name. Any "stay-at-<n>" name resolves to a
// stay-at strategy with target n.
func (r *Registry) Lookup(name string) (Entry, bool) {
	if e, ok := r.entries.Get(name); ok {
		return e, true
	}
	if rest, ok := strings.CutPrefix(name, stayAtPrefix); ok {
		target, err := strconv.Atoi(rest)
		if err != nil || target < 1 {
			return Entry{}, false
		}
		return stayAtEntry(target), true
	}
	return Entry{}, false
}

// Entries returns every entry in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Names returns every registered name in order.
func (r *Registry) Names() []string {
	return r.entries.Keys()
}

// Family returns the entries of one family in registration order.
func (r *Registry) Family(f Family) []Entry {
	var out []Entry
	for el := r.entries.Front(); el != nil; el = el.Next() {
		if el.Value.Family == f {
			out = append(out, el.Value)
		}
	}
	return out
}

// Build instantiates the named strategies for rules. Unknown names are a
// configuration error listing every bad name.
func (r *Registry) Build(rules *ruleset.RuleSet, names []string) ([]engine.Strategy, error) {
	var (
		out  []engine.Strategy
		errs []ruleset.ValidationError
	)
	for _, name := range names {
		e, ok := r.Lookup(strings.TrimSpace(name))
		if !ok {
			errs = append(errs, ruleset.ValidationError{
				Field:   "strategies",
				Message: fmt.Sprintf("unknown strategy %q", name),
			})
			continue
		}
		out = append(out, e.New(rules))
	}
	if err := ruleset.NewConfigError(errs); err != nil {
		return nil, err
	}
	return out, nil
}

// Defaults builds every strategy of the family that fits rules.
func (r *Registry) Defaults(rules *ruleset.RuleSet) []engine.Strategy {
	var out []engine.Strategy
	for _, e := range r.Family(FamilyFor(rules)) {
		out = append(out, e.New(rules))
	}
	return out
}

// FamilyFor returns the family suited to rules.
func FamilyFor(rules *ruleset.RuleSet) Family {
	if rules.SetAside {
		return FamilySetAside
	}
	return FamilyPushLuck
}

func stayAtEntry(target int) Entry {
	return Entry{
		Name:        fmt.Sprintf("%s%d", stayAtPrefix, target),
		Title:       fmt.Sprintf("Stay at %d", target),
		Description: fmt.Sprintf("stop on the roll that reaches %d points", target),
		Family:      FamilyPushLuck,
		New:         func(rules *ruleset.RuleSet) engine.Strategy { return StayAt(rules, target) },
	}
}

func constant(s engine.Strategy) Factory {
	return func(*ruleset.RuleSet) engine.Strategy { return s }
}

// Builtins returns a registry holding every built-in strategy.
func Builtins() *Registry {
	r := NewRegistry()
	for _, e := range []Entry{
		{NameOneMin, "One Min", "set aside the cheapest die", FamilySetAside, constant(OneMin())},
		{NameAllZeroOneMin, "All Zero or One Min", "set aside every free die, else the cheapest", FamilySetAside, constant(AllZeroOrOneMin())},
		{NameAllZeroPrioMin, "All Zero or Prio Min", "set aside every free die, else the best size-to-points die", FamilySetAside, constant(AllZeroOrPrioMin())},
		{NameAllZeroBigMin, "All Zero or Big Min", "set aside every free die, else the cheapest, biggest first", FamilySetAside, constant(AllZeroOrBigMin())},
		{NameAllBigZeroOneZeroBigMin, "All Big Zero or One Zero or Big Min", "prefer free big dice and hold small free dice back", FamilySetAside, constant(AllBigZeroOrOneZeroOrBigMin())},

		{NameStopFirst, "Stop First", "stop after the first roll that does not bust", FamilyPushLuck, constant(StopFirst())},
		stayAtEntry(20),
		{NameRiskAverse, "Risk Averse", "stop when a bust would cost more than the next roll is expected to add", FamilyPushLuck, RiskAverse},
		{NameGravyChaser, "Gravy Chaser", "never stop, chase the ceiling", FamilyPushLuck, constant(GravyChaser())},
		{NameGuaranteedMin, "Guaranteed Min", "stop once half the ceiling is banked", FamilyPushLuck, func(rules *ruleset.RuleSet) engine.Strategy {
			return GuaranteedMin(rules, 0.5)
		}},
	} {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}
