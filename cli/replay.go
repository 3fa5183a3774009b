package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/config"
	"github.com/signalnine/biscuits/dice"
	"github.com/signalnine/biscuits/engine"
	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/simulation"
)

func (a *App) newReplayCmd() *cobra.Command {
	var (
		rules string
		name  string
		seed  string
		trial int
	)

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Play one game turn by turn",
		Long: `Replay a single trial of a seeded run and print every roll and decision.

Trial i of "biscuits run --seed S" is "biscuits replay --seed S --trial i".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := config.ParseSeed(seed)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", seed, err)
			}
			if trial < 0 {
				return fmt.Errorf("trial must not be negative, got %d", trial)
			}
			rs, err := ruleset.Resolve(rules)
			if err != nil {
				return err
			}
			built, err := a.registry.Build(rs, []string{name})
			if err != nil {
				return err
			}
			a.replay(rs, built[0], simulation.TrialSeed(base, trial))
			return nil
		},
	}

	cmd.Flags().StringVarP(&rules, "rules", "r", a.env.Rules, "Preset name or rule set file")
	cmd.Flags().StringVarP(&name, "strategy", "s", "", "Strategy to replay (required)")
	cmd.Flags().StringVar(&seed, "seed", "0", "Harness seed of the run")
	cmd.Flags().IntVarP(&trial, "trial", "t", 0, "Trial index within the run")
	_ = cmd.MarkFlagRequired("strategy")

	return cmd
}

func (a *App) replay(rules *ruleset.RuleSet, s engine.Strategy, seed uint64) {
	fmt.Fprintf(a.stdout, "%s / %s, trial seed %d\n\n", rules.Name, s.Name(), seed)

	out := engine.Trace(rules, s, dice.NewSource(seed), func(rec engine.TurnRecord) {
		fmt.Fprintf(a.stdout, "turn %2d  roll %-40s", rec.Turn, formatRoll(rec.Roll))
		if len(rec.Action.SetAside) > 0 {
			fmt.Fprintf(a.stdout, "  keep %v", rec.Action.SetAside)
		}
		fmt.Fprintf(a.stdout, "  %+d -> %d", rec.Delta, rec.Score)
		if rec.Cause != engine.InProgress {
			fmt.Fprintf(a.stdout, "  [%s]", rec.Cause)
		}
		fmt.Fprintln(a.stdout)
	})

	score := out.Score
	unit := "score"
	if rules.LowScoreWins {
		score, unit = rules.Penalty(out.Score), "points"
	}
	fmt.Fprintf(a.stdout, "\n%s after %d turns: %d %s", out.Cause, out.Turns, score, unit)
	if out.Suspect {
		fmt.Fprint(a.stdout, " (strategy returned an invalid action)")
	}
	fmt.Fprintln(a.stdout)
}

// formatRoll prints a roll as face values, tagging dice that are not d6.
func formatRoll(roll dice.Roll) string {
	parts := make([]string, len(roll))
	for i, f := range roll {
		if f.Faces == 6 {
			parts[i] = fmt.Sprint(f.Value)
		} else {
			parts[i] = fmt.Sprintf("%d/d%d", f.Value, f.Faces)
		}
	}
	return strings.Join(parts, " ")
}
