package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/ruleset"
)

func (a *App) newRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rule sets",
	}
	cmd.AddCommand(a.newRulesListCmd(), a.newRulesShowCmd(), a.newRulesValidateCmd())
	return cmd
}

func (a *App) newRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in rule sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(a.stdout, "%-10s %5s %8s %6s %s\n", "NAME", "DICE", "CEILING", "BUST", "DESCRIPTION")
			for _, spec := range ruleset.Presets() {
				rules, err := ruleset.Compile(spec)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.stdout, "%-10s %5d %8d %6s %s\n",
					rules.Name, rules.DiceCount(), rules.Ceiling, rules.BustPolicy, rules.Description)
			}
			return nil
		},
	}
}

func (a *App) newRulesShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <preset|file>",
		Short: "Print a rule set as YAML or JSON",
		Long: `Print a rule set in the file format accepted by --rules.

A preset printed this way is a starting point for a custom variant:
  biscuits rules show zero-run > my-game.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := findSpec(args[0])
			if err != nil {
				return err
			}
			data, err := ruleset.MarshalSpec(spec, ruleset.Format(format))
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(ruleset.FormatYAML), "Output format: yaml or json")
	return cmd
}

func (a *App) newRulesValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a rule set file compiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := ruleset.LoadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s is valid: %d dice, ceiling %d, single turn at most %d\n",
				rules.Name, rules.DiceCount(), rules.Ceiling, rules.MaxTurnDelta)
			return nil
		},
	}
}

// findSpec returns a preset's spec, or reads nameOrPath as a file.
func findSpec(nameOrPath string) (ruleset.Spec, error) {
	for _, spec := range ruleset.Presets() {
		if spec.Name == nameOrPath {
			return spec, nil
		}
	}
	if filepath.Ext(nameOrPath) == "" {
		return ruleset.Spec{}, ruleset.NewConfigError([]ruleset.ValidationError{{
			Field:   "rules",
			Message: fmt.Sprintf("unknown rule set %q", nameOrPath),
		}})
	}
	return ruleset.ReadSpecFile(nameOrPath)
}
