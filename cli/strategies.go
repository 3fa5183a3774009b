package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/ruleset"
	"github.com/signalnine/biscuits/strategy"
)

func (a *App) newStrategiesCmd() *cobra.Command {
	var rules string

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List the built-in strategies",
		Long: `List every registered strategy with its family.

Set-aside strategies are written for rule sets that move scoring dice out of
the pool (Biscuits); push-your-luck strategies only decide whether to roll
again. "stay-at-N" accepts any target N, e.g. stay-at-25.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			family := strategy.Family("")
			if rules != "" {
				rs, err := ruleset.Resolve(rules)
				if err != nil {
					return err
				}
				family = strategy.FamilyFor(rs)
			}
			a.listStrategies(family)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rules, "rules", "r", "", "Only list strategies that fit this rule set")
	return cmd
}

func (a *App) listStrategies(family strategy.Family) {
	entries := a.registry.Entries()
	if family != "" {
		entries = a.registry.Family(family)
	}
	fmt.Fprintf(a.stdout, "%-32s %-16s %s\n", "NAME", "FAMILY", "DESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(a.stdout, "%-32s %-16s %s\n", e.Name, e.Family, e.Description)
	}
}
