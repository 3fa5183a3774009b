package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/history"
	"github.com/signalnine/biscuits/report"
)

func (a *App) newHistoryCmd() *cobra.Command {
	db := a.env.HistoryDB

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse runs recorded with --history",
	}
	cmd.PersistentFlags().StringVar(&db, "db", db, "History database (default $BISCUITS_HISTORY_DB)")

	open := func() (*history.Store, error) {
		if db == "" {
			return nil, fmt.Errorf("no history database: pass --db or set BISCUITS_HISTORY_DB")
		}
		return history.Open(db)
	}

	var (
		rules string
		limit int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), history.ListOptions{Rules: rules, Limit: limit})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%-36s %-20s %-10s %10s  %s\n", "ID", "CREATED", "RULES", "TRIALS", "BEST")
			for _, r := range runs {
				best := "-"
				if len(r.Summaries) > 0 {
					top := r.Summaries[0].Reported()
					best = fmt.Sprintf("%s (%.2f)", top.Strategy, top.Avg)
				}
				fmt.Fprintf(a.stdout, "%-36s %-20s %-10s %10d  %s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Rules, r.Trials, best)
			}
			return nil
		},
	}
	list.Flags().StringVarP(&rules, "rules", "r", "", "Only list runs of this rule set")
	list.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")

	var format string
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if f == report.FormatTable {
				fmt.Fprintf(a.stdout, "Run %s (%s, seed %d, %s)\n",
					run.ID, run.Rules, run.Seed, run.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return report.Write(a.stdout, report.NewResults(run.ID, run.Summaries), f)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", string(report.FormatTable), "Output format: table, json or fb")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}
