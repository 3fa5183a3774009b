// Package cli provides the biscuits command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/signalnine/biscuits/config"
	"github.com/signalnine/biscuits/strategy"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root     *cobra.Command
	stdout   io.Writer
	stderr   io.Writer
	env      config.Config
	envErr   error
	registry *strategy.Registry
}

// New creates a new CLI application. Environment defaults are read once here
// and become the flag defaults.
func New() *App {
	env, err := config.FromEnv()
	app := &App{
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		env:      env,
		envErr:   err,
		registry: strategy.Builtins(),
	}

	run := app.newRunCmd()
	app.root = &cobra.Command{
		Use:   "biscuits",
		Short: "Compare dice game strategies by Monte Carlo simulation",
		Long: `biscuits plays a push-your-luck dice game many times under each strategy
and reports average score, minimum, maximum, gravies (games that hit the
ceiling) and the time each batch took.

Running biscuits without a subcommand is the same as "biscuits run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run.RunE,
	}
	app.root.Flags().AddFlagSet(run.Flags())

	app.root.AddCommand(
		run,
		app.newStrategiesCmd(),
		app.newRulesCmd(),
		app.newHistoryCmd(),
		app.newReplayCmd(),
		app.newVersionCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "biscuits version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}
