// Command biscuits compares dice game strategies by Monte Carlo simulation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/signalnine/biscuits/cli"
)

// Set via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cli.Version = Version
	cli.BuildDate = BuildTime

	if err := cli.New().Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
