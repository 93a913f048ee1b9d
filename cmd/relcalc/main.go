// Package main provides the relcalc command.
package main

import (
	"os"

	"github.com/leapstack-labs/relcalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
