// Package main is the entry point for the leapcalc calculator.
package main

import (
	"os"

	"github.com/leapstack-labs/leapcalc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
