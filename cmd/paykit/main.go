// Package main provides the paykit command.
package main

import (
	"os"

	"github.com/gork-labs/paykit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
