// Package main is the entry point for the stagehand CLI.
package main

import (
	"os"

	"github.com/stagehand-ci/stagehand/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
