package main

import (
	"os"

	"github.com/katalvlaran/joltage/cmd/joltage/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors and failed machines are already printed by the printer package
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
