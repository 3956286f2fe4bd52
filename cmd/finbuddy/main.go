package main

import (
	"os"

	"github.com/finbuddy-dev/finbuddy/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
