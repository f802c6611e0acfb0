package main

import (
	"os"

	"github.com/ledgerfold-dev/ledgerfold/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
