package main

import (
	"os"

	"github.com/grana-dev/grana/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
