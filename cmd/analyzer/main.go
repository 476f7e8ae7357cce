package main

import (
	"os"

	"github.com/M1doriya/Analysis-PRO/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
