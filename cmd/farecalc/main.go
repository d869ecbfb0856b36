package main

import (
	"os"

	"skycab/cmd/farecalc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
