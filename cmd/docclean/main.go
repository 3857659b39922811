// Package main is the entry point for the docclean CLI.
package main

import (
	"os"

	"github.com/jmylchreest/docclean/cmd/docclean/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
