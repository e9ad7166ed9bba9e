package main

import (
	"os"

	"github.com/rbrederode/odt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
