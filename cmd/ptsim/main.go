package main

import (
	"os"

	"github.com/ptlab/ptsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
