package main

import (
	"os"

	"github.com/cgarciahasapromotion-pixel/calculateur-albion/cmd/albion/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
