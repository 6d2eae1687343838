package main

import (
	"os"

	"github.com/gridsim/meritsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
