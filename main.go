package main

import (
	"os"

	"github.com/cwarden/calmate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
