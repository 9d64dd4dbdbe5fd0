package main

import (
	"os"

	"github.com/kompaksatyabuana/kompak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
