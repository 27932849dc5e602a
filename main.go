package main

import (
	"os"

	"github.com/flightify/flightify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
