package main

import (
	"os"

	"github.com/abhisek/goalify/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
