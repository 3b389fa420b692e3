package main

import (
	"os"

	"github.com/spigell/trusthire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
