package main

import (
	"os"

	_ "time/tzdata"

	"github.com/nhu-hockey/nhu-app/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
