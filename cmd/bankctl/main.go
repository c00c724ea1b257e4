package main

import (
	"os"

	"github.com/eaglebank/banking/cmd/bankctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
