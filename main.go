package main

import (
	"os"

	"github.com/adalundhe/owlreasoner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
