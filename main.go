package main

import (
	"os"

	"github.com/voxmetric/call-timeline/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
