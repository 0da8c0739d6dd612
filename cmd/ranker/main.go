package main

import (
	"fmt"
	"os"

	"alfredoptarigan/resume-ranker/cmd/ranker/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
