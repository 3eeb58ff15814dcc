package main

import (
	"os"

	"github.com/signalnine/swarmeval/cmd"
	_ "go.uber.org/automaxprocs"
)

func main() {
	if err := cmd.NewAnalyzeRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
