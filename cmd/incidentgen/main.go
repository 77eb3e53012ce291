package main

import (
	"os"

	"github.com/grachmannico95/incident-replay/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
