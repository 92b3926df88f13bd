package main

import (
	"os"

	"github.com/inkwell-labs/inkwell-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
