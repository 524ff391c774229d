package main

import (
	"os"

	"github.com/conduit-labs/conduit-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
