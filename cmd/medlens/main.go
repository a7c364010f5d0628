// Command medlens resolves medicine names against a local corpus.
package main

import (
	"os"

	"github.com/custodia-labs/medlens/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
