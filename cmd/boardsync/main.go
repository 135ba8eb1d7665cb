// Command boardsync adds and removes issues and pull requests on GitHub
// project boards when their labels change.
package main

import (
	"os"

	"github.com/custodia-labs/boardsync/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
