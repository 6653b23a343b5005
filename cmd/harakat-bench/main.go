// Command harakat-bench measures diacritization accuracy against a gold
// corpus.
package main

import (
	"os"

	"github.com/jamesainslie/go-harakat/cmd/harakat-bench/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
