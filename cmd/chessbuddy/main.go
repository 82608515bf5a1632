// Command chessbuddy is the thin CLI shell around the core packages
// (spec §6 CLI surface): it parses flags into a config.Config, builds a
// store/ingest graph (with no position embedder or search indexer wired),
// and calls straight into the core.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
