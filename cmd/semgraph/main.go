// Command semgraph loads triple facts from a document, then inspects or
// queries them: store statistics, index consistency checks, and
// JSON-encoded operation tree execution.
package main

import (
	"fmt"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
