// Command marketlens is a terminal client for the Market Lens stock analysis
// backend, with persistent TTL caching of analysis results.
package main

import (
	"os"

	"github.com/marketlens/marketlens/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	os.Exit(cli.Execute(version))
}
