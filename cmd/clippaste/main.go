package main

import (
	"github.com/berrythewa/clippaste/internal/cli"
)

// Set via -ldflags at build time
var (
	version   = "dev"
	buildTime = "unknown"
	commit    = "none"
)

func main() {
	cli.SetVersionInfo(version, buildTime, commit)
	cli.Execute()
}
