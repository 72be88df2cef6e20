package main

import (
	"os"

	"github.com/mrlokans/navboard/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.NewRootCommand(cli.BuildInfo{Version: Version, Commit: Commit}).Execute(); err != nil {
		os.Exit(1)
	}
}
