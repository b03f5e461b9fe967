package main

import (
	"os"

	"github.com/lucass-carneiro/surge-stage/internal/cli"
	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	err := cli.Execute(cli.BuildInfo{Version: version, Commit: commit, Date: date})
	os.Exit(deploy.ExitStatus(err))
}
