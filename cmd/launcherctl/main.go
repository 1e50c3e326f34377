package main

import (
	"context"
	"os"

	"github.com/specialistvlad/dojolaunch/cmd/launcherctl/cmd"
	"github.com/specialistvlad/dojolaunch/internal/cli"
)

func main() {
	err := cmd.NewRootCommand().ExecuteContext(context.Background())
	os.Exit(cli.Report(os.Stderr, err))
}
