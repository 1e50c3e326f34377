package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/dojolaunch/bundle"
	"github.com/specialistvlad/dojolaunch/internal/app"
	"github.com/specialistvlad/dojolaunch/internal/cli"
)

// main is the entrypoint for the launcher. Every argument is passed to the
// scripts untouched; configuration comes from DOJO_* variables.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	err := run(context.Background(), os.Stdin, os.Stdout, os.Stderr, os.Args[1:])
	os.Exit(cli.Report(os.Stderr, err))
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, in io.Reader, outW, errW io.Writer, args []string) error {
	cfg, err := cli.Load("", nil)
	if err != nil {
		return err
	}

	launcher, err := app.New(cfg, bundle.FS(), app.WithStdio(in, outW), app.WithLogOutput(errW))
	if err != nil {
		return err
	}
	return launcher.Run(ctx, args)
}
