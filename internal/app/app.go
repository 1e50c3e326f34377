package app

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/specialistvlad/dojolaunch/internal/ctxlog"
	"github.com/specialistvlad/dojolaunch/internal/manifest"
	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	"github.com/specialistvlad/dojolaunch/internal/settings"
)

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithStdio sets the streams scripts read from and print to.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.in = in
		a.out = out
	}
}

// WithLogOutput sets the destination of the launcher's own log.
func WithLogOutput(w io.Writer) Option {
	return func(a *App) {
		a.logW = w
	}
}

// WithModules adds capability modules on top of the core set.
func WithModules(modules ...registry.Module) Option {
	return func(a *App) {
		a.extra = append(a.extra, modules...)
	}
}

// App encapsulates the launcher's dependencies, configuration, and lifecycle.
type App struct {
	cfg      *Config
	runID    string
	logger   *slog.Logger
	reader   *resource.Reader
	manifest *manifest.Manifest
	settings *settings.Store
	extra    []registry.Module

	in   io.Reader
	out  io.Writer
	logW io.Writer
}

// New is the constructor for the launcher. It loads the launcher manifest
// from bundle and fails if it is missing or invalid.
func New(cfg *Config, bundle fs.FS, opts ...Option) (*App, error) {
	a := &App{
		cfg:      cfg,
		runID:    uuid.NewString(),
		reader:   resource.NewReader(bundle),
		settings: settings.OpenDir(cfg.DataDir),
		in:       os.Stdin,
		out:      os.Stdout,
		logW:     os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.logW).With("run_id", a.runID)
	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	a.logger.Debug("Logger configured successfully.")

	m, err := manifest.Load(ctx, a.reader, manifest.DefaultName)
	if err != nil {
		return nil, err
	}
	a.manifest = m
	return a, nil
}

// Manifest returns the parsed launcher manifest.
func (a *App) Manifest() *manifest.Manifest {
	return a.manifest
}

// RunID identifies this App instance in its log records.
func (a *App) RunID() string {
	return a.runID
}

// Logger returns the App's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Version returns the launcher version from the bundled metadata.
func (a *App) Version() (string, error) {
	return a.Metadata(manifest.MetadataVersion)
}

// ForgeVersion returns the supported Forge version from the bundled metadata.
func (a *App) ForgeVersion() (string, error) {
	return a.Metadata(manifest.MetadataForgeVersion)
}

// Metadata returns the first line of the resource the manifest declares
// for key.
func (a *App) Metadata(key string) (string, error) {
	name, ok := a.manifest.Resource(key)
	if !ok {
		return "", fmt.Errorf("unknown metadata key %q", key)
	}
	return a.reader.ReadLine(name)
}

// Extract copies the named resource to dest, overwriting it.
func (a *App) Extract(name, dest string) error {
	if err := a.reader.Extract(name, dest); err != nil {
		return err
	}
	a.logger.Debug("Resource extracted.", "resource", name, "path", dest)
	return nil
}

// Resources lists every bundled resource.
func (a *App) Resources() ([]resource.Entry, error) {
	return a.reader.List()
}
