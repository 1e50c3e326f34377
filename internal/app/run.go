package app

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/dojolaunch/internal/ctxlog"
	"github.com/specialistvlad/dojolaunch/internal/host"
	"github.com/specialistvlad/dojolaunch/internal/registry"
)

// Run executes the configured variant: it initializes one runtime with args,
// runs the variant's scripts in order against it and stops at the first
// failure. The runtime is terminated on every path. A script that exits
// with status 0 ends the run successfully.
func (a *App) Run(ctx context.Context, args []string) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	variant, err := a.manifest.Variant(a.cfg.Variant)
	if err != nil {
		return err
	}
	logger := a.logger.With("variant", variant.Name)
	ctx = ctxlog.With(ctx, "variant", variant.Name)

	modules := append(a.coreModules(), a.extra...)
	reg := registry.New(modules...)
	h := host.New(
		host.NewBundleSource(a.reader),
		host.WithRegistry(reg),
		host.WithLogger(logger),
		host.WithStdio(a.in, a.out),
	)

	defer func() {
		if termErr := h.Terminate(); termErr != nil {
			err = errors.Join(err, termErr)
		}
	}()
	rt, err := h.Initialize(args)
	if err != nil {
		return err
	}
	for _, mod := range modules {
		if c, ok := mod.(io.Closer); ok {
			rt.OnClose(c.Close)
		}
	}

	logger.Info("Running launcher scripts.", "scripts", len(variant.Scripts))
	for i, name := range variant.Scripts {
		if err := h.Run(ctx, name); err != nil {
			var req *host.ExitRequest
			if errors.As(err, &req) && req.Code == 0 {
				logger.Info("Script requested a successful exit.", "script", name, "remaining", len(variant.Scripts)-i-1)
				return nil
			}
			return err
		}
	}

	logger.Debug("App.Run method finished.")
	return nil
}
