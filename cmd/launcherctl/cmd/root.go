// Package cmd implements launcherctl, the operator companion of the
// launcher: it runs variants with explicit flags and inspects the bundle.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/specialistvlad/dojolaunch/bundle"
	"github.com/specialistvlad/dojolaunch/internal/app"
	"github.com/specialistvlad/dojolaunch/internal/cli"
)

type rootOptions struct {
	cfgFile string
}

// NewRootCommand builds the launcherctl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "launcherctl",
		Short:         "Inspect and run the bundled launcher scripts",
		Long:          `launcherctl runs launcher variants with explicit settings and inspects the resources bundled into the launcher.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $DOJO_CONFIG)")
	flags.String("variant", "", "deployment variant (default from the launcher manifest)")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	flags.String("log-format", "text", "log format: text or json")
	flags.String("data-dir", cli.DefaultDataDir(), "directory for user settings")
	flags.String("report-url", "", "socket.io URL of a classroom dashboard (disabled when empty)")

	root.AddCommand(
		newRunCommand(opts),
		newVersionCommand(opts),
		newExtractCommand(opts),
		newResourcesCommand(opts),
		newVariantsCommand(opts),
		newSchemaCommand(),
	)
	return root
}

// newApp builds an App from the command's flags, the config file and the
// environment, wired to the command's streams.
func newApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	cfg, err := cli.Load(opts.cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	return app.New(cfg, bundle.FS(),
		app.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout()),
		app.WithLogOutput(cmd.ErrOrStderr()),
	)
}
