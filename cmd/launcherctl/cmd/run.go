package cmd

import (
	"github.com/spf13/cobra"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run [-- script-args...]",
		Short: "Run the scripts of a variant",
		Long:  `Run executes every script of the selected variant in order against one runtime. Arguments after -- are passed to the scripts.`,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return a.Run(cmd.Context(), args)
		},
	}
}
