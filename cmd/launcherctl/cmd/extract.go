package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExtractCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "extract RESOURCE DEST",
		Short: "Copy a bundled resource to a file",
		Long:  `Extract copies a bundled resource to DEST, overwriting it. A failed copy may leave DEST partially written.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			if err := a.Extract(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s to %s\n", args[0], args[1])
			return nil
		},
	}
}
