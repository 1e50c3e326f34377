package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newResourcesCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the bundled resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			entries, err := a.Resources()
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Name", "Size")
			for _, e := range entries {
				table.Append([]string{e.Name, strconv.FormatInt(e.Size, 10)})
			}
			return table.Render()
		},
	}
}
