package cmd

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newVariantsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the deployment variants and their scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			m := a.Manifest()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.Header("Variant", "Default", "Scripts", "Description")
			for _, name := range m.VariantNames() {
				v, err := m.Variant(name)
				if err != nil {
					return err
				}
				isDefault := ""
				if name == m.DefaultVariant {
					isDefault = "yes"
				}
				table.Append([]string{v.Name, isDefault, strings.Join(v.Scripts, " -> "), v.Description})
			}
			return table.Render()
		},
	}
}
