package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/askiada/go-teambalance/internal/config"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List the built-in variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			wrt := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(wrt, "VARIANT\tTEAM SIZE\tGROUPS\tPEOPLE\tBAND")

			for _, p := range config.Presets() {
				fmt.Fprintf(wrt, "%s\t%d\t%d\t%d\t[%g, %g]\n", p.Name, p.Size, p.Groups, p.People(), p.Low, p.High)
			}

			return wrt.Flush()
		},
	}
}
