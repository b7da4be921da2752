package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/snack-vending/internal/catalog"
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "List the items for sale and their prices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tPRICE")
		for _, item := range catalog.Items() {
			fmt.Fprintf(w, "%s\t%d\n", item, item.Price())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pricesCmd)
}
