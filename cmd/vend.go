package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/snack-vending/internal/vending"
)

// jsonOutput prints the full result as JSON instead of the message.
var jsonOutput bool

var vendCmd = &cobra.Command{
	Use:   "vend <selection> <money>",
	Short: "Evaluate a single purchase",
	Long: `Evaluate a single purchase and print the machine's message.

The selection is case-sensitive and must be one of Pretzels, Chips or
Water. Money is a whole, non-negative number in the same units as the
prices.`,
	Example: `  vending vend Pretzels 100
  vending vend Water 100 --json`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		money, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("money must be a whole number, got %q", args[1])
		}

		result, err := vending.Evaluate(args[0], money)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		_, err = fmt.Fprintln(out, result.Message())
		return err
	},
}

func init() {
	rootCmd.AddCommand(vendCmd)

	vendCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
}
