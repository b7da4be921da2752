// =============================================================================
// Snack Vending - Root Command
// =============================================================================
//
// COBRA CLI STRUCTURE:
//   rootCmd (vending)
//   ├── vendCmd    (vending vend <selection> <money>)
//   ├── pricesCmd  (vending prices)
//   ├── batchCmd   (vending batch)
//   └── versionCmd (vending version)
//
// The root command owns the global flags (--config, --verbose) and builds
// the logger shared by the subcommands.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/snack-vending/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging regardless of log_level.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "vending",
	Short: "Snack vending machine - evaluate purchases and compute change",
	Long: `vending decides single-item snack purchases: it checks the selection
against the catalog, checks the money inserted against the price and
reports the change.

Catalog: Pretzels (100), Chips (75), Water (50).

Example Usage:
  vending vend Water 100               # Water dispensed. Your change is 50. Thank you!
  vending prices                       # List the catalog
  vending batch                        # Evaluate every file in the input directory
  vending batch --file ./orders.xlsx   # Evaluate one file`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
// Ctrl-C cancels a batch run between files.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the stderr logger for a command run.
// --verbose wins over the configured level.
func newLogger(level string) (*slog.Logger, error) {
	if verbose {
		return logging.New(slog.LevelDebug, os.Stderr), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl, os.Stderr), nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
