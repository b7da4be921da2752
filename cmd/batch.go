// =============================================================================
// Snack Vending - Batch Command
// =============================================================================
//
// COMMAND USAGE:
//   vending batch [flags]
//
// FLAGS:
//   --file     : Evaluate one file instead of scanning the input directory
//   --dry-run  : Evaluate and report without writing or moving anything
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Discover *.csv and *.xlsx files in the input directory
//   3. Evaluate each file concurrently (see internal/batch)
//   4. Print per-file results and a summary
//   5. Write the summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/snack-vending/internal/batch"
	"github.com/ginjaninja78/snack-vending/internal/config"
	"github.com/ginjaninja78/snack-vending/internal/validation"
	"github.com/ginjaninja78/snack-vending/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// dryRun evaluates without writing receipts, logs or archives.
var dryRun bool

// filePath is a single file to process instead of the input directory.
var filePath string

// =============================================================================
// BATCH COMMAND DEFINITION
// =============================================================================

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Evaluate transaction files and write XML receipts",
	Long: `The batch command evaluates every transaction file (*.csv, *.xlsx) in
the input directory. Each row holds a selection and the money inserted.

On success:
  - An XML receipt document is written to the output directory
  - Rows with an unusable amount are listed in an error log
  - The input file is moved to the input archive

On error:
  - The input file stays in the input directory
  - Other files are still processed unless continue_on_error is false`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Evaluate files without writing receipts or archiving inputs",
	)

	batchCmd.Flags().StringVar(
		&filePath,
		"file",
		"",
		"Path to a single transaction file to process",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runBatch(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	logger, err := newLogger(mainConfig.LogLevel)
	if err != nil {
		return err
	}

	processor := batch.New(mainConfig,
		batch.WithLogger(logger),
		batch.WithDryRun(dryRun),
	)
	files := processor.Files()

	if !dryRun {
		if err := files.EnsureDirectories(); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	var inputFiles []string
	if filePath != "" {
		if !utils.IsInputFile(filePath) {
			return fmt.Errorf("unsupported input file %q: expected .csv or .xlsx", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = files.DiscoverInputFiles()
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No transaction files found in the input directory.")
		return nil
	}

	logger.Info("batch started", "run", processor.RunID(), "files", len(inputFiles), "dry_run", dryRun)

	// =========================================================================
	// STEP 3: PROCESS FILES
	// =========================================================================

	results := processor.Run(cmd.Context(), inputFiles)
	printResults(out, results, verbose || dryRun)

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	summary := batch.Summarize(processor.RunID(), startTime, time.Now(), results)
	fmt.Fprintln(out)
	if err := utils.FormatSummary(out, summary); err != nil {
		return err
	}

	if !dryRun {
		summaryPath, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			return err
		}
		logger.Debug("summary written", "path", summaryPath)
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}

// printResults writes one line per file. With showRejected, the rows that
// failed validation are listed under their file.
func printResults(out io.Writer, results []batch.Result, showRejected bool) {
	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if !result.Success {
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
			continue
		}

		target := "(dry run)"
		if result.OutputFile != "" {
			target = filepath.Base(result.OutputFile)
		}
		fmt.Fprintf(out, "  ✓ %s -> %s  dispensed=%d insufficient=%d invalid=%d rejected=%d\n",
			name, target,
			result.Totals.Dispensed,
			result.Totals.InsufficientFunds,
			result.Totals.InvalidSelection,
			len(result.Rejected))

		if showRejected && len(result.Rejected) > 0 {
			fmt.Fprint(out, indent(validation.FormatErrors(result.Rejected), "      "))
		}
	}
}

// indent prefixes every non-empty line of text.
func indent(text, prefix string) string {
	lines := strings.SplitAfter(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "")
}
