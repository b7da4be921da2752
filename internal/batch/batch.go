// =============================================================================
// Snack Vending - Batch Processor
// =============================================================================
//
// This module evaluates whole files of transaction requests.
//
// PER-FILE PIPELINE:
//   1. Read rows (CSV or XLSX, by extension)
//   2. Validate rows; rejected rows go to an error log
//   3. Evaluate every accepted row with vending.Evaluate
//   4. Write an XML receipt document to the output directory
//   5. Archive the input file
//
// Files are processed concurrently up to max_concurrency. Rows within a file
// are evaluated in order. In dry-run mode nothing is written or moved.
//
// =============================================================================

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ginjaninja78/snack-vending/internal/config"
	"github.com/ginjaninja78/snack-vending/internal/csvparser"
	"github.com/ginjaninja78/snack-vending/internal/logging"
	"github.com/ginjaninja78/snack-vending/internal/types"
	"github.com/ginjaninja78/snack-vending/internal/validation"
	"github.com/ginjaninja78/snack-vending/internal/vending"
	"github.com/ginjaninja78/snack-vending/internal/xlsxparser"
	"github.com/ginjaninja78/snack-vending/internal/xmlwriter"
	"github.com/ginjaninja78/snack-vending/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result is the outcome of processing one input file.
type Result struct {
	// FilePath is the input file.
	FilePath string

	// Success is true if the file was read and its receipts written.
	// Rejected rows do not make a file fail.
	Success bool

	// Error is the reason the file failed.
	Error error

	// OutputFile is the receipt document path. Empty on dry runs.
	OutputFile string

	// ErrorLogFile is set when rows were rejected (and not a dry run).
	ErrorLogFile string

	// ArchivePath is where the input was moved. Empty on dry runs.
	ArchivePath string

	// Rows is the number of data rows read, including rejected ones.
	Rows int

	// Receipts holds the evaluated rows in input order.
	Receipts []types.Receipt

	// Rejected holds rows that failed validation.
	Rejected []*validation.ValidationError

	// Totals counts receipts by outcome.
	Totals xmlwriter.Totals

	ProcessTime time.Duration
}

// =============================================================================
// PROCESSOR
// =============================================================================

// Processor runs the per-file pipeline.
type Processor struct {
	config *config.MainConfig
	files  *utils.FileManager
	logger *slog.Logger
	runID  string
	dryRun bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) { p.logger = logger }
}

// WithDryRun evaluates files without writing receipts or archiving inputs.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) { p.dryRun = dryRun }
}

// WithRunID overrides the generated run identifier.
func WithRunID(runID string) Option {
	return func(p *Processor) { p.runID = runID }
}

// New creates a Processor. Directories in cfg are used as-is; call
// FileManager.EnsureDirectories before running if they may be missing.
func New(cfg *config.MainConfig, opts ...Option) *Processor {
	files := utils.NewFileManager(cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir)
	files.UseTimestampSubdirs = cfg.ArchiveByDate

	p := &Processor{
		config: cfg,
		files:  files,
		logger: logging.NewNop(),
		runID:  uuid.New().String(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("run", p.runID)
	return p
}

// RunID returns the identifier stamped on every receipt document.
func (p *Processor) RunID() string {
	return p.runID
}

// Files returns the processor's file manager.
func (p *Processor) Files() *utils.FileManager {
	return p.files
}

// Run processes files concurrently and returns one Result per file, in the
// order given. When continue_on_error is false the first failure cancels
// files that have not started yet; those report context.Canceled.
func (p *Processor) Run(ctx context.Context, files []string) []Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.config.MaxConcurrency
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(files))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = Result{FilePath: file, Error: ctx.Err()}
				return
			}

			if err := ctx.Err(); err != nil {
				results[i] = Result{FilePath: file, Error: err}
				return
			}

			results[i] = p.ProcessFile(file)
			if !results[i].Success && !p.config.ShouldContinueOnError() {
				cancel()
			}
		}(i, file)
	}

	wg.Wait()
	return results
}

// ProcessFile runs the full pipeline for one file.
func (p *Processor) ProcessFile(path string) Result {
	start := time.Now()
	result := Result{FilePath: path}
	logger := p.logger.With("file", filepath.Base(path))

	fail := func(err error) Result {
		result.Error = err
		result.ProcessTime = time.Since(start)
		logger.Error("file failed", "error", err)
		return result
	}

	// =========================================================================
	// STEP 1: READ ROWS
	// =========================================================================

	rows, err := p.readRows(path)
	if err != nil {
		return fail(err)
	}
	result.Rows = len(rows)
	logger.Debug("rows read", "rows", len(rows))

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	requests, rejected := validation.ValidateRows(rows)
	result.Rejected = rejected
	if len(rejected) > 0 {
		logger.Warn("rows rejected", "count", len(rejected))
	}

	// =========================================================================
	// STEP 3: EVALUATE
	// =========================================================================

	for _, req := range requests {
		res, err := vending.Evaluate(req.Selection, req.MoneyInserted)
		if err != nil {
			// Validation already rejects negative amounts.
			result.Rejected = append(result.Rejected, &validation.ValidationError{
				RowNumber: req.RowNumber,
				Field:     validation.FieldMoneyInserted,
				Value:     fmt.Sprint(req.MoneyInserted),
				Message:   err.Error(),
			})
			continue
		}
		logger.Debug("row evaluated", "row", req.RowNumber, "outcome", res.Outcome, "change", res.Change)
		result.Receipts = append(result.Receipts, types.Receipt{RowNumber: req.RowNumber, Result: res})
	}
	result.Totals = xmlwriter.Summarize(result.Receipts)

	if p.dryRun {
		result.Success = true
		result.ProcessTime = time.Since(start)
		return result
	}

	// =========================================================================
	// STEP 4: WRITE RECEIPTS AND ERROR LOG
	// =========================================================================

	doc, err := xmlwriter.Generate(result.Receipts, xmlwriter.DocumentInfo{
		RunID:    p.runID,
		Source:   filepath.Base(path),
		Rejected: len(result.Rejected),
	})
	if err != nil {
		return fail(err)
	}

	outputPath, err := p.writeOutput(path, doc)
	if err != nil {
		return fail(err)
	}
	result.OutputFile = outputPath

	if len(result.Rejected) > 0 {
		logPath, err := utils.WriteErrorLog(errorLogEntries(path, result.Rejected), p.config.OutputDir, filepath.Base(path))
		if err != nil {
			return fail(err)
		}
		result.ErrorLogFile = logPath
	}

	// =========================================================================
	// STEP 5: ARCHIVE INPUT
	// =========================================================================

	archivePath, err := p.files.ArchiveInputFile(path)
	if err != nil {
		return fail(fmt.Errorf("failed to archive input: %w", err))
	}
	result.ArchivePath = archivePath

	result.Success = true
	result.ProcessTime = time.Since(start)
	logger.Info("file processed",
		"rows", result.Rows,
		"dispensed", result.Totals.Dispensed,
		"insufficient", result.Totals.InsufficientFunds,
		"invalid", result.Totals.InvalidSelection,
		"rejected", len(result.Rejected),
		"output", filepath.Base(outputPath),
	)
	return result
}

// readRows picks the parser by file extension.
func (p *Processor) readRows(path string) ([]types.TransactionRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err := csvparser.Parse(path, p.config.CSV)
		if err != nil {
			return nil, err
		}
		return data.Rows, nil
	case ".xlsx":
		wb, err := xlsxparser.Parse(path, xlsxparser.ColumnsFromConfig(p.config))
		if err != nil {
			return nil, err
		}
		return wb.Rows, nil
	}
	return nil, fmt.Errorf("unsupported input file type %q", filepath.Ext(path))
}

// writeOutput writes the receipt document under a generated name.
func (p *Processor) writeOutput(inputPath string, doc []byte) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := utils.GenerateOutputFileName(p.config.OutputNameFormat, map[string]string{"original": stem})
	outputPath := filepath.Join(p.config.OutputDir, name)

	if err := os.WriteFile(outputPath, doc, 0644); err != nil {
		return "", fmt.Errorf("failed to write receipts: %w", err)
	}
	return outputPath, nil
}

func errorLogEntries(path string, errs []*validation.ValidationError) []utils.ErrorLogEntry {
	now := time.Now()
	entries := make([]utils.ErrorLogEntry, 0, len(errs))
	for _, e := range errs {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     filepath.Base(path),
			ErrorType:    "validation",
			ErrorMessage: e.Message,
			RowNumber:    e.RowNumber,
			FieldName:    e.Field,
			FieldValue:   e.Value,
		})
	}
	return entries
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summarize folds file results into a processing summary.
func Summarize(runID string, start, end time.Time, results []Result) utils.ProcessingSummary {
	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  start,
		EndTime:    end,
		TotalFiles: len(results),
	}

	for _, r := range results {
		if !r.Success {
			summary.FailedFiles++
			msg := "unknown error"
			if r.Error != nil {
				msg = r.Error.Error()
			}
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    r.FilePath,
				ErrorMessage: msg,
			})
			continue
		}

		summary.SuccessfulFiles++
		summary.TotalRows += r.Rows
		summary.RejectedRows += len(r.Rejected)
		summary.Dispensed += r.Totals.Dispensed
		summary.Insufficient += r.Totals.InsufficientFunds
		summary.Invalid += r.Totals.InvalidSelection
		summary.ChangeReturned += r.Totals.ChangeReturned
		summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
			InputFile:   r.FilePath,
			OutputFile:  r.OutputFile,
			ArchivePath: r.ArchivePath,
			Rows:        r.Rows,
			Rejected:    len(r.Rejected),
			ProcessTime: r.ProcessTime,
		})
	}

	return summary
}
