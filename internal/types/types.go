// =============================================================================
// Snack Vending - Shared Types
// =============================================================================
//
// Types shared by the batch pipeline packages to avoid import cycles:
//   - csvparser / xlsxparser produce TransactionRows
//   - validation checks TransactionRows
//   - batch turns valid rows into Receipts
//   - xmlwriter renders Receipts
//
// =============================================================================

package types

import "github.com/ginjaninja78/snack-vending/internal/vending"

// TransactionRow is one transaction request read from an input file,
// before any validation. Values are kept as raw text.
type TransactionRow struct {
	// RowNumber is the 1-based line (CSV) or row (XLSX) in the source
	// file where the request starts. Useful for error reporting.
	RowNumber int

	// Selection is the selection text exactly as it appeared in the file.
	Selection string

	// MoneyInserted is the unparsed amount column.
	MoneyInserted string
}

// Receipt is an evaluated transaction row.
type Receipt struct {
	// RowNumber is the row the request came from.
	RowNumber int

	// Result is the evaluator's decision for the row.
	Result vending.Result
}
