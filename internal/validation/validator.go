// =============================================================================
// Snack Vending - Input Row Validation
// =============================================================================
//
// This module checks transaction rows read from input files before they are
// handed to the evaluator.
//
// WHAT IS CHECKED:
//   - money_inserted is present
//   - money_inserted is a whole number ("100", not "1.00" or "$1")
//   - money_inserted is not negative
//
// WHAT IS NOT CHECKED:
//   The selection. An unknown or empty selection is a normal transaction
//   outcome ("Please select a valid snack.") and is reported on the receipt,
//   not rejected here.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/snack-vending/internal/types"
)

// Field names used in validation errors.
const (
	FieldMoneyInserted = "money_inserted"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError describes why a row was rejected.
type ValidationError struct {
	// RowNumber is the row in the source file.
	RowNumber int

	// Field is the offending field.
	Field string

	// Value is the raw value that failed.
	Value string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %s", e.RowNumber, e.Field, e.Value, e.Message)
}

// =============================================================================
// VALIDATED REQUEST
// =============================================================================

// Request is a row that passed validation and is ready for evaluation.
type Request struct {
	RowNumber     int
	Selection     string
	MoneyInserted int
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateRow validates a single row.
func ValidateRow(row types.TransactionRow) (Request, *ValidationError) {
	fail := func(message string) (Request, *ValidationError) {
		return Request{}, &ValidationError{
			RowNumber: row.RowNumber,
			Field:     FieldMoneyInserted,
			Value:     row.MoneyInserted,
			Message:   message,
		}
	}

	raw := strings.TrimSpace(row.MoneyInserted)
	if raw == "" {
		return fail("value is required")
	}

	money, err := strconv.Atoi(raw)
	if err != nil {
		return fail("must be a whole number")
	}
	if money < 0 {
		return fail("must not be negative")
	}

	return Request{
		RowNumber:     row.RowNumber,
		Selection:     row.Selection,
		MoneyInserted: money,
	}, nil
}

// ValidateRows validates every row, splitting them into accepted requests
// and rejections. Input order is preserved in both slices.
func ValidateRows(rows []types.TransactionRow) ([]Request, []*ValidationError) {
	var (
		requests []Request
		errs     []*ValidationError
	)

	for _, row := range rows {
		request, verr := ValidateRow(row)
		if verr != nil {
			errs = append(errs, verr)
			continue
		}
		requests = append(requests, request)
	}

	return requests, errs
}

// FormatErrors renders validation errors one per line.
func FormatErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d row(s) rejected:\n", len(errs))
	for _, e := range errs {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}
