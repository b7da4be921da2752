// =============================================================================
// Snack Vending - Transaction Evaluator
// =============================================================================
//
// This package decides the outcome of a single vending transaction.
//
// DECISION ORDER:
//   1. Unknown selection          -> InvalidSelection
//   2. Money strictly below price -> InsufficientFunds
//   3. Otherwise                  -> Dispensed, change = money - price
//
// Paying exactly the price dispenses with zero change.
//
// Evaluate holds no state and is safe to call from multiple goroutines.
//
// =============================================================================

package vending

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/snack-vending/internal/catalog"
)

// ErrNegativeMoney is returned when the amount inserted is below zero.
var ErrNegativeMoney = errors.New("money inserted must not be negative")

// =============================================================================
// OUTCOME
// =============================================================================

// Outcome is the tagged result of evaluating a transaction.
type Outcome int

const (
	// InvalidSelection means the selection is not in the catalog.
	InvalidSelection Outcome = iota + 1

	// InsufficientFunds means the money inserted is below the item price.
	InsufficientFunds

	// Dispensed means the item was vended and change returned.
	Dispensed
)

// String returns the outcome name used in logs and reports.
func (o Outcome) String() string {
	switch o {
	case InvalidSelection:
		return "invalid_selection"
	case InsufficientFunds:
		return "insufficient_funds"
	case Dispensed:
		return "dispensed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// MarshalText implements encoding.TextMarshaler.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "invalid_selection":
		*o = InvalidSelection
	case "insufficient_funds":
		*o = InsufficientFunds
	case "dispensed":
		*o = Dispensed
	default:
		return fmt.Errorf("unknown outcome %q", text)
	}
	return nil
}

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of one transaction plus the data needed to render it.
type Result struct {
	Outcome Outcome `json:"outcome"`

	// Selection is the raw selection text as supplied by the caller.
	Selection string `json:"selection"`

	MoneyInserted int `json:"money_inserted"`

	// Price is zero for InvalidSelection.
	Price int `json:"price,omitempty"`

	// Change is only meaningful for Dispensed.
	Change int `json:"change"`
}

// Message renders the customer-facing status line.
func (r Result) Message() string {
	switch r.Outcome {
	case InsufficientFunds:
		return fmt.Sprintf("Please insert more to purchase %s.", r.Selection)
	case Dispensed:
		return fmt.Sprintf("%s dispensed. Your change is %d. Thank you!", r.Selection, r.Change)
	default:
		return "Please select a valid snack."
	}
}

// String implements fmt.Stringer.
func (r Result) String() string {
	return r.Message()
}

// =============================================================================
// EVALUATION
// =============================================================================

// Evaluate runs a single transaction.
//
// Every selection maps to one of the three outcomes. The only error is
// ErrNegativeMoney, which is checked before the selection is looked at.
func Evaluate(selection string, moneyInserted int) (Result, error) {
	if moneyInserted < 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrNegativeMoney, moneyInserted)
	}

	result := Result{
		Selection:     selection,
		MoneyInserted: moneyInserted,
	}

	item, ok := catalog.ParseItem(selection)
	if !ok {
		result.Outcome = InvalidSelection
		return result, nil
	}

	result.Price = item.Price()
	if moneyInserted < result.Price {
		result.Outcome = InsufficientFunds
		return result, nil
	}

	result.Outcome = Dispensed
	result.Change = moneyInserted - result.Price
	return result, nil
}

// Vend evaluates a transaction and returns only the status message.
func Vend(selection string, moneyInserted int) (string, error) {
	result, err := Evaluate(selection, moneyInserted)
	if err != nil {
		return "", err
	}
	return result.Message(), nil
}
