// =============================================================================
// Snack Vending - XML Receipt Writer
// =============================================================================
//
// This module renders evaluated transactions as an XML receipt document.
//
// OUTPUT STRUCTURE:
//   <?xml version="1.0" encoding="UTF-8"?>
//   <receipts run="3f0c..." source="orders.csv" generated="2024-01-15T14:30:22Z">
//     <summary rows="3" dispensed="1" insufficientFunds="1" invalidSelection="1" rejected="0" changeReturned="50"></summary>
//     <receipt row="2" outcome="dispensed">
//       <selection>Water</selection>
//       <moneyInserted>100</moneyInserted>
//       <price>50</price>
//       <change>50</change>
//       <message>Water dispensed. Your change is 50. Thank you!</message>
//     </receipt>
//   </receipts>
//
// <price> is omitted for invalid selections; <change> appears only for
// dispensed items.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/ginjaninja78/snack-vending/internal/types"
	"github.com/ginjaninja78/snack-vending/internal/vending"
)

// =============================================================================
// DOCUMENT INFO
// =============================================================================

// DocumentInfo carries the document-level attributes.
type DocumentInfo struct {
	// RunID identifies the batch run that produced the document.
	RunID string

	// Source is the input file name.
	Source string

	// Generated is the document timestamp. Zero means time.Now().
	Generated time.Time

	// Rejected is the number of input rows that failed validation and
	// therefore have no receipt.
	Rejected int
}

// GenerateOptions controls document formatting.
type GenerateOptions struct {
	// Indent is the indentation string. Empty disables pretty printing.
	// Default: two spaces
	Indent string

	// IncludeDeclaration adds the <?xml ...?> header.
	// Default: true
	IncludeDeclaration bool
}

// DefaultGenerateOptions returns the default formatting options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:             "  ",
		IncludeDeclaration: true,
	}
}

// =============================================================================
// TOTALS
// =============================================================================

// Totals counts receipts by outcome.
type Totals struct {
	Dispensed         int
	InsufficientFunds int
	InvalidSelection  int

	// ChangeReturned is the sum of change over dispensed receipts.
	ChangeReturned int
}

// Summarize tallies receipts by outcome.
func Summarize(receipts []types.Receipt) Totals {
	var t Totals
	for _, r := range receipts {
		switch r.Result.Outcome {
		case vending.Dispensed:
			t.Dispensed++
			t.ChangeReturned += r.Result.Change
		case vending.InsufficientFunds:
			t.InsufficientFunds++
		case vending.InvalidSelection:
			t.InvalidSelection++
		}
	}
	return t
}

// =============================================================================
// XML STRUCTURES
// =============================================================================

type xmlDocument struct {
	XMLName   xml.Name     `xml:"receipts"`
	RunID     string       `xml:"run,attr,omitempty"`
	Source    string       `xml:"source,attr,omitempty"`
	Generated string       `xml:"generated,attr"`
	Summary   xmlSummary   `xml:"summary"`
	Receipts  []xmlReceipt `xml:"receipt"`
}

type xmlSummary struct {
	Rows              int `xml:"rows,attr"`
	Dispensed         int `xml:"dispensed,attr"`
	InsufficientFunds int `xml:"insufficientFunds,attr"`
	InvalidSelection  int `xml:"invalidSelection,attr"`
	Rejected          int `xml:"rejected,attr"`
	ChangeReturned    int `xml:"changeReturned,attr"`
}

type xmlReceipt struct {
	Row           int             `xml:"row,attr"`
	Outcome       vending.Outcome `xml:"outcome,attr"`
	Selection     string          `xml:"selection"`
	MoneyInserted int             `xml:"moneyInserted"`
	Price         *int            `xml:"price,omitempty"`
	Change        *int            `xml:"change,omitempty"`
	Message       string          `xml:"message"`
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate renders receipts with the default options.
func Generate(receipts []types.Receipt, info DocumentInfo) ([]byte, error) {
	return GenerateWithOptions(receipts, info, DefaultGenerateOptions())
}

// GenerateWithOptions renders receipts as an XML document.
func GenerateWithOptions(receipts []types.Receipt, info DocumentInfo, options GenerateOptions) ([]byte, error) {
	doc := buildDocument(receipts, info)

	var buf bytes.Buffer
	if options.IncludeDeclaration {
		buf.WriteString(xml.Header)
	}

	enc := xml.NewEncoder(&buf)
	if options.Indent != "" {
		enc.Indent("", options.Indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode receipts: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode receipts: %w", err)
	}
	buf.WriteString("\n")

	return buf.Bytes(), nil
}

func buildDocument(receipts []types.Receipt, info DocumentInfo) xmlDocument {
	generated := info.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	totals := Summarize(receipts)
	doc := xmlDocument{
		RunID:     info.RunID,
		Source:    info.Source,
		Generated: generated.UTC().Format(time.RFC3339),
		Summary: xmlSummary{
			Rows:              len(receipts) + info.Rejected,
			Dispensed:         totals.Dispensed,
			InsufficientFunds: totals.InsufficientFunds,
			InvalidSelection:  totals.InvalidSelection,
			Rejected:          info.Rejected,
			ChangeReturned:    totals.ChangeReturned,
		},
		Receipts: make([]xmlReceipt, 0, len(receipts)),
	}

	for _, r := range receipts {
		doc.Receipts = append(doc.Receipts, buildReceipt(r))
	}
	return doc
}

func buildReceipt(r types.Receipt) xmlReceipt {
	res := r.Result
	el := xmlReceipt{
		Row:           r.RowNumber,
		Outcome:       res.Outcome,
		Selection:     res.Selection,
		MoneyInserted: res.MoneyInserted,
		Message:       res.Message(),
	}

	if res.Outcome != vending.InvalidSelection {
		price := res.Price
		el.Price = &price
	}
	if res.Outcome == vending.Dispensed {
		change := res.Change
		el.Change = &change
	}
	return el
}
