// =============================================================================
// Snack Vending - CSV Transaction Parser
// =============================================================================
//
// This module reads transaction requests from CSV files.
//
// EXPECTED LAYOUT (column names are configurable):
//   selection,money_inserted
//   Pretzels,100
//   Water,25
//
// Columns other than the selection and money columns are ignored, and the
// two columns may appear in any order. Values are returned as raw text;
// checking them is the job of the validation package.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ginjaninja78/snack-vending/internal/config"
	"github.com/ginjaninja78/snack-vending/internal/types"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("required column not found")

// =============================================================================
// CSV DATA STRUCTURE
// =============================================================================

// CSVData represents a parsed transaction file.
type CSVData struct {
	// Headers contains the cleaned column headers.
	Headers []string

	// Rows contains one request per non-empty data row.
	Rows []types.TransactionRow

	// SourceFile is the path to the source CSV file.
	SourceFile string

	// RowCount is the number of data rows (excluding headers and blanks).
	RowCount int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the transaction rows it contains.
func Parse(filePath string, settings config.CSVSettings) (*CSVData, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := ParseReader(bufio.NewReader(file), settings)
	if err != nil {
		return nil, err
	}
	data.SourceFile = filePath
	return data, nil
}

// ParseReader parses CSV content from r.
//
// PARSING PROCESS:
//   1. Configure the CSV reader with the delimiter
//   2. Take column names from the last header row
//   3. Locate the selection and money columns
//   4. Convert each remaining non-empty row to a TransactionRow, numbered
//      by the file line it starts on
func ParseReader(r io.Reader, settings config.CSVSettings) (*CSVData, error) {
	csvReader := csv.NewReader(r)
	configureReader(csvReader, settings)

	allRows, lines, err := readAll(csvReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers, err := extractHeaders(allRows, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	rows, err := extractDataRows(allRows, lines, headers, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to extract data rows: %w", err)
	}

	return &CSVData{
		Headers:  headers,
		Rows:     rows,
		RowCount: len(rows),
	}, nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(settings.Delimiter) > 0 {
			reader.Comma = rune(settings.Delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows exported by hand are often ragged.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
}

// readAll reads every record along with the file line it starts on.
// encoding/csv skips blank lines, so record indexes drift from line numbers.
func readAll(reader *csv.Reader) ([][]string, []int, error) {
	var (
		records [][]string
		lines   []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return records, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record)
		lines = append(lines, line)
	}
}

// extractHeaders returns the cleaned column names from the last header row.
func extractHeaders(allRows [][]string, settings config.CSVSettings) ([]string, error) {
	headerRows := settings.HeaderRows
	if headerRows <= 0 {
		headerRows = 1
	}

	if len(allRows) < headerRows {
		return nil, fmt.Errorf("file has fewer rows than header_rows setting")
	}

	return cleanHeaders(allRows[headerRows-1]), nil
}

// cleanHeaders trims whitespace and strips a UTF-8 byte order mark.
func cleanHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	for i, header := range headers {
		if i == 0 {
			header = strings.TrimPrefix(header, "\ufeff")
		}
		cleaned[i] = strings.TrimSpace(header)
	}
	return cleaned
}

// extractDataRows converts data rows into TransactionRows.
//
// The selection value is NOT trimmed: matching is exact, so " Chips" must
// reach the evaluator unchanged and be reported as an invalid selection.
func extractDataRows(allRows [][]string, lines []int, headers []string, settings config.CSVSettings) ([]types.TransactionRow, error) {
	selectionIdx := indexOf(headers, settings.SelectionColumn)
	if selectionIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, settings.SelectionColumn)
	}
	moneyIdx := indexOf(headers, settings.MoneyColumn)
	if moneyIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, settings.MoneyColumn)
	}

	headerRows := settings.HeaderRows
	if headerRows <= 0 {
		headerRows = 1
	}

	var rows []types.TransactionRow
	for i := headerRows; i < len(allRows); i++ {
		row := allRows[i]
		if isRowEmpty(row) {
			continue
		}

		rows = append(rows, types.TransactionRow{
			RowNumber:     lines[i],
			Selection:     cell(row, selectionIdx),
			MoneyInserted: strings.TrimSpace(cell(row, moneyIdx)),
		})
	}

	return rows, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func indexOf(headers []string, name string) int {
	for i, header := range headers {
		if header == name {
			return i
		}
	}
	return -1
}

func cell(row []string, index int) string {
	if index < len(row) {
		return row[index]
	}
	return ""
}

// isRowEmpty checks if a row contains only empty cells.
func isRowEmpty(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}
