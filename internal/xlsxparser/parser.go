// =============================================================================
// Snack Vending - XLSX Transaction Parser
// =============================================================================
//
// This module reads transaction requests from Excel workbooks. It mirrors the
// CSV parser: a header row names the columns, every following non-empty row
// is one request.
//
// WORKBOOK STRUCTURE (column positions are free, names are configurable):
//
//   | Column A  | Column B       | Column C |
//   |-----------|----------------|----------|
//   | selection | money_inserted | note     |
//   | Pretzels  | 100            |          |
//   | Water     | 25             | refund?  |
//
// Numeric cells are read as their displayed text, so a cell formatted as
// currency ("$1.00") will not validate as an integer amount.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/snack-vending/internal/config"
	"github.com/ginjaninja78/snack-vending/internal/csvparser"
	"github.com/ginjaninja78/snack-vending/internal/types"
)

// =============================================================================
// COLUMN CONFIGURATION
// =============================================================================

// Columns describes where transaction data lives in a workbook.
type Columns struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string

	// SelectionColumn and MoneyColumn are header names, not letters.
	SelectionColumn string
	MoneyColumn     string

	// HeaderRow is the 1-based row holding the column names.
	// Default: 1
	HeaderRow int
}

// ColumnsFromConfig builds the column layout from the main configuration.
// Workbooks share column names and header depth with CSV input.
func ColumnsFromConfig(cfg *config.MainConfig) Columns {
	return Columns{
		Sheet:           cfg.XLSX.Sheet,
		SelectionColumn: cfg.CSV.SelectionColumn,
		MoneyColumn:     cfg.CSV.MoneyColumn,
		HeaderRow:       cfg.CSV.HeaderRows,
	}
}

// Workbook is a parsed transaction workbook.
type Workbook struct {
	SourceFile string
	Sheet      string
	Headers    []string
	Rows       []types.TransactionRow
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads transaction rows from an XLSX file.
func Parse(path string, columns Columns) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	wb, err := parseFile(f, columns)
	if err != nil {
		return nil, err
	}
	wb.SourceFile = path
	return wb, nil
}

func parseFile(f *excelize.File, columns Columns) (*Workbook, error) {
	sheetName := columns.Sheet
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sheet %q: %w", sheetName, err)
	}
	if index < 0 {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	headerRow := columns.HeaderRow
	if headerRow <= 0 {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("sheet %q has no header row", sheetName)
	}

	headers := make([]string, len(rows[headerRow-1]))
	for i, header := range rows[headerRow-1] {
		headers[i] = strings.TrimSpace(header)
	}

	selectionIdx := indexOf(headers, columns.SelectionColumn)
	if selectionIdx < 0 {
		return nil, fmt.Errorf("%w: %q", csvparser.ErrMissingColumn, columns.SelectionColumn)
	}
	moneyIdx := indexOf(headers, columns.MoneyColumn)
	if moneyIdx < 0 {
		return nil, fmt.Errorf("%w: %q", csvparser.ErrMissingColumn, columns.MoneyColumn)
	}

	wb := &Workbook{
		Sheet:   sheetName,
		Headers: headers,
	}

	for i := headerRow; i < len(rows); i++ {
		row := rows[i]
		if isRowEmpty(row) {
			continue
		}

		wb.Rows = append(wb.Rows, types.TransactionRow{
			RowNumber:     i + 1,
			Selection:     getCell(row, selectionIdx),
			MoneyInserted: strings.TrimSpace(getCell(row, moneyIdx)),
		})
	}

	return wb, nil
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

// getCell returns the cell at index, or "" for short rows.
// excelize trims trailing empty cells from each row.
func getCell(row []string, index int) string {
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
