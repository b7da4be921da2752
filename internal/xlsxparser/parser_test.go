package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/snack-vending/internal/config"
	"github.com/ginjaninja78/snack-vending/internal/csvparser"
	"github.com/ginjaninja78/snack-vending/internal/types"
)

// writeWorkbook saves rows to a new workbook on the given sheet.
func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}

	for r, row := range rows {
		for c, value := range row {
			ref, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, value))
		}
	}

	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParse(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"note", "selection", "money_inserted"},
		{"", "Pretzels", 100},
		{},
		{"late", "Water", 25},
		{"", "Soda"},
	})

	wb, err := Parse(path, ColumnsFromConfig(config.Default()))
	require.NoError(t, err)

	assert.Equal(t, path, wb.SourceFile)
	assert.Equal(t, "Sheet1", wb.Sheet)
	assert.Equal(t, []types.TransactionRow{
		{RowNumber: 2, Selection: "Pretzels", MoneyInserted: "100"},
		{RowNumber: 4, Selection: "Water", MoneyInserted: "25"},
		{RowNumber: 5, Selection: "Soda", MoneyInserted: ""},
	}, wb.Rows)
}

func TestParseNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Orders", [][]any{
		{"Snack", "Cents"},
		{"Chips", 80},
	})

	columns := Columns{Sheet: "Orders", SelectionColumn: "Snack", MoneyColumn: "Cents"}
	wb, err := Parse(path, columns)
	require.NoError(t, err)
	require.Len(t, wb.Rows, 1)
	assert.Equal(t, "Chips", wb.Rows[0].Selection)
	assert.Equal(t, "80", wb.Rows[0].MoneyInserted)

	columns.Sheet = "Missing"
	_, err = Parse(path, columns)
	assert.Error(t, err)
}

func TestParseMissingColumn(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"selection", "paid"},
		{"Chips", 80},
	})

	_, err := Parse(path, ColumnsFromConfig(config.Default()))
	assert.ErrorIs(t, err, csvparser.ErrMissingColumn)
}

func TestParseNotAWorkbook(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "missing.xlsx"), ColumnsFromConfig(config.Default()))
	assert.Error(t, err)
}
