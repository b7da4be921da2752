package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/snack-vending/internal/types"
)

func TestValidateRow(t *testing.T) {
	tests := []struct {
		name    string
		money   string
		want    int
		message string
	}{
		{"whole number", "100", 100, ""},
		{"zero", "0", 0, ""},
		{"padded", " 75 ", 75, ""},
		{"empty", "", 0, "value is required"},
		{"decimal", "1.00", 0, "must be a whole number"},
		{"currency", "$1", 0, "must be a whole number"},
		{"negative", "-5", 0, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := types.TransactionRow{RowNumber: 7, Selection: "Soda", MoneyInserted: tt.money}
			request, verr := ValidateRow(row)

			if tt.message != "" {
				require.NotNil(t, verr)
				assert.Equal(t, 7, verr.RowNumber)
				assert.Equal(t, FieldMoneyInserted, verr.Field)
				assert.Equal(t, tt.money, verr.Value)
				assert.Equal(t, tt.message, verr.Message)
				return
			}

			require.Nil(t, verr)
			assert.Equal(t, Request{RowNumber: 7, Selection: "Soda", MoneyInserted: tt.want}, request)
		})
	}
}

func TestValidateRowsKeepsOrder(t *testing.T) {
	rows := []types.TransactionRow{
		{RowNumber: 2, Selection: "Water", MoneyInserted: "50"},
		{RowNumber: 3, Selection: "Chips", MoneyInserted: "x"},
		{RowNumber: 4, Selection: "", MoneyInserted: "10"},
		{RowNumber: 5, Selection: "Chips", MoneyInserted: "-1"},
	}

	requests, errs := ValidateRows(rows)

	require.Len(t, requests, 2)
	assert.Equal(t, 2, requests[0].RowNumber)
	assert.Equal(t, 4, requests[1].RowNumber)

	require.Len(t, errs, 2)
	assert.Equal(t, 3, errs[0].RowNumber)
	assert.Equal(t, 5, errs[1].RowNumber)

	out := FormatErrors(errs)
	assert.Contains(t, out, "2 row(s) rejected")
	assert.Contains(t, out, `row 3: money_inserted "x": must be a whole number`)
	assert.Empty(t, FormatErrors(nil))
}
