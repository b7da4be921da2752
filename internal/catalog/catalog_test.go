package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidSelection(t *testing.T) {
	tests := []struct {
		selection string
		want      bool
	}{
		{"Pretzels", true},
		{"Chips", true},
		{"Water", true},
		{"", false},
		{"Soda", false},
		{"chips", false},
		{"WATER", false},
		{" Pretzels", false},
		{"Pretzels ", false},
		{"Item(1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.selection, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidSelection(tt.selection))
		})
	}
}

func TestPrices(t *testing.T) {
	assert.Equal(t, 100, Pretzels.Price())
	assert.Equal(t, 75, Chips.Price())
	assert.Equal(t, 50, Water.Price())
}

func TestCatalogAgreesWithPriceTable(t *testing.T) {
	all := Items()
	require.Len(t, all, 3)

	for _, item := range all {
		assert.True(t, IsValidSelection(item.String()), "item %s must be selectable", item)

		parsed, ok := ParseItem(item.String())
		require.True(t, ok)
		assert.Equal(t, item, parsed)

		assert.NotPanics(t, func() { item.Price() })
		assert.GreaterOrEqual(t, item.Price(), 0)
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	first := Items()
	first[0] = Water

	assert.Equal(t, Pretzels, Items()[0])
}

func TestPriceOfUnknownItemPanics(t *testing.T) {
	assert.Panics(t, func() { Item(42).Price() })
	assert.Panics(t, func() { Item(0).Price() })
	assert.Equal(t, "Item(42)", Item(42).String())
}
