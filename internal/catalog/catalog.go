// =============================================================================
// Snack Vending - Catalog
// =============================================================================
//
// This package holds the closed set of items the machine sells and their
// prices. It is the single source of truth for:
//   - Which selections are valid (IsValidSelection / ParseItem)
//   - What each item costs (Item.Price)
//
// ITEMS:
//   | Item     | Price |
//   |----------|-------|
//   | Pretzels | 100   |
//   | Chips    | 75    |
//   | Water    | 50    |
//
// Prices are plain integer units (e.g. cents); there is no currency handling.
//
// =============================================================================

package catalog

import "fmt"

// =============================================================================
// ITEM TYPE
// =============================================================================

// Item is one of the fixed sellable items.
// The zero value is not a valid item; obtain items from the constants below
// or from ParseItem.
type Item int

const (
	// Pretzels costs 100.
	Pretzels Item = iota + 1

	// Chips costs 75.
	Chips

	// Water costs 50.
	Water
)

// items lists every item in display order.
var items = [...]Item{Pretzels, Chips, Water}

// String returns the exact selection identifier of the item.
func (i Item) String() string {
	switch i {
	case Pretzels:
		return "Pretzels"
	case Chips:
		return "Chips"
	case Water:
		return "Water"
	}
	return fmt.Sprintf("Item(%d)", int(i))
}

// Price returns the fixed price of the item.
//
// Price is total over the constants of this package. Converting an
// arbitrary integer to Item bypasses ParseItem and is a programming error,
// so it panics rather than inventing a price.
func (i Item) Price() int {
	switch i {
	case Pretzels:
		return 100
	case Chips:
		return 75
	case Water:
		return 50
	}
	panic(fmt.Sprintf("catalog: price requested for unknown item %d", int(i)))
}

// =============================================================================
// SELECTION LOOKUP
// =============================================================================

// Items returns every item the machine sells.
// The returned slice is a copy and may be modified by the caller.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items[:])
	return out
}

// ParseItem resolves raw selection text to an Item.
// Matching is exact and case-sensitive: "chips" and " Chips" are not valid.
func ParseItem(selection string) (Item, bool) {
	switch selection {
	case "Pretzels":
		return Pretzels, true
	case "Chips":
		return Chips, true
	case "Water":
		return Water, true
	}
	return 0, false
}

// IsValidSelection reports whether selection names an item in the catalog.
func IsValidSelection(selection string) bool {
	_, ok := ParseItem(selection)
	return ok
}
