// =============================================================================
// Snack Vending - Main Entry Point
// =============================================================================
//
// USAGE:
//   vending vend <selection> <money> - Evaluate a single purchase
//   vending prices                   - List the catalog
//   vending batch                    - Evaluate transaction files
//   vending version                  - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : catalog, evaluator and the batch pipeline
//   - pkg/       : shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/snack-vending/cmd"
)

func main() {
	cmd.Execute()
}
