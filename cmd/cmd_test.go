package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout.
// Flags are package globals, so every test passes the ones it relies on.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestVendCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"vend", "Pretzels", "100", "--json=false"}, "Pretzels dispensed. Your change is 0. Thank you!\n"},
		{[]string{"vend", "Water", "100", "--json=false"}, "Water dispensed. Your change is 50. Thank you!\n"},
		{[]string{"vend", "Soda", "100", "--json=false"}, "Please select a valid snack.\n"},
		{[]string{"vend", "Pretzels", "50", "--json=false"}, "Please insert more to purchase Pretzels.\n"},
	}

	for _, tt := range tests {
		out, err := run(t, tt.args...)
		require.NoError(t, err)
		assert.Equal(t, tt.want, out)
	}
}

func TestVendCommandJSON(t *testing.T) {
	out, err := run(t, "vend", "Chips", "80", "--json")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dispensed", got["outcome"])
	assert.Equal(t, float64(5), got["change"])
}

func TestVendCommandErrors(t *testing.T) {
	_, err := run(t, "vend", "Chips", "lots", "--json=false")
	assert.ErrorContains(t, err, "whole number")

	_, err = run(t, "vend", "--json=false", "--", "Chips", "-1")
	assert.ErrorContains(t, err, "must not be negative")

	_, err = run(t, "vend", "Chips")
	assert.Error(t, err)
}

func TestPricesCommand(t *testing.T) {
	out, err := run(t, "prices")
	require.NoError(t, err)
	assert.Equal(t, "ITEM      PRICE\nPretzels  100\nChips     75\nWater     50\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    "+Version)
}

func TestBatchCommand(t *testing.T) {
	root := t.TempDir()
	input := filepath.Join(root, "in")
	output := filepath.Join(root, "out")
	archive := filepath.Join(root, "archive")
	require.NoError(t, os.MkdirAll(input, 0o755))

	cfgPath := filepath.Join(root, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"input_dir: "+input+"\n"+
			"output_dir: "+output+"\n"+
			"input_archive_dir: "+archive+"\n"+
			"log_level: error\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(input, "orders.csv"),
		[]byte("selection,money_inserted\nWater,100\nSoda,5\nChips,x\n"), 0o644))

	out, err := run(t, "batch", "--config", cfgPath, "--dry-run=true", "--file=", "--verbose=false")
	require.NoError(t, err)
	assert.Contains(t, out, "orders.csv -> (dry run)  dispensed=1 insufficient=0 invalid=1 rejected=1")
	assert.Contains(t, out, "      1 row(s) rejected:\n")
	assert.Contains(t, out, `        - row 4: money_inserted "x": must be a whole number`)
	assert.NotContains(t, out, "Output:")
	assert.FileExists(t, filepath.Join(input, "orders.csv"))
	assert.NoDirExists(t, output)

	out, err = run(t, "batch", "--config", cfgPath, "--dry-run=false", "--file=", "--verbose=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Successful:         1")
	assert.NotContains(t, out, "row(s) rejected")
	assert.FileExists(t, filepath.Join(archive, "orders.csv"))

	receipts, err := filepath.Glob(filepath.Join(output, "receipts_*.xml"))
	require.NoError(t, err)
	assert.Len(t, receipts, 1)

	out, err = run(t, "batch", "--config", cfgPath, "--dry-run=false", "--file=", "--verbose=false")
	require.NoError(t, err)
	assert.Contains(t, out, "No transaction files found")
}

func TestBatchCommandRejectsUnsupportedFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := run(t, "batch", "--config", cfgPath, "--dry-run=true", "--file", "orders.txt", "--verbose=false")
	assert.ErrorContains(t, err, "unsupported input file")
}
