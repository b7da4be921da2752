// =============================================================================
// Snack Vending - Configuration Module
// =============================================================================
//
// This module loads the main configuration file (config.yaml) used by the
// batch command. Single transactions ('vending vend') need no configuration.
//
// EXAMPLE:
//   input_dir: ./input
//   output_dir: ./output
//   input_archive_dir: ./input_archive
//   archive_by_date: false
//   log_level: info
//   output_name_format: "receipts_{timestamp}_{uuid}.xml"
//   max_concurrency: 4
//   continue_on_error: true
//   csv:
//     delimiter: ","
//     header_rows: 1
//     selection_column: selection
//     money_column: money_inserted
//   xlsx:
//     sheet: ""
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/snack-vending/internal/logging"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is scanned for transaction files (*.csv, *.xlsx).
	// Default: "./input"
	InputDir string `yaml:"input_dir"`

	// OutputDir receives XML receipts, error logs and summaries.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// InputArchiveDir receives input files after successful processing.
	// Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir"`

	// ArchiveByDate files archived inputs under YYYY/MM/DD subdirectories.
	// Default: false
	ArchiveByDate bool `yaml:"archive_by_date"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputNameFormat defines receipt file names.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {original}  - Input file name without extension
	// Default: "receipts_{timestamp}_{uuid}.xml"
	OutputNameFormat string `yaml:"output_name_format"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// MaxConcurrency is the maximum number of files processed at once.
	// Default: 4
	MaxConcurrency int `yaml:"max_concurrency"`

	// ContinueOnError keeps processing other files after one fails.
	// Default: true
	ContinueOnError *bool `yaml:"continue_on_error"`

	CSV  CSVSettings  `yaml:"csv"`
	XLSX XLSXSettings `yaml:"xlsx"`
}

// CSVSettings contains settings for parsing transaction CSV files.
type CSVSettings struct {
	// Delimiter separates fields. "tab", "pipe" and "semicolon" are accepted
	// as names. Default: ","
	Delimiter string `yaml:"delimiter"`

	// HeaderRows is the number of rows before the data; the last one holds
	// the column names. Default: 1
	HeaderRows int `yaml:"header_rows"`

	// SelectionColumn is the header of the selection column.
	// Default: "selection"
	SelectionColumn string `yaml:"selection_column"`

	// MoneyColumn is the header of the money inserted column.
	// Default: "money_inserted"
	MoneyColumn string `yaml:"money_column"`
}

// XLSXSettings contains settings for reading transaction workbooks.
// Column names are shared with CSVSettings.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// ShouldContinueOnError reports the effective continue_on_error value.
func (c *MainConfig) ShouldContinueOnError() bool {
	return c.ContinueOnError == nil || *c.ContinueOnError
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
// It is used when no config file exists.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// A missing file is not an error: defaults are used instead. Invalid YAML
// or invalid values are.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = "receipts_{timestamp}_{uuid}.xml"
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 4
	}

	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
	if config.CSV.HeaderRows == 0 {
		config.CSV.HeaderRows = 1
	}
	if config.CSV.SelectionColumn == "" {
		config.CSV.SelectionColumn = "selection"
	}
	if config.CSV.MoneyColumn == "" {
		config.CSV.MoneyColumn = "money_inserted"
	}
}

// validateMainConfig rejects values the batch pipeline cannot work with.
// Directories are not created here; see utils.FileManager.EnsureDirectories.
func validateMainConfig(config *MainConfig) error {
	if _, err := logging.ParseLevel(config.LogLevel); err != nil {
		return err
	}
	if config.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be positive, got %d", config.MaxConcurrency)
	}
	if config.CSV.HeaderRows < 0 {
		return fmt.Errorf("csv.header_rows must be at least 1, got %d", config.CSV.HeaderRows)
	}
	if config.CSV.SelectionColumn == config.CSV.MoneyColumn {
		return fmt.Errorf("csv.selection_column and csv.money_column must differ (both %q)", config.CSV.MoneyColumn)
	}
	return nil
}
