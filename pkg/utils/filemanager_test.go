package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *FileManager {
	t.Helper()
	root := t.TempDir()
	fm := NewFileManager(
		filepath.Join(root, "input"),
		filepath.Join(root, "output"),
		filepath.Join(root, "input_archive"),
	)
	require.NoError(t, fm.EnsureDirectories())
	return fm
}

func touch(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestDiscoverInputFiles(t *testing.T) {
	fm := newTestManager(t)

	touch(t, filepath.Join(fm.InputDir, "b.csv"), "")
	touch(t, filepath.Join(fm.InputDir, "a.XLSX"), "")
	touch(t, filepath.Join(fm.InputDir, "~$a.xlsx"), "")
	touch(t, filepath.Join(fm.InputDir, "notes.txt"), "")
	require.NoError(t, os.Mkdir(filepath.Join(fm.InputDir, "nested.csv"), 0o755))

	files, err := fm.DiscoverInputFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(fm.InputDir, "a.XLSX"),
		filepath.Join(fm.InputDir, "b.csv"),
	}, files)
}

func TestArchiveInputFileNeverOverwrites(t *testing.T) {
	fm := newTestManager(t)

	first := filepath.Join(fm.InputDir, "orders.csv")
	touch(t, first, "one")
	archived1, err := fm.ArchiveInputFile(first)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, "orders.csv"), archived1)
	assert.False(t, FileExists(first))

	touch(t, first, "two")
	archived2, err := fm.ArchiveInputFile(first)
	require.NoError(t, err)
	assert.NotEqual(t, archived1, archived2)

	data, err := os.ReadFile(archived1)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
	data, err = os.ReadFile(archived2)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}

func TestArchiveInputFileByDate(t *testing.T) {
	fm := newTestManager(t)
	fm.UseTimestampSubdirs = true

	path := filepath.Join(fm.InputDir, "orders.csv")
	touch(t, path, "one")

	now := time.Now()
	archived, err := fm.ArchiveInputFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.InputArchiveDir, now.Format("2006/01/02"), "orders.csv"), archived)
	assert.True(t, FileExists(archived))
}

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{original}_{timestamp}_{uuid}", map[string]string{"original": "orders"})
	assert.Regexp(t, regexp.MustCompile(`^orders_\d{8}_\d{6}_[0-9a-f-]{36}\.xml$`), name)

	assert.NotEqual(t,
		GenerateOutputFileName("{uuid}.xml", nil),
		GenerateOutputFileName("{uuid}.xml", nil))
}

func TestWriteErrorLog(t *testing.T) {
	fm := newTestManager(t)

	path, err := WriteErrorLog(nil, fm.OutputDir, "orders.csv")
	require.NoError(t, err)
	assert.Empty(t, path)

	path, err = WriteErrorLog([]ErrorLogEntry{{
		Timestamp:    time.Now(),
		FileName:     "orders.csv",
		ErrorType:    "validation",
		ErrorMessage: "must be a whole number",
		RowNumber:    3,
		FieldName:    "money_inserted",
		FieldValue:   "1.50",
	}}, fm.OutputDir, "orders.csv")
	require.NoError(t, err)

	assert.Regexp(t, `error_log_orders_\d{8}_\d{6}_[0-9a-f]{8}\.txt$`, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total Errors: 1")
	assert.Contains(t, string(data), "Row Number:     3")
	assert.Contains(t, string(data), "Value:          1.50")
}

func TestSummary(t *testing.T) {
	fm := newTestManager(t)
	start := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	summary := ProcessingSummary{
		RunID:           "0123456789abcdef",
		StartTime:       start,
		EndTime:         start.Add(2 * time.Second),
		TotalFiles:      2,
		SuccessfulFiles: 1,
		FailedFiles:     1,
		TotalRows:       4,
		Dispensed:       2,
		ChangeReturned:  75,
		ProcessedFiles:  []ProcessedFileInfo{{InputFile: "a.csv", OutputFile: "a.xml", Rows: 4}},
		FailedFilesList: []FailedFileInfo{{InputFile: "b.csv", ErrorMessage: "boom"}},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatSummary(&buf, summary))
	out := buf.String()
	assert.Contains(t, out, "Duration:       2s")
	assert.Contains(t, out, "Change Returned:    75")
	assert.Contains(t, out, "Output:       a.xml")
	assert.Contains(t, out, "Error: boom")

	// Dry runs have no output file.
	summary.ProcessedFiles[0].OutputFile = ""
	buf.Reset()
	require.NoError(t, FormatSummary(&buf, summary))
	assert.Contains(t, buf.String(), "a.csv")
	assert.NotContains(t, buf.String(), "Output:")

	path, err := WriteSummaryLog(summary, fm.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fm.OutputDir, "processing_summary_20240115_143000_01234567.txt"), path)
	assert.True(t, FileExists(path))
}
