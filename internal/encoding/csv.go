package encoding

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks the format from the file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}

	return FormatJSON
}

// SaveCSV writes header and rows to path with 0600 permissions.
func SaveCSV(path string, header []string, rows [][]string) error {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}

	return WriteFileSecure(path, buf.Bytes())
}
