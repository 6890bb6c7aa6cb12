package data

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads the dataset at path once and returns the cleaned table.
// The format is chosen by file extension (.xlsx, .csv, .json). sheet only
// applies to workbooks.
func Load(path, sheet string) (*Table, CleanStats, error) {
	raw, err := readRows(path, sheet)
	if err != nil {
		return nil, CleanStats{}, err
	}
	recs, stats, err := CleanRecords(raw)
	if err != nil {
		return nil, stats, fmt.Errorf("%s: %w", path, err)
	}
	t, err := NewTable(recs)
	if err != nil {
		return nil, stats, err
	}
	return t, stats, nil
}

func readRows(path, sheet string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSXRows(path, sheet)
	case ".csv":
		return ReadCSVRows(path)
	case ".json":
		return ReadJSONRows(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
