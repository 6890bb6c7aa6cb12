package data

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXRows reads a worksheet as raw rows. Cells are returned unformatted so
// that date cells come through as Excel serial numbers. An empty sheet name
// selects the first sheet of the workbook.
func ReadXLSXRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return rows, nil
}
