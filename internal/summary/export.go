package summary

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/model"
)

// ExportColumns is the column order of exported summaries.
var ExportColumns = []string{
	model.ColTimeHour,
	model.ColAssetType,
	model.ColAssetName,
	model.ColDASchedule,
	model.ColDAPrice,
	model.ColRTMetered,
	model.ColRTPrice,
	model.ColUniqueID,
}

const exportSheet = "summary"

// WriteCSV writes the summary table, synthetic rows included.
func WriteCSV(w io.Writer, res *Result) error {
	cols := exportRecords(res)
	list := make([]series.Series, len(ExportColumns))
	for i, name := range ExportColumns {
		list[i] = series.New(cols[i], series.String, name)
	}
	df := dataframe.New(list...)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// WriteXLSX writes the summary table to a single-sheet workbook.
func WriteXLSX(w io.Writer, res *Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	header := make([]any, len(ExportColumns))
	for i, c := range ExportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}

	rows := []Row{}
	if res != nil {
		rows = res.Rows
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		line := []any{
			r.TimeHour,
			r.AssetType,
			r.AssetName,
			cellValue(r.DASchedule),
			cellValue(r.DAPrice),
			cellValue(r.RTMetered),
			cellValue(r.RTPrice),
			r.UniqueID,
		}
		if err := f.SetSheetRow(exportSheet, cell, &line); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return f.Write(w)
}

func exportRecords(res *Result) [][]string {
	cols := make([][]string, len(ExportColumns))
	for i := range cols {
		cols[i] = []string{}
	}
	if res == nil {
		return cols
	}
	for _, r := range res.Rows {
		vals := []string{
			r.TimeHour,
			r.AssetType,
			r.AssetName,
			fmtFloat(r.DASchedule),
			fmtFloat(r.DAPrice),
			fmtFloat(r.RTMetered),
			fmtFloat(r.RTPrice),
			r.UniqueID,
		}
		for i, v := range vals {
			cols[i] = append(cols[i], v)
		}
	}
	return cols
}

func cellValue(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fmtFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
