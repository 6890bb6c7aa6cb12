package data_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/model"
)

var fixtureHeader = []any{
	"operating_date", "time_hr", "asset_typ", "asset_nm",
	"da_schd", "da_lmp_en", "rt_bll_mtr", "rt_lmp_en", "ignored_col",
}

// writeWorkbook writes header + rows to a fresh xlsx file and returns its path.
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "assets.xlsx")
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &fixtureHeader))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// dayRows builds 24 hourly rows for one asset and day. Volumes are negative to
// exercise the absolute-value cleaning.
func dayRows(day time.Time, typ, name string) [][]any {
	out := make([][]any, 0, 24)
	for h := 0; h < 24; h++ {
		ts := day.Add(time.Duration(h) * time.Hour)
		out = append(out, []any{
			day.Format(model.DateLayout),
			ts.Format(model.HourLayout),
			typ,
			name,
			-float64(h),
			float64(20 + h),
			-float64(h) * 2,
			float64(30 + h),
			fmt.Sprintf("x%d", h),
		})
	}
	return out
}
