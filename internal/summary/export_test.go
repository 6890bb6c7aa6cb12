package summary_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/summary"
)

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	res := summary.New(summary.DefaultPeakWindow()).Run(testSel, fullDay())

	var buf bytes.Buffer
	require.NoError(t, summary.WriteCSV(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 28)
	assert.Equal(t, "time_hr,asset_typ,asset_nm,da_schd,da_lmp_en,rt_bll_mtr,rt_lmp_en,unique_id", lines[0])
	assert.Equal(t, "2023-08-01 00:00:00,GEN,PLANT_A,0,20,0,30,1", lines[1])
	assert.Equal(t, "Total,GEN,PLANT_A,276,31.5,552,41.5,Total", lines[25])
	assert.Equal(t, "Price (ON PEAK),GEN,PLANT_A,,34.5,,44.5,", lines[26])
}

func TestWriteCSVEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, summary.WriteCSV(&buf, summary.New(summary.DefaultPeakWindow()).Run(testSel, nil)))
	assert.Equal(t, "time_hr,asset_typ,asset_nm,da_schd,da_lmp_en,rt_bll_mtr,rt_lmp_en,unique_id", strings.TrimSpace(buf.String()))
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	res := summary.New(summary.DefaultPeakWindow()).Run(testSel, fullDay())

	var buf bytes.Buffer
	require.NoError(t, summary.WriteXLSX(&buf, res))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("summary")
	require.NoError(t, err)
	require.Len(t, rows, 28)
	assert.Equal(t, summary.ExportColumns, rows[0])
	assert.Equal(t, "Total", rows[25][0])
	assert.Equal(t, "276", rows[25][3])
	assert.Equal(t, "Price (OFF PEAK)", rows[27][0])
	assert.Equal(t, "", rows[27][3])
}
