package data

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/model"
)

var (
	ErrMissingColumn     = errors.New("missing column")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyDataset      = errors.New("dataset has no header row")
)

// CleanStats reports what happened while cleaning raw rows.
type CleanStats struct {
	RowsRead    int
	RowsKept    int
	RowsDropped int
}

// missing cell markers, compared case-insensitively
var missingMarkers = map[string]bool{
	"":     true,
	"nan":  true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"none": true,
	"nat":  true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"1/2/06 15:04",
}

// CleanRecords turns a header row plus data rows into hourly records:
//   - only the source columns are used, located by header name
//   - rows with any missing or unparseable source cell are dropped
//   - unique ids are assigned 1..n over the kept rows
//   - da_schd and rt_bll_mtr are made absolute
func CleanRecords(raw [][]string) ([]model.HourlyRecord, CleanStats, error) {
	var stats CleanStats
	if len(raw) == 0 {
		return nil, stats, ErrEmptyDataset
	}

	idx, err := columnIndex(raw[0])
	if err != nil {
		return nil, stats, err
	}

	out := make([]model.HourlyRecord, 0, len(raw)-1)
	for _, row := range raw[1:] {
		if isBlankRow(row) {
			continue
		}
		stats.RowsRead++
		rec, ok := parseRow(row, idx)
		if !ok {
			stats.RowsDropped++
			continue
		}
		rec.UniqueID = len(out) + 1
		out = append(out, rec)
	}
	stats.RowsKept = len(out)
	return out, stats, nil
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(model.SourceColumns))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	var missing []string
	for _, c := range model.SourceColumns {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (model.HourlyRecord, bool) {
	cell := func(col string) (string, bool) {
		i := idx[col]
		if i >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[i])
		if missingMarkers[strings.ToLower(v)] {
			return "", false
		}
		return v, true
	}

	var rec model.HourlyRecord
	var ok bool
	var s string

	if s, ok = cell(model.ColOperatingDate); !ok {
		return rec, false
	}
	day, err := ParseTimestamp(s)
	if err != nil {
		return rec, false
	}
	rec.OperatingDate = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	if s, ok = cell(model.ColTimeHour); !ok {
		return rec, false
	}
	if rec.TimeHour, err = ParseTimestamp(s); err != nil {
		return rec, false
	}

	if rec.AssetType, ok = cell(model.ColAssetType); !ok {
		return rec, false
	}
	if rec.AssetName, ok = cell(model.ColAssetName); !ok {
		return rec, false
	}

	nums := []struct {
		col string
		dst *float64
	}{
		{model.ColDASchedule, &rec.DASchedule},
		{model.ColDAPrice, &rec.DAPrice},
		{model.ColRTMetered, &rec.RTMetered},
		{model.ColRTPrice, &rec.RTPrice},
	}
	for _, n := range nums {
		if s, ok = cell(n.col); !ok {
			return rec, false
		}
		v, err := parseNumber(s)
		if err != nil {
			return rec, false
		}
		*n.dst = v
	}

	rec.DASchedule = math.Abs(rec.DASchedule)
	rec.RTMetered = math.Abs(rec.RTMetered)
	return rec, true
}

// ParseTimestamp accepts textual dates/times and Excel serial numbers.
// A UTC offset is dropped, not applied: the wall-clock date and hour are what
// the operating day and peak buckets are based on. The result is tagged UTC and
// rounded to the second.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return wallClock(t), nil
		}
	}
	serial, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	if serial <= 0 || math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("invalid excel serial %q", s)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid excel serial %q: %w", s, err)
	}
	return t.UTC().Round(time.Second), nil
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
