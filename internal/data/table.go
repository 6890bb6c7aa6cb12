package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"asset-dashboard/internal/model"
)

// Table is the cleaned, immutable in-memory dataset. Filtering goes through a
// gota DataFrame; matched rows are mapped back to records by unique id.
type Table struct {
	df          dataframe.DataFrame
	recs        []model.HourlyRecord
	fingerprint string
}

// NewTable builds a table from cleaned records. Unique ids must be 1..n in order.
func NewTable(recs []model.HourlyRecord) (*Table, error) {
	n := len(recs)
	ids := make([]int, n)
	dates := make([]string, n)
	hours := make([]string, n)
	types := make([]string, n)
	names := make([]string, n)
	da := make([]float64, n)
	daPrice := make([]float64, n)
	rt := make([]float64, n)
	rtPrice := make([]float64, n)

	for i, r := range recs {
		if r.UniqueID != i+1 {
			return nil, fmt.Errorf("record %d has unique id %d, want %d", i, r.UniqueID, i+1)
		}
		ids[i] = r.UniqueID
		dates[i] = r.DateString()
		hours[i] = r.TimeString()
		types[i] = r.AssetType
		names[i] = r.AssetName
		da[i] = r.DASchedule
		daPrice[i] = r.DAPrice
		rt[i] = r.RTMetered
		rtPrice[i] = r.RTPrice
	}

	df := dataframe.New(
		series.New(ids, series.Int, model.ColUniqueID),
		series.New(dates, series.String, model.ColOperatingDate),
		series.New(hours, series.String, model.ColTimeHour),
		series.New(types, series.String, model.ColAssetType),
		series.New(names, series.String, model.ColAssetName),
		series.New(da, series.Float, model.ColDASchedule),
		series.New(daPrice, series.Float, model.ColDAPrice),
		series.New(rt, series.Float, model.ColRTMetered),
		series.New(rtPrice, series.Float, model.ColRTPrice),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to build dataframe: %w", df.Err)
	}
	return &Table{df: df, recs: recs, fingerprint: fingerprint(recs)}, nil
}

// Fingerprint is a sha256 over the cleaned rows. Tables with the same content
// share it regardless of which process loaded them or when.
func (t *Table) Fingerprint() string {
	if t == nil {
		return ""
	}
	return t.fingerprint
}

func fingerprint(recs []model.HourlyRecord) string {
	h := sha256.New()
	for _, r := range recs {
		fmt.Fprintf(h, "%s|%s|%s|%s|%v|%v|%v|%v\n",
			r.DateString(), r.TimeString(), r.AssetType, r.AssetName,
			r.DASchedule, r.DAPrice, r.RTMetered, r.RTPrice)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.recs)
}

// Records returns all rows in load order.
func (t *Table) Records() []model.HourlyRecord {
	if t == nil {
		return nil
	}
	return t.recs
}

// AssetTypes returns the sorted unique asset types.
func (t *Table) AssetTypes() []string {
	if t.Len() == 0 {
		return []string{}
	}
	return sortedUnique(t.df.Col(model.ColAssetType).Records())
}

// AssetNames returns the sorted unique asset names, restricted to assetType
// when it is non-empty.
func (t *Table) AssetNames(assetType string) []string {
	if t.Len() == 0 {
		return []string{}
	}
	df := t.df
	if assetType != "" {
		df = df.Filter(dataframe.F{Colname: model.ColAssetType, Comparator: series.Eq, Comparando: assetType})
		if df.Err != nil || df.Nrow() == 0 {
			return []string{}
		}
	}
	return sortedUnique(df.Col(model.ColAssetName).Records())
}

// Dates returns the sorted unique operating dates as YYYY-MM-DD.
func (t *Table) Dates() []string {
	if t.Len() == 0 {
		return []string{}
	}
	return sortedUnique(t.df.Col(model.ColOperatingDate).Records())
}

// Select returns the rows matching type, name and date, ordered by hour.
// A selection with any empty field, or an unparseable date, matches nothing.
func (t *Table) Select(sel model.Selection) ([]model.HourlyRecord, error) {
	if t.Len() == 0 || !sel.Complete() {
		return nil, nil
	}
	day, err := ParseTimestamp(sel.Date)
	if err != nil {
		return nil, nil
	}

	sub := t.df.
		Filter(dataframe.F{Colname: model.ColAssetType, Comparator: series.Eq, Comparando: sel.AssetType}).
		Filter(dataframe.F{Colname: model.ColAssetName, Comparator: series.Eq, Comparando: sel.AssetName}).
		Filter(dataframe.F{Colname: model.ColOperatingDate, Comparator: series.Eq, Comparando: day.Format(model.DateLayout)})
	if sub.Err != nil {
		return nil, fmt.Errorf("filter failed: %w", sub.Err)
	}
	if sub.Nrow() == 0 {
		return nil, nil
	}
	sub = sub.Arrange(dataframe.Sort(model.ColTimeHour))
	if sub.Err != nil {
		return nil, fmt.Errorf("sort failed: %w", sub.Err)
	}

	ids, err := sub.Col(model.ColUniqueID).Int()
	if err != nil {
		return nil, fmt.Errorf("read unique ids: %w", err)
	}
	out := make([]model.HourlyRecord, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.recs[id-1])
	}
	return out, nil
}

// RecordsOn returns every row whose operating date is date, in load order.
func (t *Table) RecordsOn(date string) []model.HourlyRecord {
	if t.Len() == 0 {
		return nil
	}
	day, err := ParseTimestamp(date)
	if err != nil {
		return nil
	}
	want := day.Format(model.DateLayout)
	var out []model.HourlyRecord
	for _, r := range t.recs {
		if r.DateString() == want {
			out = append(out, r)
		}
	}
	return out
}

func sortedUnique(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0)
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
