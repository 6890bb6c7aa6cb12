package model

import "time"

// Layouts used when rendering record timestamps.
const (
	DateLayout = "2006-01-02"
	HourLayout = "2006-01-02 15:04:05"
)

// Column names of the source dataset. Keep these values stable; they are the
// headers of the spreadsheet and of every export.
const (
	ColUniqueID      = "unique_id"
	ColOperatingDate = "operating_date"
	ColTimeHour      = "time_hr"
	ColAssetType     = "asset_typ"
	ColAssetName     = "asset_nm"
	ColDASchedule    = "da_schd"
	ColDAPrice       = "da_lmp_en"
	ColRTMetered     = "rt_bll_mtr"
	ColRTPrice       = "rt_lmp_en"
)

// SourceColumns lists the columns kept from the dataset, in load order.
var SourceColumns = []string{
	ColOperatingDate,
	ColTimeHour,
	ColAssetType,
	ColAssetName,
	ColDASchedule,
	ColDAPrice,
	ColRTMetered,
	ColRTPrice,
}

// HourlyRecord is one asset/hour row of the dataset.
// Units:
// - DASchedule, RTMetered: MWh (absolute values)
// - DAPrice, RTPrice: $/MWh
type HourlyRecord struct {
	UniqueID      int
	OperatingDate time.Time
	TimeHour      time.Time

	AssetType string
	AssetName string

	DASchedule float64
	DAPrice    float64
	RTMetered  float64
	RTPrice    float64
}

// Hour is the hour-of-day of the record's timestamp (0..23).
func (r HourlyRecord) Hour() int {
	return r.TimeHour.Hour()
}

// HourEnding is the 1-based hour label used on charts: (hour+1) % 25.
func (r HourlyRecord) HourEnding() int {
	return (r.Hour() + 1) % 25
}

func (r HourlyRecord) DateString() string {
	return r.OperatingDate.Format(DateLayout)
}

func (r HourlyRecord) TimeString() string {
	return r.TimeHour.Format(HourLayout)
}

// Selection identifies the asset/day a user asked for. Empty fields mean
// "not selected".
type Selection struct {
	AssetType string
	AssetName string
	Date      string // YYYY-MM-DD
}

// Complete reports whether all three filters are set.
func (s Selection) Complete() bool {
	return s.AssetType != "" && s.AssetName != "" && s.Date != ""
}
