package analysis

import (
	"math"
	"sort"

	"asset-dashboard/internal/model"
)

// PriceStats summarises one price column over a set of hours.
type PriceStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	P05  float64 `json:"p05"`
	P95  float64 `json:"p95"`
}

// DayStats is an asset/day summary used next to the hourly table and for
// ranking assets against each other.
type DayStats struct {
	AssetType string `json:"asset_type"`
	AssetName string `json:"asset_name"`
	Date      string `json:"date"`

	Count int `json:"count"`

	DAPrice PriceStats `json:"da_price"`
	RTPrice PriceStats `json:"rt_price"`

	// MeanSpread is mean(DA price - RT price) in $/MWh.
	MeanSpread float64 `json:"mean_spread"`

	DAScheduleMWh float64 `json:"da_schedule_mwh"`
	RTMeteredMWh  float64 `json:"rt_metered_mwh"`
	// DeviationMWh is RT metered minus DA scheduled volume.
	DeviationMWh float64 `json:"deviation_mwh"`
}

func ComputeDayStats(recs []model.HourlyRecord) DayStats {
	s := DayStats{}
	if len(recs) == 0 {
		return s
	}
	s.AssetType = recs[0].AssetType
	s.AssetName = recs[0].AssetName
	s.Date = recs[0].DateString()
	s.Count = len(recs)

	da := make([]float64, 0, len(recs))
	rt := make([]float64, 0, len(recs))
	spread := 0.0
	for _, r := range recs {
		da = append(da, r.DAPrice)
		rt = append(rt, r.RTPrice)
		spread += r.DAPrice - r.RTPrice
		s.DAScheduleMWh += r.DASchedule
		s.RTMeteredMWh += r.RTMetered
	}
	s.DAPrice = priceStats(da)
	s.RTPrice = priceStats(rt)
	s.MeanSpread = spread / float64(len(recs))
	s.DeviationMWh = s.RTMeteredMWh - s.DAScheduleMWh
	return s
}

func priceStats(vals []float64) PriceStats {
	if len(vals) == 0 {
		return PriceStats{}
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return PriceStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: sum / float64(len(sorted)),
		P05:  percentileSorted(sorted, 0.05),
		P95:  percentileSorted(sorted, 0.95),
	}
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
