package analysis

import (
	"math"
	"sort"

	"asset-dashboard/internal/model"
)

type RankedAsset struct {
	Rank int `json:"rank"`
	DayStats
}

// RankByDeviation computes day stats per asset and sorts descending by the
// absolute RT-DA volume deviation. Ties are broken by asset name.
func RankByDeviation(recs []model.HourlyRecord) []RankedAsset {
	type key struct{ typ, name string }
	byAsset := map[key][]model.HourlyRecord{}
	for _, r := range recs {
		k := key{r.AssetType, r.AssetName}
		byAsset[k] = append(byAsset[k], r)
	}

	out := make([]RankedAsset, 0, len(byAsset))
	for _, rs := range byAsset {
		out = append(out, RankedAsset{DayStats: ComputeDayStats(rs)})
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := math.Abs(out[i].DeviationMWh), math.Abs(out[j].DeviationMWh)
		if di != dj {
			return di > dj
		}
		if out[i].AssetName != out[j].AssetName {
			return out[i].AssetName < out[j].AssetName
		}
		return out[i].AssetType < out[j].AssetType
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
