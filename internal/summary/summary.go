package summary

import (
	"strconv"

	"github.com/shopspring/decimal"

	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/model"
)

// Engine summarises filtered rows into the dashboard table.
type Engine struct {
	Peaks PeakWindow
}

func New(peaks PeakWindow) *Engine { return &Engine{Peaks: peaks} }

// Run builds the summary for sel from the rows that matched it. recs must be
// ordered by hour. An incomplete selection or no rows yields an empty result.
func (e *Engine) Run(sel model.Selection, recs []model.HourlyRecord) *Result {
	res := &Result{
		Selection: sel,
		PeakHours: e.Peaks.String(),
		Rows:      []Row{},
		Schedule: map[string][]Point{
			model.ColDASchedule: {},
			model.ColRTMetered:  {},
		},
		Price: map[string][]Point{
			model.ColDAPrice: {},
			model.ColRTPrice: {},
		},
	}
	if !sel.Complete() || len(recs) == 0 {
		return res
	}

	var (
		total           sums
		onPeak, offPeak sums
	)
	for _, r := range recs {
		res.Rows = append(res.Rows, Row{
			Kind:       model.RowHourly,
			UniqueID:   strconv.Itoa(r.UniqueID),
			TimeHour:   r.TimeString(),
			AssetType:  r.AssetType,
			AssetName:  r.AssetName,
			DASchedule: ptr(r.DASchedule),
			DAPrice:    ptr(r.DAPrice),
			RTMetered:  ptr(r.RTMetered),
			RTPrice:    ptr(r.RTPrice),
		})
		total.add(r)
		if e.Peaks.IsOnPeak(r.TimeHour) {
			onPeak.add(r)
		} else {
			offPeak.add(r)
		}

		x := r.HourEnding()
		res.Schedule[model.ColDASchedule] = append(res.Schedule[model.ColDASchedule], Point{X: x, Y: r.DASchedule})
		res.Schedule[model.ColRTMetered] = append(res.Schedule[model.ColRTMetered], Point{X: x, Y: r.RTMetered})
		res.Price[model.ColDAPrice] = append(res.Price[model.ColDAPrice], Point{X: x, Y: r.DAPrice})
		res.Price[model.ColRTPrice] = append(res.Price[model.ColRTPrice], Point{X: x, Y: r.RTPrice})
	}

	res.Rows = append(res.Rows,
		Row{
			Kind:       model.RowTotal,
			UniqueID:   string(model.RowTotal),
			TimeHour:   string(model.RowTotal),
			AssetType:  sel.AssetType,
			AssetName:  sel.AssetName,
			DASchedule: ptr(Round3(total.daSchedule)),
			DAPrice:    total.meanDAPrice(),
			RTMetered:  ptr(Round3(total.rtMetered)),
			RTPrice:    total.meanRTPrice(),
		},
		Row{
			Kind:      model.RowOnPeak,
			TimeHour:  string(model.RowOnPeak),
			AssetType: sel.AssetType,
			AssetName: sel.AssetName,
			DAPrice:   onPeak.meanDAPrice(),
			RTPrice:   onPeak.meanRTPrice(),
		},
		Row{
			Kind:      model.RowOffPeak,
			TimeHour:  string(model.RowOffPeak),
			AssetType: sel.AssetType,
			AssetName: sel.AssetName,
			DAPrice:   offPeak.meanDAPrice(),
			RTPrice:   offPeak.meanRTPrice(),
		},
	)

	stats := analysis.ComputeDayStats(recs)
	res.Stats = &stats
	return res
}

// Round3 rounds half away from zero to three decimals.
func Round3(v float64) float64 {
	return decimal.NewFromFloat(v).Round(3).InexactFloat64()
}

type sums struct {
	n          int
	daSchedule float64
	rtMetered  float64
	daPrice    float64
	rtPrice    float64
}

func (s *sums) add(r model.HourlyRecord) {
	s.n++
	s.daSchedule += r.DASchedule
	s.rtMetered += r.RTMetered
	s.daPrice += r.DAPrice
	s.rtPrice += r.RTPrice
}

// means over no rows are absent rather than zero

func (s *sums) meanDAPrice() *float64 {
	if s.n == 0 {
		return nil
	}
	return ptr(Round3(s.daPrice / float64(s.n)))
}

func (s *sums) meanRTPrice() *float64 {
	if s.n == 0 {
		return nil
	}
	return ptr(Round3(s.rtPrice / float64(s.n)))
}
