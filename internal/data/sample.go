package data

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/xuri/excelize/v2"

	"asset-dashboard/internal/model"
)

// SampleAsset is one asset in a generated dataset.
type SampleAsset struct {
	Type string
	Name string
	// CapacityMW scales the hourly volumes.
	CapacityMW float64
}

// SampleOptions controls WriteSampleWorkbook.
type SampleOptions struct {
	Start  time.Time
	Days   int
	Assets []SampleAsset
	Seed   int64
	// MissingEvery blanks one price cell every n rows to exercise cleaning; 0 disables.
	MissingEvery int
}

func DefaultSampleOptions() SampleOptions {
	return SampleOptions{
		Start: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		Days:  31,
		Assets: []SampleAsset{
			{Type: "GEN", Name: "SOLAR_FARM_1", CapacityMW: 50},
			{Type: "GEN", Name: "WIND_PARK_2", CapacityMW: 80},
			{Type: "LOAD", Name: "CITY_LOAD_A", CapacityMW: 120},
			{Type: "STORAGE", Name: "BATTERY_3", CapacityMW: 25},
		},
		Seed: 1,
	}
}

// WriteSampleWorkbook writes a synthetic hourly dataset with the source
// column layout. Load volumes are written negative, as in settlement exports.
// It returns the number of data rows written.
func WriteSampleWorkbook(path string, opts SampleOptions) (int, error) {
	if opts.Days <= 0 || len(opts.Assets) == 0 {
		return 0, fmt.Errorf("sample needs at least one day and one asset")
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return 0, err
	}
	header := make([]any, len(model.SourceColumns))
	for i, c := range model.SourceColumns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, err
	}

	n := 0
	for d := 0; d < opts.Days; d++ {
		day := opts.Start.AddDate(0, 0, d)
		for _, a := range opts.Assets {
			for h := 0; h < 24; h++ {
				da, daPrice, rt, rtPrice := sampleHour(rng, a, h)
				if a.Type == "LOAD" {
					da, rt = -da, -rt
				}
				row := []any{
					day.Format(model.DateLayout),
					day.Add(time.Duration(h) * time.Hour).Format(model.HourLayout),
					a.Type,
					a.Name,
					da,
					daPrice,
					rt,
					rtPrice,
				}
				n++
				if opts.MissingEvery > 0 && n%opts.MissingEvery == 0 {
					row[7] = ""
				}
				cell, err := excelize.CoordinatesToCellName(1, n+1)
				if err != nil {
					return 0, err
				}
				if err := sw.SetRow(cell, row); err != nil {
					return 0, err
				}
			}
		}
	}
	if err := sw.Flush(); err != nil {
		return 0, err
	}
	if err := f.SaveAs(path); err != nil {
		return 0, err
	}
	return n, nil
}

// sampleHour shapes prices around an evening peak and volumes by asset type.
func sampleHour(rng *rand.Rand, a SampleAsset, h int) (da, daPrice, rt, rtPrice float64) {
	shape := 0.5 + 0.5*math.Sin(float64(h-9)*math.Pi/12)
	daPrice = round3(25 + 45*shape + rng.NormFloat64()*3)
	rtPrice = round3(daPrice + rng.NormFloat64()*8)

	switch a.Type {
	case "GEN":
		sun := math.Max(0, math.Sin(float64(h-6)*math.Pi/13))
		da = a.CapacityMW * sun
	case "STORAGE":
		if h >= 17 && h <= 21 {
			da = a.CapacityMW
		}
	default:
		da = a.CapacityMW * (0.6 + 0.4*shape)
	}
	da = round3(da)
	rt = round3(math.Max(0, da*(1+rng.NormFloat64()*0.05)))
	return da, daPrice, rt, rtPrice
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
