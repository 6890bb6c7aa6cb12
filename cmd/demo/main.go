package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"asset-dashboard/internal/data"
	"asset-dashboard/internal/logging"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

// Demo:
// - Write a synthetic August workbook in the dashboard's column layout
// - Load it back through the same cleaning path the server uses
// - Print the summary rows for the first asset on the first day
func main() {
	out := flag.String("out", "Aug_Asset_Data_V1.xlsx", "Path of the workbook to write")
	start := flag.String("start", "2023-08-01", "First operating date")
	days := flag.Int("days", 31, "Number of days to generate")
	seed := flag.Int64("seed", 1, "Random seed")
	missing := flag.Int("missing-every", 0, "Blank one price every n rows (0 = never)")
	flag.Parse()

	if err := logging.Setup(os.Stderr, "info", logging.TextFormat); err != nil {
		panic(err)
	}

	opts := data.DefaultSampleOptions()
	day, err := time.Parse(model.DateLayout, *start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--start must be YYYY-MM-DD: %v\n", err)
		os.Exit(2)
	}
	opts.Start = day
	opts.Days = *days
	opts.Seed = *seed
	opts.MissingEvery = *missing

	if dir := filepath.Dir(*out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}
	n, err := data.WriteSampleWorkbook(*out, opts)
	if err != nil {
		panic(err)
	}
	slog.Info("wrote sample workbook", "path", *out, "rows", n)

	tbl, stats, err := data.Load(*out, "")
	if err != nil {
		panic(err)
	}
	fmt.Printf("Loaded %d rows (%d dropped)\n", stats.RowsKept, stats.RowsDropped)

	first := opts.Assets[0]
	sel := model.Selection{AssetType: first.Type, AssetName: first.Name, Date: day.Format(model.DateLayout)}
	recs, err := tbl.Select(sel)
	if err != nil {
		panic(err)
	}
	res := summary.New(summary.DefaultPeakWindow()).Run(sel, recs)
	for _, kind := range []model.RowKind{model.RowTotal, model.RowOnPeak, model.RowOffPeak} {
		row, ok := res.Find(kind)
		if !ok {
			continue
		}
		fmt.Printf("%-18s da_lmp_en=%-10s rt_lmp_en=%-10s\n", kind, show(row.DAPrice), show(row.RTPrice))
	}
}

func show(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *v)
}
