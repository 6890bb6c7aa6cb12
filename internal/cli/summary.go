package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

func NewSummaryCmd(root *RootArgs) *cobra.Command {
	var (
		sel model.Selection
		out string
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print or export the summary table for one asset and day",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			cfg, tbl, err := root.load()
			if err != nil {
				return err
			}
			peaks, err := cfg.PeakWindow()
			if err != nil {
				return err
			}
			day, err := data.ParseTimestamp(sel.Date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", sel.Date, err)
			}
			sel.Date = day.Format(model.DateLayout)

			recs, err := tbl.Select(sel)
			if err != nil {
				return err
			}
			res := summary.New(peaks).Run(sel, recs)
			if res.Empty() {
				fmt.Fprintf(cc.ErrOrStderr(), "no rows for %s / %s on %s\n", sel.AssetType, sel.AssetName, sel.Date)
			}

			if out == "" {
				return printSummary(cc.OutOrStdout(), res)
			}
			if err := writeSummaryFile(out, res); err != nil {
				return err
			}
			fmt.Fprintf(cc.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Rows), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&sel.AssetType, "type", "", "Asset type")
	cmd.Flags().StringVar(&sel.AssetName, "name", "", "Asset name")
	cmd.Flags().StringVar(&sel.Date, "date", "", "Operating date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "Write to a .csv or .xlsx file instead of stdout")
	for _, f := range []string{"type", "name", "date"} {
		if err := cmd.MarkFlagRequired(f); err != nil {
			panic(err)
		}
	}
	return cmd
}

func writeSummaryFile(path string, res *summary.Result) error {
	write := summary.WriteCSV
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
	case ".xlsx":
		write = summary.WriteXLSX
	default:
		return fmt.Errorf("%w: %s", data.ErrUnsupportedFormat, path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printSummary(w io.Writer, res *summary.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join([]string{
		model.ColTimeHour, model.ColAssetType, model.ColAssetName,
		model.ColDASchedule, model.ColDAPrice, model.ColRTMetered, model.ColRTPrice,
	}, "\t")+"\t")
	for _, r := range res.Rows {
		fmt.Fprintln(tw, strings.Join([]string{
			r.TimeHour, r.AssetType, r.AssetName,
			cell(r.DASchedule), cell(r.DAPrice), cell(r.RTMetered), cell(r.RTPrice),
		}, "\t")+"\t")
	}
	return tw.Flush()
}

func cell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
