package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"asset-dashboard/internal/analysis"
	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
)

func NewRankCmd(root *RootArgs) *cobra.Command {
	var (
		date  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank assets on one day by RT vs DA volume deviation",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			_, tbl, err := root.load()
			if err != nil {
				return err
			}
			day, err := data.ParseTimestamp(date)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", date, err)
			}

			ranked := analysis.RankByDeviation(tbl.RecordsOn(day.Format(model.DateLayout)))
			if limit > 0 && limit < len(ranked) {
				ranked = ranked[:limit]
			}

			tw := tabwriter.NewWriter(cc.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "rank\tasset\ttype\thours\tda_mwh\trt_mwh\tdeviation\tda_mean\trt_mean\tspread")
			for _, r := range ranked {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
					r.Rank, r.AssetName, r.AssetType, r.Count,
					r.DAScheduleMWh, r.RTMeteredMWh, r.DeviationMWh,
					r.DAPrice.Mean, r.RTPrice.Mean, r.MeanSpread,
				)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Operating date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of assets to show (0 = all)")
	if err := cmd.MarkFlagRequired("date"); err != nil {
		panic(err)
	}
	return cmd
}
