package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func NewOptionsCmd(root *RootArgs) *cobra.Command {
	var assetType string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List asset types, asset names and dates in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cc *cobra.Command, _ []string) error {
			_, tbl, err := root.load()
			if err != nil {
				return err
			}
			out := cc.OutOrStdout()
			printList(out, "asset types", tbl.AssetTypes())
			printList(out, "asset names", tbl.AssetNames(assetType))
			printList(out, "dates", tbl.Dates())
			return nil
		},
	}
	cmd.Flags().StringVar(&assetType, "type", "", "Only list asset names of this type")
	return cmd
}

func printList(w io.Writer, title string, vals []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(vals))
	if len(vals) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(vals, "\n  "))
	}
}
