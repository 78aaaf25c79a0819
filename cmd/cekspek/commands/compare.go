package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quochao170402/cekspek/cmd/cekspek/output"
)

var compareJSON bool

var compareCmd = &cobra.Command{
	Use:   "compare <slug> <slug> [slug]",
	Short: "Compare two or three phones side by side",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			table, err := a.catalog.CompareBySlugs(ctx, args)
			if err != nil {
				return err
			}
			if compareJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output.Compare(*table))
			return nil
		})
	},
}

func init() {
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(compareCmd)
}
